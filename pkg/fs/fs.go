package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type FileSystem interface {
	Files(root string, excludeDirs []string, extension string) ([]string, error)
	Exists(filePath string) (bool, error)
}

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Lists regular files below root in lexical order. Directories whose path
// contains one of excludeDirs are skipped entirely. A non empty extension
// (".bin") keeps only files with that extension. A root that is itself a
// regular file is returned as the only entry.
func (lfs *LocalFileSystem) Files(root string, excludeDirs []string, extension string) ([]string, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if stat.Mode().IsRegular() {
		return []string{root}, nil
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("path %s is neither a file nor a directory", root)
	}

	files := make([]string, 0)
	if err := filepath.WalkDir(root, func(path string, ds fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ds.IsDir() {
			if path != root && isExcluded(excludeDirs, path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !ds.Type().IsRegular() {
			return nil
		}
		if extension != "" && filepath.Ext(path) != extension {
			return nil
		}

		files = append(files, path)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("error walking %s : %w", root, err)
	}

	return files, nil
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isExcluded(excludeDirs []string, path string) bool {
	for _, excludeDir := range excludeDirs {
		if excludeDir != "" && strings.Contains(path, excludeDir) {
			return true
		}
	}
	return false
}
