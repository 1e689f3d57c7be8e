package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/iamNilotpal/adler32/internal/core/services/stream"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <manifest>",
		Short: "Verify files against a manifest written by sum",
		Long: `Check reads lines of the form "<8 hex digits>  <path>", as printed by
"adler32 sum", and verifies each file. Use "-" to read the manifest from
standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, args[0])
		},
	}
}

type manifestEntry struct {
	checksum uint32
	path     string
}

func (a *app) check(cmd *cobra.Command, manifest string) error {
	var in io.Reader = cmd.InOrStdin()
	if manifest != stream.StdinPath {
		file, err := os.Open(manifest)
		if err != nil {
			return errors.NewOperationError(errors.ErrorStorage, "open manifest", err)
		}
		defer file.Close()
		in = file
	}

	entries, err := parseManifest(in)
	if err != nil {
		return err
	}

	summer, err := stream.NewSummer(a.cfg.StreamOptions(), a.log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var errs error
	for _, entry := range entries {
		status := "OK"

		if exists, err := a.fs.Exists(entry.path); err != nil || !exists {
			status = "MISSING"
			errs = multierr.Append(errs, fmt.Errorf("%s: no such file", entry.path))
		} else if err := summer.VerifyFile(cmd.Context(), entry.path, entry.checksum); err != nil {
			status = "FAILED"
			errs = multierr.Append(errs, err)
		}

		if _, err := fmt.Fprintf(out, "%s: %s\n", entry.path, status); err != nil {
			return multierr.Append(errs, err)
		}
	}

	if failed := len(multierr.Errors(errs)); failed > 0 {
		a.log.Warnw("verification failed", "failed", failed, "total", len(entries))
	}
	return errs
}

func parseManifest(r io.Reader) ([]manifestEntry, error) {
	var entries []manifestEntry

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.SplitN(text, "  ", 2)
		if len(fields) != 2 || len(fields[0]) != 8 {
			return nil, errors.NewOperationError(
				errors.ErrorFormat, "parse manifest", fmt.Errorf("line %d: expected \"<checksum>  <path>\"", line),
			)
		}

		sum, err := strconv.ParseUint(fields[0], 16, 32)
		if err != nil {
			return nil, errors.NewOperationError(errors.ErrorFormat, "parse manifest", fmt.Errorf("line %d: %w", line, err))
		}

		entries = append(entries, manifestEntry{checksum: uint32(sum), path: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewOperationError(errors.ErrorStorage, "read manifest", err)
	}
	return entries, nil
}
