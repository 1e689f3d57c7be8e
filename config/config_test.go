package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/adler32/internal/adapters/compression"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, validateConfig(DefaultConfig()))
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
output: json
stream:
  buffer_size: 4096
  exclude_dirs: [".git"]
frame:
  codec: zlib
  compression_level: 9
  verify_on_write: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, OutputJSON, cfg.Output)
	require.Equal(t, uint32(4096), cfg.Stream.BufferSize)
	require.Equal(t, []string{".git"}, cfg.Stream.ExcludeDirs)

	// Untouched keys keep their defaults.
	require.True(t, cfg.Frame.Checksum)
	require.Equal(t, uint32(1024*1024), cfg.Frame.BlockSize)

	opts := cfg.FrameOptions()
	require.Equal(t, compression.Zlib, opts.CompressionOptions.Codec)
	require.Equal(t, uint8(9), opts.CompressionOptions.Level)
	require.True(t, opts.ChecksumOptions.VerifyOnWrite)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"output", "output: xml"},
		{"buffer size", "stream: {buffer_size: 10}"},
		{"block size", "frame: {block_size: 0}"},
		{"block over max", "frame: {block_size: 8388608}"},
		{"codec", "frame: {codec: lz4}"},
		{"zstd level", "frame: {compression_level: 9}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadConfigValidationErrorIsReachable(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "stream: {buffer_size: 10}"))
	require.NotNil(t, errors.GetValidationError(err))
	require.Equal(t, "bufferSize", errors.GetValidationError(err).Field)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "output: [unterminated"))
	require.Error(t, err)
}
