package frame

import (
	"github.com/iamNilotpal/adler32/internal/adapters/checksum"
	"github.com/iamNilotpal/adler32/internal/adapters/compression"
	"github.com/iamNilotpal/adler32/internal/core/domain"
)

const (
	// Magic identifies a frame header, "A32F" in little-endian order.
	Magic uint32 = 0x46323341

	// Version is the header layout written by this package.
	Version uint8 = 1

	// FlagChecksum marks a header whose Checksum field is valid.
	FlagChecksum uint8 = 1 << 0

	// CompressionThreshold is the smallest payload worth compressing.
	CompressionThreshold = 64

	DefaultMaxPayloadSize = 4 * 1024 * 1024  // 4MB
	MinMaxPayloadSize     = 1024             // 1KB
	MaxMaxPayloadSize     = 64 * 1024 * 1024 // 64MB
)

// DefaultOptions returns frame options with Adler-32 checksums verified on
// read and zstd compression.
func DefaultOptions() *domain.FrameOptions {
	return &domain.FrameOptions{
		ChecksumOptions:    checksum.DefaultOptions(),
		CompressionOptions: compression.DefaultOptions(),
		MaxPayloadSize:     DefaultMaxPayloadSize,
	}
}

func prepareDefaults(opts *domain.FrameOptions) *domain.FrameOptions {
	if opts == nil {
		return DefaultOptions()
	}

	if opts.ChecksumOptions == nil {
		opts.ChecksumOptions = checksum.DefaultOptions()
	} else if opts.ChecksumOptions.Algorithm == "" {
		opts.ChecksumOptions.Algorithm = checksum.Adler32
	}

	if opts.CompressionOptions == nil {
		opts.CompressionOptions = compression.DefaultOptions()
	} else if opts.CompressionOptions.Codec == "" {
		opts.CompressionOptions.Codec = compression.Zstd
	}

	if opts.MaxPayloadSize == 0 {
		opts.MaxPayloadSize = DefaultMaxPayloadSize
	}

	return opts
}
