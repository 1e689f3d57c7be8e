package frame

import (
	"fmt"

	"github.com/iamNilotpal/adler32/internal/adapters/checksum"
	"github.com/iamNilotpal/adler32/internal/adapters/compression"
	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

// Validate checks frame options after defaults have been applied.
func Validate(opts *domain.FrameOptions) error {
	if opts.MaxPayloadSize < MinMaxPayloadSize || opts.MaxPayloadSize > MaxMaxPayloadSize {
		return errors.NewValidationError(
			"maxPayloadSize", opts.MaxPayloadSize,
			fmt.Errorf("max payload size must be between %d and %d bytes, got %d", MinMaxPayloadSize, MaxMaxPayloadSize, opts.MaxPayloadSize),
		)
	}

	if opts.ChecksumOptions.Enable {
		if err := checksum.Validate(opts.ChecksumOptions); err != nil {
			return err
		}
	}

	if opts.CompressionOptions.Enable {
		if err := compression.Validate(opts.CompressionOptions); err != nil {
			return err
		}
	}

	return nil
}
