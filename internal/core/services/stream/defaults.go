package stream

import (
	"fmt"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

const (
	DefaultBufferSize = 32 * 1024        // 32KB
	MinBufferSize     = 512              // 512B
	MaxBufferSize     = 16 * 1024 * 1024 // 16MB
)

// DefaultOptions returns the options used when NewSummer is given nil.
func DefaultOptions() *domain.StreamOptions {
	return &domain.StreamOptions{BufferSize: DefaultBufferSize}
}

// Validate checks stream options after defaults have been applied.
func Validate(opts *domain.StreamOptions) error {
	if opts.BufferSize < MinBufferSize || opts.BufferSize > MaxBufferSize {
		return errors.NewValidationError(
			"bufferSize", opts.BufferSize,
			fmt.Errorf("buffer size must be between %d and %d bytes, got %d", MinBufferSize, MaxBufferSize, opts.BufferSize),
		)
	}
	return nil
}

func prepareDefaults(opts *domain.StreamOptions) *domain.StreamOptions {
	if opts == nil {
		return DefaultOptions()
	}
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}
	return opts
}
