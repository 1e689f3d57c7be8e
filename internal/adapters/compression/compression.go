package compression

import (
	"fmt"
	"runtime"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/internal/core/ports"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

const (
	// Zstd compresses payloads with Zstandard.
	Zstd domain.CompressionCodec = "zstd"

	// Zlib compresses payloads into RFC 1950 streams, which carry their
	// own Adler-32 trailer.
	Zlib domain.CompressionCodec = "zlib"
)

// Codec identifiers as stored in frame headers.
const (
	StoredID uint8 = iota
	ZstdID
	ZlibID
)

// Returns CompressionOptions struct initialized with
// recommended default values that provide a good balance between compression ratio
// and performance for most use cases.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Enable:             true,
		Codec:              Zstd,
		Level:              ZstdDefaultLevel,
		EncoderConcurrency: uint8(runtime.NumCPU()),
		DecoderConcurrency: uint8(runtime.NumCPU()),
	}
}

// Checks if the compression options are valid and returns an error if any option
// is outside acceptable bounds. A zero Level selects the codec's default and is
// always accepted.
func Validate(input *domain.CompressionOptions) error {
	switch input.Codec {
	case Zstd:
		if input.Level != 0 && (input.Level < ZstdFastestLevel || input.Level > ZstdBestLevel) {
			return errors.NewValidationError(
				"level", input.Level,
				fmt.Errorf("zstd compression level must be between %d and %d, got %d", ZstdFastestLevel, ZstdBestLevel, input.Level),
			)
		}
	case Zlib:
		if input.Level != 0 && (input.Level < ZlibFastestLevel || input.Level > ZlibBestLevel) {
			return errors.NewValidationError(
				"level", input.Level,
				fmt.Errorf("zlib compression level must be between %d and %d, got %d", ZlibFastestLevel, ZlibBestLevel, input.Level),
			)
		}
	default:
		return errors.NewValidationError("codec", input.Codec, fmt.Errorf("unsupported compression codec: %q", input.Codec))
	}

	if input.EncoderConcurrency > uint8(runtime.NumCPU()) {
		return errors.NewValidationError(
			"encoderConcurrency", input.EncoderConcurrency,
			fmt.Errorf("encoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.EncoderConcurrency),
		)
	}

	if input.DecoderConcurrency > uint8(runtime.NumCPU()) {
		return errors.NewValidationError(
			"decoderConcurrency", input.DecoderConcurrency,
			fmt.Errorf("decoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.DecoderConcurrency),
		)
	}

	return nil
}

// New builds the compressor selected by opts.
func New(opts *domain.CompressionOptions) (ports.CompressionPort, error) {
	if err := Validate(opts); err != nil {
		return nil, err
	}

	switch opts.Codec {
	case Zlib:
		return NewZlibCompression(opts.Level)
	default:
		return NewZstdCompression(
			Options{
				Level:              opts.Level,
				EncoderConcurrency: opts.EncoderConcurrency,
				DecoderConcurrency: opts.DecoderConcurrency,
			},
		)
	}
}

// ForID builds a decompressor able to read payloads written with the codec id.
// maxDecodedSize bounds the memory a single decode may use, 0 for no bound.
func ForID(id uint8, maxDecodedSize uint32) (ports.CompressionPort, error) {
	switch id {
	case ZstdID:
		return NewZstdCompression(Options{Level: ZstdDefaultLevel, MaxDecodedSize: maxDecodedSize})
	case ZlibID:
		return NewZlibCompression(ZlibDefaultLevel)
	default:
		return nil, fmt.Errorf("unknown compression codec id %d", id)
	}
}

func sizeExceeded(codec string, limit uint32) error {
	return errors.NewOperationError(
		errors.ErrorFormat, codec+" decompress",
		fmt.Errorf("%w: output exceeds %d bytes", errors.ErrSizeExceeded, limit),
	)
}
