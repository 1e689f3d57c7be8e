// Package compression provides the payload codecs used by frames: zstd for
// general purpose compression and zlib for RFC 1950 streams whose Adler-32
// trailer is verified on decompression.
package compression

import (
	stderrors "errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/iamNilotpal/adler32/pkg/errors"
)

type Options struct {
	Level              uint8
	EncoderConcurrency uint8
	DecoderConcurrency uint8

	// MaxDecodedSize caps decoder memory, rounded up to a power of two so
	// that any frame window the encoder picks for such a payload fits.
	// Zero leaves the decoder unbounded.
	MaxDecodedSize uint32
}

// ZstdCompression implements CompressionPort using the zstd compression algorithm.
// Compression and decompression are safe for concurrent use.
type ZstdCompression struct {
	level   uint8         // Current compression level (1-4)
	mu      sync.RWMutex  // Protects the encoder and decoder against Close.
	decoder *zstd.Decoder // Thread-safe decoder instance for decompression
	encoder *zstd.Encoder // Thread-safe encoder instance for compression
}

// zstd level constants map directly onto zstd.EncoderLevel.
const (
	ZstdFastestLevel uint8 = uint8(zstd.SpeedFastest)
	ZstdDefaultLevel uint8 = uint8(zstd.SpeedDefault)
	ZstdBestLevel    uint8 = uint8(zstd.SpeedBestCompression)
)

// NewZstdCompression creates a new zstd compression instance.
// A zero level selects ZstdDefaultLevel and zero concurrency lets zstd pick.
//
// Returns an error if:
// - The compression level is invalid
// - The encoder or decoder initialization fails
func NewZstdCompression(opts Options) (*ZstdCompression, error) {
	if opts.Level == 0 {
		opts.Level = ZstdDefaultLevel
	}
	if opts.Level < ZstdFastestLevel || opts.Level > ZstdBestLevel {
		return nil, fmt.Errorf("zstd compression level must be between %d and %d, got %d", ZstdFastestLevel, ZstdBestLevel, opts.Level)
	}

	encoderOpts := []zstd.EOption{zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level))}
	if opts.EncoderConcurrency > 0 {
		encoderOpts = append(encoderOpts, zstd.WithEncoderConcurrency(int(opts.EncoderConcurrency)))
	}

	encoder, err := zstd.NewWriter(nil, encoderOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	decoderOpts := []zstd.DOption{}
	if opts.DecoderConcurrency > 0 {
		decoderOpts = append(decoderOpts, zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)))
	}
	if opts.MaxDecodedSize > 0 {
		decoderOpts = append(decoderOpts, zstd.WithDecoderMaxMemory(decoderMemory(opts.MaxDecodedSize)))
	}

	decoder, err := zstd.NewReader(nil, decoderOpts...)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &ZstdCompression{encoder: encoder, decoder: decoder, level: opts.Level}, nil
}

// Compress returns data as a single zstd frame. Deciding whether the result
// is worth keeping is left to the caller.
func (z *ZstdCompression) Compress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	return z.encoder.EncodeAll(data, nil), nil
}

// Decompress restores the original data from its compressed form. A frame
// whose declared content size exceeds limit is rejected before decoding.
//
// Returns an error if the input data is not valid zstd compressed data or
// decodes to more than limit bytes.
func (z *ZstdCompression) Decompress(data []byte, limit uint32) ([]byte, error) {
	var header zstd.Header
	if err := header.Decode(data); err == nil && header.HasFCS && header.FrameContentSize > uint64(limit) {
		return nil, sizeExceeded("zstd", limit)
	}

	z.mu.RLock()
	defer z.mu.RUnlock()

	decompressed, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		if stderrors.Is(err, zstd.ErrDecoderSizeExceeded) || stderrors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, sizeExceeded("zstd", limit)
		}
		return nil, errors.NewOperationError(errors.ErrorCompression, "zstd decompress", err)
	}

	if uint64(len(decompressed)) > uint64(limit) {
		return nil, sizeExceeded("zstd", limit)
	}
	return decompressed, nil
}

func decoderMemory(size uint32) uint64 {
	if size <= zstd.MinWindowSize {
		return zstd.MinWindowSize
	}
	return 1 << bits.Len32(size-1)
}

// Level returns the current compression level.
func (z *ZstdCompression) Level() uint8 {
	return z.level
}

// Codec returns ZstdID.
func (z *ZstdCompression) Codec() uint8 {
	return ZstdID
}

// Close releases the encoder and decoder. The instance cannot be used afterwards.
func (z *ZstdCompression) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if err := z.encoder.Close(); err != nil {
		return fmt.Errorf("error closing encoder : %w", err)
	}

	z.decoder.Close()
	return nil
}
