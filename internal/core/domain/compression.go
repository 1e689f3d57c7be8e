package domain

// CompressionCodec names a frame payload codec.
type CompressionCodec string

// CompressionOptions configures the compression behavior for frames.
// Compression settings affect both storage efficiency and system performance.
type CompressionOptions struct {
	// Enable toggles compression of frame payloads.
	// When false every payload is stored as is.
	Enable bool

	// Codec selects the compression algorithm, "zstd" or "zlib".
	// Default: zstd
	Codec CompressionCodec

	// Level defines the compression level when compression is enabled.
	// zstd accepts 1 (fastest) to 4 (best), zlib accepts 1 to 9.
	// If not specified, the codec's default level will be used.
	Level uint8

	// EncoderConcurrency specifies the number of concurrent zstd compression operations.
	// Must not exceed the number of CPU cores. Ignored by zlib.
	EncoderConcurrency uint8

	// DecoderConcurrency specifies the number of concurrent zstd decompression operations.
	// Must not exceed the number of CPU cores. Ignored by zlib.
	DecoderConcurrency uint8
}

// FrameOptions configures frame writers and readers.
type FrameOptions struct {
	// ChecksumOptions controls checksum calculation and verification.
	ChecksumOptions *ChecksumOptions

	// CompressionOptions controls payload compression.
	CompressionOptions *CompressionOptions

	// MaxPayloadSize bounds the raw size of a single frame.
	// Default: 4MB
	MaxPayloadSize uint32
}

// StreamOptions configures the stream summer.
type StreamOptions struct {
	// BufferSize is the size of each read from the input.
	// Must be between 512B and 16MB.
	//
	// Default: 32KB
	BufferSize uint32
}
