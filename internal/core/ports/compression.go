package ports

// Defines the interface for compression operations.
// This allows frames to swap codecs without changing core logic.
type CompressionPort interface {
	// Compress reduces data size.
	// Returns compressed data and any error that occurred.
	Compress(data []byte) ([]byte, error)

	// Decompress restores original data. Decoding stops with an error
	// matching errors.ErrSizeExceeded once more than limit bytes would be
	// produced.
	Decompress(data []byte, limit uint32) ([]byte, error)

	// Close cleans up compression resources.
	Close() error

	// Level returns current compression level.
	Level() uint8

	// Codec returns the codec identifier written into frame headers.
	Codec() uint8
}
