package ports

// Defines an interface for calculating and verifying one-shot data checksums.
type ChecksumPort interface {
	// Calculates the checksum of data, widened to 64 bits.
	Calculate(data []byte) uint64

	// Returns true if the checksum of data equals expected.
	Verify(data []byte, expected uint64) bool

	// Size returns the checksum width in bytes.
	Size() uint8

	// Name returns the algorithm name.
	Name() string
}

// DigestPort is an incremental checksum. Implementations keep a running
// state that is folded forward by Update and observed by Finalize.
type DigestPort interface {
	// Reset returns the digest to its initial state.
	Reset()

	// Update folds buf[offset:offset+length] into the running state.
	// Returns an error, leaving the state unchanged, if the window is not
	// inside buf.
	Update(buf []byte, offset, length int) error

	// Finalize returns the encoded checksum without consuming the state.
	Finalize() []byte

	// Sum32 returns the current checksum value.
	Sum32() uint32
}
