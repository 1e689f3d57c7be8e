// Package domain defines the core types and options shared by the checksum services.
package domain

import (
	"github.com/iamNilotpal/adler32/internal/core/ports"
)

// ChecksumAlgorithm represents supported checksum algorithms
type ChecksumAlgorithm string

// ChecksumOptions defines how frames are checksummed.
type ChecksumOptions struct {
	// Enable controls whether checksums are calculated and stored.
	// When false, frames are written without a checksum and are
	// never verified on read.
	//
	// Default: true
	Enable bool

	// Algorithm specifies which checksum algorithm to use.
	// Adler-32 is the only supported algorithm.
	Algorithm ChecksumAlgorithm

	// Custom allows using a custom ChecksumPort implementation.
	// If provided, it takes precedence over Algorithm. Only its low
	// 32 bits are stored.
	Custom ports.ChecksumPort

	// VerifyOnRead determines if checksums should be verified when frames are read.
	// Default: true
	VerifyOnRead bool

	// VerifyOnWrite recomputes the checksum of the compressed payload after
	// decompressing it once more before the frame is written. It catches
	// codec bugs at the cost of an extra decompression.
	// Default: false
	VerifyOnWrite bool
}

// Report describes the checksum of one input stream.
type Report struct {
	// Path is the file the checksum was computed from, or "-" for stdin.
	Path string `json:"path"`

	// Size is the number of bytes read.
	Size int64 `json:"size"`

	// Checksum is the Adler-32 value, (s2 << 16) | s1.
	Checksum uint32 `json:"checksum"`

	// Digest is the 4 byte little-endian encoding returned by Finalize.
	Digest []byte `json:"digest"`
}
