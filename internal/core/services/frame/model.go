package frame

import (
	"bufio"
	"encoding/binary"
	"sync"

	"go.uber.org/zap"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/internal/core/ports"
)

// Header precedes every frame payload. It is written with binary.Write in
// little-endian order and is HeaderSize bytes long.
type Header struct {
	// Magic must equal the package Magic constant.
	Magic uint32

	// RawSize is the length of the payload before compression.
	RawSize uint32

	// PayloadSize is the number of payload bytes following the header.
	// It never exceeds RawSize: payloads that do not shrink are stored.
	PayloadSize uint32

	// Checksum is the Adler-32 of the raw payload when FlagChecksum is set.
	Checksum uint32

	// Version of the header layout.
	Version uint8

	// Codec is the compression codec id, compression.StoredID when the
	// payload is stored uncompressed.
	Codec uint8

	// Flags is a bit set of Flag* values.
	Flags uint8
}

// HeaderSize is the encoded size of Header.
var HeaderSize = binary.Size(Header{})

// Writer appends frames to an io.Writer.
type Writer struct {
	options *domain.FrameOptions

	checksum   ports.ChecksumPort    // Nil when checksums are disabled.
	compressor ports.CompressionPort // Nil when compression is disabled.

	w      *bufio.Writer
	log    *zap.SugaredLogger
	frames uint64
	closed bool
	err    error // First write failure; the writer rejects further frames.
	mu     sync.Mutex
}

// Reader reads frames written by Writer.
type Reader struct {
	options *domain.FrameOptions

	checksum ports.ChecksumPort
	decoders map[uint8]ports.CompressionPort // Created on first use per codec.

	r      *bufio.Reader
	log    *zap.SugaredLogger
	frames uint64
}
