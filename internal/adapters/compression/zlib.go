package compression

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/iamNilotpal/adler32/pkg/adler32"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

// zlib level constants follow compress/flate.
const (
	ZlibFastestLevel uint8 = flate.BestSpeed
	ZlibDefaultLevel uint8 = 6
	ZlibBestLevel    uint8 = flate.BestCompression
)

const (
	zlibHeaderSize  = 2
	zlibTrailerSize = adler32.Size
	zlibDeflate     = 8
	zlibMaxWindow   = 7
	zlibPresetDict  = 0x20
)

// ZlibCompression writes and reads RFC 1950 streams. Decompress inflates the
// deflate body and checks the stream's Adler-32 trailer with the engine in
// pkg/adler32.
type ZlibCompression struct {
	level uint8
}

// NewZlibCompression returns a zlib codec. A zero level selects ZlibDefaultLevel.
func NewZlibCompression(level uint8) (*ZlibCompression, error) {
	if level == 0 {
		level = ZlibDefaultLevel
	}
	if level < ZlibFastestLevel || level > ZlibBestLevel {
		return nil, fmt.Errorf("zlib compression level must be between %d and %d, got %d", ZlibFastestLevel, ZlibBestLevel, level)
	}
	return &ZlibCompression{level: level}, nil
}

// Compress returns data wrapped in a zlib stream.
func (z *ZlibCompression) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, int(z.level))
	if err != nil {
		return nil, errors.NewOperationError(errors.ErrorCompression, "zlib writer", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, errors.NewOperationError(errors.ErrorCompression, "zlib write", err)
	}

	if err := w.Close(); err != nil {
		return nil, errors.NewOperationError(errors.ErrorCompression, "zlib close", err)
	}

	return buf.Bytes(), nil
}

// Decompress parses a zlib stream and returns its content once the Adler-32
// trailer has been verified.
//
// Returns:
//   - a format error for a bad header, preset dictionary or truncated trailer
//   - a compression error if the deflate body is corrupt
//   - a format error matching errors.ErrSizeExceeded once inflation passes limit
//   - a *errors.ChecksumError if the trailer does not match the content
func (z *ZlibCompression) Decompress(data []byte, limit uint32) ([]byte, error) {
	if len(data) < zlibHeaderSize+zlibTrailerSize {
		return nil, errors.NewOperationError(errors.ErrorFormat, "zlib header", io.ErrUnexpectedEOF)
	}

	cmf, flg := data[0], data[1]
	if cmf&0x0f != zlibDeflate || cmf>>4 > zlibMaxWindow {
		return nil, errors.NewOperationError(
			errors.ErrorFormat, "zlib header", fmt.Errorf("unsupported compression method %#02x", cmf),
		)
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, errors.NewOperationError(errors.ErrorFormat, "zlib header", fmt.Errorf("header check failed"))
	}
	if flg&zlibPresetDict != 0 {
		return nil, errors.NewOperationError(errors.ErrorFormat, "zlib header", fmt.Errorf("preset dictionary not supported"))
	}

	// bytes.Reader is an io.ByteReader, so the inflater consumes exactly the
	// deflate body and leaves the trailer in br.
	br := bytes.NewReader(data[zlibHeaderSize:])
	fr := flate.NewReader(br)
	defer fr.Close()

	out, err := io.ReadAll(io.LimitReader(fr, int64(limit)+1))
	if err != nil {
		return nil, errors.NewOperationError(errors.ErrorCompression, "zlib inflate", err)
	}
	if uint64(len(out)) > uint64(limit) {
		return nil, sizeExceeded("zlib", limit)
	}

	var trailer [zlibTrailerSize]byte
	if _, err := io.ReadFull(br, trailer[:]); err != nil {
		return nil, errors.NewOperationError(errors.ErrorFormat, "zlib trailer", io.ErrUnexpectedEOF)
	}

	digest := adler32.New()
	if err := digest.Update(out, 0, len(out)); err != nil {
		return nil, err
	}

	if expected := binary.BigEndian.Uint32(trailer[:]); digest.Sum32() != expected {
		return nil, errors.NewChecksumError("zlib trailer", expected, digest.Sum32())
	}

	return out, nil
}

// Level returns the zlib compression level.
func (z *ZlibCompression) Level() uint8 {
	return z.level
}

// Codec returns ZlibID.
func (z *ZlibCompression) Codec() uint8 {
	return ZlibID
}

// Close is a no-op; zlib writers are created per call.
func (z *ZlibCompression) Close() error {
	return nil
}
