package compression

import (
	"bytes"
	stdzlib "compress/zlib"
	stderrors "errors"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func testPayload() []byte {
	return bytes.Repeat([]byte("adler-32 protects zlib streams. "), 512)
}

func TestZstdRoundTrip(t *testing.T) {
	z, err := NewZstdCompression(Options{Level: ZstdFastestLevel})
	require.NoError(t, err)
	defer z.Close()

	payload := testPayload()
	compressed, err := z.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	decompressed, err := z.Decompress(compressed, uint32(len(payload)))
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
	require.Equal(t, ZstdID, z.Codec())
	require.Equal(t, ZstdFastestLevel, z.Level())
}

func TestZstdRejectsGarbage(t *testing.T) {
	z, err := NewZstdCompression(Options{})
	require.NoError(t, err)
	defer z.Close()

	_, err = z.Decompress([]byte("definitely not zstd"), 1024)
	require.Error(t, err)
	require.Equal(t, errors.ErrorCompression, errors.CategoryOf(err))
}

func TestZlibRoundTrip(t *testing.T) {
	z, err := NewZlibCompression(0)
	require.NoError(t, err)
	require.Equal(t, ZlibDefaultLevel, z.Level())

	payload := testPayload()
	compressed, err := z.Compress(payload)
	require.NoError(t, err)

	decompressed, err := z.Decompress(compressed, uint32(len(payload)))
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestZlibReadsStandardLibraryStreams(t *testing.T) {
	var buf bytes.Buffer
	w := stdzlib.NewWriter(&buf)
	_, err := w.Write([]byte("Wikipedia"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	stream := buf.Bytes()
	require.Equal(t, []byte{0x11, 0xe6, 0x03, 0x98}, stream[len(stream)-4:])

	z, err := NewZlibCompression(ZlibBestLevel)
	require.NoError(t, err)

	out, err := z.Decompress(stream, 9)
	require.NoError(t, err)
	require.Equal(t, []byte("Wikipedia"), out)
}

func TestZlibDetectsTrailerCorruption(t *testing.T) {
	z, err := NewZlibCompression(ZlibFastestLevel)
	require.NoError(t, err)

	compressed, err := z.Compress(testPayload())
	require.NoError(t, err)
	compressed[len(compressed)-1] ^= 0xff

	_, err = z.Decompress(compressed, uint32(len(testPayload())))
	require.True(t, errors.IsChecksumMismatch(err))
}

func TestZlibRejectsMalformedStreams(t *testing.T) {
	z, err := NewZlibCompression(0)
	require.NoError(t, err)

	compressed, err := z.Compress([]byte("short payload"))
	require.NoError(t, err)

	tests := map[string][]byte{
		"too short":         {0x78},
		"bad method":        append([]byte{0x79, 0x9c}, compressed[2:]...),
		"bad header check":  append([]byte{0x78, 0x9d}, compressed[2:]...),
		"preset dictionary": append([]byte{0x78, 0xbb}, compressed[2:]...),
		"missing trailer":   compressed[:len(compressed)-2],
	}

	for name, stream := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := z.Decompress(stream, 1024)
			require.Error(t, err)
			require.Equal(t, errors.ErrorFormat, errors.CategoryOf(err))
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(DefaultOptions()))
	require.NoError(t, Validate(&domain.CompressionOptions{Codec: Zlib, Level: 9}))
	require.NoError(t, Validate(&domain.CompressionOptions{Codec: Zstd}))

	err := Validate(&domain.CompressionOptions{Codec: Zstd, Level: 9})
	require.Equal(t, "level", errors.GetValidationError(err).Field)

	err = Validate(&domain.CompressionOptions{Codec: "lz4"})
	require.Equal(t, "codec", errors.GetValidationError(err).Field)
}

func TestNewAndForID(t *testing.T) {
	c, err := New(&domain.CompressionOptions{Codec: Zlib, Level: 3})
	require.NoError(t, err)
	require.Equal(t, ZlibID, c.Codec())
	require.NoError(t, c.Close())

	c, err = ForID(ZstdID, 0)
	require.NoError(t, err)
	require.Equal(t, ZstdID, c.Codec())
	require.NoError(t, c.Close())

	_, err = ForID(StoredID, 0)
	require.Error(t, err)
}

func TestDecompressHonoursLimit(t *testing.T) {
	payload := testPayload()

	zs, err := NewZstdCompression(Options{})
	require.NoError(t, err)
	defer zs.Close()

	zl, err := NewZlibCompression(0)
	require.NoError(t, err)

	for _, codec := range []interface {
		Compress([]byte) ([]byte, error)
		Decompress([]byte, uint32) ([]byte, error)
	}{zs, zl} {
		compressed, err := codec.Compress(payload)
		require.NoError(t, err)

		out, err := codec.Decompress(compressed, uint32(len(payload)))
		require.NoError(t, err)
		require.Equal(t, payload, out)

		_, err = codec.Decompress(compressed, uint32(len(payload)-1))
		require.Error(t, err)
		require.True(t, stderrors.Is(err, errors.ErrSizeExceeded))
		require.Equal(t, errors.ErrorFormat, errors.CategoryOf(err))
	}
}

func TestZstdMaxDecodedSizeBoundsStreams(t *testing.T) {
	// Streamed frames carry no content size, so only the decoder bound applies.
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(make([]byte, 16<<20))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var header zstd.Header
	require.NoError(t, header.Decode(buf.Bytes()))
	require.False(t, header.HasFCS)

	z, err := ForID(ZstdID, 1<<20)
	require.NoError(t, err)
	defer z.Close()

	_, err = z.Decompress(buf.Bytes(), 1<<20)
	require.True(t, stderrors.Is(err, errors.ErrSizeExceeded))
}

func TestDecoderMemory(t *testing.T) {
	require.Equal(t, uint64(zstd.MinWindowSize), decoderMemory(1))
	require.Equal(t, uint64(1<<20), decoderMemory(1<<20))
	require.Equal(t, uint64(1<<21), decoderMemory(1<<20+1))
}
