package stream

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/adler32"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func newTestSummer(t *testing.T, bufferSize uint32) *Summer {
	t.Helper()
	s, err := NewSummer(&domain.StreamOptions{BufferSize: bufferSize}, nil)
	require.NoError(t, err)
	return s
}

func TestSumMatchesOneShot(t *testing.T) {
	data := make([]byte, 3*MinBufferSize+17)
	rand.New(rand.NewSource(7)).Read(data)

	for _, size := range []uint32{MinBufferSize, DefaultBufferSize} {
		s := newTestSummer(t, size)

		report, err := s.Sum(context.Background(), bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, int64(len(data)), report.Size)
		require.Equal(t, adler32.Checksum(data), report.Checksum)
		require.Len(t, report.Digest, adler32.Size)
		require.Empty(t, report.Path)
	}
}

func TestSumShortReads(t *testing.T) {
	data := bytes.Repeat([]byte("Wikipedia"), 1000)
	s := newTestSummer(t, MinBufferSize)

	report, err := s.Sum(context.Background(), iotest.OneByteReader(bytes.NewReader(data)))
	require.NoError(t, err)
	require.Equal(t, adler32.Checksum(data), report.Checksum)
}

func TestSumEmpty(t *testing.T) {
	s := newTestSummer(t, 0)

	report, err := s.Sum(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)
	require.Zero(t, report.Size)
	require.Equal(t, uint32(1), report.Checksum)
	require.Equal(t, []byte{1, 0, 0, 0}, report.Digest)
}

func TestSumReadError(t *testing.T) {
	s := newTestSummer(t, 0)

	_, err := s.Sum(context.Background(), iotest.ErrReader(io.ErrClosedPipe))
	require.Error(t, err)
	require.True(t, errors.IsRetryAble(err))
	require.True(t, stderrors.Is(err, io.ErrClosedPipe))
}

func TestSumCancelled(t *testing.T) {
	s := newTestSummer(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sum(ctx, bytes.NewReader([]byte("abc")))
	require.Equal(t, context.Canceled, err)
}

func TestSumFileAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("Wikipedia"), 0o644))

	s := newTestSummer(t, 0)
	report, err := s.SumFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, report.Path)
	require.Equal(t, uint32(0x11e60398), report.Checksum)
	require.Equal(t, []byte{0x98, 0x03, 0xe6, 0x11}, report.Digest)

	require.NoError(t, s.VerifyFile(context.Background(), path, 0x11e60398))

	err = s.VerifyFile(context.Background(), path, 0x11e60399)
	require.True(t, errors.IsChecksumMismatch(err))
}

func TestSumFileMissing(t *testing.T) {
	s := newTestSummer(t, 0)

	_, err := s.SumFile(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Equal(t, errors.ErrorStorage, errors.CategoryOf(err))
	require.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestValidate(t *testing.T) {
	for _, size := range []uint32{MinBufferSize - 1, MaxBufferSize + 1} {
		_, err := NewSummer(&domain.StreamOptions{BufferSize: size}, nil)
		require.True(t, errors.IsValidationError(err))
	}

	s, err := NewSummer(nil, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultBufferSize, s.buffers.Size())
}

// Serves the i-th reader on the i-th open, repeating the last one.
type scriptedOpener struct {
	readers []func() io.Reader
	opens   int
}

func (o *scriptedOpener) open(string) (io.ReadCloser, error) {
	i := o.opens
	if i >= len(o.readers) {
		i = len(o.readers) - 1
	}
	o.opens++
	return io.NopCloser(o.readers[i]()), nil
}

func TestSumFileRetriesTransientReadErrors(t *testing.T) {
	data := []byte("Wikipedia")
	failing := func() io.Reader { return iotest.ErrReader(io.ErrUnexpectedEOF) }
	healthy := func() io.Reader { return bytes.NewReader(data) }

	s := newTestSummer(t, 0)
	opener := &scriptedOpener{readers: []func() io.Reader{failing, healthy}}
	s.open = opener.open

	report, err := s.SumFile(context.Background(), "flaky.bin")
	require.NoError(t, err)
	require.Equal(t, 2, opener.opens)
	require.Equal(t, "flaky.bin", report.Path)
	require.Equal(t, adler32.Checksum(data), report.Checksum)

	opener = &scriptedOpener{readers: []func() io.Reader{failing}}
	s.open = opener.open

	_, err = s.SumFile(context.Background(), "broken.bin")
	require.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, FileAttempts, opener.opens)
}

func TestSumFileDoesNotRetryPermanentErrors(t *testing.T) {
	s := newTestSummer(t, 0)

	opens := 0
	s.open = func(path string) (io.ReadCloser, error) {
		opens++
		return nil, fs.ErrNotExist
	}

	_, err := s.SumFile(context.Background(), "missing.bin")
	require.True(t, stderrors.Is(err, fs.ErrNotExist))
	require.False(t, errors.IsRetryAble(err))
	require.Equal(t, 1, opens)
}
