package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/pkg/errors"
)

func TestAdler32Adapter(t *testing.T) {
	summer, err := NewCheckSummer(Adler32)
	require.NoError(t, err)

	require.Equal(t, "adler32", summer.Name())
	require.Equal(t, uint8(4), summer.Size())
	require.Equal(t, uint64(0x11e60398), summer.Calculate([]byte("Wikipedia")))
	require.True(t, summer.Verify([]byte("Wikipedia"), 0x11e60398))
	require.False(t, summer.Verify([]byte("wikipedia"), 0x11e60398))
}

func TestNewDigestMatchesOneShot(t *testing.T) {
	digest, err := NewDigest(Adler32)
	require.NoError(t, err)

	data := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, digest.Update(data, 0, 10))
	require.NoError(t, digest.Update(data, 10, len(data)-10))
	require.Equal(t, uint32(NewAdler32().Calculate(data)), digest.Sum32())

	digest.Reset()
	require.Equal(t, []byte{1, 0, 0, 0}, digest.Finalize())
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := NewCheckSummer("crc32-ieee")
	require.Error(t, err)

	_, err = NewDigest("sha256")
	require.Error(t, err)

	err = Validate(&domain.ChecksumOptions{Enable: true, Algorithm: "crc64-iso"})
	require.True(t, errors.IsValidationError(err))
	require.Equal(t, "algorithm", errors.GetValidationError(err).Field)
}

func TestValidateAcceptsCustom(t *testing.T) {
	require.NoError(t, Validate(DefaultOptions()))
	require.NoError(t, Validate(&domain.ChecksumOptions{Algorithm: "anything", Custom: NewAdler32()}))
}
