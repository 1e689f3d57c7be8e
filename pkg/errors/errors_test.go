package errors

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutOfRangeErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("update: %w", NewOutOfRangeError(4, 10, 8))

	require.True(t, IsOutOfRange(err))
	require.True(t, errors.Is(err, ErrOutOfRange))
	require.False(t, IsChecksumMismatch(err))
	require.Equal(t, ErrorRange, CategoryOf(err))
	require.Equal(t, "[range] offset 4 and length 10 out of range for buffer of size 8", errors.Unwrap(err).Error())
}

func TestChecksumErrorMatchesSentinel(t *testing.T) {
	err := NewChecksumError("frame read", 0x00620062, 0x00010001)

	require.True(t, IsChecksumMismatch(err))
	require.False(t, IsOutOfRange(err))
	require.Equal(t, ErrorChecksum, CategoryOf(err))
	require.Equal(t, "[checksum] frame read: expected 00620062, got 00010001", err.Error())
}

func TestOperationErrorUnwraps(t *testing.T) {
	err := NewOperationError(ErrorStorage, "read file", io.ErrUnexpectedEOF)

	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, ErrorStorage, CategoryOf(err))
	require.True(t, IsRetryAble(err))
	require.False(t, IsRetryAble(NewOperationError(ErrorFormat, "parse", io.EOF)))
	require.False(t, IsRetryAble(io.EOF))
	require.False(t, IsRetryAble(NewOperationError(ErrorStorage, "open", fs.ErrNotExist)))
	require.False(t, IsRetryAble(NewOperationError(ErrorStorage, "open", fs.ErrPermission)))
}

func TestErrorCategoryString(t *testing.T) {
	require.Equal(t, "compression", ErrorCompression.String())
	require.Equal(t, "format", ErrorFormat.String())
	require.Equal(t, "unknown", ErrorCategory(0).String())
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("invalid options: %w", NewValidationError("bufferSize", 3, errors.New("too small")))

	require.True(t, IsValidationError(err))
	ve := GetValidationError(err)
	require.NotNil(t, ve)
	require.Equal(t, "bufferSize", ve.Field)
	require.Equal(t, 3, ve.Value)
	require.Equal(t, "bufferSize: too small", ve.Error())

	require.Nil(t, GetValidationError(io.EOF))
}
