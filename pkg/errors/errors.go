package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCategory classifies the failures that can occur while computing or
// verifying checksums. It lets callers decide how to report a failure
// without matching on error strings.
type ErrorCategory int

const (
	// ErrorRange indicates an offset/length pair that falls outside
	// the buffer handed to the checksum engine.
	ErrorRange ErrorCategory = iota + 1

	// ErrorChecksum indicates that a computed checksum does not match
	// the one stored alongside the data.
	ErrorChecksum

	// ErrorCompression indicates a failure while compressing or
	// decompressing a payload.
	ErrorCompression

	// ErrorStorage indicates errors from the underlying reader, writer
	// or filesystem.
	ErrorStorage

	// ErrorFormat indicates malformed container data such as a bad
	// magic number, unknown codec or truncated stream.
	ErrorFormat
)

var (
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("offset and length out of range")

	// ErrChecksumMismatch is matched by every *ChecksumError.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrSizeExceeded reports decoded data larger than the caller allowed.
	ErrSizeExceeded = errors.New("decoded size limit exceeded")
)

// String returns the string representation of the error category.
// This is useful for logging and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorRange:
		return "range"
	case ErrorChecksum:
		return "checksum"
	case ErrorCompression:
		return "compression"
	case ErrorStorage:
		return "storage"
	case ErrorFormat:
		return "format"
	default:
		return "unknown"
	}
}

// OutOfRangeError is returned when an update would read outside the
// supplied buffer. Offset and Length are the values the caller asked for,
// Size is the length of the buffer.
type OutOfRangeError struct {
	Offset int
	Length int
	Size   int
}

// NewOutOfRangeError creates a new OutOfRangeError instance.
func NewOutOfRangeError(offset, length, size int) *OutOfRangeError {
	return &OutOfRangeError{Offset: offset, Length: length, Size: size}
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"[%v] offset %d and length %d out of range for buffer of size %d", ErrorRange, e.Offset, e.Length, e.Size,
	)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IsOutOfRange checks if a given error is caused by an out of range update.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// ChecksumError reports data whose computed checksum differs from the expected one.
type ChecksumError struct {
	Expected  uint32
	Actual    uint32
	Operation string
	Category  ErrorCategory
}

// NewChecksumError creates a ChecksumError for the given operation.
func NewChecksumError(operation string, expected, actual uint32) *ChecksumError {
	return &ChecksumError{
		Actual:    actual,
		Expected:  expected,
		Operation: operation,
		Category:  ErrorChecksum,
	}
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("[%v] %s: expected %08x, got %08x", e.Category, e.Operation, e.Expected, e.Actual)
}

// Is reports whether target is ErrChecksumMismatch.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// IsChecksumMismatch checks if a given error is caused by a checksum mismatch.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

// OperationError attaches an operation name and category to an underlying error.
type OperationError struct {
	Err       error
	Operation string
	Category  ErrorCategory
}

// NewOperationError wraps err with the operation that failed.
func NewOperationError(category ErrorCategory, operation string, err error) *OperationError {
	return &OperationError{Err: err, Operation: operation, Category: category}
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("[%v] %s: %v", e.Category, e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// CategoryOf returns the category carried by err, or 0 when err does not
// carry one.
func CategoryOf(err error) ErrorCategory {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe.Category
	}

	var ce *ChecksumError
	if errors.As(err, &ce) {
		return ce.Category
	}

	if IsOutOfRange(err) {
		return ErrorRange
	}
	return 0
}

// IsRetryAble returns whether the operation that produced err may succeed
// when repeated. Missing files and permission failures are permanent.
func IsRetryAble(err error) bool {
	switch CategoryOf(err) {
	case ErrorStorage:
		return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
	default:
		return false
	}
}
