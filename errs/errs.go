// Package errs defines the sentinel errors returned by the codec core.
//
// Errors the core returns for the conditions listed here wrap one of these
// sentinels, either via fmt.Errorf's %w verb or via CodecError, so callers
// can use errors.Is against the sentinels defined here regardless of the
// contextual detail attached at the call site. Errors for a value of the
// wrong Go type passed to a codec (e.g. WriteMany) carry no sentinel.
package errs

import "errors"

var (
	// ErrInsufficientData is returned when the cursor is exhausted before the
	// requested width or length could be read.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrVarintOverflow is returned when a varint's accumulated shift reaches
	// 64 bits without encountering a terminator byte.
	ErrVarintOverflow = errors.New("varint overflow")

	// ErrStringTooLong is returned when a string's varint-encoded length
	// exceeds the implementation's maximum value-slot length.
	ErrStringTooLong = errors.New("string length exceeds maximum")

	// ErrInvalidUtf8 is returned when a byte slice claimed as a string is not
	// valid UTF-8.
	ErrInvalidUtf8 = errors.New("invalid utf-8")

	// ErrHeaderMismatch is returned when a Native header's column or row
	// count disagrees with the caller's expectation.
	ErrHeaderMismatch = errors.New("native header mismatch")

	// ErrNameMismatch is returned when a Native column name differs from the
	// expected descriptor's name at the same index.
	ErrNameMismatch = errors.New("native column name mismatch")

	// ErrTypeNameMismatch is returned, when strict type-name checking is
	// enabled, when a Native column's wire type name differs from the
	// expected descriptor's wire type name.
	ErrTypeNameMismatch = errors.New("native column type name mismatch")

	// ErrBadOffsets is returned when a Native array's offsets vector is
	// non-monotonic or overflows the addressable element count.
	ErrBadOffsets = errors.New("bad array offsets")

	// ErrColumnCountMismatch is returned when a Block is constructed from a
	// descriptor list and a column-data list of different lengths.
	ErrColumnCountMismatch = errors.New("column count mismatch")

	// ErrUnknownType is returned when a wire type name does not map to any
	// registered element codec.
	ErrUnknownType = errors.New("unknown type")

	// ErrOutOfRange is returned when a row or column index is outside a
	// Block's bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownColumn is returned when a column name does not exist in a
	// Block.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumnName is returned when a Block is constructed with
	// two columns sharing the same name.
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrEmptyColumnName is returned when a ColumnDescriptor is constructed
	// with an empty name.
	ErrEmptyColumnName = errors.New("empty column name")

	// ErrInvalidTypeName is returned when a wire type-name string does not
	// parse under the grammar of §6.
	ErrInvalidTypeName = errors.New("invalid type name")

	// ErrEmptyTypeName is returned when Registry.Register is asked to
	// register a type under an empty name.
	ErrEmptyTypeName = errors.New("empty type name")

	// ErrTypeAlreadyRegistered is returned when Registry.Register is asked
	// to register the same type name twice.
	ErrTypeAlreadyRegistered = errors.New("type already registered")

	// ErrTypeNameCollision is returned when two distinct type names hash to
	// the same Registry bucket and the collision cannot be resolved
	// automatically.
	ErrTypeNameCollision = errors.New("type name hash collision")
)

// CodecError wraps a sentinel error with the byte offset at which the codec
// detected the failure, so a calling transport can correlate the failure
// back to a position in the original byte stream.
type CodecError struct {
	Err    error
	Offset int64
}

func (e *CodecError) Error() string {
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// At wraps err with the byte offset at which it was detected.
func At(offset int64, err error) error {
	if err == nil {
		return nil
	}

	return &CodecError{Err: err, Offset: offset}
}
