package precursor

import "fmt"

// Kind identifies the class of failure reported by an Error.
type Kind int

const (
	// CannotAdvance is returned when a cursor is asked to move past the
	// end of data, or past a cursor that lies behind it.
	CannotAdvance Kind = iota
	// Incompatible is returned when an operation is attempted between
	// two cursors (or a cursor and a buffer) that do not share the same
	// underlying resource.
	Incompatible
	// InvalidData is returned when bytes cannot be interpreted as the
	// expected encoding, such as malformed UTF-8.
	InvalidData
	// ByteIndexUnavailable is returned when a byte-level index is
	// requested for a position that has already been evicted from a
	// bounded buffer.
	ByteIndexUnavailable
	// CapacityUsed is returned when a bounded buffer cannot read enough
	// additional data to satisfy a request without exceeding its
	// configured capacity.
	CapacityUsed
	// IO wraps an error returned by an underlying io.Reader.
	IO
	// RegexUnsupported is returned when a regular expression uses a
	// construct the compiler does not implement.
	RegexUnsupported
	// RegexSyntax is returned when a regular expression cannot be
	// parsed.
	RegexSyntax
	// RegexCursor wraps a cursor error encountered while matching a
	// regular expression.
	RegexCursor
)

func (k Kind) String() string {
	switch k {
	case CannotAdvance:
		return "CannotAdvance"
	case Incompatible:
		return "Incompatible"
	case InvalidData:
		return "InvalidData"
	case ByteIndexUnavailable:
		return "ByteIndexUnavailable"
	case CapacityUsed:
		return "CapacityUsed"
	case IO:
		return "IO"
	case RegexUnsupported:
		return "Regex.Unsupported"
	case RegexSyntax:
		return "Regex.Syntax"
	case RegexCursor:
		return "Regex.Cursor"
	default:
		return "Unknown"
	}
}

// Error is the single error type used throughout precursor and flatdata.
// Every failure reported by this module, regardless of layer, is an
// *Error so that a caller can discriminate on Kind with errors.As once.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs an *Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError constructs an *Error with the given kind, wrapping cause.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ErrCannotAdvance is returned when a cursor cannot move as requested.
var ErrCannotAdvance = NewError(CannotAdvance, "cursor cannot advance")

// ErrIncompatible is returned when two cursors do not share a resource.
var ErrIncompatible = NewError(Incompatible, "cursors are not comparable")
