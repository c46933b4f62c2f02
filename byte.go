package precursor

// ByteToken is the value a ByteCursor currently points at: either a byte
// of the resource, or the sentinel for the end of data.
type ByteToken struct {
	// IsEndOfData reports whether this token represents the end of the
	// resource rather than a byte.
	IsEndOfData bool
	// Byte is only meaningful when IsEndOfData is false.
	Byte byte
}

// EndOfDataByteToken is the ByteToken returned once a cursor has no more
// bytes to offer.
var EndOfDataByteToken = ByteToken{IsEndOfData: true}

// ByteCursor represents a byte position in some resource. At creation
// the cursor points to the first byte, or to the end of data if the
// resource is empty. Advancing moves it to the next byte.
//
// A ByteCursor is cloned so that the same resource can be explored
// along multiple paths, subject to whatever constraints the
// implementation imposes — a flatdata.StreamingByteCursor, for
// instance, must keep its origin cursor from advancing past blocks a
// clone still needs.
type ByteCursor interface {
	// Clone returns an independent cursor at the same position over
	// the same resource.
	Clone() ByteCursor

	// Advance moves the cursor forward by one byte. Returns an *Error
	// with Kind CannotAdvance if the cursor is already at the end of
	// data.
	Advance() error

	// AdvanceMany moves the cursor forward by up to howMany bytes,
	// returning the number of bytes actually advanced. If the cursor is
	// already at the end of data this fails with CannotAdvance — even
	// when howMany is 0. If fewer than howMany bytes remain, the cursor
	// stops at the end of data and the short count is returned without
	// error.
	AdvanceMany(howMany int) (int, error)

	// AdvanceTo advances this cursor forward to other's position.
	// other must be a cursor over the same resource and must not lie
	// behind this cursor, otherwise Incompatible or CannotAdvance is
	// returned respectively.
	AdvanceTo(other ByteCursor) error

	// Token returns the token this cursor currently represents.
	Token() ByteToken

	// Index returns the zero-based index of this cursor's position in
	// the resource. At the end of data this is the resource's length.
	Index() int

	// Between returns the bytes spanning from the lower of this cursor
	// and other up to (not including) the higher. other must be a
	// cursor over the same resource, otherwise Incompatible is
	// returned.
	Between(other ByteCursor) ([]byte, error)
}
