package precursor

import (
	"unsafe"

	"github.com/clipperhouse/stringish"
)

// ByteArrayCursor is a ByteCursor over an in-memory resource, generic
// over stringish.Interface so the same implementation serves both
// []byte and string backing without a copy.
type ByteArrayCursor[T stringish.Interface] struct {
	origin *T
	offset int
}

// NewByteArrayCursor creates a ByteArrayCursor over data, positioned at
// its first byte (or the end of data if data is empty).
func NewByteArrayCursor[T stringish.Interface](data T) *ByteArrayCursor[T] {
	return &ByteArrayCursor[T]{origin: &data}
}

// CloneTyped returns an independent cursor at the same position over
// the same resource, preserving the concrete ByteArrayCursor[T] type.
func (c *ByteArrayCursor[T]) CloneTyped() *ByteArrayCursor[T] {
	clone := *c
	return &clone
}

// Clone implements precursor.ByteCursor.
func (c *ByteArrayCursor[T]) Clone() ByteCursor {
	return c.CloneTyped()
}

func (c *ByteArrayCursor[T]) data() T { return *c.origin }

func (c *ByteArrayCursor[T]) isEndOfData(offset int) bool {
	return offset >= len(c.data())
}

// sameResource reports whether other is a cursor over the very same
// backing data as c: the same address of the first byte and the same
// length. Cursors created separately over one string or slice (or over
// aliases of the same memory) are therefore one resource, while equal
// contents held in distinct memory are not.
func (c *ByteArrayCursor[T]) sameResource(other *ByteArrayCursor[T]) bool {
	if len(c.data()) != len(other.data()) {
		return false
	}
	// String and slice headers both begin with the address of the first byte.
	return *(*unsafe.Pointer)(unsafe.Pointer(c.origin)) == *(*unsafe.Pointer)(unsafe.Pointer(other.origin))
}

func (c *ByteArrayCursor[T]) Advance() error {
	if c.isEndOfData(c.offset) {
		return ErrCannotAdvance
	}
	c.offset++
	return nil
}

func (c *ByteArrayCursor[T]) AdvanceMany(howMany int) (int, error) {
	if c.isEndOfData(c.offset) {
		return 0, ErrCannotAdvance
	}
	advanced := 0
	for i := 0; i < howMany; i++ {
		if err := c.Advance(); err != nil {
			return advanced, err
		}
		advanced++
		if c.isEndOfData(c.offset) {
			break
		}
	}
	return advanced, nil
}

func (c *ByteArrayCursor[T]) AdvanceTo(other ByteCursor) error {
	o, ok := other.(*ByteArrayCursor[T])
	if !ok || !c.sameResource(o) {
		return ErrIncompatible
	}
	switch {
	case c.offset == o.offset:
		return nil
	case c.offset > o.offset:
		return ErrCannotAdvance
	default:
		c.offset = o.offset
		return nil
	}
}

func (c *ByteArrayCursor[T]) Token() ByteToken {
	if c.isEndOfData(c.offset) {
		return EndOfDataByteToken
	}
	return ByteToken{Byte: c.data()[c.offset]}
}

func (c *ByteArrayCursor[T]) Index() int { return c.offset }

func (c *ByteArrayCursor[T]) Between(other ByteCursor) ([]byte, error) {
	o, ok := other.(*ByteArrayCursor[T])
	if !ok || !c.sameResource(o) {
		return nil, ErrIncompatible
	}
	lo, hi := c.offset, o.offset
	if lo > hi {
		lo, hi = hi, lo
	}
	return []byte(c.data()[lo:hi]), nil
}
