package flatdata

import (
	"io"

	"github.com/davewathen/precursor"
)

// StreamingByteCursor is a precursor.ByteCursor over a BlockBuffer. It
// is the bounded-memory counterpart to precursor.ByteArrayCursor: the
// underlying resource is read lazily and only as far ahead as some
// live cursor requires.
//
// Unlike ByteArrayCursor, a StreamingByteCursor holds a share of the
// buffer's bounded capacity for as long as it exists. Go has no
// deterministic destructor, so a cursor that is simply discarded
// without calling Close leaks its share of capacity until the whole
// buffer (and therefore every clone descended from it) is garbage
// collected; callers done with a cursor before its resource is fully
// consumed should call Close.
type StreamingByteCursor struct {
	buffer *BlockBuffer
	index  int
	isEnd  bool
	closed bool
}

// Open creates a StreamingByteCursor over reader, positioned at the
// first byte, or at the end of data if reader is empty. blockSize is
// the chunk size read from reader on demand; capacity is the maximum
// number of bytes of blocks held in memory at once and should be a
// multiple of blockSize.
func Open(reader io.Reader, blockSize, capacity int) (*StreamingByteCursor, error) {
	buffer := NewBlockBuffer(reader, blockSize, capacity)
	_, ok, err := buffer.ensureByte(0)
	if err != nil {
		return nil, err
	}
	cursor := &StreamingByteCursor{buffer: buffer}
	if !ok {
		cursor.isEnd = true
		return cursor, nil
	}
	if err := buffer.addCursor(0); err != nil {
		return nil, err
	}
	return cursor, nil
}

// CloneTyped returns an independent cursor at the same position, sharing
// the same underlying BlockBuffer and holding its own share of the
// buffer's capacity until it is advanced past or Closed.
func (c *StreamingByteCursor) CloneTyped() (*StreamingByteCursor, error) {
	if !c.isEnd {
		if err := c.buffer.addCursor(c.index); err != nil {
			return nil, err
		}
	}
	return &StreamingByteCursor{buffer: c.buffer, index: c.index, isEnd: c.isEnd}, nil
}

// Clone implements precursor.ByteCursor. It panics only if the
// underlying buffer has become internally inconsistent (a block this
// cursor's own position depends on was evicted while still live),
// which indicates a bug in BlockBuffer rather than a normal runtime
// condition; callers needing a non-panicking clone should call
// CloneTyped directly.
func (c *StreamingByteCursor) Clone() precursor.ByteCursor {
	clone, err := c.CloneTyped()
	if err != nil {
		panic(err)
	}
	return clone
}

// Close releases this cursor's hold on the buffer's capacity. It is
// safe to call more than once.
func (c *StreamingByteCursor) Close() error {
	if c.closed || c.isEnd {
		c.closed = true
		return nil
	}
	c.closed = true
	return c.buffer.removeCursor(c.index)
}

func (c *StreamingByteCursor) Advance() error {
	if c.isEnd {
		return precursor.ErrCannotAdvance
	}
	oldIndex := c.index
	width := 1
	newIndex := oldIndex + width

	_, ok, err := c.buffer.ensureByte(newIndex)
	if err != nil {
		return err
	}

	if err := c.buffer.removeCursor(oldIndex); err != nil {
		return err
	}
	if !ok {
		c.isEnd = true
		c.index = newIndex
		return nil
	}
	c.index = newIndex
	return c.buffer.addCursor(c.index)
}

func (c *StreamingByteCursor) AdvanceMany(howMany int) (int, error) {
	if c.isEnd {
		return 0, precursor.ErrCannotAdvance
	}
	advanced := 0
	for i := 0; i < howMany; i++ {
		if err := c.Advance(); err != nil {
			return advanced, err
		}
		advanced++
		if c.isEnd {
			break
		}
	}
	return advanced, nil
}

// AdvanceTo advances this cursor forward directly to other's position
// in a single step, rather than one byte at a time, since other's
// position has already caused every block up to it to be read.
func (c *StreamingByteCursor) AdvanceTo(otherCursor precursor.ByteCursor) error {
	other, ok := otherCursor.(*StreamingByteCursor)
	if !ok || other.buffer != c.buffer {
		return precursor.ErrIncompatible
	}
	cmp := compareStreaming(c, other)
	switch {
	case cmp == 0:
		return nil
	case cmp > 0:
		return precursor.ErrCannotAdvance
	}

	if !c.isEnd {
		if err := c.buffer.removeCursor(c.index); err != nil {
			return err
		}
	}
	c.index, c.isEnd = other.index, other.isEnd
	if !c.isEnd {
		return c.buffer.addCursor(c.index)
	}
	return nil
}

func (c *StreamingByteCursor) Token() precursor.ByteToken {
	if c.isEnd {
		return precursor.EndOfDataByteToken
	}
	value, ok, err := c.buffer.ensureByte(c.index)
	if err != nil || !ok {
		return precursor.EndOfDataByteToken
	}
	return precursor.ByteToken{Byte: value}
}

func (c *StreamingByteCursor) Index() int { return c.index }

// Between returns the bytes spanning from the lower of c and other up
// to (not including) the higher. other must be a *StreamingByteCursor
// over the same BlockBuffer.
func (c *StreamingByteCursor) Between(otherCursor precursor.ByteCursor) ([]byte, error) {
	other, ok := otherCursor.(*StreamingByteCursor)
	if !ok || other.buffer != c.buffer {
		return nil, precursor.ErrIncompatible
	}
	lo, hi := c, other
	if compareStreaming(c, other) > 0 {
		lo, hi = other, c
	}
	if lo.index == hi.index && lo.isEnd == hi.isEnd {
		return []byte{}, nil
	}
	return c.buffer.between(lo.index, hi.index)
}

func compareStreaming(a, b *StreamingByteCursor) int {
	switch {
	case a.isEnd && b.isEnd:
		return 0
	case a.isEnd:
		return 1
	case b.isEnd:
		return -1
	case a.index < b.index:
		return -1
	case a.index > b.index:
		return 1
	default:
		return 0
	}
}
