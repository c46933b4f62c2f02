// Package flatdata provides a bounded, streaming ByteCursor over an
// io.Reader: a BlockBuffer holds only as many blocks as the cursors
// currently positioned across it require, evicting unreferenced
// blocks from the front whenever it needs to read another, and failing with
// CapacityUsed if honoring a read would need more memory than its
// configured capacity allows.
package flatdata

import (
	"io"

	"github.com/davewathen/precursor"
)

// block is one chunk of bytes read from the underlying reader.
// startIndex/endIndex are absolute byte offsets into the resource;
// cursorCount tracks how many live cursors currently sit somewhere in
// [startIndex, endIndex).
type block struct {
	startIndex  int
	endIndex    int
	data        []byte
	cursorCount int
}

// BlockBuffer reads an io.Reader in blockSize chunks on demand, never
// holding more than capacity bytes of blocks in memory at once. Each
// time another block must be read, the leading blocks that no cursor
// references are evicted first; a block still referenced by any cursor
// pins every block after it too, since eviction only ever removes a
// prefix.
type BlockBuffer struct {
	blockSize int
	capacity  int
	reader    io.Reader
	blocks    []*block
	endIndex  *int // nil until the underlying reader has been exhausted
}

// NewBlockBuffer creates a BlockBuffer reading from reader in chunks of
// blockSize bytes, never retaining more than capacity bytes of blocks
// at once. capacity should be a multiple of blockSize.
func NewBlockBuffer(reader io.Reader, blockSize, capacity int) *BlockBuffer {
	return &BlockBuffer{blockSize: blockSize, capacity: capacity, reader: reader}
}

// ensureByte makes sure index has been read from the underlying
// reader (reading further blocks if needed), returning the byte at
// index and true, or false if index lies at or beyond the end of the
// resource.
func (b *BlockBuffer) ensureByte(index int) (byte, bool, error) {
	for !b.indexHasBeenRead(index) && b.endIndex == nil {
		if err := b.readBlock(); err != nil {
			return 0, false, err
		}
	}
	if b.endIndex != nil && index >= *b.endIndex {
		return 0, false, nil
	}
	value, err := b.byteAt(index)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func (b *BlockBuffer) indexHasBeenRead(index int) bool {
	if len(b.blocks) == 0 {
		return false
	}
	return index < b.blocks[len(b.blocks)-1].endIndex
}

// readBlock evicts any blocks no cursor still references, then reads
// one more block, failing with CapacityUsed if no capacity remains
// to do so. If less than a full blockSize of capacity remains, it
// reads a correspondingly shorter block rather than failing outright.
func (b *BlockBuffer) readBlock() error {
	previouslyRead := 0
	if len(b.blocks) > 0 {
		previouslyRead = b.blocks[len(b.blocks)-1].endIndex
	}

	canDelete := true
	keep := b.blocks[:0]
	for _, blk := range b.blocks {
		canDelete = canDelete && blk.cursorCount == 0
		if !canDelete {
			keep = append(keep, blk)
		}
	}
	b.blocks = keep

	capacityUsed := 0
	for _, blk := range b.blocks {
		capacityUsed += blk.endIndex - blk.startIndex
	}
	if capacityUsed >= b.capacity {
		return precursor.NewError(precursor.CapacityUsed, "buffer capacity exhausted")
	}

	readSize := b.blockSize
	if remaining := b.capacity - capacityUsed; remaining < readSize {
		readSize = remaining
	}

	buf := make([]byte, readSize)
	read, err := b.reader.Read(buf)
	if err != nil && err != io.EOF {
		return precursor.WrapError(precursor.IO, "reading underlying resource", err)
	}

	if read == 0 {
		endIndex := previouslyRead
		b.endIndex = &endIndex
		return nil
	}

	b.blocks = append(b.blocks, &block{
		startIndex: previouslyRead,
		endIndex:   previouslyRead + read,
		data:       buf[:read],
	})
	return nil
}

func (b *BlockBuffer) byteAt(index int) (byte, error) {
	for _, blk := range b.blocks {
		if index >= blk.startIndex && index < blk.endIndex {
			return blk.data[index-blk.startIndex], nil
		}
	}
	return 0, precursor.NewError(precursor.ByteIndexUnavailable, "byte index no longer available")
}

func (b *BlockBuffer) addCursor(index int) error {
	for _, blk := range b.blocks {
		if index >= blk.startIndex && index < blk.endIndex {
			blk.cursorCount++
			return nil
		}
	}
	return precursor.NewError(precursor.ByteIndexUnavailable, "no block holds this index")
}

func (b *BlockBuffer) removeCursor(index int) error {
	for _, blk := range b.blocks {
		if index >= blk.startIndex && index < blk.endIndex {
			blk.cursorCount--
			return nil
		}
	}
	return precursor.NewError(precursor.ByteIndexUnavailable, "no block holds this index")
}

func (b *BlockBuffer) between(startIndex, endIndex int) ([]byte, error) {
	out := make([]byte, 0, endIndex-startIndex)
	for _, blk := range b.blocks {
		if startIndex >= blk.startIndex && startIndex < blk.endIndex {
			start := startIndex - blk.startIndex
			end := min(endIndex, blk.endIndex) - blk.startIndex
			out = append(out, blk.data[start:end]...)
		} else if startIndex < blk.startIndex && endIndex > blk.startIndex {
			end := min(endIndex, blk.endIndex) - blk.startIndex
			out = append(out, blk.data[:end]...)
		}
	}
	return out, nil
}
