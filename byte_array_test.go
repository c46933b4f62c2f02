package precursor

import (
	"bytes"
	"testing"
)

func TestByteArrayCursor_EmptyIsEndOfDataImmediately(t *testing.T) {
	cursor := NewByteArrayCursor([]byte{})
	if !cursor.Token().IsEndOfData {
		t.Fatalf("expected end of data for empty resource")
	}
}

func TestByteArrayCursor_CanAdvanceThroughAResource(t *testing.T) {
	cursor := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})

	if cursor.Index() != 0 || cursor.Token().Byte != 0x00 {
		t.Fatalf("expected initial position at byte 0x00")
	}

	if err := cursor.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if cursor.Index() != 1 || cursor.Token().Byte != 0x01 {
		t.Fatalf("expected position 1 at byte 0x01")
	}

	if n, err := cursor.AdvanceMany(0); err != nil || n != 0 {
		t.Fatalf("AdvanceMany(0): n=%d err=%v", n, err)
	}
	if cursor.Index() != 1 || cursor.Token().Byte != 0x01 {
		t.Fatalf("AdvanceMany(0) should not move the cursor")
	}

	if n, err := cursor.AdvanceMany(3); err != nil || n != 3 {
		t.Fatalf("AdvanceMany(3): n=%d err=%v", n, err)
	}
	if cursor.Index() != 4 || cursor.Token().Byte != 0x04 {
		t.Fatalf("expected position 4 at byte 0x04")
	}

	if n, err := cursor.AdvanceMany(2); err != nil || n != 2 {
		t.Fatalf("AdvanceMany(2): n=%d err=%v", n, err)
	}
	if cursor.Index() != 6 || !cursor.Token().IsEndOfData {
		t.Fatalf("expected end of data at index 6")
	}
}

func TestByteArrayCursor_AdvancingManyReturnsWhatIsAvailable(t *testing.T) {
	cursor := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})

	n, err := cursor.AdvanceMany(10)
	if err != nil {
		t.Fatalf("AdvanceMany(10): %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 bytes advanced, got %d", n)
	}
	if cursor.Index() != 6 || !cursor.Token().IsEndOfData {
		t.Fatalf("expected end of data at index 6")
	}
}

func TestByteArrayCursor_AdvanceManyAtEndOfDataFails(t *testing.T) {
	cursor := NewByteArrayCursor([]byte{})
	if _, err := cursor.AdvanceMany(0); err == nil {
		t.Fatalf("expected CannotAdvance for AdvanceMany(0) at end of data")
	}
}

func TestByteArrayCursor_AdvancingToMakesCursorsEqual(t *testing.T) {
	cursor1 := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	cursor2 := cursor1.CloneTyped()

	if _, err := cursor2.AdvanceMany(3); err != nil {
		t.Fatalf("AdvanceMany: %v", err)
	}

	if err := cursor1.AdvanceTo(cursor2); err != nil {
		t.Fatalf("AdvanceTo: %v", err)
	}
	if cursor1.Index() != 3 || cursor1.Token().Byte != 0x03 {
		t.Fatalf("expected cursor1 to have advanced to index 3")
	}
}

func TestByteArrayCursor_CannotAdvanceToACursorOfADifferentResource(t *testing.T) {
	cursor1 := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	cursor2 := NewByteArrayCursor([]byte{0x06, 0x07, 0x08})

	if err := cursor2.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := cursor1.AdvanceTo(cursor2); err == nil {
		t.Fatalf("expected Incompatible error across distinct resources")
	}
}

func TestByteArrayCursor_CanObtainBytesBetween2Cursors(t *testing.T) {
	cursor1 := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	cursor2 := cursor1.CloneTyped()

	between, err := cursor1.Between(cursor2)
	if err != nil || len(between) != 0 {
		t.Fatalf("expected empty span at same position, got %v, err %v", between, err)
	}

	if _, err := cursor2.AdvanceMany(3); err != nil {
		t.Fatalf("AdvanceMany: %v", err)
	}
	between, err = cursor1.Between(cursor2)
	if err != nil || !bytes.Equal(between, []byte{0x00, 0x01, 0x02}) {
		t.Fatalf("expected [0x00 0x01 0x02], got %v, err %v", between, err)
	}
	between, err = cursor2.Between(cursor1)
	if err != nil || !bytes.Equal(between, []byte{0x00, 0x01, 0x02}) {
		t.Fatalf("expected [0x00 0x01 0x02] reversed, got %v, err %v", between, err)
	}

	if _, err := cursor1.AdvanceMany(6); err != nil {
		t.Fatalf("AdvanceMany: %v", err)
	}
	between, err = cursor1.Between(cursor2)
	if err != nil || !bytes.Equal(between, []byte{0x03, 0x04, 0x05}) {
		t.Fatalf("expected [0x03 0x04 0x05], got %v, err %v", between, err)
	}
}

func TestByteArrayCursor_CannotObtainBetween2CursorsOfDifferingResources(t *testing.T) {
	cursor1 := NewByteArrayCursor([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	cursor2 := NewByteArrayCursor([]byte{0x06, 0x07, 0x08})

	if _, err := cursor1.Between(cursor2); err == nil {
		t.Fatalf("expected Incompatible error")
	}
	if _, err := cursor2.Between(cursor1); err == nil {
		t.Fatalf("expected Incompatible error")
	}
}

func TestByteArrayCursor_StringBacking(t *testing.T) {
	cursor := NewByteArrayCursor("hello")
	if cursor.Token().Byte != 'h' {
		t.Fatalf("expected 'h', got %q", cursor.Token().Byte)
	}
	if _, err := cursor.AdvanceMany(5); err != nil {
		t.Fatalf("AdvanceMany: %v", err)
	}
	if !cursor.Token().IsEndOfData {
		t.Fatalf("expected end of data")
	}
}
