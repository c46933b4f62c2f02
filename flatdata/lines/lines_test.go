package lines_test

import (
	"strings"
	"testing"

	"github.com/davewathen/precursor/char"
	"github.com/davewathen/precursor/char/utf8"
	"github.com/davewathen/precursor/flatdata"
	"github.com/davewathen/precursor/flatdata/lines"
)

func readAll(t *testing.T, data string, le char.LineEndings) []lines.Line {
	t.Helper()
	bytes, err := flatdata.Open(strings.NewReader(data), 10, 20)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	reader := lines.NewLineReader(utf8.New(bytes, le))

	var got []lines.Line
	for {
		line, err := reader.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if line == nil {
			break
		}
		got = append(got, *line)
	}
	return got
}

func wantLines(t *testing.T, got []lines.Line, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("got %d lines %+v, want %d: %v", len(got), got, len(expected), expected)
	}
	for i, line := range got {
		if line.Text != expected[i] {
			t.Fatalf("line %d text = %q, want %q", i, line.Text, expected[i])
		}
		if line.LineNumber != i+1 {
			t.Fatalf("line %d number = %d, want %d", i, line.LineNumber, i+1)
		}
	}
}

func TestSmartLinesWithLFs(t *testing.T) {
	wantLines(t, readAll(t, "Line1\nLine2\nLine3", char.Smart), []string{"Line1", "Line2", "Line3"})
}

func TestSmartLinesWithCRs(t *testing.T) {
	wantLines(t, readAll(t, "Line1\rLine2\rLine3", char.Smart), []string{"Line1", "Line2", "Line3"})
}

func TestSmartLinesWithCRLFs(t *testing.T) {
	wantLines(t, readAll(t, "Line1\r\nLine2\r\nLine3", char.Smart), []string{"Line1", "Line2", "Line3"})
}

func TestExactLines(t *testing.T) {
	wantLines(t, readAll(t, "Line1\nLine2\rLine3", char.LF), []string{"Line1", "Line2\rLine3"})
}

func TestExactTwoCharLines(t *testing.T) {
	wantLines(t, readAll(t, "Line1~@Line2~@Line~3", char.TwoCharLineEnding('~', '@')), []string{"Line1", "Line2", "Line~3"})
}

func TestInitialBlankLine(t *testing.T) {
	wantLines(t, readAll(t, "\nLine2\nLine3", char.Smart), []string{"", "Line2", "Line3"})
}

func TestIntermediateBlankLine(t *testing.T) {
	wantLines(t, readAll(t, "Line1\n\nLine3", char.Smart), []string{"Line1", "", "Line3"})
}

func TestFinalBlankLine(t *testing.T) {
	wantLines(t, readAll(t, "Line1\nLine2\n", char.Smart), []string{"Line1", "Line2", ""})
}

func TestEmptyResourceHasNoLines(t *testing.T) {
	wantLines(t, readAll(t, "", char.Smart), nil)
}
