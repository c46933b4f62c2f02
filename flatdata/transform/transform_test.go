package transform_test

import (
	"testing"

	"github.com/davewathen/precursor/flatdata/transform"
)

func TestLower(t *testing.T) {
	got := transform.Lower("HELLO World")
	if got != "hello world" {
		t.Errorf("Lower = %q, want %q", got, "hello world")
	}
}

func TestUpper(t *testing.T) {
	got := transform.Upper("hello World")
	if got != "HELLO WORLD" {
		t.Errorf("Upper = %q, want %q", got, "HELLO WORLD")
	}
}

func TestDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"café", "cafe"},
		{"façade", "facade"},
		{"açaí", "acai"},
		{"hello", "hello"},
	}

	for _, test := range tests {
		got := transform.Diacritics(test.input)
		if got != test.expected {
			t.Errorf("Diacritics(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestNFCRoundTrip(t *testing.T) {
	decomposed := transform.NFD("café")
	recomposed := transform.NFC(decomposed)
	if recomposed != "café" {
		t.Errorf("NFC(NFD(%q)) = %q, want %q", "café", recomposed, "café")
	}
}

func TestNFKCCompatibilityForm(t *testing.T) {
	got := transform.NFKC("ﬁ") // "ﬁ" ligature
	if got != "fi" {
		t.Errorf("NFKC(ligature) = %q, want %q", got, "fi")
	}
}
