package goknife

import (
	"strings"
	"testing"
)

func TestPrettifyXML_Simple(t *testing.T) {
	got, err := PrettifyXML([]byte("<root><child>text</child></root>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "<root>\n  <child>\n    text\n  </child>\n</root>\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConvertToUTF8_StripsBOM(t *testing.T) {
	input := []byte{0xEF, 0xBB, 0xBF, '<', 'a', '/', '>'}
	got, err := ConvertToUTF8(input, "utf8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(got) != "<a/>" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
}

func TestConvertToUTF8_Latin1(t *testing.T) {
	// 0xE9 is 'é' in ISO-8859-1.
	input := []byte{'<', 'a', '>', 0xE9, '<', '/', 'a', '>'}
	got, err := ConvertToUTF8(input, "iso-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(got) != "<a>é</a>" {
		t.Fatalf("expected decoded é, got %q", got)
	}
}

func TestConvertToUTF8_UnsupportedEncoding(t *testing.T) {
	if _, err := ConvertToUTF8([]byte("x"), "cp1047"); err == nil {
		t.Fatal("expected an error for unsupported encoding")
	}
}

func TestNewUUID(t *testing.T) {
	id := NewUUID()

	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Fatalf("expected canonical UUID form, got %q", id)
	}

	// Version nibble of a random UUID.
	if id[14] != '4' {
		t.Fatalf("expected a version 4 UUID, got %q", id)
	}
}
