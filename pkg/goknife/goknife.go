// Package goknife provides a public API for the goknife command line tools.
//
// This package provides functions to:
//   - Convert input between character encodings (ISO-8859-1, Windows-1252, UTF-8)
//   - Tokenize XML-like documents into a structural token stream
//   - Prettify XML with indentation and newlines
//   - Generate random UUIDs
//
// Example usage:
//
//	import "goknife/pkg/goknife"
//
//	data, _ := os.ReadFile("doc.xml")
//	utf8Data, _ := goknife.ConvertToUTF8(data, "iso-8859-1")
//	pretty, _ := goknife.PrettifyXML(utf8Data)
package goknife

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"goknife/internal/exporter"
	"goknife/internal/importer/xml"
	"goknife/internal/types"
)

// Type aliases for public API
type (
	// Token represents one classified lexical unit of the input
	Token = types.Token

	// TokenType represents the type of a token
	TokenType = types.TokenType

	// Attr represents a single attribute pair of an open tag
	Attr = types.Attr

	// TokenStats contains statistics about parsed tokens
	TokenStats = types.TokenStats

	// TokenStream is the pull interface all tokenizers implement
	TokenStream = types.TokenStream

	// Tokenizer is the interface for all tokenizers
	Tokenizer = types.Tokenizer

	// XMLTokenizer is the tokenizer for XML-like documents
	XMLTokenizer = xml.Tokenizer
)

// Token type constants
const (
	TokenOpenTag  = types.TokenOpenTag
	TokenCloseTag = types.TokenCloseTag
	TokenText     = types.TokenText
	TokenComment  = types.TokenComment
	TokenCData    = types.TokenCData
	TokenDoctype  = types.TokenDoctype
	TokenProcInst = types.TokenProcInst
	TokenEOF      = types.TokenEOF
)

// UTF-8 BOM (Byte Order Mark) sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripUTF8BOM removes the UTF-8 BOM if present at the beginning of the data
func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && bytes.Equal(data[:3], utf8BOM) {
		return data[3:]
	}
	return data
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// Supported encodings: "utf8", "iso-8859-1", "windows-1252"
// The UTF-8 BOM (Byte Order Mark) is automatically stripped if present.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding == "utf8" {
		return stripUTF8BOM(data), nil
	}

	var decoder *encoding.Decoder

	switch sourceEncoding {
	case "iso-8859-1":
		decoder = charmap.ISO8859_1.NewDecoder()
	case "windows-1252":
		decoder = charmap.Windows1252.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", sourceEncoding)
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}

	// Strip BOM if present after conversion
	return stripUTF8BOM(utf8Data), nil
}

// NewTokenizer creates a new tokenizer for XML-like data.
// The input should be UTF-8 encoded (use ConvertToUTF8 if needed).
func NewTokenizer(input []byte) *XMLTokenizer {
	return xml.NewTokenizer(input)
}

// PrettifyXML reformats a raw XML document with indentation and newlines,
// one structural unit per line.
func PrettifyXML(data []byte) (string, error) {
	return exporter.Prettify(xml.NewTokenizer(data))
}

// NewUUID returns a random (version 4) UUID in its canonical string form.
func NewUUID() string {
	return uuid.NewString()
}
