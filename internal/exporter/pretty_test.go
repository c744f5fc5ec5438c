package exporter

import (
	"errors"
	"strings"
	"testing"

	"goknife/internal/importer/xml"
	"goknife/internal/types"
)

func prettify(t *testing.T, input string) string {
	t.Helper()

	out, err := Prettify(xml.NewTokenizer([]byte(input)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestPrettifyNested(t *testing.T) {
	got := prettify(t, "<root><child>text</child></root>")
	want := "<root>\n" +
		"  <child>\n" +
		"    text\n" +
		"  </child>\n" +
		"</root>\n"

	if got != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
	}
}

func TestPrettifySelfClosing(t *testing.T) {
	got := prettify(t, "<a/>")

	if got != "<a/>\n" {
		t.Errorf("Expected single self-closing line, got %q", got)
	}
}

func TestPrettifyAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"KeepsOrder", `<a z="1" a="2"></a>`, "<a z=\"1\" a=\"2\">\n</a>\n"},
		{"RequotesSingle", `<a b='c'></a>`, "<a b=\"c\">\n</a>\n"},
		{"EscapesDoubleQuote", `<a b='say "hi"'></a>`, "<a b=\"say &quot;hi&quot;\">\n</a>\n"},
		{"SelfClosingWithAttrs", `<a b="c" d="e"/>`, "<a b=\"c\" d=\"e\"/>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prettify(t, tt.input)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPrettifyWhitespaceOnlyTextSuppressed(t *testing.T) {
	got := prettify(t, "<a>   \n\t </a>")

	if got != "<a>\n</a>\n" {
		t.Errorf("Expected no text line, got %q", got)
	}
}

func TestPrettifyCDATAPassThrough(t *testing.T) {
	got := prettify(t, "<a><![CDATA[<not><xml>]]></a>")
	want := "<a>\n" +
		"  <![CDATA[<not><xml>]]>\n" +
		"</a>\n"

	if got != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
	}
}

func TestPrettifyProlog(t *testing.T) {
	got := prettify(t, `<?xml version="1.0"?><!DOCTYPE note><note><!--remember--></note>`)
	want := "<?xml version=\"1.0\"?>\n" +
		"<!DOCTYPE note>\n" +
		"<note>\n" +
		"  <!-- remember -->\n" +
		"</note>\n"

	if got != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
	}
}

func TestPrettifyIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Minified", `<a><b c="d">x</b><e/></a>`},
		{"Prolog", `<?xml version="1.0"?><!DOCTYPE r><r>  <s>t</s> </r>`},
		{"CDATAAndComment", `<a><!-- hey --><![CDATA[raw <stuff>]]></a>`},
		{"SingleQuotes", `<a b='c "d"'></a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := prettify(t, tt.input)
			twice := prettify(t, once)

			if once != twice {
				t.Errorf("Formatting is not idempotent:\nonce:\n%s\ntwice:\n%s", once, twice)
			}
		})
	}
}

// Formatted output must tokenize to the same structure as the input, modulo
// suppressed whitespace-only text and attribute re-quoting.
func TestPrettifyRoundTrip(t *testing.T) {
	input := `<?xml version="1.0"?><a x='1'>  <b>hi</b><c/><![CDATA[<z>]]></a>`

	out := prettify(t, input)

	original, err := xml.NewTokenizer([]byte(input)).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	formatted, err := xml.NewTokenizer([]byte(out)).Tokenize()
	if err != nil {
		t.Fatalf("formatted output does not tokenize: %v", err)
	}

	structural := func(tokens []types.Token) []string {
		var kinds []string
		for _, token := range tokens {
			if token.Type == types.TokenText && strings.TrimSpace(token.Value) == "" {
				continue
			}
			kinds = append(kinds, token.Type.String()+":"+token.Name)
		}
		return kinds
	}

	a, b := structural(original), structural(formatted)
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Errorf("Structure changed across formatting:\n%v\n%v", a, b)
	}
}

func TestPrettifyDepthCorrectness(t *testing.T) {
	out := prettify(t, "<a><b><c>deep</c></b></a>")

	indents := map[string]int{
		"<a>":  0,
		"<b>":  1,
		"<c>":  2,
		"deep": 3,
		"</c>": 2,
		"</b>": 1,
		"</a>": 0,
	}

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		want, ok := indents[trimmed]
		if !ok {
			t.Fatalf("unexpected line %q", line)
		}
		if got := (len(line) - len(trimmed)) / len("  "); got != want {
			t.Errorf("Expected %q at depth %d, got %d", trimmed, want, got)
		}
	}
}

func TestPrettifyMismatchedCloseTag(t *testing.T) {
	_, err := Prettify(xml.NewTokenizer([]byte("<a><b></a>")))
	if err == nil {
		t.Fatal("Expected an error, got none")
	}

	var mismatch *MismatchedCloseTagError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected *MismatchedCloseTagError, got %T: %v", err, err)
	}

	if mismatch.Expected != "b" || mismatch.Found != "a" {
		t.Errorf("Expected b/a, got %s/%s", mismatch.Expected, mismatch.Found)
	}

	if mismatch.Offset != 6 {
		t.Errorf("Expected offset 6, got %d", mismatch.Offset)
	}
}

func TestPrettifyUnexpectedCloseTag(t *testing.T) {
	_, err := Prettify(xml.NewTokenizer([]byte("</a>")))
	if err == nil {
		t.Fatal("Expected an error, got none")
	}

	var unexpected *UnexpectedCloseTagError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Expected *UnexpectedCloseTagError, got %T: %v", err, err)
	}

	if unexpected.Name != "a" || unexpected.Offset != 0 {
		t.Errorf("Expected a at offset 0, got %s at %d", unexpected.Name, unexpected.Offset)
	}
}

func TestPrettifyUnclosedElements(t *testing.T) {
	_, err := Prettify(xml.NewTokenizer([]byte("<a><b>")))
	if err == nil {
		t.Fatal("Expected an error, got none")
	}

	var unclosed *UnclosedElementsError
	if !errors.As(err, &unclosed) {
		t.Fatalf("Expected *UnclosedElementsError, got %T: %v", err, err)
	}

	// Innermost first.
	if len(unclosed.Names) != 2 || unclosed.Names[0] != "b" || unclosed.Names[1] != "a" {
		t.Errorf("Expected [b a], got %v", unclosed.Names)
	}
}

func TestPrettifyTokenizeErrorPropagates(t *testing.T) {
	_, err := Prettify(xml.NewTokenizer([]byte("<a><!-- oops")))
	if err == nil {
		t.Fatal("Expected an error, got none")
	}

	var tokErr *xml.TokenizeError
	if !errors.As(err, &tokErr) {
		t.Fatalf("Expected *xml.TokenizeError, got %T: %v", err, err)
	}
}

func TestPrettifyEmptyInput(t *testing.T) {
	if got := prettify(t, ""); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}
