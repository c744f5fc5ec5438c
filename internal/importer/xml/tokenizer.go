package xml

// Permissive XML-like lexer: single pass, character-class dispatch with a few
// bytes of lookahead, no backtracking. It classifies structure only and never
// interprets content (entities pass through undecoded, whitespace is kept).

import (
	"bytes"
	"fmt"
	"strings"

	"goknife/internal/types"
)

// TokenizeError reports a malformed lexical construct and where it starts.
type TokenizeError struct {
	Offset int
	Reason string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at byte %d: %s", e.Offset, e.Reason)
}

type Tokenizer struct {
	input []byte
	pos   int
	done  bool
	Stats types.TokenStats
}

func NewTokenizer(input []byte) *Tokenizer {
	return &Tokenizer{
		input: input,
		Stats: types.TokenStats{
			TokensByType: make(map[types.TokenType]int),
			ElementNames: make(map[string]int),
			FileSize:     int64(len(input)),
		},
	}
}

// Next returns the next token. The stream ends with a single TokenEOF token;
// calling Next again keeps returning it.
func (t *Tokenizer) Next() (types.Token, error) {
	if t.pos >= len(t.input) {
		token := types.Token{Type: types.TokenEOF, Pos: t.pos}
		if !t.done {
			t.done = true
			t.record(token)
		}
		return token, nil
	}

	var token types.Token
	var err error

	if t.input[t.pos] == '<' {
		token, err = t.scanMarkup()
	} else {
		token = t.scanText()
	}
	if err != nil {
		return types.Token{}, err
	}

	t.record(token)
	return token, nil
}

// Tokenize collects the whole sequence, terminal TokenEOF included.
func (t *Tokenizer) Tokenize() ([]types.Token, error) {
	tokens := make([]types.Token, 0)

	for {
		token, err := t.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)

		if token.Type == types.TokenEOF {
			return tokens, nil
		}
	}
}

func (t *Tokenizer) GetStats() types.TokenStats {
	return t.Stats
}

func (t *Tokenizer) record(token types.Token) {
	t.Stats.TotalTokens++
	t.Stats.TokensByType[token.Type]++

	switch token.Type {
	case types.TokenOpenTag:
		t.Stats.ElementNames[token.Name]++
	case types.TokenText:
		t.Stats.TotalTextLength += len(token.Value)
	}
}

func (t *Tokenizer) scanMarkup() (types.Token, error) {
	rest := t.input[t.pos:]

	switch {
	case bytes.HasPrefix(rest, []byte("<!--")):
		return t.scanDelimited(types.TokenComment, "<!--", "-->", "unterminated comment")
	case bytes.HasPrefix(rest, []byte("<![CDATA[")):
		return t.scanDelimited(types.TokenCData, "<![CDATA[", "]]>", "unterminated CDATA section")
	case bytes.HasPrefix(rest, []byte("<!DOCTYPE")):
		return t.scanDoctype()
	case bytes.HasPrefix(rest, []byte("<?")):
		return t.scanProcInst()
	case bytes.HasPrefix(rest, []byte("</")):
		return t.scanCloseTag()
	case len(rest) > 1 && isNameStart(rest[1]):
		return t.scanOpenTag()
	case len(rest) == 1:
		return types.Token{}, &TokenizeError{Offset: t.pos, Reason: "unexpected end of input after '<'"}
	default:
		return types.Token{}, &TokenizeError{Offset: t.pos, Reason: "unexpected character after '<'"}
	}
}

// scanText accumulates raw character data up to the next '<' or end of input.
// Whitespace-only runs are kept; the formatter decides what to do with them.
func (t *Tokenizer) scanText() types.Token {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}

	text := string(t.input[start:t.pos])
	return types.Token{Type: types.TokenText, Pos: start, Raw: text, Value: text}
}

// scanDelimited handles the two fixed-delimiter constructs (comments and
// CDATA sections): everything between the markers is opaque payload.
func (t *Tokenizer) scanDelimited(typ types.TokenType, opener, closer, reason string) (types.Token, error) {
	start := t.pos
	body := t.pos + len(opener)

	end := bytes.Index(t.input[body:], []byte(closer))
	if end < 0 {
		return types.Token{}, &TokenizeError{Offset: start, Reason: reason}
	}
	t.pos = body + end + len(closer)

	return types.Token{
		Type:  typ,
		Pos:   start,
		Raw:   string(t.input[start:t.pos]),
		Value: string(t.input[body : body+end]),
	}, nil
}

// scanDoctype reads up to the first top-level '>'. Internal subsets in
// square brackets are skipped as opaque text; a '>' inside a quoted string
// within the subset is a documented limitation.
func (t *Tokenizer) scanDoctype() (types.Token, error) {
	start := t.pos
	t.pos += len("<!DOCTYPE")
	body := t.pos

	depth := 0
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				token := types.Token{
					Type:  types.TokenDoctype,
					Pos:   start,
					Value: string(t.input[body:t.pos]),
				}
				t.pos++
				token.Raw = string(t.input[start:t.pos])
				return token, nil
			}
		}
		t.pos++
	}

	return types.Token{}, &TokenizeError{Offset: start, Reason: "unterminated DOCTYPE declaration"}
}

func (t *Tokenizer) scanProcInst() (types.Token, error) {
	start := t.pos
	body := t.pos + len("<?")

	end := bytes.Index(t.input[body:], []byte("?>"))
	if end < 0 {
		return types.Token{}, &TokenizeError{Offset: start, Reason: "unterminated processing instruction"}
	}
	t.pos = body + end + len("?>")

	// Split at the first whitespace into target and content.
	inner := string(t.input[body : body+end])
	target := inner
	content := ""
	if i := strings.IndexAny(inner, " \t\r\n"); i >= 0 {
		target = inner[:i]
		content = strings.TrimSpace(inner[i+1:])
	}
	if target == "" {
		return types.Token{}, &TokenizeError{Offset: start, Reason: "processing instruction has no target"}
	}

	return types.Token{
		Type:  types.TokenProcInst,
		Pos:   start,
		Raw:   string(t.input[start:t.pos]),
		Name:  target,
		Value: content,
	}, nil
}

func (t *Tokenizer) scanCloseTag() (types.Token, error) {
	start := t.pos
	t.pos += len("</")

	name, err := t.scanName()
	if err != nil {
		return types.Token{}, err
	}

	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return types.Token{}, &TokenizeError{Offset: start, Reason: fmt.Sprintf("unexpected end of input in close tag </%s", name)}
	}
	if t.input[t.pos] != '>' {
		return types.Token{}, &TokenizeError{Offset: t.pos, Reason: fmt.Sprintf("malformed close tag </%s", name)}
	}
	t.pos++

	return types.Token{
		Type: types.TokenCloseTag,
		Pos:  start,
		Raw:  string(t.input[start:t.pos]),
		Name: name,
	}, nil
}

func (t *Tokenizer) scanOpenTag() (types.Token, error) {
	start := t.pos
	t.pos++ // consume '<'

	name, err := t.scanName()
	if err != nil {
		return types.Token{}, err
	}

	token := types.Token{Type: types.TokenOpenTag, Pos: start, Name: name}

	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return types.Token{}, &TokenizeError{Offset: start, Reason: fmt.Sprintf("unexpected end of input in tag <%s", name)}
		}

		switch t.input[t.pos] {
		case '>':
			t.pos++
			token.Raw = string(t.input[start:t.pos])
			return token, nil
		case '/':
			if t.pos+1 >= len(t.input) || t.input[t.pos+1] != '>' {
				return types.Token{}, &TokenizeError{Offset: t.pos, Reason: fmt.Sprintf("expected '>' after '/' in tag <%s", name)}
			}
			t.pos += 2
			token.SelfClosing = true
			token.Raw = string(t.input[start:t.pos])
			return token, nil
		default:
			attr, err := t.scanAttr()
			if err != nil {
				return types.Token{}, err
			}
			token.Attrs = append(token.Attrs, attr)
		}
	}
}

// scanAttr reads one name="value" pair. The value ends at the quote
// character that opened it; the opposite quote may appear unescaped inside.
func (t *Tokenizer) scanAttr() (types.Attr, error) {
	name, err := t.scanName()
	if err != nil {
		return types.Attr{}, err
	}

	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return types.Attr{}, &TokenizeError{Offset: t.pos, Reason: fmt.Sprintf("expected '=' after attribute %q", name)}
	}
	t.pos++

	t.skipWhitespace()
	if t.pos >= len(t.input) || (t.input[t.pos] != '"' && t.input[t.pos] != '\'') {
		return types.Attr{}, &TokenizeError{Offset: t.pos, Reason: fmt.Sprintf("expected quoted value for attribute %q", name)}
	}
	quote := t.input[t.pos]
	t.pos++

	valStart := t.pos
	end := bytes.IndexByte(t.input[valStart:], quote)
	if end < 0 {
		return types.Attr{}, &TokenizeError{Offset: valStart - 1, Reason: fmt.Sprintf("unterminated value for attribute %q", name)}
	}
	t.pos = valStart + end + 1

	return types.Attr{Name: name, Value: string(t.input[valStart : valStart+end])}, nil
}

func (t *Tokenizer) scanName() (string, error) {
	start := t.pos
	if t.pos >= len(t.input) || !isNameStart(t.input[t.pos]) {
		return "", &TokenizeError{Offset: t.pos, Reason: "expected a name"}
	}
	t.pos++

	for t.pos < len(t.input) && isNameByte(t.input[t.pos]) {
		t.pos++
	}

	return string(t.input[start:t.pos]), nil
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case ' ', '\t', '\r', '\n':
			t.pos++
		default:
			return
		}
	}
}

// Name characters are handled permissively: ASCII letters, digits, the XML
// punctuation set, and any multi-byte UTF-8 sequence.
func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == ':' || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}
