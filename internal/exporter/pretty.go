package exporter

import (
	"fmt"
	"strings"

	"goknife/internal/types"
)

// indentUnit is the fixed indentation step for one nesting level.
const indentUnit = "  "

// MismatchedCloseTagError reports a close tag whose name does not match the
// innermost open element.
type MismatchedCloseTagError struct {
	Offset   int
	Expected string
	Found    string
}

func (e *MismatchedCloseTagError) Error() string {
	return fmt.Sprintf("mismatched close tag at byte %d: expected </%s>, found </%s>", e.Offset, e.Expected, e.Found)
}

// UnexpectedCloseTagError reports a close tag with no element open.
type UnexpectedCloseTagError struct {
	Offset int
	Name   string
}

func (e *UnexpectedCloseTagError) Error() string {
	return fmt.Sprintf("unexpected close tag </%s> at byte %d: no element is open", e.Name, e.Offset)
}

// UnclosedElementsError reports elements still open at end of document,
// innermost first.
type UnclosedElementsError struct {
	Names []string
}

func (e *UnclosedElementsError) Error() string {
	return fmt.Sprintf("unclosed elements at end of document: %s", strings.Join(e.Names, ", "))
}

// Prettify consumes the token stream and renders one structural unit per
// line, indented by element nesting depth. Errors abort the run; no partial
// output is returned.
func Prettify(stream types.TokenStream) (string, error) {
	var out strings.Builder
	stack := make([]string, 0, 16)

	for {
		token, err := stream.Next()
		if err != nil {
			return "", err
		}

		switch token.Type {
		case types.TokenEOF:
			if len(stack) > 0 {
				names := make([]string, 0, len(stack))
				for i := len(stack) - 1; i >= 0; i-- {
					names = append(names, stack[i])
				}
				return "", &UnclosedElementsError{Names: names}
			}
			return out.String(), nil

		case types.TokenOpenTag:
			writeIndent(&out, len(stack))
			writeOpenTag(&out, token)
			out.WriteByte('\n')
			if !token.SelfClosing {
				stack = append(stack, token.Name)
			}

		case types.TokenCloseTag:
			if len(stack) == 0 {
				return "", &UnexpectedCloseTagError{Offset: token.Pos, Name: token.Name}
			}
			top := stack[len(stack)-1]
			if top != token.Name {
				return "", &MismatchedCloseTagError{Offset: token.Pos, Expected: top, Found: token.Name}
			}
			stack = stack[:len(stack)-1]

			writeIndent(&out, len(stack))
			out.WriteString("</")
			out.WriteString(token.Name)
			out.WriteString(">\n")

		case types.TokenText:
			// Whitespace between tags is formatting noise, not data; the
			// indentation itself replaces it.
			text := strings.TrimSpace(token.Value)
			if text == "" {
				continue
			}
			writeIndent(&out, len(stack))
			out.WriteString(text)
			out.WriteByte('\n')

		case types.TokenComment:
			writeIndent(&out, len(stack))
			out.WriteString("<!-- ")
			out.WriteString(strings.TrimSpace(token.Value))
			out.WriteString(" -->\n")

		case types.TokenCData:
			// CDATA payload is byte-exact, angle brackets included.
			writeIndent(&out, len(stack))
			out.WriteString("<![CDATA[")
			out.WriteString(token.Value)
			out.WriteString("]]>\n")

		case types.TokenDoctype:
			writeIndent(&out, len(stack))
			out.WriteString("<!DOCTYPE ")
			out.WriteString(strings.TrimSpace(token.Value))
			out.WriteString(">\n")

		case types.TokenProcInst:
			writeIndent(&out, len(stack))
			out.WriteString("<?")
			out.WriteString(token.Name)
			if token.Value != "" {
				out.WriteByte(' ')
				out.WriteString(token.Value)
			}
			out.WriteString("?>\n")
		}
	}
}

func writeIndent(out *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		out.WriteString(indentUnit)
	}
}

// writeOpenTag renders attributes in document order, re-quoted with double
// quotes; embedded double quotes become &quot;.
func writeOpenTag(out *strings.Builder, token types.Token) {
	out.WriteByte('<')
	out.WriteString(token.Name)

	for _, attr := range token.Attrs {
		out.WriteByte(' ')
		out.WriteString(attr.Name)
		out.WriteString(`="`)
		out.WriteString(strings.ReplaceAll(attr.Value, `"`, "&quot;"))
		out.WriteByte('"')
	}

	if token.SelfClosing {
		out.WriteByte('/')
	}
	out.WriteByte('>')
}
