package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

/////////////////////////////////////////////////////////////////////////////
// TOKEN TYPE
/////////////////////////////////////////////////////////////////////////////

type TokenType int

const (
	TokenOpenTag TokenType = iota
	TokenCloseTag
	TokenText
	TokenComment
	TokenCData
	TokenDoctype
	TokenProcInst
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenOpenTag:
		return "TokenOpenTag"
	case TokenCloseTag:
		return "TokenCloseTag"
	case TokenText:
		return "TokenText"
	case TokenComment:
		return "TokenComment"
	case TokenCData:
		return "TokenCData"
	case TokenDoctype:
		return "TokenDoctype"
	case TokenProcInst:
		return "TokenProcInst"
	case TokenEOF:
		return "TokenEOF"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "TokenOpenTag":
		*t = TokenOpenTag
	case "TokenCloseTag":
		*t = TokenCloseTag
	case "TokenText":
		*t = TokenText
	case "TokenComment":
		*t = TokenComment
	case "TokenCData":
		*t = TokenCData
	case "TokenDoctype":
		*t = TokenDoctype
	case "TokenProcInst":
		*t = TokenProcInst
	case "TokenEOF":
		*t = TokenEOF
	default:
		return fmt.Errorf("unknown TokenType: %s", s)
	}

	return nil
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

// Attr is a single name="value" attribute pair, kept in document order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Token struct {
	Type        TokenType `json:"type"`
	Pos         int       `json:"pos"`
	Raw         string    `json:"raw,omitempty"`
	Name        string    `json:"name,omitempty"`
	Value       string    `json:"value,omitempty"`
	Attrs       []Attr    `json:"attrs,omitempty"`
	SelfClosing bool      `json:"self_closing,omitempty"`
}

func (t Token) String() string {
	switch t.Type {
	case TokenOpenTag:
		if t.SelfClosing {
			return "OPEN(self-closing): " + t.Name
		}
		return "OPEN: " + t.Name
	case TokenCloseTag:
		return "CLOSE: " + t.Name
	case TokenText:
		return "TEXT: " + t.Value
	case TokenComment:
		return "COMMENT: " + strings.TrimSpace(t.Value)
	case TokenCData:
		return "CDATA: " + t.Value
	case TokenDoctype:
		return "DOCTYPE: " + strings.TrimSpace(t.Value)
	case TokenProcInst:
		return "PI: " + t.Name
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN STATS
/////////////////////////////////////////////////////////////////////////////

type TokenStats struct {
	TotalTokens     int               `json:"total_tokens"`
	TokensByType    map[TokenType]int `json:"tokens_by_type"`
	ElementNames    map[string]int    `json:"element_names"`
	TotalTextLength int               `json:"total_text_length"`
	FileSize        int64             `json:"file_size"`
}
