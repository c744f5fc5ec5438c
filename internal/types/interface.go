package types

// TokenStream yields one token per call, terminated by a TokenEOF token.
// A stream is single-use; restart by building a new one on fresh input.
type TokenStream interface {
	Next() (Token, error)
}

type Tokenizer interface {
	TokenStream
	Tokenize() ([]Token, error)
}

// Tokenizer with statistics
type TokenizerWithStats interface {
	Tokenizer
	GetStats() TokenStats
}
