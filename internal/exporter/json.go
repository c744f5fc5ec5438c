package exporter

import (
	"encoding/json"
	"fmt"

	"goknife/internal/types"
)

type TokenizerJSONOutput struct {
	Tokens []types.Token    `json:"tokens"`
	Stats  types.TokenStats `json:"stats"`
}

// TokensJSON dumps the full token sequence and its statistics as indented
// JSON on stdout.
func TokensJSON(tok types.TokenizerWithStats) error {
	tokens, err := tok.Tokenize()
	if err != nil {
		return err
	}

	output := TokenizerJSONOutput{
		Tokens: tokens,
		Stats:  tok.GetStats(),
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
