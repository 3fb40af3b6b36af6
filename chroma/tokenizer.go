// Package chroma provides language detection and syntax highlighting
// using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to themepatch styles.
type StyleFunc func(chromalib.TokenType) themepatch.Style

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a chroma-based tokenizer with the given style function.
// Use StyleFromPalette to create a style function from a themepatch.Palette.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// Tokenize splits a file into syntax-highlighted tokens for the given
// language. Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []themepatch.Token {
	if source == "" {
		return []themepatch.Token{}
	}
	return t.tokenize(language, source)
}

// TokenizeLines tokenizes a whole file, then splits tokens at newlines so
// that multi-line comments and strings keep their style. The result has one
// entry per "\n"-separated line of source, empty lines included.
// Returns nil if the language is not supported or an error occurs.
func (t *Tokenizer) TokenizeLines(language, source string) [][]themepatch.Token {
	if source == "" {
		return [][]themepatch.Token{nil}
	}
	tokens := t.tokenize(language, source)
	if tokens == nil {
		return nil
	}
	return splitLines(tokens)
}

func (t *Tokenizer) tokenize(language, source string) []themepatch.Token {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	iterator, err := chromalib.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil
	}
	var tokens []themepatch.Token
	for tok := iterator(); tok != chromalib.EOF; tok = iterator() {
		tokens = append(tokens, themepatch.Token{Text: tok.Value, Style: t.styleFunc(tok.Type)})
	}
	return tokens
}

func splitLines(tokens []themepatch.Token) [][]themepatch.Token {
	lines := [][]themepatch.Token{nil}
	for _, tok := range tokens {
		for i, part := range strings.Split(tok.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], themepatch.Token{Text: part, Style: tok.Style})
			}
		}
	}
	return lines
}
