package themepatch

// Token represents a syntax-highlighted segment of a file.
type Token struct {
	Text  string // The text content of this token
	Style Style  // Visual style to apply (colors, bold, etc.)
}

// Style represents the visual styling for a token.
type Style struct {
	Foreground string // Hex color code (e.g., "#ff0000") or empty for default
	Bold       bool   // Whether the text should be bold
}

// Tokenizer extracts syntax tokens from file content.
type Tokenizer interface {
	// Tokenize splits content into syntax-highlighted tokens for the given
	// language. Returns nil if the language is not supported.
	Tokenize(language, source string) []Token
}
