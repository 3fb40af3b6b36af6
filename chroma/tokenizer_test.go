package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/themepatch"
	"github.com/fwojciec/themepatch/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *chroma.Tokenizer {
	t.Helper()
	tok, err := chroma.NewTokenizer(chroma.StyleFromPalette(themepatch.Palette{
		Keyword: "#ff00ff",
		String:  "#00ff00",
		Comment: "#888888",
	}))
	require.NoError(t, err)
	return tok
}

func joinTokens(tokens []themepatch.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestNewTokenizer(t *testing.T) {
	t.Parallel()

	t.Run("requires a style function", func(t *testing.T) {
		t.Parallel()

		_, err := chroma.NewTokenizer(nil)

		assert.Error(t, err)
	})
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("covers the whole source", func(t *testing.T) {
		t.Parallel()

		src := "[colors]\nbg = \"#1a1b26\"\n"
		tokens := newTokenizer(t).Tokenize("TOML", src)

		require.NotEmpty(t, tokens)
		assert.Equal(t, src, joinTokens(tokens))
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newTokenizer(t).Tokenize("nonexistent-language-xyz", "x"))
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newTokenizer(t).Tokenize("CSS", ""))
	})
}

func TestTokenizer_TokenizeLines(t *testing.T) {
	t.Parallel()

	t.Run("returns one entry per line including empty ones", func(t *testing.T) {
		t.Parallel()

		src := "a { color: #fff; }\n\n/* one\ntwo */\n"
		lines := newTokenizer(t).TokenizeLines("CSS", src)

		want := strings.Split(src, "\n")
		require.Len(t, lines, len(want))
		for i, line := range lines {
			assert.Equal(t, want[i], joinTokens(line), "line %d", i)
		}
	})

	t.Run("keeps comment style across lines", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).TokenizeLines("CSS", "/* one\ntwo */")

		require.Len(t, lines, 2)
		require.NotEmpty(t, lines[1])
		assert.Equal(t, "#888888", lines[1][0].Style.Foreground)
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newTokenizer(t).TokenizeLines("nonexistent-language-xyz", "x\ny"))
	})
}
