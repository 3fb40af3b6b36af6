package themepatch_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/themepatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("replaces a literal and keeps the trailing newline", func(t *testing.T) {
		t.Parallel()

		got, err := themepatch.Apply("a: #fff\nb: #000\n", 1, 3, "#000", "#123456")

		require.NoError(t, err)
		assert.Equal(t, "a: #fff\nb: #123456\n", got)
	})

	t.Run("preserves carriage returns", func(t *testing.T) {
		t.Parallel()

		got, err := themepatch.Apply("x #fff\r\ny\r\n", 0, 2, "#fff", "#000")

		require.NoError(t, err)
		assert.Equal(t, "x #000\r\ny\r\n", got)
	})

	t.Run("rewriting a literal in its own format leaves the line intact", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name string
			lit  string
			want string
		}{
			{"hex6", "#a1b2c3", "#a1b2c3"},
			{"hex8", "#11223344", "#11223344"},
			{"rgb", "rgb(1, 2, 3)", "rgb(1, 2, 3)"},
			{"rgba", "rgba(10, 20, 30, 1)", "rgba(10, 20, 30, 1)"},
			// The short form divides by 17, so it does not survive unchanged.
			{"hex3", "#fff", "#151515"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				text := "\tpre " + tc.lit + " post;\r\nnext #000\n"
				lits := themepatch.Scan(text)
				require.NotEmpty(t, lits)
				lit := lits[0]
				require.Equal(t, tc.lit, lit.Text)

				replacement := themepatch.FormatColor(lit.Value, themepatch.DetectFormat(lit.Text))
				got, err := themepatch.Apply(text, lit.Line, lit.StartCol, lit.Text, replacement)

				require.NoError(t, err)
				assert.Equal(t, tc.want, replacement)
				assert.Equal(t, "\tpre "+tc.want+" post;\r\nnext #000\n", got)
			})
		}
	})

	t.Run("allows an empty replacement", func(t *testing.T) {
		t.Parallel()

		got, err := themepatch.Apply("x #fff;", 0, 2, "#fff", "")

		require.NoError(t, err)
		assert.Equal(t, "x ;", got)
	})

	t.Run("rejects a line past the end", func(t *testing.T) {
		t.Parallel()

		text := "one line"
		got, err := themepatch.Apply(text, 3, 0, "o", "x")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrLineNotFound, pe.Reason)
		assert.Equal(t, text, got)
	})

	t.Run("rejects a column at or past the line end", func(t *testing.T) {
		t.Parallel()

		_, err := themepatch.Apply("abc\ndef", 0, 3, "d", "x")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrColumnOutOfRange, pe.Reason)
	})

	t.Run("rejects a negative column", func(t *testing.T) {
		t.Parallel()

		_, err := themepatch.Apply("abc", 0, -1, "a", "x")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrColumnOutOfRange, pe.Reason)
	})

	t.Run("rejects a span running past the line", func(t *testing.T) {
		t.Parallel()

		_, err := themepatch.Apply("ab #ff\n#000", 0, 3, "#ff\n#", "x")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrSpanMismatch, pe.Reason)
	})

	t.Run("rejects a span holding different text", func(t *testing.T) {
		t.Parallel()

		text := "a #fff"
		got, err := themepatch.Apply(text, 0, 2, "#000", "#111")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrSpanMismatch, pe.Reason)
		assert.Equal(t, text, got)
		assert.Contains(t, err.Error(), `"#000"`)
	})

	t.Run("reaches an empty final line", func(t *testing.T) {
		t.Parallel()

		_, err := themepatch.Apply("a\n", 1, 0, "", "x")

		var pe themepatch.PatchError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, themepatch.ErrColumnOutOfRange, pe.Reason)
	})
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	t.Run("applies several edits on one line regardless of length changes", func(t *testing.T) {
		t.Parallel()

		original := "x #fff #000 rgb(1, 2, 3)\n"
		edits := map[string]string{
			"0_2":  "#123456",
			"0_7":  "rgba(0, 0, 0, 0.5)",
			"0_12": "#abc",
		}

		got, err := themepatch.Rebuild(original, edits)

		require.NoError(t, err)
		assert.Equal(t, "x #123456 rgba(0, 0, 0, 0.5) #abc\n", got)
	})

	t.Run("gives the same result for every map order", func(t *testing.T) {
		t.Parallel()

		original := "a #111 #222 #333\nb #444\n"
		edits := map[string]string{"0_2": "#aaaaaa", "0_7": "#b", "0_12": "#cccccc", "1_2": "#dddddd"}

		first, err := themepatch.Rebuild(original, edits)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			got, err := themepatch.Rebuild(original, edits)
			require.NoError(t, err)
			assert.Equal(t, first, got)
		}
		assert.Equal(t, "a #aaaaaa #b #cccccc\nb #dddddd\n", first)
	})

	t.Run("returns the original when there are no edits", func(t *testing.T) {
		t.Parallel()

		got, err := themepatch.Rebuild("#fff", nil)

		require.NoError(t, err)
		assert.Equal(t, "#fff", got)
	})

	t.Run("skips edits that name no literal and keeps the rest", func(t *testing.T) {
		t.Parallel()

		edits := map[string]string{
			"0_2":   "#000",
			"0_0":   "#111",
			"9_0":   "#222",
			"0_40":  "#333",
			"bogus": "#444",
		}

		got, err := themepatch.Rebuild("a #fff", edits)

		assert.Equal(t, "a #000", got)
		require.Error(t, err)

		reasons := map[string]themepatch.PatchReason{}
		for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
			var pe themepatch.PatchError
			require.True(t, errors.As(e, &pe))
			reasons[pe.ID] = pe.Reason
		}
		assert.Equal(t, map[string]themepatch.PatchReason{
			"0_0":   themepatch.ErrSpanMismatch,
			"9_0":   themepatch.ErrLineNotFound,
			"0_40":  themepatch.ErrColumnOutOfRange,
			"bogus": themepatch.ErrSpanMismatch,
		}, reasons)
	})
}
