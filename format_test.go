package themepatch_test

import (
	"testing"

	"github.com/fwojciec/themepatch"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want themepatch.ColorFormat
	}{
		{"short hex", "#fff", themepatch.Hex3},
		{"long hex", "#a1b2c3", themepatch.Hex6},
		{"hex with alpha", "#a1b2c3d4", themepatch.Hex8},
		{"hex of unusual length", "#12345", themepatch.Hex6},
		{"rgb", "rgb(1, 2, 3)", themepatch.RGBFormat},
		{"rgba", "rgba(1, 2, 3, 0.5)", themepatch.RGBAFormat},
		{"surrounding whitespace", "  #abc  ", themepatch.Hex3},
		{"unrecognised text", "red", themepatch.Hex6},
		{"empty text", "", themepatch.Hex6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, themepatch.DetectFormat(tt.text))
		})
	}
}

func TestFormatColor(t *testing.T) {
	t.Parallel()

	t.Run("writes short hex as channel divided by seventeen", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "#1500", themepatch.FormatColor(themepatch.RGB(255, 0, 0), themepatch.Hex3))
		assert.Equal(t, "#123", themepatch.FormatColor(themepatch.RGB(0x11, 0x22, 0x33), themepatch.Hex3))
	})

	t.Run("writes lowercase zero padded hex", func(t *testing.T) {
		t.Parallel()

		c := themepatch.RGBA{R: 0x0a, G: 0xb0, B: 0x01, A: 0x0f}

		assert.Equal(t, "#0ab001", themepatch.FormatColor(c, themepatch.Hex6))
		assert.Equal(t, "#0ab0010f", themepatch.FormatColor(c, themepatch.Hex8))
	})

	t.Run("writes rgb with spaced channels", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "rgb(1, 2, 3)", themepatch.FormatColor(themepatch.RGB(1, 2, 3), themepatch.RGBFormat))
	})

	t.Run("writes rgba alpha as shortest fraction", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "rgba(1, 2, 3, 1)", themepatch.FormatColor(themepatch.RGB(1, 2, 3), themepatch.RGBAFormat))
		assert.Equal(t, "rgba(1, 2, 3, 0)", themepatch.FormatColor(themepatch.RGBA{R: 1, G: 2, B: 3}, themepatch.RGBAFormat))
		assert.Equal(t, "rgba(1, 2, 3, 0.49803922)",
			themepatch.FormatColor(themepatch.RGBA{R: 1, G: 2, B: 3, A: 127}, themepatch.RGBAFormat))
	})

	t.Run("round trips six digit hex through scan", func(t *testing.T) {
		t.Parallel()

		c := themepatch.RGB(0x12, 0x34, 0x56)
		lits := themepatch.Scan(themepatch.FormatColor(c, themepatch.Hex6))

		if assert.Len(t, lits, 1) {
			assert.Equal(t, c, lits[0].Value)
		}
	})
}
