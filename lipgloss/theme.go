// Package lipgloss provides editor themes for terminal rendering.
package lipgloss

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.Theme = (*Theme)(nil)

// Theme implements themepatch.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  themepatch.Styles
	palette themepatch.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() themepatch.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() themepatch.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DetectTheme picks the dark or light theme from the terminal background.
func DetectTheme() *Theme {
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeByName resolves "dark", "light" or "auto".
func ThemeByName(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	case "", "auto":
		return DetectTheme(), true
	default:
		return nil, false
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return newTheme(themepatch.Palette{
		// Catppuccin Mocha
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",

		Keyword:     "#cba6f7",
		String:      "#a6e3a1",
		Number:      "#fab387",
		Comment:     "#6c7086",
		Operator:    "#89dceb",
		Function:    "#89b4fa",
		Type:        "#f9e2af",
		Constant:    "#fab387",
		Punctuation: "#9399b2",

		UIBackground: "#313244",
		UIForeground: "#a6adc8",
		UIAccent:     "#89b4fa",
		UIError:      "#f38ba8",
	})
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return newTheme(themepatch.Palette{
		// Catppuccin Latte
		Background: "#eff1f5",
		Foreground: "#4c4f69",

		Keyword:     "#8839ef",
		String:      "#40a02b",
		Number:      "#fe640b",
		Comment:     "#9ca0b0",
		Operator:    "#04a5e5",
		Function:    "#1e66f5",
		Type:        "#df8e1d",
		Constant:    "#fe640b",
		Punctuation: "#6c6f85",

		UIBackground: "#e6e9ef",
		UIForeground: "#6c6f85",
		UIAccent:     "#1e66f5",
		UIError:      "#d20f39",
	})
}

func newTheme(p themepatch.Palette) *Theme {
	return &Theme{
		palette: p,
		styles: themepatch.Styles{
			Text:         themepatch.ColorPair{Foreground: string(p.Foreground)},
			LineNumber:   themepatch.ColorPair{Foreground: string(p.Comment)},
			FileEntry:    themepatch.ColorPair{Foreground: string(p.UIForeground)},
			Selected:     themepatch.ColorPair{Foreground: string(p.Background), Background: string(p.UIAccent)},
			Disabled:     themepatch.ColorPair{Foreground: string(p.Comment)},
			Header:       themepatch.ColorPair{Foreground: string(p.UIAccent), Background: string(p.UIBackground)},
			StatusBar:    themepatch.ColorPair{Foreground: string(p.UIForeground), Background: string(p.UIBackground)},
			Error:        themepatch.ColorPair{Foreground: string(p.UIError), Background: string(p.UIBackground)},
			Border:       themepatch.ColorPair{Foreground: string(p.UIBackground)},
			ModifiedMark: themepatch.ColorPair{Foreground: string(p.Type)},
		},
	}
}
