package themepatch

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorFormat is the textual family a colour literal is written in.
type ColorFormat int

// Colour formats.
const (
	Hex6 ColorFormat = iota
	Hex3
	Hex8
	RGBFormat
	RGBAFormat
)

// String returns a short name for the format.
func (f ColorFormat) String() string {
	switch f {
	case Hex3:
		return "hex3"
	case Hex6:
		return "hex6"
	case Hex8:
		return "hex8"
	case RGBFormat:
		return "rgb"
	case RGBAFormat:
		return "rgba"
	default:
		return "unknown"
	}
}

// DetectFormat classifies the textual form of a colour literal.
// Unrecognised text is treated as Hex6.
func DetectFormat(text string) ColorFormat {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "rgba"):
		return RGBAFormat
	case strings.HasPrefix(text, "rgb"):
		return RGBFormat
	case strings.HasPrefix(text, "#"):
		switch len(text) - 1 {
		case 3:
			return Hex3
		case 8:
			return Hex8
		default:
			return Hex6
		}
	default:
		return Hex6
	}
}

// FormatColor renders c in format f.
//
// Hex3 writes the decimal value of each channel divided by 17, so 255
// becomes "15" and the result is not always a valid short hex literal.
func FormatColor(c RGBA, f ColorFormat) string {
	switch f {
	case Hex3:
		return fmt.Sprintf("#%d%d%d", c.R/17, c.G/17, c.B/17)
	case Hex8:
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	case RGBFormat:
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	case RGBAFormat:
		alpha := float32(c.A) / 255
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
			strconv.FormatFloat(float64(alpha), 'f', -1, 32))
	default:
		return c.Hex()
	}
}
