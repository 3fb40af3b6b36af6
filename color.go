package themepatch

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is an unpremultiplied colour with 8 bits per channel.
type RGBA struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Gray returns an opaque grey of the given level.
func Gray(level uint8) RGBA {
	return RGBA{R: level, G: level, B: level, A: 255}
}

// Common colours.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// Hex returns the colour as "#rrggbb", dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DefaultExtensionColors is the accent palette for extensions that have no
// configured colour.
var DefaultExtensionColors = []RGBA{
	RGB(255, 107, 107),
	RGB(78, 205, 196),
	RGB(255, 230, 109),
	RGB(26, 83, 92),
	RGB(255, 159, 67),
	RGB(84, 160, 255),
	RGB(95, 39, 205),
	RGB(29, 209, 161),
	RGB(255, 159, 243),
	RGB(34, 166, 179),
	RGB(244, 180, 26),
	RGB(163, 152, 173),
	RGB(206, 147, 216),
	RGB(129, 236, 182),
	RGB(250, 177, 133),
	RGB(127, 143, 166),
}

// Extension returns the lower-cased text after the last dot of name.
// A name without a dot is its own extension.
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// DefaultExtensionColor picks a stable palette colour for the extension of
// name by summing its bytes.
func DefaultExtensionColor(name string) RGBA {
	var sum uint32
	for _, b := range []byte(Extension(name)) {
		sum += uint32(b)
	}
	return DefaultExtensionColors[int(sum)%len(DefaultExtensionColors)]
}

// ContrastColor returns black for bright colours and white for dark ones.
func ContrastColor(c RGBA) RGBA {
	brightness := (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
	if brightness > 128 {
		return Black
	}
	return White
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional. Short forms double each nibble.
func ParseHex(s string) (RGBA, bool) {
	s = strings.TrimLeft(s, "#")
	switch len(s) {
	case 3:
		r, ok1 := hexByte(s[0:1] + s[0:1])
		g, ok2 := hexByte(s[1:2] + s[1:2])
		b, ok3 := hexByte(s[2:3] + s[2:3])
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		return RGB(r, g, b), true
	case 6, 8:
		r, ok1 := hexByte(s[0:2])
		g, ok2 := hexByte(s[2:4])
		b, ok3 := hexByte(s[4:6])
		if !ok1 || !ok2 || !ok3 {
			return RGBA{}, false
		}
		c := RGB(r, g, b)
		if len(s) == 8 {
			a, ok := hexByte(s[6:8])
			if !ok {
				return RGBA{}, false
			}
			c.A = a
		}
		return c, true
	default:
		return RGBA{}, false
	}
}

// ColorFromHex resolves a 6- or 3-digit hex string for display. Channels
// that fail to parse become 0; other lengths resolve to mid grey.
func ColorFromHex(s string) RGBA {
	s = strings.TrimLeft(s, "#")
	switch len(s) {
	case 6:
		r, _ := hexByte(s[0:2])
		g, _ := hexByte(s[2:4])
		b, _ := hexByte(s[4:6])
		return RGB(r, g, b)
	case 3:
		r, _ := hexByte(s[0:1] + s[0:1])
		g, _ := hexByte(s[1:2] + s[1:2])
		b, _ := hexByte(s[2:3] + s[2:3])
		return RGB(r, g, b)
	default:
		return Gray(128)
	}
}

// ColorToHex formats a colour as "#rrggbb" for persisting accent colours.
func ColorToHex(c RGBA) string {
	return c.Hex()
}

// ParseColor resolves text holding exactly one colour literal, hex or
// rgb()/rgba(), surrounding whitespace ignored.
func ParseColor(text string) (RGBA, bool) {
	text = strings.TrimSpace(text)
	lits := Scan(text)
	if len(lits) != 1 || lits[0].Text != text {
		return RGBA{}, false
	}
	return lits[0].Value, true
}

func hexByte(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}
