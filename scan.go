package themepatch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	hexPattern = regexp.MustCompile(`#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})\b`)
	rgbPattern = regexp.MustCompile(`rgba?\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+))?\s*\)`)
)

// Literal is one occurrence of a colour expression in a text.
type Literal struct {
	ID       string // "{line}_{start_col}", valid only within one scan
	Value    RGBA
	Line     int // Zero-based line index
	StartCol int // Byte offset of the first byte within the line
	EndCol   int // Byte offset one past the last byte
	Text     string
}

// LiteralID returns the identifier of a literal starting at line and col.
func LiteralID(line, col int) string {
	return fmt.Sprintf("%d_%d", line, col)
}

// ParseLiteralID splits an identifier produced by LiteralID.
func ParseLiteralID(id string) (line, col int, ok bool) {
	l, c, found := strings.Cut(id, "_")
	if !found {
		return 0, 0, false
	}
	line, err := strconv.Atoi(l)
	if err != nil || line < 0 {
		return 0, 0, false
	}
	col, err = strconv.Atoi(c)
	if err != nil || col < 0 {
		return 0, 0, false
	}
	return line, col, true
}

// Scan finds every hex and rgb()/rgba() colour literal in text.
//
// Lines are reported in increasing order. Within a line, all hex literals
// come first, left to right, followed by all rgb/rgba literals.
func Scan(text string) []Literal {
	var out []Literal
	for lineIdx, line := range strings.Split(text, "\n") {
		for _, m := range hexPattern.FindAllStringIndex(line, -1) {
			if continuesWord(line[m[1]:]) {
				continue
			}
			lit := line[m[0]:m[1]]
			c, ok := ParseHex(lit)
			if !ok {
				continue
			}
			out = append(out, Literal{
				ID:       LiteralID(lineIdx, m[0]),
				Value:    c,
				Line:     lineIdx,
				StartCol: m[0],
				EndCol:   m[1],
				Text:     lit,
			})
		}
		for _, m := range rgbPattern.FindAllStringSubmatchIndex(line, -1) {
			c := RGBA{
				R: parseChannel(line[m[2]:m[3]]),
				G: parseChannel(line[m[4]:m[5]]),
				B: parseChannel(line[m[6]:m[7]]),
				A: 255,
			}
			if m[8] >= 0 {
				c.A = parseAlpha(line[m[8]:m[9]])
			}
			out = append(out, Literal{
				ID:       LiteralID(lineIdx, m[0]),
				Value:    c,
				Line:     lineIdx,
				StartCol: m[0],
				EndCol:   m[1],
				Text:     line[m[0]:m[1]],
			})
		}
	}
	return out
}

// continuesWord reports whether rest starts with a word character. The \b
// in hexPattern only knows ASCII, so "#fffé" would otherwise match.
func continuesWord(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseChannel returns 0 for values that do not fit in a byte.
func parseChannel(s string) uint8 {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// parseAlpha converts a 0.0-1.0 fraction to a byte, truncating and
// saturating at both ends.
func parseAlpha(s string) uint8 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 255
	}
	v := float32(f) * 255
	switch {
	case math.IsNaN(float64(v)) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
