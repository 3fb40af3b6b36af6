package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ExpandTabs replaces tabs in s with spaces up to the next tab stop. col is
// the display column s starts at. It returns the expanded text and the
// column just past it, so consecutive segments of a line can be chained.
func ExpandTabs(s string, col int) (string, int) {
	if !strings.Contains(s, "\t") {
		return s, col + lipgloss.Width(s)
	}

	var sb strings.Builder
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
			continue
		}
		next := (col/tabWidth + 1) * tabWidth
		sb.WriteString(strings.Repeat(" ", next-col))
		col = next
	}
	return sb.String(), col
}
