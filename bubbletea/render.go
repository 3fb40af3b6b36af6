package bubbletea

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themepatch"
	truncation "github.com/muesli/reflow/truncate"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// minGutterWidth is the minimum width of the line number column.
const minGutterWidth = 4

// modifiedMark precedes literals edited since the file was opened or saved.
const modifiedMark = "*"

// lineTokenizer is implemented by tokenizers that can split a whole file
// into per-line tokens, keeping multi-line comments and strings styled.
type lineTokenizer interface {
	TokenizeLines(language, source string) [][]themepatch.Token
}

// contentConfig holds the parameters for renderContent.
type contentConfig struct {
	content   string
	literals  []themepatch.Literal
	selected  string // ID of the selected literal, empty for none
	modified  func(id string) bool
	styles    themepatch.Styles
	renderer  *lipgloss.Renderer
	language  string
	tokenizer themepatch.Tokenizer
}

// renderContent renders a file buffer with a line number gutter. Colour
// literals are drawn as swatches on their own colour.
func renderContent(cfg contentConfig) string {
	lines := strings.Split(cfg.content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	byLine := make(map[int][]themepatch.Literal)
	for _, lit := range cfg.literals {
		byLine[lit.Line] = append(byLine[lit.Line], lit)
	}
	for _, lits := range byLine {
		sort.Slice(lits, func(i, j int) bool { return lits[i].StartCol < lits[j].StartCol })
	}

	tokens := tokenizeLines(cfg.tokenizer, cfg.language, cfg.content)
	gutterWidth := max(minGutterWidth, digitWidth(len(lines)))
	lineNumStyle := styleFromColorPair(cfg.styles.LineNumber, cfg.renderer)
	textStyle := styleFromColorPair(cfg.styles.Text, cfg.renderer)
	markStyle := styleFromColorPair(cfg.styles.ModifiedMark, cfg.renderer)

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(lineNumStyle.Render(formatLineNum(i+1, gutterWidth)))
		sb.WriteString(" ")

		var lineTokens []themepatch.Token
		if i < len(tokens) {
			lineTokens = tokens[i]
		}
		r := lineRenderer{
			line:      strings.TrimSuffix(line, "\r"),
			tokens:    lineTokens,
			textStyle: textStyle,
			markStyle: markStyle,
			renderer:  cfg.renderer,
		}
		sb.WriteString(r.render(byLine[i], cfg.selected, cfg.modified))
	}
	return sb.String()
}

// tokenizeLines returns per-line tokens for source, or nil when no
// tokenizer or language is available.
func tokenizeLines(t themepatch.Tokenizer, language, source string) [][]themepatch.Token {
	if t == nil || language == "" {
		return nil
	}
	if lt, ok := t.(lineTokenizer); ok {
		return lt.TokenizeLines(language, source)
	}
	tokens := t.Tokenize(language, source)
	if tokens == nil {
		return nil
	}
	lines := [][]themepatch.Token{nil}
	for _, tok := range tokens {
		for j, part := range strings.Split(tok.Text, "\n") {
			if j > 0 {
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

// lineRenderer writes one line of a file, tracking the display column so
// tabs expand to the right stops across styled segments.
type lineRenderer struct {
	line      string
	tokens    []themepatch.Token
	textStyle lipgloss.Style
	markStyle lipgloss.Style
	renderer  *lipgloss.Renderer

	sb  strings.Builder
	col int
}

func (r *lineRenderer) render(lits []themepatch.Literal, selected string, modified func(string) bool) string {
	// Tokens that do not cover the line exactly are ignored.
	if joinTokens(r.tokens) != r.line {
		r.tokens = nil
	}

	pos := 0
	for _, lit := range lits {
		if lit.StartCol < pos || lit.EndCol > len(r.line) {
			continue
		}
		r.plain(pos, lit.StartCol)
		if modified != nil && modified(lit.ID) {
			r.write(modifiedMark, r.markStyle)
		}
		r.write(lit.Text, r.swatchStyle(lit, lit.ID == selected))
		pos = lit.EndCol
	}
	r.plain(pos, len(r.line))
	return r.sb.String()
}

// plain writes line[from:to] using the syntax tokens that overlap it.
func (r *lineRenderer) plain(from, to int) {
	if from >= to {
		return
	}
	if r.tokens == nil {
		r.write(r.line[from:to], r.textStyle)
		return
	}
	offset := 0
	for _, tok := range r.tokens {
		start, end := offset, offset+len(tok.Text)
		offset = end
		if end <= from || start >= to {
			continue
		}
		r.write(r.line[max(start, from):min(end, to)], r.tokenStyle(tok.Style))
	}
}

func (r *lineRenderer) write(text string, style lipgloss.Style) {
	text, r.col = ExpandTabs(text, r.col)
	r.sb.WriteString(style.Render(text))
}

func (r *lineRenderer) tokenStyle(s themepatch.Style) lipgloss.Style {
	style := r.textStyle
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}

func (r *lineRenderer) swatchStyle(lit themepatch.Literal, selected bool) lipgloss.Style {
	style := newStyle(r.renderer).
		Background(lipgloss.Color(lit.Value.Hex())).
		Foreground(lipgloss.Color(themepatch.ContrastColor(lit.Value).Hex()))
	if selected {
		style = style.Bold(true).Underline(true)
	}
	return style
}

func joinTokens(tokens []themepatch.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// listConfig holds the parameters for renderList.
type listConfig struct {
	entries  []string
	cursor   int
	focused  bool
	files    bool // Entries are files of a theme rather than themes
	dirty    map[string]bool
	config   *themepatch.Config
	styles   themepatch.Styles
	renderer *lipgloss.Renderer
	width    int
	height   int
}

// renderList renders the theme or file list, scrolled so the cursor is
// visible. Files get an extension accent and are dimmed when colour parsing
// is disabled for them.
func renderList(cfg listConfig) string {
	if len(cfg.entries) == 0 {
		return padLine("(empty)", cfg.width)
	}
	entryStyle := styleFromColorPair(cfg.styles.FileEntry, cfg.renderer)
	disabledStyle := styleFromColorPair(cfg.styles.Disabled, cfg.renderer)
	selectedStyle := styleFromColorPair(cfg.styles.Selected, cfg.renderer)

	height := max(cfg.height, 1)
	start := 0
	if cfg.cursor >= height {
		start = cfg.cursor - height + 1
	}
	end := min(start+height, len(cfg.entries))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := cfg.entries[i]
		label := name
		if cfg.dirty[name] {
			label += modifiedMark
		}
		label = truncate(label, cfg.width-2)

		style := entryStyle
		if cfg.files && cfg.config != nil && !cfg.config.ExtensionEnabled(name) {
			style = disabledStyle
		}
		if i == cfg.cursor && cfg.focused {
			style = selectedStyle
		}

		accent := "  "
		if cfg.files && cfg.config != nil {
			accent = newStyle(cfg.renderer).
				Foreground(lipgloss.Color(cfg.config.ExtensionColor(name).Hex())).
				Render("●") + " "
		}
		lines = append(lines, accent+style.Render(padLine(label, cfg.width-2)))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncation.StringWithTail(s, uint(width), "…")
}

// formatLineNum formats a line number right-aligned to the given width.
func formatLineNum(num, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// digitWidth returns the number of decimal digits in n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}

// padLine pads line with spaces to the given display width.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp themepatch.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer != nil {
		return renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}
