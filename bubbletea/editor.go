// Package bubbletea provides the terminal theme editor built on the Bubble
// Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themepatch"
)

// ErrInvalidColor is reported when the edit prompt does not hold exactly one
// colour literal.
var ErrInvalidColor = errors.New("not a color literal")

// listWidth is the maximum width of the theme/file panel.
const listWidth = 32

type focus int

const (
	focusList focus = iota
	focusContent
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeDiff
)

// EditorOption configures an EditorModel.
type EditorOption func(*EditorModel)

// WithRenderer sets the lipgloss renderer used for styling.
func WithRenderer(r *lipgloss.Renderer) EditorOption {
	return func(m *EditorModel) {
		m.renderer = r
	}
}

// WithTheme sets the editor colours.
func WithTheme(t themepatch.Theme) EditorOption {
	return func(m *EditorModel) {
		m.styles = t.Styles()
	}
}

// WithLanguageDetector enables syntax tinting of file content.
func WithLanguageDetector(d themepatch.LanguageDetector) EditorOption {
	return func(m *EditorModel) {
		m.detector = d
	}
}

// WithTokenizer sets the tokenizer used for syntax tinting.
func WithTokenizer(t themepatch.Tokenizer) EditorOption {
	return func(m *EditorModel) {
		m.tokenizer = t
	}
}

// WithClipboard enables copying the selected literal.
func WithClipboard(c themepatch.Clipboard) EditorOption {
	return func(m *EditorModel) {
		m.clipboard = c
	}
}

// WithDiffer enables the changes view.
func WithDiffer(d themepatch.Differ) EditorOption {
	return func(m *EditorModel) {
		m.differ = d
	}
}

// WithSortMode sets the initial list order.
func WithSortMode(s themepatch.SortMode) EditorOption {
	return func(m *EditorModel) {
		m.sortMode = s
	}
}

// WithInitialTheme opens the named theme on start.
func WithInitialTheme(name string) EditorOption {
	return func(m *EditorModel) {
		m.initialTheme = name
	}
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(k KeyMap) EditorOption {
	return func(m *EditorModel) {
		m.keys = k
	}
}

// EditorModel is the Bubble Tea model for browsing themes and editing the
// colour literals of their files.
type EditorModel struct {
	session *themepatch.Session

	keys         KeyMap
	help         help.Model
	renderer     *lipgloss.Renderer
	styles       themepatch.Styles
	detector     themepatch.LanguageDetector
	tokenizer    themepatch.Tokenizer
	clipboard    themepatch.Clipboard
	differ       themepatch.Differ
	sortMode     themepatch.SortMode
	initialTheme string

	entries  []string
	inTheme  bool
	cursor   int
	focus    focus
	mode     mode
	selected int // Index into session.Literals()
	language string

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	status string
	err    error
}

// NewEditorModel creates an editor over session and lists its themes.
func NewEditorModel(session *themepatch.Session, opts ...EditorOption) EditorModel {
	input := textinput.New()
	input.Prompt = "color: "
	input.Placeholder = "#rrggbb or rgb(r, g, b)"
	input.CharLimit = 64

	m := EditorModel{
		session: session,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   input,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.loadThemes()
	if m.initialTheme != "" && m.err == nil {
		m.openTheme(m.initialTheme)
	}
	return m
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeDiff:
			return m.updateDiff(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m EditorModel) handleWindowSize(msg tea.WindowSizeMsg) EditorModel {
	m.width = msg.Width
	m.height = msg.Height
	w, h := m.contentSize()
	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.help.Width = msg.Width
	m.input.Width = max(w-len(m.input.Prompt)-1, 1)
	m.refresh()
	return m
}

// contentSize returns the size of the content panel: everything right of
// the list and its separator, above the status and help lines.
func (m EditorModel) contentSize() (int, int) {
	return max(m.width-m.listWidth()-1, 1), max(m.height-3, 1)
}

func (m EditorModel) listWidth() int {
	return min(listWidth, m.width/3)
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == focusList && m.session.File() != "" {
			m.focus = focusContent
		} else {
			m.focus = focusList
		}
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		m.sortMode = m.sortMode.Next()
		m.resort()
		m.setStatus("sort: " + m.sortMode.String())
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if err := m.session.Save(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("saved " + m.session.File())
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Overwrite):
		if err := m.session.OverwriteTheme(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("overwrote theme " + m.session.Theme())
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.SaveAsNew):
		if name, err := m.session.SaveAsNew(""); err != nil {
			m.setError(err)
		} else {
			m.setStatus("saved as new theme " + name)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if err := m.session.Reload(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("reloaded " + m.session.File())
		}
		m.selected = min(m.selected, max(len(m.session.Literals())-1, 0))
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Diff):
		return m.showDiff(), nil
	case key.Matches(msg, m.keys.Yank):
		m.yank()
		return m, nil
	}

	if m.focus == focusContent {
		return m.updateContent(msg)
	}
	return m.updateList(msg)
}

func (m EditorModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half := max(m.viewport.Height/2, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.entries)-1, 0))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.cursor = max(m.cursor-half, 0)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.cursor = min(m.cursor+half, max(len(m.entries)-1, 0))
	case key.Matches(msg, m.keys.GotoTop):
		m.cursor = 0
	case key.Matches(msg, m.keys.GotoBottom):
		m.cursor = max(len(m.entries)-1, 0)
	case key.Matches(msg, m.keys.Open):
		if len(m.entries) == 0 {
			return m, nil
		}
		name := m.entries[m.cursor]
		if m.inTheme {
			m.openFile(name)
		} else {
			m.openTheme(name)
		}
	case key.Matches(msg, m.keys.Back):
		if m.inTheme {
			m.loadThemes()
		}
	}
	return m, nil
}

func (m EditorModel) updateContent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.session.Literals())
	switch {
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextLiteral):
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.PrevLiteral):
		if n > 0 {
			m.selected = (m.selected + n - 1) % n
		}
	case key.Matches(msg, m.keys.GotoTop):
		m.selected = 0
	case key.Matches(msg, m.keys.GotoBottom):
		m.selected = max(n-1, 0)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m.startEdit()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Cancel):
		m.focus = focusList
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m EditorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.session.CancelEdit()
		m.input.Blur()
		m.mode = modeBrowse
		m.setStatus("edit cancelled")
		return m, nil
	case msg.Type == tea.KeyEnter:
		c, ok := themepatch.ParseColor(m.input.Value())
		if !ok {
			m.setError(fmt.Errorf("%q: %w", m.input.Value(), ErrInvalidColor))
			return m, nil
		}
		m.input.Blur()
		m.mode = modeBrowse
		text, err := m.session.ConfirmEdit(c)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus("set " + text)
		}
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m EditorModel) updateDiff(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Diff), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.GotoTop):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m EditorModel) startEdit() (tea.Model, tea.Cmd) {
	lits := m.session.Literals()
	if len(lits) == 0 {
		return m, nil
	}
	edit, err := m.session.StartEdit(lits[m.selected].ID)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.mode = modeEdit
	m.input.SetValue(edit.Text)
	m.input.CursorEnd()
	m.setStatus(fmt.Sprintf("editing %s (%s)", edit.Text, edit.Format))
	cmd := m.input.Focus()
	return m, cmd
}

func (m EditorModel) showDiff() EditorModel {
	if m.differ == nil || m.session.File() == "" {
		return m
	}
	d := m.differ.Diff(m.session.File(), m.session.Original(), m.session.Content())
	if d == "" {
		m.setStatus("no changes")
		return m
	}
	m.mode = modeDiff
	if m.ready {
		lines := strings.Split(strings.TrimSuffix(d, "\n"), "\n")
		for i, line := range lines {
			lines[i], _ = ExpandTabs(line, 0)
		}
		m.viewport.SetContent(strings.Join(lines, "\n"))
		m.viewport.GotoTop()
	}
	return m
}

func (m *EditorModel) yank() {
	lits := m.session.Literals()
	if m.clipboard == nil || m.session.File() == "" || len(lits) == 0 {
		return
	}
	text := lits[m.selected].Text
	if err := m.clipboard.Copy(text); err != nil {
		m.setError(fmt.Errorf("copy: %w", err))
		return
	}
	m.setStatus("copied " + text)
}

func (m *EditorModel) loadThemes() {
	themes, err := m.session.Themes(m.sortMode)
	if err != nil {
		m.setError(err)
	}
	m.entries = themes
	m.inTheme = false
	m.cursor = 0
	m.focus = focusList
}

func (m *EditorModel) openTheme(name string) {
	files, err := m.session.OpenTheme(name, m.sortMode)
	if err != nil {
		m.setError(err)
		return
	}
	m.entries = files
	m.inTheme = true
	m.cursor = 0
	m.selected = 0
	m.setStatus(fmt.Sprintf("opened %s (%d files)", name, len(files)))
	m.refresh()
}

func (m *EditorModel) openFile(name string) {
	if err := m.session.OpenFile(name); err != nil {
		m.setError(err)
		return
	}
	m.language = ""
	if m.detector != nil {
		m.language = m.detector.DetectFromPath(name)
	}
	m.selected = 0
	m.focus = focusContent
	m.setStatus(fmt.Sprintf("colors: %d", len(m.session.Literals())))
	if m.ready {
		m.viewport.GotoTop()
	}
	m.refresh()
}

// resort reorders the visible list, keeping the cursor on the same entry.
func (m *EditorModel) resort() {
	var current string
	if m.cursor < len(m.entries) {
		current = m.entries[m.cursor]
	}
	if m.inTheme {
		m.session.SortFiles(m.sortMode)
		m.entries = m.session.Files()
	} else if themes, err := m.session.Themes(m.sortMode); err == nil {
		m.entries = themes
	}
	for i, e := range m.entries {
		if e == current {
			m.cursor = i
		}
	}
}

func (m *EditorModel) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *EditorModel) setError(err error) {
	m.status = ""
	m.err = err
}

// refresh re-renders the open file into the viewport and scrolls the
// selected literal into view.
func (m *EditorModel) refresh() {
	if !m.ready || m.mode == modeDiff {
		return
	}
	if m.session.File() == "" {
		m.viewport.SetContent("")
		return
	}
	lits := m.session.Literals()
	var selected string
	if m.selected < len(lits) {
		selected = lits[m.selected].ID
	}
	m.viewport.SetContent(renderContent(contentConfig{
		content:   m.session.Content(),
		literals:  lits,
		selected:  selected,
		modified:  m.session.IsModified,
		styles:    m.styles,
		renderer:  m.renderer,
		language:  m.language,
		tokenizer: m.tokenizer,
	}))
	if m.selected < len(lits) {
		line := lits[m.selected].Line
		switch {
		case line < m.viewport.YOffset:
			m.viewport.SetYOffset(line)
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

// View implements tea.Model.
func (m EditorModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	w, h := m.contentSize()
	lw := m.listWidth()

	headerStyle := styleFromColorPair(m.styles.Header, m.renderer)
	borderStyle := styleFromColorPair(m.styles.Border, m.renderer)

	title := "themes"
	if m.inTheme {
		title = m.session.Theme()
	}
	dirty := make(map[string]bool)
	if m.inTheme {
		for _, f := range m.session.DirtyFiles() {
			dirty[f] = true
		}
	}
	list := headerStyle.Render(padLine(truncate(title, lw), lw)) + "\n" + renderList(listConfig{
		entries:  m.entries,
		cursor:   m.cursor,
		focused:  m.focus == focusList && m.mode == modeBrowse,
		files:    m.inTheme,
		dirty:    dirty,
		config:   m.session.Config(),
		styles:   m.styles,
		renderer: m.renderer,
		width:    lw,
		height:   h,
	})
	list = newStyle(m.renderer).Width(lw).Height(h + 1).MaxHeight(h + 1).Render(list)

	heading := m.session.File()
	if m.mode == modeDiff {
		heading = "changes: " + heading
	}
	content := headerStyle.Render(padLine(truncate(heading, w), w)) + "\n" + m.viewport.View()
	content = newStyle(m.renderer).Width(w).MaxHeight(h + 1).Render(content)

	sep := borderStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", h+1), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, sep, content)

	return body + "\n" + m.renderStatusBar() + "\n" + m.renderBottomLine()
}

func (m EditorModel) renderStatusBar() string {
	barStyle := styleFromColorPair(m.styles.StatusBar, m.renderer)
	errStyle := styleFromColorPair(m.styles.Error, m.renderer)

	var parts []string
	location := m.session.Theme()
	if f := m.session.File(); f != "" {
		location += "/" + f
	}
	if location != "" {
		parts = append(parts, location)
	}
	if m.language != "" && m.session.File() != "" {
		parts = append(parts, m.language)
	}
	if lits := m.session.Literals(); len(lits) > 0 && m.session.File() != "" {
		parts = append(parts, fmt.Sprintf("color %d/%d", m.selected+1, len(lits)))
	}
	if m.session.Dirty() {
		parts = append(parts, fmt.Sprintf("%d unsaved", len(m.session.DirtyFiles())))
	}
	parts = append(parts, "sort: "+m.sortMode.String())
	left := barStyle.Render(" " + strings.Join(parts, " │ ") + " ")

	room := max(m.width-lipgloss.Width(left)-2, 0)
	var right string
	switch {
	case m.err != nil:
		right = errStyle.Render(" " + truncate(m.err.Error(), room) + " ")
	case m.status != "":
		right = barStyle.Render(" " + truncate(m.status, room) + " ")
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + barStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m EditorModel) renderBottomLine() string {
	if m.mode == modeEdit {
		return m.input.View()
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// Session returns the session the editor operates on.
func (m EditorModel) Session() *themepatch.Session {
	return m.session
}

// Err returns the error shown in the status bar, if any.
func (m EditorModel) Err() error {
	return m.err
}

// Status returns the status message shown in the status bar.
func (m EditorModel) Status() string {
	return m.status
}

// Editor runs the theme editor as a full screen terminal program.
type Editor struct {
	opts []EditorOption
}

// NewEditor creates an Editor applying opts to every model it runs.
func NewEditor(opts ...EditorOption) *Editor {
	return &Editor{opts: opts}
}

// Run blocks until the user quits or ctx is cancelled. Options given here
// are applied after those of NewEditor.
func (e *Editor) Run(ctx context.Context, session *themepatch.Session, opts ...EditorOption) error {
	all := append(append([]EditorOption(nil), e.opts...), opts...)
	m := NewEditorModel(session, all...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
