package themepatch

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Session errors.
var (
	ErrNoThemes          = errors.New("no theme folders found")
	ErrNoTheme           = errors.New("no theme open")
	ErrNoFile            = errors.New("no file open")
	ErrFileNotFound      = errors.New("file not found in theme")
	ErrExtensionDisabled = errors.New("color parsing disabled")
	ErrLiteralNotFound   = errors.New("color literal not found")
	ErrNoPendingEdit     = errors.New("no color edit in progress")
	ErrThemeExists       = errors.New("theme already exists")
)

// PendingEdit is a literal selected for replacement but not yet confirmed.
type PendingEdit struct {
	ID       string
	File     string
	Original RGBA
	Text     string
	Format   ColorFormat
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for debug tracing. A nil logger keeps
// the default no-op logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJournal records every confirmed edit in j.
func WithJournal(j EditJournal) SessionOption {
	return func(s *Session) {
		s.journal = j
	}
}

// WithClock overrides the time source used for journal records.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// Session owns the state of one editing session: the open theme, its file
// cache, the open file buffer and the edits made to it. A Session is not
// safe for concurrent use.
type Session struct {
	store   ThemeStore
	cfg     *Config
	logger  *zap.Logger
	journal EditJournal
	now     func() time.Time

	counter     uint64
	themeOpened map[string]uint64
	fileOpened  map[string]uint64

	theme   string
	files   []string
	cache   map[string]string
	unsaved map[string]bool

	file     string
	original string
	baseline []Literal // Scan of original
	content  string
	literals []Literal
	modified map[string]string // Baseline ID -> replacement text
	origins  map[string]string // Current ID -> baseline ID
	pending  *PendingEdit

	lastErr error
}

// NewSession returns a session reading themes from store. A nil cfg means
// DefaultConfig.
func NewSession(store ThemeStore, cfg *Config, opts ...SessionOption) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{
		store:       store,
		cfg:         cfg,
		logger:      zap.NewNop(),
		now:         time.Now,
		themeOpened: make(map[string]uint64),
		fileOpened:  make(map[string]uint64),
		cache:       make(map[string]string),
		unsaved:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the configuration the session was created with.
func (s *Session) Config() *Config { return s.cfg }

// Theme returns the open theme name.
func (s *Session) Theme() string { return s.theme }

// File returns the open file name.
func (s *Session) File() string { return s.file }

// Files returns the files of the open theme in their current order.
func (s *Session) Files() []string { return append([]string(nil), s.files...) }

// Content returns the open file buffer.
func (s *Session) Content() string { return s.content }

// Original returns the text the open file's edits are relative to.
func (s *Session) Original() string { return s.original }

// Literals returns the colour literals of the current buffer.
func (s *Session) Literals() []Literal { return s.literals }

// LastError returns the error of the most recent failed operation.
func (s *Session) LastError() error { return s.lastErr }

// Pending returns the edit in progress, if any.
func (s *Session) Pending() (PendingEdit, bool) {
	if s.pending == nil {
		return PendingEdit{}, false
	}
	return *s.pending, true
}

// Lookup returns the literal with the given ID in the current buffer.
func (s *Session) Lookup(id string) (Literal, bool) {
	for _, lit := range s.literals {
		if lit.ID == id {
			return lit, true
		}
	}
	return Literal{}, false
}

// Modified returns a copy of the edits of the open file, keyed by the ID the
// literal had when the file was opened.
func (s *Session) Modified() map[string]string {
	out := make(map[string]string, len(s.modified))
	for k, v := range s.modified {
		out[k] = v
	}
	return out
}

// IsModified reports whether the literal with the given current ID has been
// edited since the file was opened or saved.
func (s *Session) IsModified(id string) bool {
	origin, ok := s.origins[id]
	if !ok {
		return false
	}
	_, ok = s.modified[origin]
	return ok
}

// Dirty reports whether any file of the open theme has unsaved edits.
func (s *Session) Dirty() bool { return len(s.unsaved) > 0 }

// DirtyFiles returns the names of files with unsaved edits, sorted.
func (s *Session) DirtyFiles() []string {
	out := make([]string, 0, len(s.unsaved))
	for f := range s.unsaved {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Themes lists the available themes in the given order.
func (s *Session) Themes(mode SortMode) ([]string, error) {
	s.lastErr = nil
	themes, err := s.store.Themes()
	if err != nil {
		return nil, s.fail(fmt.Errorf("list themes: %w", err))
	}
	if len(themes) == 0 {
		return nil, s.fail(ErrNoThemes)
	}
	SortNames(themes, mode, s.themeOpened)
	return themes, nil
}

// OpenTheme makes name the current theme, loading every file into the cache.
// Any open file and its edits are discarded.
func (s *Session) OpenTheme(name string, mode SortMode) ([]string, error) {
	s.lastErr = nil
	if !s.store.Exists(name) {
		return nil, s.fail(fmt.Errorf("open theme %q: %w", name, ErrNoTheme))
	}
	files, err := s.store.Files(name)
	if err != nil {
		return nil, s.fail(fmt.Errorf("open theme %q: %w", name, err))
	}
	cache, err := s.store.ReadAll(name, files)
	if err != nil {
		return nil, s.fail(fmt.Errorf("load theme %q: %w", name, err))
	}
	s.counter++
	s.themeOpened[name] = s.counter
	s.theme = name
	s.files = files
	s.cache = cache
	s.unsaved = make(map[string]bool)
	s.closeFile()
	s.SortFiles(mode)
	s.logger.Debug("opened theme",
		zap.String("theme", name),
		zap.Int("files", len(files)),
		zap.Int("cached", len(cache)))
	return s.Files(), nil
}

// SortFiles reorders the files of the open theme.
func (s *Session) SortFiles(mode SortMode) {
	opened := make(map[string]uint64, len(s.files))
	for _, f := range s.files {
		opened[f] = s.fileOpened[s.theme+"/"+f]
	}
	SortNames(s.files, mode, opened)
}

// OpenFile loads name from the theme cache and scans it. Files whose
// extension is not enabled in the configuration are rejected.
func (s *Session) OpenFile(name string) error {
	s.lastErr = nil
	if s.theme == "" {
		return s.fail(ErrNoTheme)
	}
	if !s.cfg.ExtensionEnabled(name) {
		return s.fail(fmt.Errorf("%w for %s", ErrExtensionDisabled, ExtensionKey(name)))
	}
	content, ok := s.cache[name]
	if !ok {
		return s.fail(fmt.Errorf("open %q: %w", name, ErrFileNotFound))
	}
	s.counter++
	s.fileOpened[s.theme+"/"+name] = s.counter
	s.closeFile()
	s.file = name
	s.setBaseline(content)
	s.logger.Debug("opened file",
		zap.String("theme", s.theme),
		zap.String("file", name),
		zap.Int("literals", len(s.literals)))
	return nil
}

// StartEdit selects the literal with the given ID for replacement.
func (s *Session) StartEdit(id string) (PendingEdit, error) {
	if s.file == "" {
		return PendingEdit{}, s.fail(ErrNoFile)
	}
	lit, ok := s.Lookup(id)
	if !ok {
		return PendingEdit{}, s.fail(fmt.Errorf("edit %s: %w", id, ErrLiteralNotFound))
	}
	edit := PendingEdit{
		ID:       lit.ID,
		File:     s.file,
		Original: lit.Value,
		Text:     lit.Text,
		Format:   DetectFormat(lit.Text),
	}
	s.pending = &edit
	s.logger.Debug("start edit",
		zap.String("id", edit.ID),
		zap.String("text", edit.Text),
		zap.Stringer("format", edit.Format))
	return edit, nil
}

// CancelEdit discards the edit in progress.
func (s *Session) CancelEdit() {
	s.pending = nil
}

// ConfirmEdit replaces the pending literal with c, written in the literal's
// own format, and returns the new literal text. On failure the buffer is
// left unchanged.
func (s *Session) ConfirmEdit(c RGBA) (string, error) {
	if s.pending == nil {
		return "", s.fail(ErrNoPendingEdit)
	}
	edit := *s.pending
	s.pending = nil
	if edit.File != s.file {
		return "", s.fail(fmt.Errorf("edit %s: %w", edit.ID, ErrLiteralNotFound))
	}
	lit, ok := s.Lookup(edit.ID)
	if !ok || lit.Text != edit.Text {
		return "", s.fail(fmt.Errorf("edit %s: %w", edit.ID, ErrLiteralNotFound))
	}

	newText := FormatColor(c, edit.Format)
	content, err := Apply(s.content, lit.Line, lit.StartCol, lit.Text, newText)
	if err != nil {
		return "", s.fail(err)
	}

	origin, ok := s.origins[lit.ID]
	if !ok {
		origin = lit.ID
	}
	s.modified[origin] = newText
	s.setContent(content)
	s.cache[s.file] = content
	s.unsaved[s.file] = true
	s.lastErr = nil

	s.logger.Debug("confirmed edit",
		zap.String("file", s.file),
		zap.String("id", lit.ID),
		zap.String("old", lit.Text),
		zap.String("new", newText))
	if s.journal != nil {
		rec := EditRecord{
			Theme:    s.theme,
			File:     s.file,
			ID:       lit.ID,
			Old:      lit.Text,
			New:      newText,
			EditedAt: s.now(),
		}
		if err := s.journal.Record(rec); err != nil {
			s.logger.Error("record edit", zap.Error(err))
		}
	}
	return newText, nil
}

// Reload re-reads the open file from the store and reapplies the edits made
// since it was opened. Edits that no longer fit the file are dropped and
// reported.
func (s *Session) Reload() error {
	s.lastErr = nil
	if s.file == "" {
		return s.fail(ErrNoFile)
	}
	disk, err := s.store.Read(s.theme, s.file)
	if err != nil {
		return s.fail(fmt.Errorf("reload %q: %w", s.file, err))
	}
	s.pending = nil
	modified := s.modified
	s.setBaseline(disk)

	content, rebuildErr := Rebuild(disk, modified)
	for id, text := range modified {
		if _, ok := s.lookupBaseline(id); ok && !failedEdit(rebuildErr, id) {
			s.modified[id] = text
		}
	}
	s.setContent(content)
	s.cache[s.file] = content
	if len(s.modified) > 0 {
		s.unsaved[s.file] = true
	} else {
		delete(s.unsaved, s.file)
	}
	s.logger.Debug("reloaded file",
		zap.String("file", s.file),
		zap.Int("edits", len(s.modified)),
		zap.Error(rebuildErr))
	if rebuildErr != nil {
		return s.fail(rebuildErr)
	}
	return nil
}

// Save writes the open file buffer back to its theme.
func (s *Session) Save() error {
	s.lastErr = nil
	if s.file == "" {
		return s.fail(ErrNoFile)
	}
	if err := s.store.Write(s.theme, s.file, s.content); err != nil {
		return s.fail(fmt.Errorf("save %q: %w", s.file, err))
	}
	delete(s.unsaved, s.file)
	s.setBaseline(s.content)
	s.logger.Debug("saved file", zap.String("theme", s.theme), zap.String("file", s.file))
	return nil
}

// SaveAsNew copies the open theme to prefix+name, including its backgrounds,
// and writes every cached file, edits included, into the copy. It returns
// the new theme name. The session stays on the current theme.
func (s *Session) SaveAsNew(prefix string) (string, error) {
	s.lastErr = nil
	if s.theme == "" {
		return "", s.fail(ErrNoTheme)
	}
	if prefix == "" {
		prefix = s.cfg.General.SavePrefix
	}
	name := prefix + s.theme
	if s.store.Exists(name) {
		return "", s.fail(fmt.Errorf("save as %q: %w", name, ErrThemeExists))
	}
	if err := s.store.CopyTheme(s.theme, name); err != nil {
		return "", s.fail(fmt.Errorf("save as %q: %w", name, err))
	}
	if err := s.writeCache(name); err != nil {
		return "", s.fail(fmt.Errorf("save as %q: %w", name, err))
	}
	s.unsaved = make(map[string]bool)
	s.logger.Debug("saved theme copy", zap.String("theme", s.theme), zap.String("copy", name))
	return name, nil
}

// OverwriteTheme writes every cached file, edits included, into the open
// theme.
func (s *Session) OverwriteTheme() error {
	s.lastErr = nil
	if s.theme == "" {
		return s.fail(ErrNoTheme)
	}
	if err := s.writeCache(s.theme); err != nil {
		return s.fail(fmt.Errorf("overwrite %q: %w", s.theme, err))
	}
	s.unsaved = make(map[string]bool)
	if s.file != "" {
		s.setBaseline(s.content)
	}
	s.logger.Debug("overwrote theme", zap.String("theme", s.theme))
	return nil
}

func (s *Session) writeCache(theme string) error {
	names := make([]string, 0, len(s.cache))
	for name := range s.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	var errs []error
	for _, name := range names {
		if err := s.store.Write(theme, name, s.cache[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) fail(err error) error {
	s.lastErr = err
	s.logger.Debug("session error", zap.Error(err))
	return err
}

func (s *Session) closeFile() {
	s.file = ""
	s.original = ""
	s.baseline = nil
	s.content = ""
	s.literals = nil
	s.modified = nil
	s.origins = nil
	s.pending = nil
}

// setBaseline makes text the pristine version of the open file and clears
// its edits.
func (s *Session) setBaseline(text string) {
	s.original = text
	s.baseline = Scan(text)
	s.modified = make(map[string]string)
	s.setContent(text)
}

// setContent replaces the buffer, rescans it and maps the new literal IDs
// back to baseline IDs.
func (s *Session) setContent(text string) {
	s.content = text
	s.literals = Scan(text)
	s.origins = trackOrigins(s.baseline, s.modified, s.literals)
}

func (s *Session) lookupBaseline(id string) (Literal, bool) {
	for _, lit := range s.baseline {
		if lit.ID == id {
			return lit, true
		}
	}
	return Literal{}, false
}

// trackOrigins maps each current literal ID to the baseline literal it came
// from. A replacement shifts every later literal on its line by the change
// in length.
func trackOrigins(baseline []Literal, modified map[string]string, current []Literal) map[string]string {
	type shift struct{ col, delta int }
	shifts := make(map[int][]shift)
	for _, lit := range baseline {
		if text, ok := modified[lit.ID]; ok {
			shifts[lit.Line] = append(shifts[lit.Line], shift{lit.StartCol, len(text) - len(lit.Text)})
		}
	}
	live := make(map[string]bool, len(current))
	for _, lit := range current {
		live[lit.ID] = true
	}
	origins := make(map[string]string, len(current))
	for _, lit := range baseline {
		col := lit.StartCol
		for _, sh := range shifts[lit.Line] {
			if sh.col < lit.StartCol {
				col += sh.delta
			}
		}
		if id := LiteralID(lit.Line, col); live[id] {
			origins[id] = lit.ID
		}
	}
	return origins
}

func failedEdit(err error, id string) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var pe PatchError
		return errors.As(err, &pe) && pe.ID == id
	}
	for _, e := range joined.Unwrap() {
		var pe PatchError
		if errors.As(e, &pe) && pe.ID == id {
			return true
		}
	}
	return false
}
