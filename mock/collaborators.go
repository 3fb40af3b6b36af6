package mock

import "github.com/fwojciec/themepatch"

// Compile-time interface verification.
var (
	_ themepatch.EditJournal      = (*EditJournal)(nil)
	_ themepatch.LanguageDetector = (*LanguageDetector)(nil)
	_ themepatch.Clipboard        = (*Clipboard)(nil)
	_ themepatch.Differ           = (*Differ)(nil)
	_ themepatch.Tokenizer        = (*Tokenizer)(nil)
)

// EditJournal is a mock implementation of themepatch.EditJournal.
type EditJournal struct {
	RecordFn func(rec themepatch.EditRecord) error
}

func (j *EditJournal) Record(rec themepatch.EditRecord) error {
	return j.RecordFn(rec)
}

// LanguageDetector is a mock implementation of themepatch.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}

// Clipboard is a mock implementation of themepatch.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Differ is a mock implementation of themepatch.Differ.
type Differ struct {
	DiffFn func(name, old, new string) string
}

func (d *Differ) Diff(name, old, new string) string {
	return d.DiffFn(name, old, new)
}

// Tokenizer is a mock implementation of themepatch.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []themepatch.Token
}

func (t *Tokenizer) Tokenize(language, source string) []themepatch.Token {
	return t.TokenizeFn(language, source)
}
