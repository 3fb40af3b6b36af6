// Package themepatch provides domain types for detecting and rewriting
// colour literals inside theme configuration files.
package themepatch

import "time"

// ThemeStore provides access to theme directories and the files inside them.
type ThemeStore interface {
	// Themes returns the names of the theme directories, hidden ones excluded.
	Themes() ([]string, error)
	// Files returns the editable file names inside a theme.
	Files(theme string) ([]string, error)
	// Read returns the content of a single file.
	Read(theme, file string) (string, error)
	// ReadAll returns the content of the given files keyed by file name.
	// Files that cannot be read are left out of the result.
	ReadAll(theme string, files []string) (map[string]string, error)
	// Write replaces the content of a single file.
	Write(theme, file, content string) error
	// CopyTheme creates dst and copies the backgrounds folder of src into it.
	CopyTheme(src, dst string) error
	// Exists reports whether the theme directory exists.
	Exists(theme string) bool
}

// ConfigStore loads and persists the application configuration.
type ConfigStore interface {
	// Load returns the stored configuration and the path it was read from.
	// The path is empty when defaults were used.
	Load() (*Config, string, error)
	Save(cfg *Config) error
}

// EditRecord describes one confirmed colour edit.
type EditRecord struct {
	Theme    string    `json:"theme"`
	File     string    `json:"file"`
	ID       string    `json:"id"`
	Old      string    `json:"old"`
	New      string    `json:"new"`
	EditedAt time.Time `json:"edited_at"`
}

// EditJournal keeps an append-only trail of confirmed edits.
type EditJournal interface {
	Record(rec EditRecord) error
}

// LanguageDetector determines the language of a file from its path.
type LanguageDetector interface {
	// DetectFromPath returns the language name for the given path,
	// or an empty string if the language cannot be determined.
	DetectFromPath(path string) string
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// Differ renders the difference between two versions of a file.
type Differ interface {
	// Diff returns a unified diff, or an empty string when old equals new.
	Diff(name, old, new string) string
}
