package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.LanguageDetector = (*Detector)(nil)

// themeFileLexers names the lexer for theme file extensions chroma does not
// recognise, or recognises only for unrelated programs (nginx.conf).
// Hyprland, kitty, btop and icon themes all use key = value lines.
var themeFileLexers = map[string]string{
	".conf":  "INI",
	".theme": "INI",
}

// Detector labels theme files with the chroma lexer that tints them.
type Detector struct {
	aliases map[string]string
}

// NewDetector creates a detector that knows the common theme file
// extensions in addition to chroma's own filename patterns.
func NewDetector() *Detector {
	return &Detector{aliases: themeFileLexers}
}

// DetectFromPath returns the lexer name for path, or "" when no lexer fits.
// Only the base name is considered.
func (d *Detector) DetectFromPath(path string) string {
	name := filepath.Base(path)
	if alias, ok := d.aliases[strings.ToLower(filepath.Ext(name))]; ok {
		if lexer := lexers.Get(alias); lexer != nil {
			return lexer.Config().Name
		}
	}
	lexer := lexers.Match(name)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
