// Package clipboard provides clipboard operations via the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/themepatch"
)

// Ensure System implements the Clipboard interface.
var _ themepatch.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// System implements Clipboard using the platform clipboard tools
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(content)
}
