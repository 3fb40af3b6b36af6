// Package udiff renders unified diffs of unsaved theme changes.
package udiff

import (
	udifflib "github.com/aymanbagabas/go-udiff"
	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.Differ = (*Differ)(nil)

// Differ produces unified diffs with go-udiff.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff returns a unified diff of old and new labelled with name, or an empty
// string when they are equal.
func (d *Differ) Diff(name, old, new string) string {
	if old == new {
		return ""
	}
	return udifflib.Unified("a/"+name, "b/"+name, old, new)
}
