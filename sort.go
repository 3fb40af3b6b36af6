package themepatch

import (
	"sort"
	"strings"
)

// SortMode selects how theme and file lists are ordered.
type SortMode int

// Sort modes.
const (
	SortByLastOpened SortMode = iota
	SortByName
	SortByExtension
)

// String returns the label shown for the mode.
func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByExtension:
		return "extension"
	case SortByLastOpened:
		return "last opened"
	default:
		return "unknown"
	}
}

// Next cycles to the following mode.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// ParseSortMode resolves a mode from its name. Unknown names yield
// SortByLastOpened and false.
func ParseSortMode(s string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName, true
	case "extension", "ext", "color":
		return SortByExtension, true
	case "last", "last-opened", "last opened", "recent":
		return SortByLastOpened, true
	default:
		return SortByLastOpened, false
	}
}

// SortNames orders names in place. lastOpened maps a name to a counter that
// grows each time the name is opened; names never opened count as zero.
func SortNames(names []string, mode SortMode, lastOpened map[string]uint64) {
	switch mode {
	case SortByName:
		sort.SliceStable(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
	case SortByExtension:
		sort.SliceStable(names, func(i, j int) bool {
			return Extension(names[i]) < Extension(names[j])
		})
	case SortByLastOpened:
		sort.SliceStable(names, func(i, j int) bool {
			return lastOpened[names[i]] > lastOpened[names[j]]
		})
	}
}
