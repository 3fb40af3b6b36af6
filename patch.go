package themepatch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PatchReason identifies why a patch could not be applied.
type PatchReason string

// Patch error reasons.
const (
	ErrLineNotFound     PatchReason = "line_not_found"
	ErrColumnOutOfRange PatchReason = "column_out_of_range"
	ErrSpanMismatch     PatchReason = "span_mismatch"
)

// PatchError describes a replacement that was rejected. The text it targeted
// is left untouched.
type PatchError struct {
	Reason PatchReason
	ID     string // Literal identifier, empty for direct Apply calls
	Line   int
	Column int
	Old    string // Expected text at the span
}

// Error implements the error interface.
func (e PatchError) Error() string {
	prefix := ""
	if e.ID != "" {
		prefix = fmt.Sprintf("literal %s: ", e.ID)
	}
	switch e.Reason {
	case ErrLineNotFound:
		return fmt.Sprintf("%sline %d not found", prefix, e.Line)
	case ErrColumnOutOfRange:
		return fmt.Sprintf("%scolumn %d out of range on line %d", prefix, e.Column, e.Line)
	case ErrSpanMismatch:
		return fmt.Sprintf("%stext at line %d column %d does not match %q", prefix, e.Line, e.Column, e.Old)
	default:
		return fmt.Sprintf("%sunknown patch error at line %d column %d", prefix, e.Line, e.Column)
	}
}

// Apply replaces oldText with newText at the given line and byte column.
// On failure the original text is returned together with a PatchError.
// Bytes outside the span, line endings included, are preserved.
func Apply(text string, line, startCol int, oldText, newText string) (string, error) {
	start, end, ok := lineBounds(text, line)
	if !ok {
		return text, PatchError{Reason: ErrLineNotFound, Line: line, Column: startCol, Old: oldText}
	}
	lineLen := end - start
	if startCol < 0 || startCol >= lineLen {
		return text, PatchError{Reason: ErrColumnOutOfRange, Line: line, Column: startCol, Old: oldText}
	}
	if startCol+len(oldText) > lineLen {
		return text, PatchError{Reason: ErrSpanMismatch, Line: line, Column: startCol, Old: oldText}
	}
	at := start + startCol
	if text[at:at+len(oldText)] != oldText {
		return text, PatchError{Reason: ErrSpanMismatch, Line: line, Column: startCol, Old: oldText}
	}
	var sb strings.Builder
	sb.Grow(len(text) - len(oldText) + len(newText))
	sb.WriteString(text[:at])
	sb.WriteString(newText)
	sb.WriteString(text[at+len(oldText):])
	return sb.String(), nil
}

// Rebuild reapplies a set of literal replacements, keyed by literal ID, to
// pristine text. Literal lengths come from a fresh scan of original.
//
// Replacements are applied from the end of the text backwards so that no
// replacement shifts the position of one still pending. Replacements that
// cannot be applied are skipped and reported together; the rest are kept.
func Rebuild(original string, edits map[string]string) (string, error) {
	if len(edits) == 0 {
		return original, nil
	}
	byID := make(map[string]Literal)
	for _, lit := range Scan(original) {
		byID[lit.ID] = lit
	}

	type target struct {
		id        string
		line, col int
		newText   string
	}
	targets := make([]target, 0, len(edits))
	var errs []error
	for id, newText := range edits {
		line, col, ok := ParseLiteralID(id)
		if !ok {
			errs = append(errs, PatchError{Reason: ErrSpanMismatch, ID: id, Line: -1, Column: -1})
			continue
		}
		targets = append(targets, target{id: id, line: line, col: col, newText: newText})
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].line != targets[j].line {
			return targets[i].line > targets[j].line
		}
		return targets[i].col > targets[j].col
	})

	result := original
	for _, t := range targets {
		lit, found := byID[t.id]
		if !found {
			errs = append(errs, missingLiteral(result, t.id, t.line, t.col))
			continue
		}
		patched, err := Apply(result, t.line, t.col, lit.Text, t.newText)
		if err != nil {
			var pe PatchError
			if errors.As(err, &pe) {
				pe.ID = t.id
				err = pe
			}
			errs = append(errs, err)
			continue
		}
		result = patched
	}
	return result, errors.Join(errs...)
}

// missingLiteral reports an ID that names no literal of the original text.
func missingLiteral(text, id string, line, col int) PatchError {
	start, end, ok := lineBounds(text, line)
	switch {
	case !ok:
		return PatchError{Reason: ErrLineNotFound, ID: id, Line: line, Column: col}
	case col >= end-start:
		return PatchError{Reason: ErrColumnOutOfRange, ID: id, Line: line, Column: col}
	default:
		return PatchError{Reason: ErrSpanMismatch, ID: id, Line: line, Column: col}
	}
}

// lineBounds returns the byte range of the given zero-based line, excluding
// its terminating newline.
func lineBounds(text string, line int) (start, end int, ok bool) {
	if line < 0 {
		return 0, 0, false
	}
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return 0, 0, false
		}
		start += nl + 1
	}
	end = strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return start, len(text), true
	}
	return start, start + end, true
}
