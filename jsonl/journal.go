// Package jsonl provides the JSONL edit journal.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/themepatch"
)

// Compile-time interface verification.
var _ themepatch.EditJournal = (*Journal)(nil)

// DefaultFileName is the journal file name inside the state directory.
const DefaultFileName = "edits.jsonl"

// maxLineSize is the maximum size for a single JSONL line (1MB).
const maxLineSize = 1024 * 1024

// Journal appends EditRecord values to a JSONL file.
type Journal struct {
	path string
}

// NewJournal creates a Journal writing to path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Record appends rec to the journal, creating parent directories if needed.
func (j *Journal) Record(rec themepatch.EditRecord) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}

// Load reads every record in the journal. Returns an empty slice if the file
// doesn't exist.
func (j *Journal) Load() ([]themepatch.EditRecord, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []themepatch.EditRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec themepatch.EditRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
