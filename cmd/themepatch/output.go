package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an unsupported --output value.
var ErrUnknownFormat = errors.New("unsupported output format")

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

// tableFormatter writes aligned text columns.
type tableFormatter struct {
	w *tabwriter.Writer
}

func newTableFormatter(w io.Writer) *tableFormatter {
	return &tableFormatter{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (t *tableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.w, strings.Join(columns, "\t"))
}

func (t *tableFormatter) Row(values ...string) {
	fmt.Fprintln(t.w, strings.Join(values, "\t"))
}

func (t *tableFormatter) Flush() error {
	return t.w.Flush()
}

// outputResults writes data as JSON or YAML, or calls text with a table
// formatter for plain text output.
func outputResults(w io.Writer, format string, data any, text func(*tableFormatter)) error {
	switch outputFormat(strings.ToLower(format)) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		if text == nil {
			_, err := fmt.Fprintf(w, "%v\n", data)
			return err
		}
		tf := newTableFormatter(w)
		text(tf)
		return tf.Flush()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
