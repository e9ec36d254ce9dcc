// Package output renders solo machine results for a human operator: bold headlines,
// highlighted single-line milestones and key/value tables.
package output

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora/v4"
	"github.com/olekukonko/tablewriter"
)

// Row is a single key/value line of a table.
type Row struct {
	Key   string
	Value string
}

// NewRow formats the value with %v.
func NewRow(key string, value interface{}) Row {
	return Row{Key: key, Value: fmt.Sprintf("%v", value)}
}

// Sink writes rendered output to an io.Writer. It is not safe for concurrent use;
// a single renderer owns it.
type Sink struct {
	w  io.Writer
	au *aurora.Aurora
}

// NewSink creates a sink writing to w. With ColorAuto, colors are enabled only if w is
// a terminal.
func NewSink(w io.Writer, choice ColorChoice) *Sink {
	return &Sink{
		w:  w,
		au: aurora.New(aurora.WithColors(choice.enabled(w))),
	}
}

// Headline prints a bold line followed by an empty line, introducing a table.
func (s *Sink) Headline(text string) error {
	_, err := fmt.Fprintf(s.w, "%s\n\n", s.au.Bold(text))
	if err != nil {
		return fmt.Errorf("unable to write headline: %w", err)
	}
	return nil
}

// Line prints a single highlighted milestone line.
func (s *Sink) Line(text string) error {
	_, err := fmt.Fprintf(s.w, "%s\n", s.au.Bold(text))
	if err != nil {
		return fmt.Errorf("unable to write line: %w", err)
	}
	return nil
}

// Table prints the rows as a two column bordered table, keys highlighted.
func (s *Sink) Table(rows ...Row) error {
	cw := &errWriter{w: s.w}
	table := tablewriter.NewWriter(cw)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(true)
	for _, row := range rows {
		table.Append([]string{s.au.Cyan(row.Key).String(), row.Value})
	}
	table.Render()
	if cw.err != nil {
		return fmt.Errorf("unable to print table: %w", cw.err)
	}
	return nil
}

// errWriter keeps the first write error, since tablewriter discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	if err != nil {
		c.err = err
	}
	return n, err
}

// Raw writes data unchanged, for machine readable output.
func (s *Sink) Raw(data []byte) error {
	_, err := s.w.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
