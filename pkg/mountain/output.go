package mountain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shivanshkc/mountain/pkg/utils/miscutils"
)

// Output formats accepted by NewRowWriter.
const (
	FormatPlain    = "plain"
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{FormatPlain, FormatTable, FormatCSV, FormatMarkdown}
}

// RowWriter consumes sweep rows.
//
// EndGroup is called after the last stride of every size. Flush is called once,
// after the whole grid succeeded.
type RowWriter interface {
	WriteRow(row Row) error
	EndGroup() error
	Flush() error
}

// NewRowWriter returns the writer for the format. maxWidth limits the row
// length of rendered tables; zero means unlimited.
func NewRowWriter(format string, w io.Writer, maxWidth int) (RowWriter, error) {
	switch strings.ToLower(format) {
	case FormatPlain:
		return NewPlainWriter(w), nil
	case FormatTable, FormatCSV, FormatMarkdown:
		return NewTableWriter(w, strings.ToLower(format), maxWidth), nil
	default:
		return nil, fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(Formats(), ", "))
	}
}

// PlainWriter writes "<stride> <size> <elapsed_ns>" lines with a blank line
// after each size group, the layout plotting tools expect.
type PlainWriter struct {
	w *bufio.Writer
}

// NewPlainWriter creates a PlainWriter. Output is flushed at the end of every group.
func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: bufio.NewWriter(w)}
}

// WriteRow implements RowWriter.
func (p *PlainWriter) WriteRow(row Row) error {
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", row.Stride, row.Size, row.Nanoseconds)
	return err
}

// EndGroup implements RowWriter.
func (p *PlainWriter) EndGroup() error {
	if err := p.w.WriteByte('\n'); err != nil {
		return err
	}
	return p.w.Flush()
}

// Flush implements RowWriter.
func (p *PlainWriter) Flush() error {
	return p.w.Flush()
}

// TableWriter collects the whole sweep and renders a size by stride matrix of
// latencies when flushed.
type TableWriter struct {
	w        io.Writer
	format   string
	maxWidth int

	groups  [][]Row
	current []Row
}

// NewTableWriter creates a TableWriter rendering as table, csv or markdown.
func NewTableWriter(w io.Writer, format string, maxWidth int) *TableWriter {
	return &TableWriter{w: w, format: format, maxWidth: maxWidth}
}

// WriteRow implements RowWriter.
func (t *TableWriter) WriteRow(row Row) error {
	t.current = append(t.current, row)
	return nil
}

// EndGroup implements RowWriter.
func (t *TableWriter) EndGroup() error {
	if len(t.current) > 0 {
		t.groups = append(t.groups, t.current)
		t.current = nil
	}
	return nil
}

// Flush implements RowWriter.
func (t *TableWriter) Flush() error {
	if len(t.groups) == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	if t.maxWidth > 0 {
		tw.SetAllowedRowLength(t.maxWidth)
	}

	// Every group covers the same strides, so the first one defines the columns.
	header := table.Row{"size \\ stride"}
	for _, row := range t.groups[0] {
		header = append(header, row.Stride)
	}
	tw.AppendHeader(header)

	for _, group := range t.groups {
		line := table.Row{miscutils.FormatBytes(group[0].Size)}
		for _, row := range group {
			line = append(line, row.Nanoseconds)
		}
		tw.AppendRow(line)
	}

	var rendered string
	switch t.format {
	case FormatCSV:
		rendered = tw.RenderCSV()
	case FormatMarkdown:
		rendered = tw.RenderMarkdown()
	default:
		rendered = tw.Render()
	}

	_, err := fmt.Fprintln(t.w, rendered)
	return err
}
