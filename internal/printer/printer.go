// Package printer renders rows of fields as tables, key/value lists, CSV or
// markdown documents.
package printer

import (
	"fmt"
	"time"
)

type UnsupportedPrinterError struct {
	ptype string
}

func (e *UnsupportedPrinterError) Error() string {
	return fmt.Sprintf("unsupported printer type %s", e.ptype)
}

func NewUnsupportedPrinterError(ptype string) error {
	return &UnsupportedPrinterError{
		ptype: ptype,
	}
}

type Printer interface {
	AddColumns(columns ...string)
	AddField(string, ...FieldOption)
	AddTimeField(now, t time.Time, c func(string) string)
	EndRow()
	Render() error
}

type tableField struct {
	text         string
	truncateFunc func(int, string) string
	colorFunc    func(string) string
}

type FieldOption func(*tableField)

// WithTruncate overrides the truncation function for the field. The function should transform a string
// argument into a string that fits within the given display width. The default behavior is to truncate the
// value by adding "..." in the end. Pass nil to disable truncation for this value.
func WithTruncate(fn func(int, string) string) FieldOption {
	return func(f *tableField) {
		f.truncateFunc = fn
	}
}

// WithColor sets the color function for the field. The function should transform a string value by wrapping
// it in ANSI escape codes. The color function will not be used if the table was initialized in non-terminal mode.
func WithColor(fn func(string) string) FieldOption {
	return func(f *tableField) {
		f.colorFunc = fn
	}
}

// rowBuffer collects fields row by row for printers that render at the end.
type rowBuffer struct {
	columns []string
	rows    [][]string
	current []string
}

func (b *rowBuffer) AddColumns(columns ...string) {
	b.columns = append(b.columns, columns...)
}

func (b *rowBuffer) AddField(s string, _ ...FieldOption) {
	b.current = append(b.current, s)
}

func (b *rowBuffer) AddTimeField(_, t time.Time, _ func(string) string) {
	b.AddField(t.Format(time.RFC3339))
}

func (b *rowBuffer) EndRow() {
	if len(b.current) > 0 {
		b.rows = append(b.rows, b.current)
	}
	b.current = nil
}

func (b *rowBuffer) column(i int) string {
	if i < len(b.columns) {
		return b.columns[i]
	}
	return fmt.Sprintf("col%d", i)
}
