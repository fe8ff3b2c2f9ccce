package printer

import (
	"io"
	"strings"
	"time"

	"github.com/tmeckel/m365-cli/internal/text"
)

type TablePrinter interface {
	Printer
}

const columnGap = 2

// NewTablePrinter initializes a table printer with terminal mode and terminal width. When terminal mode is enabled, the
// output will be human-readable, column-formatted to fit available width, and rendered with color support.
// In non-terminal mode, the output is tab-separated and all truncation of values is disabled.
func NewTablePrinter(w io.Writer, isTTY bool, maxWidth int) (TablePrinter, error) {
	return &tablePrinter{
		out:      w,
		isTTY:    isTTY,
		maxWidth: maxWidth,
	}, nil
}

type tablePrinter struct {
	out      io.Writer
	isTTY    bool
	maxWidth int
	header   []string
	rows     [][]tableField
	current  []tableField
}

func (t *tablePrinter) AddColumns(columns ...string) {
	if !t.isTTY {
		return
	}
	for _, c := range columns {
		t.header = append(t.header, strings.ToUpper(c))
	}
}

func (t *tablePrinter) AddField(s string, opts ...FieldOption) {
	f := tableField{
		text:         s,
		truncateFunc: text.Truncate,
	}
	for _, opt := range opts {
		opt(&f)
	}
	t.current = append(t.current, f)
}

func (t *tablePrinter) AddTimeField(now, ts time.Time, c func(string) string) {
	var s string
	if t.isTTY {
		s = text.RelativeTime(now, ts)
	} else {
		s = ts.Format(time.RFC3339)
	}
	t.AddField(s, WithColor(c))
}

func (t *tablePrinter) EndRow() {
	if len(t.current) > 0 {
		t.rows = append(t.rows, t.current)
	}
	t.current = nil
}

func (t *tablePrinter) Render() error {
	rows := t.rows
	if len(t.header) > 0 {
		head := make([]tableField, len(t.header))
		for i, h := range t.header {
			head[i] = tableField{text: h, truncateFunc: text.Truncate}
		}
		rows = append([][]tableField{head}, rows...)
	}
	if len(rows) == 0 {
		return nil
	}

	numCols := 0
	for _, r := range rows {
		numCols = max(numCols, len(r))
	}

	var widths []int
	if t.isTTY {
		widths = t.columnWidths(rows, numCols)
	}

	var sb strings.Builder
	for _, row := range rows {
		for col, f := range row {
			if col > 0 {
				if t.isTTY {
					sb.WriteString(strings.Repeat(" ", columnGap))
				} else {
					sb.WriteByte('\t')
				}
			}
			s := f.text
			if t.isTTY {
				if f.truncateFunc != nil {
					s = f.truncateFunc(widths[col], s)
				}
				if col < len(row)-1 {
					s = text.PadRight(widths[col], s)
				}
				if f.colorFunc != nil {
					s = f.colorFunc(s)
				}
			}
			sb.WriteString(s)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(t.out, sb.String())
	return err
}

// columnWidths fits the natural column widths into maxWidth. Columns that are
// narrower than their fair share keep their width, the rest split what remains.
func (t *tablePrinter) columnWidths(rows [][]tableField, numCols int) []int {
	natural := make([]int, numCols)
	for _, r := range rows {
		for i, f := range r {
			natural[i] = max(natural[i], text.DisplayWidth(f.text))
		}
	}

	available := t.maxWidth - columnGap*(numCols-1)
	total := 0
	for _, w := range natural {
		total += w
	}
	if t.maxWidth <= 0 || total <= available {
		return natural
	}

	widths := make([]int, numCols)
	remaining := numCols
	settled := make([]bool, numCols)
	for changed := true; changed && remaining > 0; {
		changed = false
		share := available / remaining
		for i, w := range natural {
			if !settled[i] && w <= share {
				widths[i] = w
				settled[i] = true
				available -= w
				remaining--
				changed = true
			}
		}
	}
	if remaining > 0 {
		share := max(available/remaining, 1)
		for i := range widths {
			if !settled[i] {
				widths[i] = share
			}
		}
	}
	return widths
}
