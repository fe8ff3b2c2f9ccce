package printer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tmeckel/m365-cli/internal/text"
)

// ListPrinter prints data as a list of key/value lines per object, separated by a blank line.
type ListPrinter interface {
	Printer
}

func NewListPrinter(w io.Writer) (ListPrinter, error) {
	return &listPrinter{out: w}, nil
}

type listPrinter struct {
	rowBuffer
	out io.Writer
}

var _ ListPrinter = &listPrinter{}

func (lp *listPrinter) AddTimeField(now, t time.Time, c func(string) string) {
	lp.AddField(text.RelativeTime(now, t))
}

func (lp *listPrinter) Render() error {
	var sb strings.Builder
	for ri, row := range lp.rows {
		if ri > 0 {
			sb.WriteByte('\n')
		}
		for ci, val := range row {
			fmt.Fprintf(&sb, "%s: %s\n", lp.column(ci), val)
		}
	}
	_, err := io.WriteString(lp.out, sb.String())
	return err
}
