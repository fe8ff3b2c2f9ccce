package printer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type MarkdownPrinter interface {
	Printer
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// NewMarkdownPrinter renders a document titled title with one section per row. The
// first field of a row becomes the section heading, all fields are listed in
// a property table below it.
func NewMarkdownPrinter(w io.Writer, title string, date time.Time) (MarkdownPrinter, error) {
	return &markdownPrinter{
		out:   w,
		title: title,
		date:  date,
	}, nil
}

type markdownPrinter struct {
	rowBuffer
	out   io.Writer
	title string
	date  time.Time
}

func (mp *markdownPrinter) Render() error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\nDate: %s\n", mp.title, mp.date.Format(time.DateOnly))
	for _, row := range mp.rows {
		sb.WriteString("\n## ")
		sb.WriteString(markdownEscaper.Replace(row[0]))
		sb.WriteString("\n\nProperty | Value\n---------|-------\n")
		for ci, val := range row {
			fmt.Fprintf(&sb, "%s | %s\n", markdownEscaper.Replace(mp.column(ci)), markdownEscaper.Replace(val))
		}
	}
	_, err := io.WriteString(mp.out, sb.String())
	return err
}
