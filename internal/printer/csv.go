package printer

import (
	"encoding/csv"
	"io"
)

type CSVPrinter interface {
	Printer
}

// NewCSVPrinter writes a header row with the columns followed by one record per row.
func NewCSVPrinter(w io.Writer) (CSVPrinter, error) {
	return &csvPrinter{out: w}, nil
}

type csvPrinter struct {
	rowBuffer
	out io.Writer
}

func (cp *csvPrinter) Render() error {
	if len(cp.rows) == 0 {
		return nil
	}
	w := csv.NewWriter(cp.out)
	if len(cp.columns) > 0 {
		if err := w.Write(cp.columns); err != nil {
			return err
		}
	}
	if err := w.WriteAll(cp.rows); err != nil {
		return err
	}
	return w.Error()
}
