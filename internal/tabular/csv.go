package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV loads a whole table from r. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("tabular: empty input, no header")
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: read header: %w", err)
	}
	t, err := New(header)
	if err != nil {
		return nil, err
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tabular: read row %d: %w", t.Len(), err)
		}
		if err := t.AppendRow(rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteCSV writes the whole table to w, header first.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return fmt.Errorf("tabular: write header: %w", err)
	}
	for i, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("tabular: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
