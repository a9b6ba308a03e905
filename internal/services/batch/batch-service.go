// Package batch is the file run mode: read an observation table, run the
// pipeline over every row, write the table back with the derived columns.
package batch

import (
	"fmt"
	"log"
	"os"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
	"github.com/agrisense/cwsi-eta/internal/tabular"
)

// Service describes one batch run.
type Service struct {
	InputPath  string
	OutputPath string
	Runner     tabular.Runner
}

// Run processes InputPath into OutputPath. Nothing is written when the run
// fails, so a schema fault or a fatal row leaves no partial output behind.
func (s *Service) Run() error {
	in, err := os.Open(s.InputPath)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	defer in.Close()

	table, err := tabular.ReadCSV(in)
	if err != nil {
		return err
	}
	log.Printf("batch: read %d rows from %s", table.Len(), s.InputPath)

	var warnings int
	runner := s.Runner
	if runner.Warn == nil {
		runner.Warn = func(row int, w cwsi.RangeWarning) {
			warnings++
			log.Printf("batch: row %d: %s", row, w)
		}
	}

	out, err := runner.Run(table)
	if err != nil {
		return err
	}

	f, err := os.Create(s.OutputPath)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	defer f.Close()
	if err := tabular.WriteCSV(f, out); err != nil {
		return err
	}

	log.Printf("batch: wrote %d rows (%d warnings) to %s", out.Len(), warnings, s.OutputPath)
	return nil
}
