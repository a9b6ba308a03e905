package tabular

import (
	"fmt"
	"math"
	"strconv"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
)

// Columns names the input columns the pipeline reads. Empty fields fall back
// to the reference defaults.
type Columns struct {
	Nir     string
	Red     string
	TSensor string
	RH      string
	Ta      string
	ETc     string
}

// DefaultColumns returns the reference column names.
func DefaultColumns() Columns {
	return Columns{
		Nir:     "R_nir",
		Red:     "R_red",
		TSensor: "T_target",
		RH:      "RH",
		Ta:      "Air Temp",
		ETc:     "ETc",
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Nir == "" {
		c.Nir = d.Nir
	}
	if c.Red == "" {
		c.Red = d.Red
	}
	if c.TSensor == "" {
		c.TSensor = d.TSensor
	}
	if c.RH == "" {
		c.RH = d.RH
	}
	if c.Ta == "" {
		c.Ta = d.Ta
	}
	if c.ETc == "" {
		c.ETc = d.ETc
	}
	return c
}

// SchemaError reports a missing or non-numeric required column. It is raised
// during validation, before any row is computed, and fails the whole run.
type SchemaError struct {
	Column string
	Row    int // -1 when the column itself is missing
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("tabular: required column %q missing", e.Column)
	}
	return fmt.Sprintf("tabular: column %q row %d not numeric: %v", e.Column, e.Row, e.Err)
}

// RowError identifies the row whose observation put a pipeline stage outside
// its domain.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("tabular: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// RowPolicy decides what a per-row DomainError does to the batch.
type RowPolicy string

const (
	// FailOnRowError aborts the whole batch; no output table is produced.
	// This is the default: a silent sentinel would mask sensor faults.
	FailOnRowError RowPolicy = "fail"
	// NaNOnRowError writes NaN in the derived columns for the offending row
	// and keeps going.
	NaNOnRowError RowPolicy = "nan"
)

// ResultColumns is the fixed set and order of columns the runner appends.
var ResultColumns = []string{
	"NDVI", "NDVI_scaled", "Fr", "target_emissivity", "T_target_corr",
	"VPD", "VPG", "dTmin", "dTmax", "CWSI", "ETa",
}

// Runner applies the pipeline independently to every row of a table.
type Runner struct {
	Params  cwsi.Params
	Columns Columns
	Policy  RowPolicy

	// Warn observes each range warning as (row, warning); nil disables.
	Warn func(row int, w cwsi.RangeWarning)
}

// Run validates the schema, computes the chain for each row in order, and
// returns the input table with the ResultColumns appended. The input table
// is never mutated. Row count and order always match the input.
func (r Runner) Run(t *Table) (*Table, error) {
	cols := r.Columns.withDefaults()
	policy := r.Policy
	if policy == "" {
		policy = FailOnRowError
	}

	required := []string{cols.Nir, cols.Red, cols.TSensor, cols.RH, cols.Ta, cols.ETc}
	idx := make([]int, len(required))
	for i, name := range required {
		j, ok := t.Column(name)
		if !ok {
			return nil, &SchemaError{Column: name, Row: -1}
		}
		idx[i] = j
	}

	// parse everything up front so a schema fault surfaces before any row
	// is computed
	obs := make([]cwsi.Observation, t.Len())
	for row := 0; row < t.Len(); row++ {
		vals := make([]float64, len(idx))
		for i, col := range idx {
			v, err := t.Float(row, col)
			if err != nil {
				return nil, &SchemaError{Column: required[i], Row: row, Err: err}
			}
			vals[i] = v
		}
		obs[row] = cwsi.Observation{
			Nir: vals[0], Red: vals[1], TSensor: vals[2],
			RH: vals[3], Ta: vals[4], ETc: vals[5],
		}
	}

	derived := make([][]string, len(ResultColumns))
	for i := range derived {
		derived[i] = make([]string, t.Len())
	}

	for row := range obs {
		res, err := cwsi.Run(obs[row], r.Params)
		if err != nil {
			if policy == FailOnRowError {
				return nil, &RowError{Row: row, Err: err}
			}
			for i := range derived {
				derived[i][row] = formatCell(math.NaN())
			}
			continue
		}
		for _, w := range res.Warnings {
			if r.Warn != nil {
				r.Warn(row, w)
			}
		}
		for i, v := range resultValues(res) {
			derived[i][row] = formatCell(v)
		}
	}

	out := t.Clone()
	for i, name := range ResultColumns {
		if err := out.AddColumn(name, derived[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resultValues orders the derived quantities to match ResultColumns. esat
// and ea stay internal, as in the reference output layout.
func resultValues(res cwsi.Result) []float64 {
	return []float64{
		res.NDVI, res.NDVIScaled, res.Fr, res.Emissivity, res.TTarget,
		res.VPD, res.VPG, res.DTMin, res.DTMax, res.CWSI, res.ETa,
	}
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
