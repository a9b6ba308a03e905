package tabular

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableBasics(t *testing.T) {
	tb, err := New([]string{"plot", "R_nir", "R_red"})
	if err != nil {
		t.Fatal(err)
	}
	if err := tb.AppendRow([]string{"p1", "0.6", "0.1"}); err != nil {
		t.Fatal(err)
	}
	if err := tb.AppendRow([]string{"p2", "0.5"}); err == nil {
		t.Error("short row accepted, want arity error")
	}
	if tb.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tb.Len())
	}
	col, ok := tb.Column("R_nir")
	if !ok || col != 1 {
		t.Fatalf("Column(R_nir) = %d, %v", col, ok)
	}
	v, err := tb.Float(0, col)
	if err != nil || v != 0.6 {
		t.Fatalf("Float = %g, %v", v, err)
	}
	if _, err := tb.Float(0, 0); err == nil {
		t.Error("Float on plot id: want parse error")
	}
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	if _, err := New([]string{"a", "b", "a"}); err == nil {
		t.Error("duplicate header accepted")
	}
}

func TestAddColumn(t *testing.T) {
	tb, _ := New([]string{"a"})
	_ = tb.AppendRow([]string{"1"})
	_ = tb.AppendRow([]string{"2"})

	if err := tb.AddColumn("b", []string{"x"}); err == nil {
		t.Error("column shorter than table accepted")
	}
	if err := tb.AddColumn("b", []string{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if got := tb.Cell(1, 1); got != "y" {
		t.Errorf("Cell(1,1) = %q, want y", got)
	}
	if err := tb.AddColumn("b", []string{"x", "y"}); err == nil {
		t.Error("duplicate AddColumn accepted")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tb, _ := New([]string{"a"})
	_ = tb.AppendRow([]string{"1"})
	cp := tb.Clone()
	_ = cp.AddColumn("b", []string{"2"})
	if len(tb.Header()) != 1 {
		t.Error("mutating the clone changed the original header")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := "plot,R_nir,Air Temp\np1,0.6,25\np2,0.55,24.5\n"
	tb, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tb.Len())
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tb); err != nil {
		t.Fatal(err)
	}
	if buf.String() != in {
		t.Errorf("round trip changed content:\n got %q\nwant %q", buf.String(), in)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("empty input accepted")
	}
}
