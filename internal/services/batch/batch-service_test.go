package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
	"github.com/agrisense/cwsi-eta/internal/tabular"
)

const inputCSV = "plot,R_nir,R_red,T_target,RH,Air Temp,ETc\n" +
	"p1,0.6,0.1,30,50,25,5\n" +
	"p2,0.55,0.12,31,45,26,5.2\n"

func writeInput(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return in, filepath.Join(dir, "out.csv")
}

func TestServiceRun(t *testing.T) {
	in, out := writeInput(t, inputCSV)
	svc := &Service{
		InputPath:  in,
		OutputPath: out,
		Runner:     tabular.Runner{Params: cwsi.DefaultParams()},
	}
	if err := svc.Run(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(raw), "\n", 2)[0]
	for _, name := range tabular.ResultColumns {
		if !strings.Contains(header, name) {
			t.Errorf("output header %q missing column %s", header, name)
		}
	}
	if got := strings.Count(strings.TrimSpace(string(raw)), "\n"); got != 2 {
		t.Errorf("output has %d data rows, want 2", got)
	}
}

func TestServiceRunSchemaFaultWritesNothing(t *testing.T) {
	// RH column missing: the run must fail before producing any output
	in, out := writeInput(t, "plot,R_nir,R_red,T_target,Air Temp,ETc\np1,0.6,0.1,30,25,5\n")
	svc := &Service{
		InputPath:  in,
		OutputPath: out,
		Runner:     tabular.Runner{Params: cwsi.DefaultParams()},
	}
	err := svc.Run()
	var se *tabular.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output file exists despite schema failure")
	}
}
