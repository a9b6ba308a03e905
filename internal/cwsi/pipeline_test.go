package cwsi

import (
	"errors"
	"math"
	"testing"
)

// Reference scenario: dense canopy on a warm afternoon.
var refObs = Observation{
	Nir:     0.6,
	Red:     0.1,
	TSensor: 30,
	RH:      50,
	Ta:      25,
	ETc:     5,
}

func TestRunReferenceScenario(t *testing.T) {
	p := DefaultParams()
	res, err := Run(refObs, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	// re-derive every stage independently from the closed forms
	ndvi := (0.6 - 0.1) / (0.6 + 0.1)
	scaled := (ndvi - p.NDVIMin) / (p.NDVIMax - p.NDVIMin)
	fr := scaled * scaled
	eps := fr*p.VegEmissivity + (1-fr)*p.SoilEmissivity
	tTarget := math.Pow((math.Pow(30, 4)-(1-eps)*math.Pow(p.TBackground, 4))/eps, 0.25)
	esat := 0.6108 * math.Exp(17.27*25/(25+237.3))
	ea := 50 * esat / 100
	vpd := esat - ea
	vpg := esat - 0.6108*math.Exp(17.27*(25+3.11)/((25+3.11)+237.3))
	dTMin := 3.11 - 1.97*vpd
	dTMax := 3.11 - 1.97*vpg
	cwsi := ((tTarget - 25) - dTMin) / (dTMax - dTMin)
	eta := (1 - cwsi) * 5

	steps := []struct {
		name      string
		got, want float64
	}{
		{"NDVI", res.NDVI, ndvi},
		{"NDVI_scaled", res.NDVIScaled, scaled},
		{"Fr", res.Fr, fr},
		{"target_emissivity", res.Emissivity, eps},
		{"T_target", res.TTarget, tTarget},
		{"esat", res.Esat, esat},
		{"ea", res.Ea, ea},
		{"VPD", res.VPD, vpd},
		{"VPG", res.VPG, vpg},
		{"dTmin", res.DTMin, dTMin},
		{"dTmax", res.DTMax, dTMax},
		{"CWSI", res.CWSI, cwsi},
		{"ETa", res.ETa, eta},
	}
	for _, s := range steps {
		if math.Abs(s.got-s.want) > 1e-9 {
			t.Errorf("%s = %.12g, want %.12g", s.name, s.got, s.want)
		}
	}

	if math.Abs(res.NDVI-0.7142857142857143) > 1e-9 {
		t.Errorf("NDVI = %.16g, want 0.7142857142857143", res.NDVI)
	}
	if math.IsNaN(res.CWSI) || math.IsInf(res.CWSI, 0) {
		t.Errorf("CWSI = %g, want finite", res.CWSI)
	}
	if math.IsNaN(res.ETa) || math.IsInf(res.ETa, 0) {
		t.Errorf("ETa = %g, want finite", res.ETa)
	}
}

func TestRunClampsCoverAndWarns(t *testing.T) {
	// NDVI = 0.95 > NDVIMax, so scaled NDVI > 1 and pre-clamp Fr > 1
	obs := refObs
	obs.Nir = 0.975
	obs.Red = 0.025

	res, err := Run(obs, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Fr != 1 {
		t.Errorf("Fr = %g, want clamped to 1", res.Fr)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", res.Warnings)
	}
	w := res.Warnings[0]
	if w.Quantity != "Fr" || w.Bound != 1 || w.Value <= 1 {
		t.Errorf("warning = %+v, want pre-clamp Fr > 1 clamped to 1", w)
	}
}

func TestRunNegativeRadicand(t *testing.T) {
	// sparse cover keeps emissivity near soil, so the reflected -15 degC
	// background term dominates a cool canopy reading and the Celsius
	// fourth-power radicand goes negative
	obs := Observation{Nir: 0.3, Red: 0.25, TSensor: 2, RH: 50, Ta: 5, ETc: 3}
	_, err := Run(obs, DefaultParams())
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DomainError from temperature correction", err)
	}
	if de.Stage != "CorrectTargetTemperature" {
		t.Errorf("stage = %q, want CorrectTargetTemperature", de.Stage)
	}
}

func TestRunParamsAreSingleSourceOfTruth(t *testing.T) {
	p := DefaultParams()
	p.TBackground = 0 // no reflected radiance term

	res, err := Run(refObs, p)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(math.Pow(30, 4)/res.Emissivity, 0.25)
	if math.Abs(res.TTarget-want) > 1e-9 {
		t.Errorf("T_target with TBackground=0 = %g, want %g", res.TTarget, want)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(refObs, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(refObs, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if a.CWSI != b.CWSI || a.ETa != b.ETa || a.TTarget != b.TTarget {
		t.Error("identical observations produced different results")
	}
}
