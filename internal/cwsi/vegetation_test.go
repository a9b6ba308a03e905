package cwsi

import (
	"errors"
	"math"
	"testing"
)

func TestNDVI(t *testing.T) {
	cases := []struct {
		name     string
		nir, red float64
		want     float64
	}{
		{"dense canopy", 0.6, 0.1, 5.0 / 7.0},
		{"bare soil", 0.3, 0.25, 0.05 / 0.55},
		{"equal bands", 0.4, 0.4, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NDVI(c.nir, c.red)
			if err != nil {
				t.Fatalf("NDVI(%g, %g): %v", c.nir, c.red, err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("NDVI(%g, %g) = %g, want %g", c.nir, c.red, got, c.want)
			}
		})
	}
}

func TestNDVIAntisymmetry(t *testing.T) {
	pairs := [][2]float64{{0.6, 0.1}, {0.8, 0.05}, {0.33, 0.52}}
	for _, p := range pairs {
		a, err := NDVI(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		b, err := NDVI(p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(a+b) > 1e-9 {
			t.Errorf("NDVI(%g,%g) = %g, NDVI(%g,%g) = %g; want negation", p[0], p[1], a, p[1], p[0], b)
		}
	}
}

func TestNDVIBounded(t *testing.T) {
	// non-negative reflectances keep NDVI inside [-1, 1]
	for _, p := range [][2]float64{{0, 0.5}, {0.5, 0}, {0.01, 0.99}, {1, 1}} {
		got, err := NDVI(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		if got < -1 || got > 1 {
			t.Errorf("NDVI(%g, %g) = %g, outside [-1,1]", p[0], p[1], got)
		}
	}
}

func TestNDVIZeroDenominator(t *testing.T) {
	_, err := NDVI(0, 0)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("NDVI(0, 0) err = %v, want DomainError", err)
	}
	if de.Stage != "NDVI" {
		t.Errorf("stage = %q, want NDVI", de.Stage)
	}
}

func TestScaleNDVI(t *testing.T) {
	got, err := ScaleNDVI(5.0/7.0, 0.90, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	want := (5.0/7.0 - 0.15) / 0.75
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ScaleNDVI = %g, want %g", got, want)
	}

	if _, err := ScaleNDVI(0.5, 0.4, 0.4); err == nil {
		t.Error("ScaleNDVI with max == min: want error, got nil")
	}
}

func TestFractionalCoverClamp(t *testing.T) {
	cases := []struct {
		name     string
		scaled   float64
		want     float64
		wantWarn bool
	}{
		{"interior", 0.5, 0.25, false},
		{"zero", 0, 0, false},
		{"unity", 1, 1, false},
		{"above one", 1.0666666666666667, 1, true},
		{"negative scaled squares fine", -0.5, 0.25, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, warn := FractionalCover(c.scaled)
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("FractionalCover(%g) = %g, want %g", c.scaled, got, c.want)
			}
			if (warn != nil) != c.wantWarn {
				t.Errorf("FractionalCover(%g) warning = %v, want warning %v", c.scaled, warn, c.wantWarn)
			}
			if got < 0 || got > 1 {
				t.Errorf("FractionalCover(%g) = %g, outside [0,1]", c.scaled, got)
			}
		})
	}
}

func TestFractionalCoverWarningNamesValue(t *testing.T) {
	pre := 1.2 * 1.2
	_, warn := FractionalCover(1.2)
	if warn == nil {
		t.Fatal("expected warning for scaled NDVI 1.2")
	}
	if math.Abs(warn.Value-pre) > 1e-9 || warn.Bound != 1 {
		t.Errorf("warning = %+v, want value %g clamped to 1", warn, pre)
	}
}

func TestTargetEmissivity(t *testing.T) {
	if got := TargetEmissivity(0, 0.98, 0.93); got != 0.93 {
		t.Errorf("TargetEmissivity(0) = %g, want soil 0.93", got)
	}
	if got := TargetEmissivity(1, 0.98, 0.93); got != 0.98 {
		t.Errorf("TargetEmissivity(1) = %g, want vegetation 0.98", got)
	}
	// monotonic in Fr when veg > soil
	prev := TargetEmissivity(0, 0.98, 0.93)
	for fr := 0.1; fr <= 1.0001; fr += 0.1 {
		cur := TargetEmissivity(fr, 0.98, 0.93)
		if cur < prev {
			t.Fatalf("TargetEmissivity not monotonic at Fr=%g: %g < %g", fr, cur, prev)
		}
		prev = cur
	}
}
