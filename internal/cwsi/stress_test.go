package cwsi

import (
	"errors"
	"math"
	"testing"
)

func TestIdsoBounds(t *testing.T) {
	if got := IdsoDTMin(0); math.Abs(got-3.11) > 1e-9 {
		t.Errorf("IdsoDTMin(0) = %g, want 3.11", got)
	}
	if got := IdsoDTMin(1); math.Abs(got-(3.11-1.97)) > 1e-9 {
		t.Errorf("IdsoDTMin(1) = %g, want %g", got, 3.11-1.97)
	}
	// the upper bound applies the dTmin regression coefficients to VPG
	if IdsoDTMax(-0.4) != IdsoDTMin(-0.4) {
		t.Error("IdsoDTMax and IdsoDTMin diverge on equal input; coefficients must match")
	}
}

func TestStressIndex(t *testing.T) {
	// dT = 2, bounds [-1, 4]: CWSI = (2 - (-1)) / (4 - (-1)) = 0.6
	got, err := StressIndex(-1, 4, 25, 27)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("StressIndex = %g, want 0.6", got)
	}
}

func TestStressIndexZeroSpan(t *testing.T) {
	_, err := StressIndex(2, 2, 25, 27)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("StressIndex with dTmax == dTmin: err = %v, want DomainError", err)
	}
}

func TestActualET(t *testing.T) {
	if got := ActualET(0, 5); got != 5 {
		t.Errorf("ActualET(0, 5) = %g, want 5 (unstressed crop transpires at ETc)", got)
	}
	if got := ActualET(1, 5); got != 0 {
		t.Errorf("ActualET(1, 5) = %g, want 0", got)
	}
	// CWSI is unclamped: outside [0,1] ETa legitimately leaves [0, ETc]
	if got := ActualET(-0.2, 5); math.Abs(got-6) > 1e-9 {
		t.Errorf("ActualET(-0.2, 5) = %g, want 6", got)
	}
	if got := ActualET(1.5, 5); math.Abs(got-(-2.5)) > 1e-9 {
		t.Errorf("ActualET(1.5, 5) = %g, want -2.5", got)
	}
}
