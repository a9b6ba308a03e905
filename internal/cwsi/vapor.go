package cwsi

import "math"

// Tetens formula constants (esat in kPa, T in deg C).
const (
	tetensA = 0.6108
	tetensB = 17.27
	tetensC = 237.3
)

// SaturationVaporPressure returns esat (kPa) at temperature t (deg C) using
// the Tetens formula: 0.6108 * exp(17.27*T / (T+237.3)).
func SaturationVaporPressure(t float64) (float64, error) {
	if t+tetensC == 0 {
		return 0, &DomainError{Stage: "SaturationVaporPressure", Value: t, Reason: "Tetens singularity at T = -237.3 degC"}
	}
	return tetensA * math.Exp(tetensB*t/(t+tetensC)), nil
}

// ActualVaporPressure returns ea (kPa) from temperature (deg C) and relative
// humidity in percent: RH * esat / 100. RH is taken as-is; values outside
// [0,100] flow through.
func ActualVaporPressure(t, rh float64) (float64, error) {
	esat, err := SaturationVaporPressure(t)
	if err != nil {
		return 0, err
	}
	return rh * esat / 100, nil
}

// VaporPressureDeficit is esat - ea (kPa).
func VaporPressureDeficit(esat, ea float64) float64 {
	return esat - ea
}

// VaporPressureGradient approximates how esat changes between t and t+3.11
// deg C: esat(t) - esat(t+3.11). The 3.11 shift is the intercept of the Idso
// dTmin regression, reused here as in the reference formulation. For
// physically normal inputs the result is negative.
func VaporPressureGradient(esat, t float64) (float64, error) {
	shifted, err := SaturationVaporPressure(t + idsoIntercept)
	if err != nil {
		return 0, err
	}
	return esat - shifted, nil
}
