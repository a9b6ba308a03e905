package cwsi

// Idso (1982) non-water-stressed baseline regression, dT = 3.11 - 1.97*VPD.
// The identical coefficients are applied to VPG for the upper bound; that
// reuse of the dTmin regression is carried over from the reference
// formulation unchanged.
const (
	idsoIntercept = 3.11
	idsoSlope     = 1.97
)

// IdsoDTMin is the lower canopy-air temperature differential bound from VPD.
func IdsoDTMin(vpd float64) float64 {
	return idsoIntercept - idsoSlope*vpd
}

// IdsoDTMax is the upper canopy-air temperature differential bound from VPG.
func IdsoDTMax(vpg float64) float64 {
	return idsoIntercept - idsoSlope*vpg
}

// StressIndex normalizes the canopy-air temperature differential between the
// Idso bounds: CWSI = ((T_target - Ta) - dTmin) / (dTmax - dTmin). The
// result is not clamped to [0,1].
func StressIndex(dTMin, dTMax, ta, tTarget float64) (float64, error) {
	if dTMax == dTMin {
		return 0, &DomainError{Stage: "StressIndex", Value: dTMax, Reason: "dTmax equals dTmin"}
	}
	dT := tTarget - ta
	return (dT - dTMin) / (dTMax - dTMin), nil
}

// ActualET scales potential evapotranspiration by the stress index:
// ETa = (1 - CWSI) * ETc. CWSI is unclamped, so ETa can exceed ETc or go
// negative when an observation sits outside the Idso envelope.
func ActualET(cwsi, etc float64) float64 {
	return (1 - cwsi) * etc
}
