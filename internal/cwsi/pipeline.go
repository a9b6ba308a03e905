// Package cwsi implements the Crop Water Stress Index / actual
// evapotranspiration chain for combined optical (NIR/Red) and thermal (IRT)
// field observations. Every stage is a closed-form function of the stages
// before it; Run sequences them for one observation.
package cwsi

// Params holds the pipeline constants. All stages read them from here, so
// overriding a default in one place covers the whole chain. Params apply per
// invocation, never per row.
type Params struct {
	NDVIMax        float64
	NDVIMin        float64
	VegEmissivity  float64
	SoilEmissivity float64
	TBackground    float64 // deg C, sky temperature reflected by the target
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		NDVIMax:        0.90,
		NDVIMin:        0.15,
		VegEmissivity:  0.98,
		SoilEmissivity: 0.93,
		TBackground:    -15,
	}
}

// Observation is one row of field data: the reflectance pair, the raw canopy
// temperature, and the weather-station inputs.
type Observation struct {
	Nir     float64
	Red     float64
	TSensor float64 // deg C, uncorrected IRT reading
	RH      float64 // percent
	Ta      float64 // deg C, weather-station air temperature
	ETc     float64 // potential evapotranspiration; its unit carries into ETa
}

// Result carries every derived quantity of the chain, in computation order,
// plus any range warnings raised along the way.
type Result struct {
	NDVI       float64
	NDVIScaled float64
	Fr         float64
	Emissivity float64
	TTarget    float64 // deg C, corrected target temperature
	Esat       float64 // kPa
	Ea         float64 // kPa
	VPD        float64 // kPa
	VPG        float64 // kPa
	DTMin      float64 // deg C
	DTMax      float64 // deg C
	CWSI       float64
	ETa        float64

	Warnings []RangeWarning
}

// Run evaluates the chain for one observation in strict dependency order:
// vegetation/emissivity, temperature correction, vapor pressures, Idso
// bounds, stress index, actual ET. A DomainError from any stage aborts the
// remainder; the partial Result is returned alongside it.
func Run(obs Observation, p Params) (Result, error) {
	var res Result
	var err error

	res.NDVI, err = NDVI(obs.Nir, obs.Red)
	if err != nil {
		return res, err
	}
	res.NDVIScaled, err = ScaleNDVI(res.NDVI, p.NDVIMax, p.NDVIMin)
	if err != nil {
		return res, err
	}
	var warn *RangeWarning
	res.Fr, warn = FractionalCover(res.NDVIScaled)
	if warn != nil {
		res.Warnings = append(res.Warnings, *warn)
	}
	res.Emissivity = TargetEmissivity(res.Fr, p.VegEmissivity, p.SoilEmissivity)
	res.TTarget, err = CorrectTargetTemperature(obs.TSensor, res.Emissivity, p.TBackground)
	if err != nil {
		return res, err
	}

	// vapor chain runs on the weather-station air temperature, not the canopy
	res.Esat, err = SaturationVaporPressure(obs.Ta)
	if err != nil {
		return res, err
	}
	res.Ea, err = ActualVaporPressure(obs.Ta, obs.RH)
	if err != nil {
		return res, err
	}
	res.VPD = VaporPressureDeficit(res.Esat, res.Ea)
	res.VPG, err = VaporPressureGradient(res.Esat, obs.Ta)
	if err != nil {
		return res, err
	}

	res.DTMin = IdsoDTMin(res.VPD)
	res.DTMax = IdsoDTMax(res.VPG)
	res.CWSI, err = StressIndex(res.DTMin, res.DTMax, obs.Ta, res.TTarget)
	if err != nil {
		return res, err
	}
	res.ETa = ActualET(res.CWSI, obs.ETc)

	return res, nil
}
