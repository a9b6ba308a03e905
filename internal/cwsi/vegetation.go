package cwsi

// NDVI returns the normalized difference vegetation index
// (Nir-Red)/(Nir+Red) for one reflectance pair.
func NDVI(nir, red float64) (float64, error) {
	if nir+red == 0 {
		return 0, &DomainError{Stage: "NDVI", Value: nir + red, Reason: "Nir+Red is zero"}
	}
	return (nir - red) / (nir + red), nil
}

// ScaleNDVI rescales ndvi linearly against a reference interval:
// (NDVI - min) / (max - min). The result is not clamped.
func ScaleNDVI(ndvi, max, min float64) (float64, error) {
	if max == min {
		return 0, &DomainError{Stage: "ScaleNDVI", Value: max, Reason: "NDVI max equals NDVI min"}
	}
	return (ndvi - min) / (max - min), nil
}

// FractionalCover estimates the fraction of ground covered by vegetation as
// the square of the scaled NDVI, clamped to [0,1]. The returned warning is
// non-nil exactly when the pre-clamp value fell outside the interval.
func FractionalCover(scaledNDVI float64) (float64, *RangeWarning) {
	fr := scaledNDVI * scaledNDVI
	switch {
	case fr < 0:
		return 0, &RangeWarning{Quantity: "Fr", Value: fr, Bound: 0}
	case fr > 1:
		return 1, &RangeWarning{Quantity: "Fr", Value: fr, Bound: 1}
	}
	return fr, nil
}

// TargetEmissivity mixes vegetation and bare-soil emissivity by cover
// fraction: Fr*veg + (1-Fr)*soil.
func TargetEmissivity(fr, vegEmissivity, soilEmissivity float64) float64 {
	return fr*vegEmissivity + (1-fr)*soilEmissivity
}
