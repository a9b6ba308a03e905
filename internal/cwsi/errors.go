package cwsi

import "fmt"

// DomainError reports an input that pushes one of the closed-form stages
// outside its real-valued domain (zero denominator, negative radicand, ...).
// It aborts the rest of the chain for that observation.
type DomainError struct {
	Stage  string  // stage that rejected the input, e.g. "NDVI"
	Value  float64 // offending value
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("cwsi: %s: %s (value %g)", e.Stage, e.Reason, e.Value)
}

// RangeWarning records a derived quantity that fell outside its physical
// interval before clamping. Warnings are observable but never fatal.
type RangeWarning struct {
	Quantity string  // e.g. "Fr"
	Value    float64 // value before clamping
	Bound    float64 // bound it was clamped to
}

func (w RangeWarning) String() string {
	return fmt.Sprintf("%s value %g out of range, clamped to %g", w.Quantity, w.Value, w.Bound)
}
