package model

// Sensor is one combined reflectance/IRT instrument installed in a field.
type Sensor struct {
	ID        string  `json:"id"`
	FieldID   string  `json:"field_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	HeightM   float64 `json:"height_m,omitempty"` // mount height above canopy
}
