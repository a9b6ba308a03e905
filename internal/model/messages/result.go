package messages

import "time"

// ResultEvent carries the derived quantities for one observation, published
// on result/<field>/<sensor>.
type ResultEvent struct {
	FieldID  string `json:"field_id"`
	SensorID string `json:"sensor_id"`

	NDVI       float64 `json:"ndvi"`
	NDVIScaled float64 `json:"ndvi_scaled"`
	Fr         float64 `json:"fr"`
	Emissivity float64 `json:"target_emissivity"`
	TTarget    float64 `json:"t_target_corr"` // deg C
	VPD        float64 `json:"vpd"`           // kPa
	VPG        float64 `json:"vpg"`           // kPa
	DTMin      float64 `json:"dtmin"`         // deg C
	DTMax      float64 `json:"dtmax"`         // deg C
	CWSI       float64 `json:"cwsi"`
	ETa        float64 `json:"eta"`

	Warnings  []string  `json:"warnings,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
