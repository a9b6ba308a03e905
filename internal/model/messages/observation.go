package messages

import "time"

// ObservationEvent is the raw instrument message published on
// observation/<field>/<sensor>. Weather-station inputs are optional: when
// nil the processor fills them from the station client before running the
// pipeline.
type ObservationEvent struct {
	FieldID  string  `json:"field_id"`
	SensorID string  `json:"sensor_id"`
	Nir      float64 `json:"r_nir"`
	Red      float64 `json:"r_red"`
	TSensor  float64 `json:"t_sensor"` // deg C, uncorrected IRT reading

	RH  *float64 `json:"rh,omitempty"`       // percent
	Ta  *float64 `json:"air_temp,omitempty"` // deg C
	ETc *float64 `json:"etc,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
