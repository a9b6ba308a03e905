package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Field is one monitored plot.
type Field struct {
	ID        string  `json:"id"`
	Crop      string  `json:"crop,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Kc        float64 `json:"kc"` // crop coefficient, ETc = Kc * ET0
}

// LoadFields reads the field registry from a JSON file and indexes it by id.
func LoadFields(path string) (map[string]Field, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	var list []Field
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	out := make(map[string]Field, len(list))
	for _, f := range list {
		if f.ID == "" {
			return nil, fmt.Errorf("load fields: entry without id")
		}
		if f.Kc == 0 {
			f.Kc = 1.0
		}
		out[f.ID] = f
	}
	return out, nil
}
