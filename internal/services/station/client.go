// Package station supplies the weather inputs the pipeline needs when an
// observation arrives without them: air temperature, relative humidity, and
// reference evapotranspiration for a plot and day.
package station

import (
	"context"
	"time"
)

// Daily is one day of weather-station quantities.
type Daily struct {
	Ta   float64 // deg C, air temperature
	RH   float64 // percent, relative humidity
	ET0  float64 // mm/day, reference evapotranspiration
	Rain float64 // mm/day
}

// WeatherClient resolves the daily quantities for a location.
type WeatherClient interface {
	Daily(ctx context.Context, lat, lon float64, day time.Time) (Daily, error)
}
