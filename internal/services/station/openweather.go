package station

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ra is a simplified extraterrestrial-radiation constant that maps the
// Hargreaves estimate to mm/day.
const ra = 0.408

type owmDaily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Humidity float64 `json:"humidity"`
	Rain     float64 `json:"rain"`
}

type owmResp struct {
	Daily []owmDaily `json:"daily"`
}

// OWMClient reads daily weather from the OpenWeatherMap one-call API.
type OWMClient struct {
	apiKey string
	http   *http.Client
}

func NewOWMClient(key string) *OWMClient {
	return &OWMClient{apiKey: key, http: &http.Client{Timeout: 8 * time.Second}}
}

// Daily fetches the forecast, picks the entry closest to day (UTC), and
// derives ET0 from the min/max temperatures via Hargreaves. Transient
// failures are retried with exponential backoff inside the call.
func (c *OWMClient) Daily(ctx context.Context, lat, lon float64, day time.Time) (Daily, error) {
	if c.apiKey == "" {
		return Daily{}, fmt.Errorf("station: missing api key")
	}
	url := fmt.Sprintf("https://api.openweathermap.org/data/3.0/onecall?lat=%f&lon=%f&exclude=current,minutely,hourly,alerts&units=metric&appid=%s", lat, lon, c.apiKey)

	var out owmResp
	fetch := func() error {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			err := fmt.Errorf("station: owm status %d: %s", resp.StatusCode, string(b))
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		return json.NewDecoder(resp.Body).Decode(&out)
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(fetch, backoff.WithContext(bo, ctx)); err != nil {
		return Daily{}, err
	}
	if len(out.Daily) == 0 {
		return Daily{}, fmt.Errorf("station: no daily data")
	}

	chosen := closestDaily(out.Daily, day)
	return Daily{
		Ta:   chosen.Temp.Day,
		RH:   chosen.Humidity,
		ET0:  hargreavesET0(chosen.Temp.Min, chosen.Temp.Max, ra),
		Rain: chosen.Rain,
	}, nil
}

// closestDaily picks the forecast entry whose UTC date is nearest to day.
func closestDaily(daily []owmDaily, day time.Time) owmDaily {
	target := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	chosen := daily[0]
	minDelta := time.Duration(1<<63 - 1)
	for _, d := range daily {
		t := time.Unix(d.Dt, 0).UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		delta := target.Sub(date)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			chosen = d
		}
	}
	return chosen
}

// hargreavesET0 is the simplified Hargreaves reference evapotranspiration
// estimate from the daily temperature range.
func hargreavesET0(tmin, tmax, ra float64) float64 {
	tmean := (tmin + tmax) / 2.0
	return 0.0023 * (tmean + 17.8) * math.Sqrt(math.Max(tmax-tmin, 0)) * ra
}
