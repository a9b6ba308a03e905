package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// LatestResult is one stored CWSI/ETa pair served to clients.
type LatestResult struct {
	FieldID  string  `json:"field_id,omitempty"`
	SensorID string  `json:"sensor_id,omitempty"`
	CWSI     float64 `json:"cwsi"`
	ETa      float64 `json:"eta"`
	Time     string  `json:"time"` // RFC3339
}

type latestQueryParams struct {
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseLatest(r *http.Request, defMin, defLim, defTOms int) latestQueryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	return latestQueryParams{
		Minutes:   get("minutes", defMin, 1, 7*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
}

func buildFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == %q)
  |> filter(fn: (r) => r._field == "cwsi" or r._field == "eta")
  |> pivot(rowKey: ["_time","field_id","sensor_id"], columnKey: ["_field"], valueColumn: "_value")
  |> keep(columns: ["_time","cwsi","eta","field_id","sensor_id"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, measurement, limit)
}

// NewLatestResultsHandler serves GET /results/latest?limit=20[&minutes=1440]
// straight from the Influx sink.
func NewLatestResultsHandler(influx influxdb2.Client, org, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := parseLatest(r, 1440, 20, 2000)

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
		defer cancel()

		api := influx.QueryAPI(org)
		res, err := api.Query(ctx, buildFlux(bucket, p.Minutes, p.Limit))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Error", "influx-query-error")
			_, _ = w.Write([]byte("[]"))
			return
		}
		defer func() { _ = res.Close() }()

		out := make([]LatestResult, 0, p.Limit)
		for res.Next() {
			rec := res.Record()
			lr := LatestResult{Time: rec.Time().UTC().Format(time.RFC3339)}
			if v, ok := rec.ValueByKey("cwsi").(float64); ok {
				lr.CWSI = v
			}
			if v, ok := rec.ValueByKey("eta").(float64); ok {
				lr.ETa = v
			}
			if s, ok := rec.ValueByKey("field_id").(string); ok {
				lr.FieldID = s
			}
			if s, ok := rec.ValueByKey("sensor_id").(string); ok {
				lr.SensorID = s
			}
			out = append(out, lr)
		}
		if res.Err() != nil {
			w.Header().Set("X-Error", "influx-iter-error")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}
