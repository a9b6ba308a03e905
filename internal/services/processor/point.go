package processor

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/agrisense/cwsi-eta/internal/model/messages"
)

const measurement = "cwsi_eta"

// ResultToPoint maps a ResultEvent onto one Influx point under the cwsi_eta
// measurement. Identity goes to tags, derived quantities to fields.
func ResultToPoint(evt messages.ResultEvent) *write.Point {
	tags := map[string]string{}
	if evt.FieldID != "" {
		tags["field_id"] = evt.FieldID
	}
	if evt.SensorID != "" {
		tags["sensor_id"] = evt.SensorID
	}

	fields := map[string]interface{}{
		"ndvi":              evt.NDVI,
		"ndvi_scaled":       evt.NDVIScaled,
		"fr":                evt.Fr,
		"target_emissivity": evt.Emissivity,
		"t_target_corr":     evt.TTarget,
		"vpd":               evt.VPD,
		"vpg":               evt.VPG,
		"dtmin":             evt.DTMin,
		"dtmax":             evt.DTMax,
		"cwsi":              evt.CWSI,
		"eta":               evt.ETa,
		"warnings":          int64(len(evt.Warnings)),
	}

	return influxdb2.NewPoint(measurement, tags, fields, evt.Timestamp)
}
