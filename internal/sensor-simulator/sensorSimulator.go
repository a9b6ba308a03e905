// Package sensor_simulator publishes synthetic reflectance/IRT observations
// so the processor can be exercised without field hardware.
package sensor_simulator

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/agrisense/cwsi-eta/internal/model"
	"github.com/agrisense/cwsi-eta/pkg/broker"
)

// SensorSimulator emits observations for one sensor at a fixed interval.
type SensorSimulator struct {
	sensor    *model.Sensor
	generator *DataGenerator
	publisher broker.IPublisher
}

func NewSensorSimulator(publisher broker.IPublisher, gen *DataGenerator, sensor *model.Sensor) *SensorSimulator {
	return &SensorSimulator{
		sensor:    sensor,
		generator: gen,
		publisher: publisher,
	}
}

// Start publishes until ctx is cancelled.
func (s *SensorSimulator) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.publisher.Close()
			return
		case <-ticker.C:
			obs := s.generator.Next(s.sensor)
			log.Printf("simulator: pub field=%s sensor=%s nir=%.3f red=%.3f t=%.1f",
				obs.FieldID, obs.SensorID, obs.Nir, obs.Red, obs.TSensor)
			payload, err := json.Marshal(obs)
			if err != nil {
				log.Printf("simulator: marshal error: %v", err)
				continue
			}
			if err := s.publisher.Publish(payload); err != nil {
				log.Printf("simulator: publish error: %v", err)
			}
		}
	}
}
