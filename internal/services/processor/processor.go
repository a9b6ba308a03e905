// Package processor is the streaming run mode: it consumes raw observation
// events, completes missing weather inputs, runs the stress-index chain, and
// fans the results out to the result topic and the Influx sink.
package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
	"github.com/agrisense/cwsi-eta/internal/model"
	"github.com/agrisense/cwsi-eta/internal/model/messages"
	"github.com/agrisense/cwsi-eta/internal/services/station"
	"github.com/agrisense/cwsi-eta/pkg/broker"
	"github.com/agrisense/cwsi-eta/pkg/dedup"
)

// Service wires consumer, weather client, pipeline, and sinks together.
type Service struct {
	consumer  broker.IConsumer[messages.ObservationEvent]
	publisher broker.IPublisher
	weather   station.WeatherClient
	writer    *Writer
	params    cwsi.Params
	fields    map[string]model.Field
	deduper   *dedup.Deduper
}

func NewService(
	consumer broker.IConsumer[messages.ObservationEvent],
	publisher broker.IPublisher,
	weather station.WeatherClient,
	writer *Writer,
	params cwsi.Params,
	fields map[string]model.Field,
) *Service {
	return &Service{
		consumer:  consumer,
		publisher: publisher,
		weather:   weather,
		writer:    writer,
		params:    params,
		fields:    fields,
		deduper:   dedup.New(10*time.Minute, 20000),
	}
}

// Start consumes until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.consumer.SetHandler(func(topic string, m mqtt.Message) error {
		return s.handle(ctx, topic, m)
	})
	go s.consumer.ConsumeMessage(ctx)

	<-ctx.Done()
	s.publisher.Close()
}

func (s *Service) handle(ctx context.Context, topic string, m mqtt.Message) error {
	// observation topics are QoS 1; identical payload means redelivery
	h := sha256.Sum256(m.Payload())
	if s.deduper.Seen(hex.EncodeToString(h[:])) {
		return nil
	}

	var evt messages.ObservationEvent
	if err := json.Unmarshal(m.Payload(), &evt); err != nil {
		return fmt.Errorf("processor: invalid observation on %s: %w", topic, err)
	}

	start := time.Now()
	obs, filled, err := s.completeObservation(ctx, evt)
	if err != nil {
		return fmt.Errorf("processor: weather fill for %s/%s: %w", evt.FieldID, evt.SensorID, err)
	}
	if filled {
		weatherFillsTotal.Inc()
	}

	res, err := cwsi.Run(obs, s.params)
	if err != nil {
		var de *cwsi.DomainError
		if errors.As(err, &de) {
			// a bad reading rejects this event only; the stream goes on
			domainErrorsTotal.WithLabelValues(de.Stage).Inc()
			log.Printf("processor: dropped observation field=%s sensor=%s: %v", evt.FieldID, evt.SensorID, err)
			return nil
		}
		return err
	}
	rangeWarningsTotal.Add(float64(len(res.Warnings)))
	for _, w := range res.Warnings {
		log.Printf("processor: field=%s sensor=%s: %s", evt.FieldID, evt.SensorID, w)
	}

	out := buildResult(evt, res)
	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(payload); err != nil {
		log.Printf("processor: publish result: %v", err)
	}
	s.writer.WritePoint(ResultToPoint(out))
	s.writer.MarkResult(evt.FieldID)

	observationsTotal.WithLabelValues(evt.FieldID).Inc()
	processSeconds.Observe(time.Since(start).Seconds())
	return nil
}

// completeObservation turns an event into a pipeline observation, filling
// Ta, RH and ETc from the station client when the event lacks them. ETc is
// derived from reference ET0 via the field's crop coefficient. The bool
// reports whether the weather upstream was consulted.
func (s *Service) completeObservation(ctx context.Context, evt messages.ObservationEvent) (cwsi.Observation, bool, error) {
	obs := cwsi.Observation{
		Nir:     evt.Nir,
		Red:     evt.Red,
		TSensor: evt.TSensor,
	}
	if evt.Ta != nil && evt.RH != nil && evt.ETc != nil {
		obs.Ta, obs.RH, obs.ETc = *evt.Ta, *evt.RH, *evt.ETc
		return obs, false, nil
	}

	f, ok := s.fields[evt.FieldID]
	if !ok {
		return obs, false, fmt.Errorf("unknown field %q", evt.FieldID)
	}
	d, err := s.weather.Daily(ctx, f.Latitude, f.Longitude, evt.Timestamp)
	if err != nil {
		return obs, true, err
	}

	obs.Ta = d.Ta
	if evt.Ta != nil {
		obs.Ta = *evt.Ta
	}
	obs.RH = d.RH
	if evt.RH != nil {
		obs.RH = *evt.RH
	}
	obs.ETc = d.ET0 * f.Kc
	if evt.ETc != nil {
		obs.ETc = *evt.ETc
	}
	return obs, true, nil
}

// buildResult maps a pipeline result back onto the event's identity.
func buildResult(evt messages.ObservationEvent, res cwsi.Result) messages.ResultEvent {
	out := messages.ResultEvent{
		FieldID:    evt.FieldID,
		SensorID:   evt.SensorID,
		NDVI:       res.NDVI,
		NDVIScaled: res.NDVIScaled,
		Fr:         res.Fr,
		Emissivity: res.Emissivity,
		TTarget:    res.TTarget,
		VPD:        res.VPD,
		VPG:        res.VPG,
		DTMin:      res.DTMin,
		DTMax:      res.DTMax,
		CWSI:       res.CWSI,
		ETa:        res.ETa,
		Timestamp:  evt.Timestamp,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}
