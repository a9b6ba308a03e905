package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrisense/cwsi-eta/internal/cwsi"
	"github.com/agrisense/cwsi-eta/internal/model"
	"github.com/agrisense/cwsi-eta/internal/services/processor"
	"github.com/agrisense/cwsi-eta/internal/services/station"
	"github.com/agrisense/cwsi-eta/pkg/broker"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	_ = godotenv.Load(".env")

	cfg := struct {
		Broker broker.Config

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string

		ObservationTopic string
		ResultTopic      string
		FieldsFile       string
		WeatherAPIKey    string

		BatchSize     int
		FlushInterval time.Duration

		HTTPPort      int
		ShutdownGrace time.Duration
	}{
		Broker: broker.Config{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "cwsi-processor"),
		},

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "agrisense"),
		InfluxBucket: envStr("INFLUX_BUCKET", "cwsi"),

		ObservationTopic: envStr("OBSERVATION_TOPIC", "observation/#"),
		ResultTopic:      envStr("RESULT_TOPIC", "result/processed"),
		FieldsFile:       envStr("FIELDS_FILE", "fields.json"),
		WeatherAPIKey:    os.Getenv("OWM_API_KEY"),

		BatchSize:     envInt("WRITE_BATCH_SIZE", 10),
		FlushInterval: time.Duration(envInt("WRITE_FLUSH_INTERVAL_MS", 200)) * time.Millisecond,

		HTTPPort:      envInt("HTTP_PORT", 8080),
		ShutdownGrace: 5 * time.Second,
	}

	params := cwsi.Params{
		NDVIMax:        envFloat("NDVI_MAX", cwsi.DefaultParams().NDVIMax),
		NDVIMin:        envFloat("NDVI_MIN", cwsi.DefaultParams().NDVIMin),
		VegEmissivity:  envFloat("VEG_EMISSIVITY", cwsi.DefaultParams().VegEmissivity),
		SoilEmissivity: envFloat("SOIL_EMISSIVITY", cwsi.DefaultParams().SoilEmissivity),
		TBackground:    envFloat("T_BACKGROUND", cwsi.DefaultParams().TBackground),
	}

	fields, err := model.LoadFields(cfg.FieldsFile)
	if err != nil {
		log.Fatalf("processor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Influx sink
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	influx := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	defer influx.Close()
	writeAPI := influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket)
	writer := processor.NewWriter(writeAPI)

	// broker
	client, err := broker.Connect(ctx, &cfg.Broker)
	if err != nil {
		log.Fatalf("processor: mqtt connection error: %v", err)
	}
	defer broker.Close(client)

	// weather upstream behind a breaker
	weather := station.NewBreakerClient(
		station.NewOWMClient(cfg.WeatherAPIKey),
		"openweather", 3, 30*time.Second, time.Minute,
	)

	consumer := broker.NewConsumer(client, cfg.ObservationTopic, nil)
	publisher := broker.NewPublisher(client, cfg.ResultTopic)
	svc := processor.NewService(consumer, publisher, weather, writer, params, fields)

	// HTTP surface
	mux := http.NewServeMux()
	mux.Handle("/healthz", processor.NewHealthHandler(client, influx, writer))
	mux.Handle("/readyz", processor.NewReadyHandler(client, influx, writer, 2*time.Second))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/results/latest", processor.NewLatestResultsHandler(influx, cfg.InfluxOrg, cfg.InfluxBucket))

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("processor: HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("processor: http server error: %v", err)
		}
	}()

	go svc.Start(ctx)
	log.Printf("processor: consuming %s, publishing %s", cfg.ObservationTopic, cfg.ResultTopic)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("processor: shutting down...")
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shCancel()
	_ = hs.Shutdown(shCtx)

	// let the async write API flush
	time.Sleep(cfg.FlushInterval + 100*time.Millisecond)
}
