package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrisense/cwsi-eta/internal/model"
	sensorSimulator "github.com/agrisense/cwsi-eta/internal/sensor-simulator"
	"github.com/agrisense/cwsi-eta/pkg/broker"
)

func main() {
	sensorID := flag.String("sensor-id", "sensor1", "unique sensor identifier")
	fieldID := flag.String("field-id", "field1", "field the sensor belongs to")
	clientID := flag.String("client-id", "cwsi-simulator", "MQTT client ID")
	host := flag.String("mqtt-host", "localhost", "MQTT broker host")
	port := flag.Int("mqtt-port", 1883, "MQTT broker port")
	interval := flag.Duration("interval", 10*time.Second, "publish interval")
	lat := flag.Float64("lat", 41.51109, "latitude")
	lon := flag.Float64("lon", 12.37007, "longitude")
	seed := flag.Int64("seed", 0, "RNG seed, 0 for clock")
	flag.Parse()

	cfg := &broker.Config{
		Host:     *host,
		Port:     *port,
		User:     "guest",
		Password: "guest",
		ClientID: *clientID,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := broker.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	topic := fmt.Sprintf("observation/%s/%s", *fieldID, *sensorID)
	publisher := broker.NewPublisher(client, topic)
	generator := sensorSimulator.NewDataGenerator(*seed)
	sensor := model.Sensor{
		ID:        *sensorID,
		FieldID:   *fieldID,
		Latitude:  *lat,
		Longitude: *lon,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	sim := sensorSimulator.NewSensorSimulator(publisher, generator, &sensor)
	sim.Start(ctx, *interval)
}
