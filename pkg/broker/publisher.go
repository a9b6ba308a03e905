package broker

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher publishes payloads to a fixed topic.
type IPublisher interface {
	Publish(payload []byte) error
	Close()
}

// Publisher writes to one topic on a shared client.
type Publisher struct {
	client mqtt.Client
	topic  string
}

func NewPublisher(client mqtt.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// Publish sends one payload at the topic's QoS.
func (p *Publisher) Publish(payload []byte) error {
	token := p.client.Publish(p.topic, qosFor(p.topic), false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("broker: publish to %s: %w", p.topic, token.Error())
	}
	return nil
}

// Close disconnects the underlying client.
func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Println("broker: publisher disconnected")
	}
}
