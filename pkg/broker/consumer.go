package broker

import (
	"context"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IConsumer subscribes to one or more topics and hands every message to a
// handler. T documents the payload type the handler decodes.
type IConsumer[T any] interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler func(topic string, message mqtt.Message) error)
}

// Observation topics ride QoS 1: a lost observation is a lost data point,
// while results can be regenerated.
func qosFor(topic string) byte {
	if strings.HasPrefix(strings.TrimSpace(topic), "observation/") {
		return 1
	}
	return 0
}

// Consumer subscribes to a single topic filter.
type Consumer struct {
	client  mqtt.Client
	topic   string
	handler func(topic string, message mqtt.Message) error
}

// NewConsumer builds a consumer on a shared client. The handler may be
// injected later via SetHandler.
func NewConsumer(client mqtt.Client, topic string, handler func(topic string, message mqtt.Message) error) *Consumer {
	return &Consumer{client: client, topic: topic, handler: handler}
}

func (c *Consumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	c.handler = handler
}

// ConsumeMessage subscribes and blocks until ctx is cancelled, then
// unsubscribes.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, qosFor(c.topic), func(_ mqtt.Client, m mqtt.Message) {
		if c.handler == nil {
			log.Printf("broker: no handler for topic %s", c.topic)
			return
		}
		if err := c.handler(m.Topic(), m); err != nil {
			log.Printf("broker: handler error on %s: %v", m.Topic(), err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("broker: subscribe %s failed: %v", c.topic, token.Error())
		return
	}
	log.Printf("broker: subscribed to %s", c.topic)

	<-ctx.Done()

	tok := c.client.Unsubscribe(c.topic)
	tok.Wait()
}

// MultiConsumer subscribes to several topic filters with one handler.
type MultiConsumer struct {
	client  mqtt.Client
	topics  []string
	handler func(topic string, message mqtt.Message) error
}

func NewMultiConsumer(client mqtt.Client, topics []string, handler func(topic string, message mqtt.Message) error) *MultiConsumer {
	return &MultiConsumer{client: client, topics: topics, handler: handler}
}

func (m *MultiConsumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	m.handler = handler
}

func (m *MultiConsumer) ConsumeMessage(ctx context.Context) {
	for _, topic := range m.topics {
		token := m.client.Subscribe(topic, qosFor(topic), func(_ mqtt.Client, msg mqtt.Message) {
			if m.handler == nil {
				log.Printf("broker: no handler for topic %s", msg.Topic())
				return
			}
			if err := m.handler(msg.Topic(), msg); err != nil {
				log.Printf("broker: handler error on %s: %v", msg.Topic(), err)
			}
		})
		token.Wait()
		if token.Error() != nil {
			log.Printf("broker: subscribe %s failed: %v", topic, token.Error())
		} else {
			log.Printf("broker: subscribed to %s", topic)
		}
	}

	<-ctx.Done()

	for _, topic := range m.topics {
		m.client.Unsubscribe(topic)
	}
}
