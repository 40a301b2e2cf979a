// Package event publishes assessment lifecycle events to a RabbitMQ
// topic exchange. Publishing is fire-and-forget: a broker outage never
// fails the request that triggered the event.
package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Event types, doubling as topic routing keys.
const (
	AttemptCreated    = "assessment.attempt.created"
	SessionSaved      = "assessment.session.saved"
	ResourceCompleted = "assessment.resource.completed"
)

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewEventPublisher connects to the broker and declares the durable topic
// exchange. A nil *EventPublisher is valid and publishes nothing, so the
// caller can wire it unconditionally.
func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish emits one event. Failures are logged and swallowed.
func (p *EventPublisher) Publish(eventType string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[EVENT] marshal %s: %v", eventType, err)
		return
	}
	err = p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("[EVENT] publish %s: %v", eventType, err)
	}
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
