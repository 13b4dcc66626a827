package services

import (
	"encoding/json"
	"log"
)

// EventPublisher publishes marketplace events to the message broker.
// Implemented by pkg/rabbitmq.Client; a nil publisher disables events.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent emits a JSON event on a best-effort basis. Publish failures
// are logged and never fail the originating operation.
func publishEvent(publisher EventPublisher, routingKey string, payload map[string]interface{}) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish("", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
