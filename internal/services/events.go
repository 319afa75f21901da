package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Routing keys of the domain events published on the events exchange.
const (
	EventCarCreated      = "car.created"
	EventCarDeleted      = "car.deleted"
	EventRentalConfirmed = "rental.confirmed"
)

// EventPublisher publishes a message to an exchange. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// eventEmitter publishes best-effort domain events; failures are logged, never returned.
type eventEmitter struct {
	publisher EventPublisher
	exchange  string
	log       *zap.Logger
}

func (e eventEmitter) emit(routingKey string, payload interface{}) {
	if e.publisher == nil {
		e.log.Debug("event publisher not configured, skipping event", zap.String("event", routingKey))
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		e.log.Error("failed to marshal event", zap.String("event", routingKey), zap.Error(err))
		return
	}
	if err := e.publisher.Publish(e.exchange, routingKey, body); err != nil {
		e.log.Warn("failed to publish event", zap.String("event", routingKey), zap.Error(err))
		return
	}
	e.log.Debug("published event", zap.String("event", routingKey))
}
