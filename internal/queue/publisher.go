package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"computer-club/internal/logger"
)

const sessionQueueName = "session.closed"

// PublishSessionClosed publishes a SessionClosedEvent to the
// "session.closed" queue. Errors are logged and returned so callers
// can treat delivery as best-effort. Messages are marked persistent.
func PublishSessionClosed(ctx context.Context, event SessionClosedEvent) error {
	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		sessionQueueName, // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(
		pubCtx,
		"",               // default exchange
		sessionQueueName, // routing key == queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		logger.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}

// Publisher adapts PublishSessionClosed to the orchestrator's
// publisher interface.
type Publisher struct{}

// PublishSessionClosed implements the session orchestrator's event sink.
func (Publisher) PublishSessionClosed(ctx context.Context, event SessionClosedEvent) error {
	return PublishSessionClosed(ctx, event)
}
