// Package service publishes domain events to RabbitMQ. Publish failures
// are logged and returned so callers can treat the broker as optional
// and never fail the originating request over it.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	q "github.com/iliyamo/sports-facility-reservation/internal/queue"
)

// PublishReservationConfirmed publishes a ReservationConfirmedEvent to
// the reservation.confirmed queue. The queue is declared durable and the
// message is marked persistent so confirmations survive broker restarts.
func PublishReservationConfirmed(ctx context.Context, url string, event q.ReservationConfirmedEvent, log zerolog.Logger) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(q.ReservationQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", q.ReservationQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
