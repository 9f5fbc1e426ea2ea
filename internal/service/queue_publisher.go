// Package queue_publisher publishes booking lifecycle events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow; the HTTP response never depends on
// the broker being reachable.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/gspotbarber/barbershop-booking/internal/queue"
)

const bookingQueueName = "booking.events"

// Publisher sends BookingEvents to the durable booking.events queue. A
// zero URL disables publishing entirely, which is the default deployment:
// the site works with no broker at all.
type Publisher struct {
	URL string
}

// New returns a Publisher for the given AMQP URL. The URL may be empty.
func New(url string) *Publisher { return &Publisher{URL: url} }

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool { return p != nil && p.URL != "" }

// Publish sends a BookingEvent to the booking.events queue. Messages are
// marked persistent so they survive broker restarts. The function never
// panics; any error is logged and returned for the caller to ignore.
func (p *Publisher) Publish(ctx context.Context, event q.BookingEvent) error {
	if !p.Enabled() {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		bookingQueueName, // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		bookingQueueName, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
