package queue

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"eventgate/internal/bus"
)

const checkinQueue = "checkin.confirmed"

// Bridge subscribes to the in-process bus and republishes accepted check-ins
// to RabbitMQ. It is optional: without AMQP_URL it never starts, and publish
// failures are logged without touching the check-in path.
type Bridge struct {
	amqpURL string
	events  *bus.Bus
	sub     *bus.Subscription
}

func NewBridge(events *bus.Bus) *Bridge {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		url = os.Getenv("RABBITMQ_URL")
	}
	return &Bridge{
		amqpURL: url,
		events:  events,
	}
}

func (b *Bridge) Start() {
	if b.amqpURL == "" {
		log.Println("rabbitmq: AMQP_URL not set, check-in bridge disabled")
		return
	}

	b.sub = b.events.Subscribe(bus.AllEvents, 512)
	go b.run()
}

func (b *Bridge) Stop() {
	if b.sub != nil {
		b.sub.Cancel()
	}
}

func (b *Bridge) run() {
	for ev := range b.sub.C {
		if ev.Type != bus.TypeAttendantCheckedIn {
			continue
		}

		payload := CheckinConfirmedEvent{
			EventID:      ev.EventID,
			AttendantID:  ev.Attendant.ID,
			Code:         ev.Attendant.Code,
			FullName:     ev.Attendant.FullName,
			Organization: ev.Attendant.Organization,
			GroupName:    ev.Attendant.GroupName,
			ZoneLabel:    ev.Attendant.ZoneLabel,
			SeatLocation: ev.Attendant.SeatLocation,
			IsVIP:        ev.Attendant.IsVIP,
			Source:       ev.Source,
			CheckedInAt:  ev.Attendant.CheckedInAt,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := b.publish(ctx, payload); err != nil {
			log.Printf("rabbitmq: failed to forward check-in for attendant %s: %v", payload.AttendantID, err)
		}
		cancel()
	}
}

func (b *Bridge) publish(ctx context.Context, event CheckinConfirmedEvent) error {
	conn, err := amqp.Dial(b.amqpURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		checkinQueue, // name
		true,         // durable
		false,        // autoDelete
		false,        // exclusive
		false,        // noWait
		nil,          // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	return ch.PublishWithContext(ctx,
		"",           // default exchange
		checkinQueue, // routing key = queue name
		false,        // mandatory
		false,        // immediate
		pub,
	)
}
