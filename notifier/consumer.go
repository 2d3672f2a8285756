// Package notifier drains the booking.created queue and sends confirmation emails.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

// ErrPermanent marks a message that should be dropped rather than retried
var ErrPermanent = errors.New("permanent notification failure")

// Consumer sends a confirmation email for every booking event it receives
type Consumer struct {
	URL    string
	Sender services.EmailSender

	prefetch int
}

// NewConsumer creates a consumer for the broker at url
func NewConsumer(url string, sender services.EmailSender) *Consumer {
	return &Consumer{URL: url, Sender: sender, prefetch: 20}
}

// Run connects to the broker and consumes until ctx is cancelled, reconnecting with backoff
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := amqp.Dial(c.URL)
		if err != nil {
			utils.Logger.WithError(err).WithField("retry_in", backoff.String()).Warn("notifier: failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		utils.Logger.WithError(err).Warn("notifier: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		utils.Logger.WithError(err).Warn("notifier: set QoS failed")
	}

	if _, err := ch.QueueDeclare(services.BookingCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(services.BookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.settle(ctx, d)
		}
	}
}

// settle handles one delivery and acks it, or nacks it with a single requeue for retryable failures
func (c *Consumer) settle(ctx context.Context, d amqp.Delivery) {
	if err := c.Handle(ctx, d.Body); err != nil {
		utils.Logger.WithError(err).Error("notifier: handle message failed")
		requeue := !errors.Is(err, ErrPermanent) && !d.Redelivered
		if nackErr := d.Nack(false, requeue); nackErr != nil {
			utils.Logger.WithError(nackErr).WithField("requeue", requeue).Warn("notifier: nack failed")
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		utils.Logger.WithError(ackErr).Warn("notifier: ack failed")
	}
}

// Handle decodes one booking event and sends its confirmation email
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev services.BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", ErrPermanent, err)
	}
	if ev.CustomerEmail == "" {
		return fmt.Errorf("%w: booking %d has no customer email", ErrPermanent, ev.BookingID)
	}
	if c.Sender == nil {
		return fmt.Errorf("%w: %v", ErrPermanent, services.ErrEmailNotConfigured)
	}

	id, err := c.Sender.SendBookingConfirmation(ctx, ev.Email())
	if err != nil {
		if errors.Is(err, services.ErrEmailNotConfigured) {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
		return fmt.Errorf("send confirmation for booking %d: %w", ev.BookingID, err)
	}

	utils.Logger.WithField("booking_id", ev.BookingID).WithField("message_id", id).Info("Booking confirmation sent")
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
