package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tidyhome/homeservices-api/utils"
)

// BookingCreatedQueue is the durable queue carrying new booking events
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking row is inserted
type BookingCreatedEvent struct {
	BookingID     uint      `json:"booking_id"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ServiceType   string    `json:"service_type"`
	Date          string    `json:"date"`
	TimeSlot      string    `json:"time_slot"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	TotalPrice    float64   `json:"total_price"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

// Email converts the event into a confirmation email
func (e BookingCreatedEvent) Email() BookingEmail {
	return BookingEmail{
		To:           e.CustomerEmail,
		CustomerName: e.CustomerName,
		BookingID:    e.BookingID,
		ServiceType:  e.ServiceType,
		Date:         e.Date,
		TimeSlot:     e.TimeSlot,
		Bedrooms:     e.Bedrooms,
		Bathrooms:    e.Bathrooms,
		TotalPrice:   e.TotalPrice,
		Address:      e.Address,
	}
}

// Publisher hands booking events to whatever delivers notifications
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
}

var publisherInstance Publisher = NoopPublisher{}

// GetPublisher returns the active publisher
func GetPublisher() Publisher {
	return publisherInstance
}

// SetPublisher replaces the active publisher
func SetPublisher(p Publisher) {
	if p == nil {
		p = NoopPublisher{}
	}
	publisherInstance = p
}

// AMQPPublisher publishes persistent JSON messages to RabbitMQ
type AMQPPublisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
}

// NewAMQPPublisher dials the broker and declares the booking queue
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url}
	ch, err := p.channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	return p, nil
}

// channel opens a channel on the shared connection, redialing if the broker dropped it
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	return ch, nil
}

// PublishBookingCreated sends the event to the booking.created queue
func (p *AMQPPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, "", BookingCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// Close releases the broker connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}

// InlinePublisher sends the confirmation email within the request when no broker is configured
type InlinePublisher struct {
	Sender EmailSender
}

func (p InlinePublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	if p.Sender == nil {
		return ErrEmailNotConfigured
	}
	if event.CustomerEmail == "" {
		return errors.New("booking has no customer email")
	}
	id, err := p.Sender.SendBookingConfirmation(ctx, event.Email())
	if err != nil {
		return err
	}
	utils.Logger.WithField("booking_id", event.BookingID).WithField("message_id", id).Info("Booking confirmation sent")
	return nil
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return nil
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	Events []BookingCreatedEvent
	Err    error
}

func (m *MockPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

// MockEmailSender records sent emails
type MockEmailSender struct {
	mu     sync.Mutex
	Sent   []BookingEmail
	Err    error
	NextID string
}

func (m *MockEmailSender) SendBookingConfirmation(ctx context.Context, email BookingEmail) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Sent = append(m.Sent, email)
	if m.NextID != "" {
		return m.NextID, nil
	}
	return fmt.Sprintf("mock_%d", len(m.Sent)), nil
}
