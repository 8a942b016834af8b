package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

const (
	QueueBookingRequested = "booking.requested"
	QueueApprovalRequired = "booking.approval_required"
)

// BookingNotification is handed to the notification collaborator after a
// public request is accepted.
type BookingNotification struct {
	RequestID string    `json:"request_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	PartySize int       `json:"party_size"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Comments  string    `json:"comments,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(ctx context.Context, queue string, n BookingNotification) error
}

// RabbitNotifier publishes persistent JSON messages to durable queues.
type RabbitNotifier struct {
	mu   sync.Mutex
	url  string
	conn *amqp.Connection
}

func NewRabbitNotifier(url string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	return &RabbitNotifier{url: url, conn: conn}, nil
}

func (n *RabbitNotifier) connection() (*amqp.Connection, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn != nil && !n.conn.IsClosed() {
		return n.conn, nil
	}

	conn, err := amqp.Dial(n.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq redial: %w", err)
	}
	n.conn = conn
	return conn, nil
}

func (n *RabbitNotifier) Notify(ctx context.Context, queue string, msg BookingNotification) error {
	conn, err := n.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("rabbitmq marshal: %w", err)
	}

	return ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (n *RabbitNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}

// LogNotifier writes notifications to the info log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, queue string, n BookingNotification) error {
	logger.InfoLogger.WithFields(map[string]any{
		"queue":      queue,
		"request_id": n.RequestID,
		"party_size": n.PartySize,
		"date":       n.Date,
		"time":       n.Time,
	}).Info("booking notification")
	return nil
}

var (
	_ Notifier = (*RabbitNotifier)(nil)
	_ Notifier = LogNotifier{}
)
