package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, msg []byte) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("pandawok-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, msg []byte) error {
	return p.conn.Publish(subject, msg)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NoopPublisher discards every message.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = NoopPublisher{}
)
