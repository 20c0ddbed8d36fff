// Package messaging publishes domain events to a broker. The service only
// produces events (secret enrollment, verification, rotation); consumption
// is left to downstream systems, so the abstraction is publish-only.
package messaging

import (
	"context"
	"io"
	"time"
)

// Publisher publishes messages to a destination (topic or subject).
type Publisher interface {
	io.Closer

	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning. Events for one principal share
	// a key so they stay ordered.
	Key []byte

	// Headers carry arbitrary binary values and allow duplicate keys.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// Topic is the destination the message was written to.
	Topic string

	// Timestamp is when the client handed the message to the broker.
	Timestamp time.Time
}

// Noop is a Publisher that drops every message. Used when event publishing
// is disabled and in tests.
type Noop struct{}

// Publish discards the message.
func (Noop) Publish(_ context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Close is a no-op.
func (Noop) Close() error { return nil }
