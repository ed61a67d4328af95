package publish

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Deliverable is what the external channel-owning actor consumes. The actor
// calls Apply against a live channel and honors DropIfNoChannel: confirmed
// deliverables are retried until the broker acknowledges them, best-effort
// deliverables may be discarded when no channel is available.
type Deliverable interface {
	Apply(ctx context.Context, ch Channel) error
	DropIfNoChannel() bool
}

// Message is an immutable, ready-to-publish bundle of a target, serialized
// body, and protocol properties. It is expected to be applied once by the
// channel-owning actor and then discarded.
type Message struct {
	target          Target
	publishing      amqp.Publishing
	dropIfNoChannel bool
}

// NewConfirmed creates a confirmed message from pre-serialized bytes. The
// channel-owning actor must retry it until the broker acknowledges receipt
// or a failure is reported back to the caller.
func NewConfirmed(target Target, body []byte, properties ...Property) *Message {
	return newMessage(target, body, properties, false)
}

// NewBestEffort creates a best-effort message from pre-serialized bytes.
// The channel-owning actor may drop it silently if no channel is available.
func NewBestEffort(target Target, body []byte, properties ...Property) *Message {
	return newMessage(target, body, properties, true)
}

func newMessage(target Target, body []byte, properties []Property, dropIfNoChannel bool) *Message {
	pub := defaultPublishing()
	for _, p := range properties {
		p(&pub)
	}
	pub.Body = body
	return &Message{target: target, publishing: pub, dropIfNoChannel: dropIfNoChannel}
}

// Apply publishes the message through its target. Channel errors are not
// caught here; they propagate to the caller, which owns retry policy.
func (m *Message) Apply(ctx context.Context, ch Channel) error {
	return m.target.Publish(ctx, ch, m.publishing)
}

// DropIfNoChannel reports the message's reliability contract.
func (m *Message) DropIfNoChannel() bool {
	return m.dropIfNoChannel
}

// Target returns the message's publication target.
func (m *Message) Target() Target {
	return m.target
}

// Body returns the serialized payload.
func (m *Message) Body() []byte {
	return m.publishing.Body
}

// Properties returns the protocol properties the message publishes with.
func (m *Message) Properties() amqp.Publishing {
	return m.publishing
}
