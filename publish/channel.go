package publish

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of the broker channel surface this layer needs.
// *amqp.Channel satisfies it.
type Channel interface {
	// PublishWithContext publishes a message to an exchange with a routing key.
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error

	// IsClosed reports whether the channel is no longer usable.
	IsClosed() bool

	// QueueDeclarePassive fails if the named queue does not already exist.
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)

	// Close releases the channel.
	Close() error
}

// ChannelOpener opens short-lived side channels on an existing connection.
// Verified targets use it for the one-time existence check so that a failed
// passive declare does not kill the channel the caller publishes on.
type ChannelOpener interface {
	OpenChannel() (Channel, error)
}

// ConnectionOpener adapts *amqp.Connection to ChannelOpener.
type ConnectionOpener struct {
	Conn *amqp.Connection
}

// OpenChannel opens a new channel on the wrapped connection.
func (o ConnectionOpener) OpenChannel() (Channel, error) {
	ch, err := o.Conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// OpenerFunc is a function adapter for ChannelOpener.
type OpenerFunc func() (Channel, error)

// OpenChannel calls the function.
func (f OpenerFunc) OpenChannel() (Channel, error) {
	return f()
}
