package publish

import (
	"context"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/singleflight"
)

// DefaultTopicExchange is the exchange topic targets publish to unless
// overridden with WithTopicExchange.
const DefaultTopicExchange = "amq.topic"

// Target resolves a logical destination into the exchange/routing-key pair
// handed to the channel's publish primitive. Implementations are immutable
// apart from VerifiedQueueTarget's one-shot verification state.
type Target interface {
	// Publish invokes the channel's publish primitive with the target's
	// exchange and routing key and the given message.
	Publish(ctx context.Context, ch Channel, msg amqp.Publishing) error

	// Exchange returns the exchange name; empty means the default exchange.
	Exchange() string

	// RoutingKey returns the routing key.
	RoutingKey() string
}

// ExchangeTarget is an immutable exchange/routing-key pair.
type ExchangeTarget struct {
	exchange   string
	routingKey string
}

// TopicOption configures topic targets.
type TopicOption func(*ExchangeTarget)

// WithTopicExchange overrides the exchange a topic target publishes to.
func WithTopicExchange(exchange string) TopicOption {
	return func(t *ExchangeTarget) {
		t.exchange = exchange
	}
}

// ToQueue targets a named queue through the default exchange.
func ToQueue(queue string) ExchangeTarget {
	return ExchangeTarget{exchange: "", routingKey: queue}
}

// ToTopic targets a routing key on the topic exchange.
func ToTopic(routingKey string, options ...TopicOption) ExchangeTarget {
	t := ExchangeTarget{exchange: DefaultTopicExchange, routingKey: routingKey}
	for _, opt := range options {
		opt(&t)
	}
	return t
}

// ToExchange targets an arbitrary exchange and routing key.
func ToExchange(exchange, routingKey string) ExchangeTarget {
	return ExchangeTarget{exchange: exchange, routingKey: routingKey}
}

// Publish implements Target.
func (t ExchangeTarget) Publish(ctx context.Context, ch Channel, msg amqp.Publishing) error {
	return ch.PublishWithContext(ctx, t.exchange, t.routingKey, false, false, msg)
}

// Exchange implements Target.
func (t ExchangeTarget) Exchange() string { return t.exchange }

// RoutingKey implements Target.
func (t ExchangeTarget) RoutingKey() string { return t.routingKey }

// VerifiedQueueTarget targets a named queue and verifies, once, that the
// queue exists before the first publish. The check runs on a short-lived
// side channel because a failed passive declare closes the channel it ran
// on. Verification is not atomic with respect to a concurrent queue
// deletion; a publish after such a deletion fails at the channel and the
// error propagates to the caller.
type VerifiedQueueTarget struct {
	queue    string
	opener   ChannelOpener
	verified atomic.Bool
	group    singleflight.Group
}

// ToQueueVerified targets a named queue, checking its existence on first use.
func ToQueueVerified(queue string, opener ChannelOpener) *VerifiedQueueTarget {
	return &VerifiedQueueTarget{queue: queue, opener: opener}
}

// Publish implements Target. The first call performs a passive existence
// check; on success all later calls skip straight to the publish. On
// failure the target stays unverified and a later call retries the check
// on a fresh side channel.
func (t *VerifiedQueueTarget) Publish(ctx context.Context, ch Channel, msg amqp.Publishing) error {
	if !t.verified.Load() {
		if err := t.verify(); err != nil {
			return err
		}
	}
	return ch.PublishWithContext(ctx, "", t.queue, false, false, msg)
}

// verify runs the passive check. Concurrent first publishes share a single
// in-flight check via singleflight.
func (t *VerifiedQueueTarget) verify() error {
	_, err, _ := t.group.Do(t.queue, func() (interface{}, error) {
		if t.verified.Load() {
			return nil, nil
		}

		side, err := t.opener.OpenChannel()
		if err != nil {
			return nil, err
		}
		defer side.Close()

		if _, err := side.QueueDeclarePassive(t.queue, false, false, false, false, nil); err != nil {
			return nil, &TargetNotFoundError{
				Queue:     t.queue,
				Err:       err,
				Timestamp: time.Now(),
			}
		}

		t.verified.Store(true)
		return nil, nil
	})
	return err
}

// Verified reports whether the existence check has succeeded.
func (t *VerifiedQueueTarget) Verified() bool {
	return t.verified.Load()
}

// Exchange implements Target.
func (t *VerifiedQueueTarget) Exchange() string { return "" }

// RoutingKey implements Target.
func (t *VerifiedQueueTarget) RoutingKey() string { return t.queue }
