package publish

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Serializer turns an application payload into message bytes plus protocol
// properties. Callers supply one implementation per payload type; the
// serialization package provides a JSON implementation.
type Serializer interface {
	// ContributeProperties adds or amends protocol properties, typically
	// content type and encoding. It runs after the caller-supplied
	// properties, so its entries win on collision.
	ContributeProperties(p *amqp.Publishing)

	// Marshal encodes the payload to bytes.
	Marshal(v interface{}) ([]byte, error)
}

// Build constructs a confirmed message: default properties, then the
// caller's properties in order, then the serializer's contribution, then
// the serialized body. The only build-time failure is serialization;
// channel errors surface later, when the message is applied.
func Build(target Target, body interface{}, ser Serializer, properties ...Property) (*Message, error) {
	return build(target, body, ser, properties, false)
}

// BuildBestEffort is Build for the best-effort reliability contract.
func BuildBestEffort(target Target, body interface{}, ser Serializer, properties ...Property) (*Message, error) {
	return build(target, body, ser, properties, true)
}

func build(target Target, body interface{}, ser Serializer, properties []Property, dropIfNoChannel bool) (*Message, error) {
	pub, err := mergeProperties(target, ser, properties)
	if err != nil {
		return nil, err
	}
	return finish(target, body, ser, pub, dropIfNoChannel)
}

// QueueMessage builds a confirmed message to a named queue.
func QueueMessage(queue string, body interface{}, ser Serializer, properties ...Property) (*Message, error) {
	return Build(ToQueue(queue), body, ser, properties...)
}

// TopicMessage builds a confirmed message to a routing key on the topic exchange.
func TopicMessage(routingKey string, body interface{}, ser Serializer, properties ...Property) (*Message, error) {
	return Build(ToTopic(routingKey), body, ser, properties...)
}

// ExchangeMessage builds a confirmed message to an arbitrary exchange and routing key.
func ExchangeMessage(exchange, routingKey string, body interface{}, ser Serializer, properties ...Property) (*Message, error) {
	return Build(ToExchange(exchange, routingKey), body, ser, properties...)
}

// Factory precomputes the merged property set for one target and serializer,
// avoiding redundant merging when many messages of the same shape go to the
// same destination.
type Factory struct {
	target Target
	ser    Serializer
	base   amqp.Publishing
}

// NewFactory precomputes the merged properties once and returns a reusable
// body-to-message factory. The returned error is non-nil only for a missing
// target or serializer.
func NewFactory(target Target, ser Serializer, properties ...Property) (*Factory, error) {
	base, err := mergeProperties(target, ser, properties)
	if err != nil {
		return nil, err
	}
	return &Factory{target: target, ser: ser, base: base}, nil
}

// Message builds a confirmed message for the given body.
func (f *Factory) Message(body interface{}) (*Message, error) {
	return f.message(body, false)
}

// BestEffort builds a best-effort message for the given body.
func (f *Factory) BestEffort(body interface{}) (*Message, error) {
	return f.message(body, true)
}

func (f *Factory) message(body interface{}, dropIfNoChannel bool) (*Message, error) {
	pub := f.base
	pub.Headers = cloneTable(f.base.Headers)

	encoded, err := f.ser.Marshal(body)
	if err != nil {
		return nil, &SerializationError{ContentType: pub.ContentType, Err: err}
	}
	pub.Body = encoded
	return &Message{target: f.target, publishing: pub, dropIfNoChannel: dropIfNoChannel}, nil
}

func mergeProperties(target Target, ser Serializer, properties []Property) (amqp.Publishing, error) {
	if target == nil {
		return amqp.Publishing{}, ErrNilTarget
	}
	if ser == nil {
		return amqp.Publishing{}, ErrNilSerializer
	}

	pub := defaultPublishing()
	for _, p := range properties {
		p(&pub)
	}
	ser.ContributeProperties(&pub)
	return pub, nil
}

func finish(target Target, body interface{}, ser Serializer, pub amqp.Publishing, dropIfNoChannel bool) (*Message, error) {
	encoded, err := ser.Marshal(body)
	if err != nil {
		return nil, &SerializationError{ContentType: pub.ContentType, Err: err}
	}
	pub.Body = encoded
	return &Message{target: target, publishing: pub, dropIfNoChannel: dropIfNoChannel}, nil
}
