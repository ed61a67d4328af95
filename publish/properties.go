package publish

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Property amends the protocol properties a message publishes with.
// Properties are applied in order, so later entries win on collision.
type Property func(*amqp.Publishing)

// defaultPublishing is the fixed property set construction starts from.
// Messages persist across a broker restart unless Transient is requested.
func defaultPublishing() amqp.Publishing {
	return amqp.Publishing{DeliveryMode: amqp.Persistent}
}

// Persistent marks the message to survive a broker restart.
func Persistent() Property {
	return func(p *amqp.Publishing) {
		p.DeliveryMode = amqp.Persistent
	}
}

// Transient marks the message as droppable on broker restart.
func Transient() Property {
	return func(p *amqp.Publishing) {
		p.DeliveryMode = amqp.Transient
	}
}

// ContentType sets the body MIME type.
func ContentType(contentType string) Property {
	return func(p *amqp.Publishing) {
		p.ContentType = contentType
	}
}

// ContentEncoding sets the body encoding.
func ContentEncoding(encoding string) Property {
	return func(p *amqp.Publishing) {
		p.ContentEncoding = encoding
	}
}

// Priority sets the message priority.
func Priority(priority uint8) Property {
	return func(p *amqp.Publishing) {
		p.Priority = priority
	}
}

// TTL sets the message time-to-live.
func TTL(ttl time.Duration) Property {
	return func(p *amqp.Publishing) {
		p.Expiration = fmt.Sprintf("%d", ttl.Milliseconds())
	}
}

// CorrelationID sets the correlation identifier.
func CorrelationID(id string) Property {
	return func(p *amqp.Publishing) {
		p.CorrelationId = id
	}
}

// ReplyTo sets the reply queue.
func ReplyTo(queue string) Property {
	return func(p *amqp.Publishing) {
		p.ReplyTo = queue
	}
}

// MessageID sets the message identifier.
func MessageID(id string) Property {
	return func(p *amqp.Publishing) {
		p.MessageId = id
	}
}

// GeneratedMessageID sets a fresh UUID as the message identifier.
func GeneratedMessageID() Property {
	return MessageID(uuid.New().String())
}

// Timestamp sets the message timestamp.
func Timestamp(t time.Time) Property {
	return func(p *amqp.Publishing) {
		p.Timestamp = t
	}
}

// AppID sets the publishing application identifier.
func AppID(id string) Property {
	return func(p *amqp.Publishing) {
		p.AppId = id
	}
}

// MessageType sets the message type name.
func MessageType(name string) Property {
	return func(p *amqp.Publishing) {
		p.Type = name
	}
}

// Header sets a single application header.
func Header(key string, value interface{}) Property {
	return func(p *amqp.Publishing) {
		if p.Headers == nil {
			p.Headers = make(amqp.Table)
		}
		p.Headers[key] = value
	}
}

// Headers merges a set of application headers.
func Headers(headers amqp.Table) Property {
	return func(p *amqp.Publishing) {
		if p.Headers == nil {
			p.Headers = make(amqp.Table, len(headers))
		}
		for k, v := range headers {
			p.Headers[k] = v
		}
	}
}

// cloneTable copies a header table so shared base properties stay immutable.
func cloneTable(t amqp.Table) amqp.Table {
	if t == nil {
		return nil
	}
	clone := make(amqp.Table, len(t))
	for k, v := range t {
		clone[k] = v
	}
	return clone
}
