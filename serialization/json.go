// Package serialization provides Serializer implementations for the publish
// package. Callers with payload types that need another wire format supply
// their own implementation of publish.Serializer.
package serialization

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

// JSONSerializer encodes payloads with encoding/json and stamps the
// content-type property accordingly.
type JSONSerializer struct{}

// JSON is a shared, stateless JSONSerializer.
var JSON = JSONSerializer{}

// ContributeProperties sets the JSON content type and UTF-8 encoding.
func (JSONSerializer) ContributeProperties(p *amqp.Publishing) {
	p.ContentType = "application/json"
	p.ContentEncoding = "utf-8"
}

// Marshal encodes the payload as JSON.
func (JSONSerializer) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
