package serialization

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravelmq/caravel-go/publish"
)

var _ publish.Serializer = JSONSerializer{}

func TestJSONSerializer(t *testing.T) {
	t.Run("contributes content type and encoding", func(t *testing.T) {
		p := amqp.Publishing{ContentType: "text/plain"}

		JSON.ContributeProperties(&p)

		assert.Equal(t, "application/json", p.ContentType)
		assert.Equal(t, "utf-8", p.ContentEncoding)
	})

	t.Run("encodes payloads as JSON", func(t *testing.T) {
		body, err := JSON.Marshal(map[string]string{"data": "hello"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"data":"hello"}`, string(body))
	})

	t.Run("fails on unencodable payloads", func(t *testing.T) {
		_, err := JSON.Marshal(make(chan int))

		assert.Error(t, err)
	})
}
