package connection

import (
	"errors"
	"net"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()

	assert.Equal(t, []Address{{Host: "localhost", Port: DefaultPort}}, params.Addresses)
	assert.Equal(t, "guest", params.Username)
	assert.Equal(t, "guest", params.Password)
	assert.Equal(t, "/", params.VirtualHost)
	assert.Equal(t, DefaultConnectionTimeout, params.ConnectionTimeout)
	assert.Equal(t, DefaultHeartbeat, params.Heartbeat)
	assert.False(t, params.UseTLS)
}

func TestApplyTo(t *testing.T) {
	newParams := func() *ConnectionParams {
		return &ConnectionParams{
			Addresses:         []Address{{Host: "broker-1", Port: 5672}, {Host: "broker-2", Port: 5673}},
			Username:          "app",
			Password:          "secret",
			VirtualHost:       "/orders",
			ClientProperties:  amqp.Table{"product": "caravel-go", "service": "billing"},
			ConnectionTimeout: 5 * time.Second,
			ChannelMax:        64,
			FrameMax:          131072,
			Heartbeat:         20 * time.Second,
			SASL:              []amqp.Authentication{&amqp.PlainAuth{Username: "app", Password: "secret"}},
			ShutdownTimeout:   3 * time.Second,
		}
	}

	t.Run("copies every field onto the factory", func(t *testing.T) {
		params := newParams()
		factory := NewConnectionFactory()

		params.ApplyTo(factory)

		assert.Equal(t, params.Addresses, factory.Addresses)
		assert.Equal(t, "app", factory.Username)
		assert.Equal(t, "secret", factory.Password)
		assert.Equal(t, "/orders", factory.VirtualHost)
		assert.Equal(t, params.ClientProperties, factory.ClientProperties)
		assert.Equal(t, 5*time.Second, factory.ConnectionTimeout)
		assert.Equal(t, 64, factory.ChannelMax)
		assert.Equal(t, 131072, factory.FrameMax)
		assert.Equal(t, 20*time.Second, factory.Heartbeat)
		assert.Equal(t, params.SASL, factory.SASL)
		assert.Equal(t, 3*time.Second, factory.ShutdownTimeout)
		assert.Nil(t, factory.TLSConfig)
	})

	t.Run("is a pure projection across fresh factories", func(t *testing.T) {
		params := newParams()

		first := NewConnectionFactory()
		second := NewConnectionFactory()
		params.ApplyTo(first)
		params.ApplyTo(second)

		assert.Equal(t, first, second)
	})

	t.Run("TLS flag enables secure transport last", func(t *testing.T) {
		params := newParams()
		params.UseTLS = true
		factory := NewConnectionFactory()

		params.ApplyTo(factory)

		require.NotNil(t, factory.TLSConfig)
		assert.Equal(t, uint16(0x0303), factory.TLSConfig.MinVersion) // TLS 1.2
	})

	t.Run("does not alias the params' slices and tables", func(t *testing.T) {
		params := newParams()
		factory := NewConnectionFactory()
		params.ApplyTo(factory)

		params.Addresses[0].Host = "tampered"
		params.ClientProperties["product"] = "tampered"

		assert.Equal(t, "broker-1", factory.Addresses[0].Host)
		assert.Equal(t, "caravel-go", factory.ClientProperties["product"])
	})

	t.Run("copies the socket factory and error handler", func(t *testing.T) {
		params := newParams()
		params.Dialer = func(network, addr string) (net.Conn, error) {
			return nil, errors.New("unused")
		}
		params.ErrorHandler = func(error) {}
		factory := NewConnectionFactory()

		params.ApplyTo(factory)

		assert.NotNil(t, factory.Dialer)
		assert.NotNil(t, factory.ErrorHandler)
	})
}
