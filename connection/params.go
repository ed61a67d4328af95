package connection

import (
	"net"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultPort is the standard AMQP port.
	DefaultPort = 5672

	// DefaultConnectionTimeout bounds how long a single dial attempt may take.
	DefaultConnectionTimeout = 30 * time.Second

	// DefaultHeartbeat is the requested heartbeat interval.
	DefaultHeartbeat = 10 * time.Second

	// DefaultShutdownTimeout bounds a graceful connection shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Address is a single broker endpoint.
type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ConnectionParams describes how to reach and authenticate against a broker
// cluster. The field set is deliberately restricted: anything that would
// defeat automatic topology recovery (for example disabling entity
// re-declaration) is not configurable here. A value is constructed once,
// applied to exactly one ConnectionFactory, and not mutated afterward.
type ConnectionParams struct {
	Addresses         []Address
	Username          string
	Password          string
	VirtualHost       string
	UseTLS            bool
	ClientProperties  amqp.Table
	ConnectionTimeout time.Duration
	ChannelMax        int
	FrameMax          int
	Heartbeat         time.Duration
	SASL              []amqp.Authentication
	ShutdownTimeout   time.Duration

	// Dialer is the socket factory used to open the TCP connection.
	Dialer func(network, addr string) (net.Conn, error)

	// ErrorHandler receives errors from failed dial attempts.
	ErrorHandler func(error)
}

// DefaultParams returns parameters for a local broker with the conventional
// guest credentials.
func DefaultParams() *ConnectionParams {
	return &ConnectionParams{
		Addresses:         []Address{{Host: "localhost", Port: DefaultPort}},
		Username:          "guest",
		Password:          "guest",
		VirtualHost:       "/",
		ConnectionTimeout: DefaultConnectionTimeout,
		Heartbeat:         DefaultHeartbeat,
		ShutdownTimeout:   DefaultShutdownTimeout,
		ClientProperties: amqp.Table{
			"product": "caravel-go",
		},
	}
}

// ApplyTo copies every configured field onto the factory, in declaration
// order, enabling TLS last. It is a one-directional, one-shot projection:
// nothing is read back from the factory.
func (p *ConnectionParams) ApplyTo(f *ConnectionFactory) {
	f.Addresses = append([]Address(nil), p.Addresses...)
	f.Username = p.Username
	f.Password = p.Password
	f.VirtualHost = p.VirtualHost
	f.ClientProperties = cloneTable(p.ClientProperties)
	f.ConnectionTimeout = p.ConnectionTimeout
	f.ChannelMax = p.ChannelMax
	f.FrameMax = p.FrameMax
	f.Heartbeat = p.Heartbeat
	f.SASL = append([]amqp.Authentication(nil), p.SASL...)
	f.ShutdownTimeout = p.ShutdownTimeout
	f.Dialer = p.Dialer
	f.ErrorHandler = p.ErrorHandler

	if p.UseTLS {
		f.EnableTLS()
	}
}

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
