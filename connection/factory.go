package connection

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionFactory is the mutable object ConnectionParams projects onto.
// Bootstrap code configures it once, via ApplyTo, and then dials. The
// factory always requests heartbeats and never exposes a switch that would
// stop the client library from re-declaring topology after a reconnect.
type ConnectionFactory struct {
	Addresses         []Address
	Username          string
	Password          string
	VirtualHost       string
	ClientProperties  amqp.Table
	ConnectionTimeout time.Duration
	ChannelMax        int
	FrameMax          int
	Heartbeat         time.Duration
	SASL              []amqp.Authentication
	ShutdownTimeout   time.Duration
	Dialer            func(network, addr string) (net.Conn, error)
	ErrorHandler      func(error)
	TLSConfig         *tls.Config

	logger *slog.Logger
}

// FactoryOption configures the ConnectionFactory.
type FactoryOption func(*ConnectionFactory)

// WithLogger sets the logger used on the dial path.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *ConnectionFactory) {
		f.logger = logger
	}
}

// NewConnectionFactory creates a factory with empty configuration. Use
// ConnectionParams.ApplyTo to populate it.
func NewConnectionFactory(options ...FactoryOption) *ConnectionFactory {
	f := &ConnectionFactory{
		logger: slog.Default(),
	}

	for _, opt := range options {
		opt(f)
	}

	return f
}

// EnableTLS turns on secure transport. It must be called after field
// assignment; ConnectionParams.ApplyTo does so when the TLS flag is set.
func (f *ConnectionFactory) EnableTLS() {
	if f.TLSConfig == nil {
		f.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
}

// URI renders the AMQP URI for one endpoint.
func (f *ConnectionFactory) URI(addr Address) string {
	scheme := "amqp"
	if f.TLSConfig != nil {
		scheme = "amqps"
	}

	vhost := f.VirtualHost
	if vhost == "" {
		vhost = "/"
	}

	uri := amqp.URI{
		Scheme:   scheme,
		Host:     addr.Host,
		Port:     addr.Port,
		Username: f.Username,
		Password: f.Password,
		Vhost:    vhost,
	}
	return uri.String()
}

// Config projects the factory's fields into the client library's dial
// configuration.
func (f *ConnectionFactory) Config() amqp.Config {
	timeout := f.ConnectionTimeout
	if timeout == 0 {
		timeout = DefaultConnectionTimeout
	}

	dial := f.Dialer
	if dial == nil {
		dial = amqp.DefaultDial(timeout)
	}

	heartbeat := f.Heartbeat
	if heartbeat == 0 {
		heartbeat = DefaultHeartbeat
	}

	return amqp.Config{
		SASL:            f.SASL,
		Vhost:           f.VirtualHost,
		ChannelMax:      f.ChannelMax,
		FrameSize:       f.FrameMax,
		Heartbeat:       heartbeat,
		TLSClientConfig: f.TLSConfig,
		Properties:      f.ClientProperties,
		Dial:            dial,
	}
}

// Dial establishes a connection, trying each configured address in order.
// Every attempt is bounded by the connection timeout. The first success
// wins; if all endpoints fail, a DialError wrapping the last failure is
// returned.
func (f *ConnectionFactory) Dial(ctx context.Context) (*amqp.Connection, error) {
	if len(f.Addresses) == 0 {
		return nil, ErrNoHosts
	}

	timeout := f.ConnectionTimeout
	if timeout == 0 {
		timeout = DefaultConnectionTimeout
	}

	cfg := f.Config()
	endpoints := make([]string, 0, len(f.Addresses))
	var lastErr error

	for _, addr := range f.Addresses {
		endpoints = append(endpoints, addr.String())

		dialCtx, cancel := context.WithTimeout(ctx, timeout)
		conn, err := f.dialOne(dialCtx, addr, cfg)
		cancel()

		if err == nil {
			f.logger.Info("connected to broker",
				"host", addr.Host,
				"port", addr.Port,
				"vhost", cfg.Vhost)
			return conn, nil
		}

		f.logger.Warn("dial attempt failed",
			"host", addr.Host,
			"port", addr.Port,
			"error", err)

		if f.ErrorHandler != nil {
			f.ErrorHandler(err)
		}
		lastErr = err
	}

	return nil, &DialError{
		Endpoints: endpoints,
		Err:       lastErr,
		Timestamp: time.Now(),
	}
}

// dialOne races a single dial attempt against the attempt's deadline.
func (f *ConnectionFactory) dialOne(ctx context.Context, addr Address, cfg amqp.Config) (*amqp.Connection, error) {
	connChan := make(chan *amqp.Connection, 1)
	errChan := make(chan error, 1)

	go func() {
		conn, err := amqp.DialConfig(f.URI(addr), cfg)
		if err != nil {
			errChan <- err
			return
		}
		connChan <- conn
	}()

	select {
	case conn := <-connChan:
		return conn, nil

	case err := <-errChan:
		return nil, err

	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrDialTimeout
		}
		return nil, ctx.Err()
	}
}
