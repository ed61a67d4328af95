package connection

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoHosts is returned when neither a host list nor a parseable
	// comma-separated host string is configured.
	ErrNoHosts = errors.New("connection: no hosts configured")

	// ErrMalformedHost is returned when a host entry cannot be parsed.
	ErrMalformedHost = errors.New("connection: malformed host entry")

	// ErrDialTimeout is returned when a broker does not accept the
	// connection within the connection timeout.
	ErrDialTimeout = errors.New("connection: dial timeout")
)

// ConfigError reports an invalid value read from a configuration source.
type ConfigError struct {
	Key   string      // Configuration key that failed
	Value interface{} // Offending value
	Err   error       // Underlying error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("connection: invalid configuration for %q (value %v): %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DialError reports a failed connection attempt across a set of endpoints.
type DialError struct {
	Endpoints []string  // Host:port endpoints tried, in order
	Err       error     // Error from the last attempt
	Timestamp time.Time // When the final attempt failed
}

func (e *DialError) Error() string {
	return fmt.Sprintf("connection: dial failed for [%s]: %v", strings.Join(e.Endpoints, ", "), e.Err)
}

func (e *DialError) Unwrap() error {
	return e.Err
}
