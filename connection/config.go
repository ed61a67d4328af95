package connection

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// FromConfig builds ConnectionParams from a configuration source. Hosts may
// be supplied as an explicit list of host[:port] entries or as a single
// comma-separated string; an entry without a port gets the separately
// configured "port" (default 5672).
//
// Recognized keys: hosts, port, connection-timeout, username, password,
// virtual-host, ssl.
func FromConfig(v *viper.Viper) (*ConnectionParams, error) {
	params := DefaultParams()

	port := DefaultPort
	if v.IsSet("port") {
		port = v.GetInt("port")
		if port <= 0 || port > 65535 {
			return nil, &ConfigError{Key: "port", Value: v.Get("port"), Err: ErrMalformedHost}
		}
	}

	addrs, err := parseHosts(v.Get("hosts"), port)
	if err != nil {
		return nil, err
	}
	params.Addresses = addrs

	if v.IsSet("connection-timeout") {
		params.ConnectionTimeout = v.GetDuration("connection-timeout")
	}
	if v.IsSet("username") {
		params.Username = v.GetString("username")
	}
	if v.IsSet("password") {
		params.Password = v.GetString("password")
	}
	if v.IsSet("virtual-host") {
		params.VirtualHost = v.GetString("virtual-host")
	}
	params.UseTLS = v.GetBool("ssl")

	return params, nil
}

// parseHosts accepts a list of host entries or a comma-separated string.
func parseHosts(raw interface{}, defaultPort int) ([]Address, error) {
	var entries []string

	switch val := raw.(type) {
	case nil:
		return nil, &ConfigError{Key: "hosts", Value: raw, Err: ErrNoHosts}

	case string:
		entries = strings.Split(val, ",")

	case []string:
		entries = val

	case []interface{}:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &ConfigError{Key: "hosts", Value: item, Err: ErrMalformedHost}
			}
			entries = append(entries, s)
		}

	default:
		return nil, &ConfigError{Key: "hosts", Value: raw, Err: ErrMalformedHost}
	}

	addrs := make([]Address, 0, len(entries))
	for _, entry := range entries {
		addr, err := parseHost(entry, defaultPort)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}

	if len(addrs) == 0 {
		return nil, &ConfigError{Key: "hosts", Value: raw, Err: ErrNoHosts}
	}

	return addrs, nil
}

// parseHost parses a single "host" or "host:port" entry.
func parseHost(entry string, defaultPort int) (Address, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return Address{}, &ConfigError{Key: "hosts", Value: entry, Err: ErrMalformedHost}
	}

	host, portStr, err := net.SplitHostPort(entry)
	if err != nil {
		// No embedded port; the whole entry is the host.
		return Address{Host: entry, Port: defaultPort}, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Address{}, &ConfigError{
			Key:   "hosts",
			Value: entry,
			Err:   fmt.Errorf("%w: bad port %q", ErrMalformedHost, portStr),
		}
	}

	return Address{Host: host, Port: port}, nil
}
