package connection

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	t.Run("comma-separated hosts with default port", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "a,b:5673,c")
		v.Set("port", 5672)

		params, err := FromConfig(v)

		require.NoError(t, err)
		assert.Equal(t, []Address{
			{Host: "a", Port: 5672},
			{Host: "b", Port: 5673},
			{Host: "c", Port: 5672},
		}, params.Addresses)
	})

	t.Run("explicit host list", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", []string{"broker-1", "broker-2:5673"})
		v.Set("port", 5680)

		params, err := FromConfig(v)

		require.NoError(t, err)
		assert.Equal(t, []Address{
			{Host: "broker-1", Port: 5680},
			{Host: "broker-2", Port: 5673},
		}, params.Addresses)
	})

	t.Run("entries are trimmed", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "a, b ,c")

		params, err := FromConfig(v)

		require.NoError(t, err)
		assert.Equal(t, []Address{
			{Host: "a", Port: DefaultPort},
			{Host: "b", Port: DefaultPort},
			{Host: "c", Port: DefaultPort},
		}, params.Addresses)
	})

	t.Run("missing hosts is a configuration error", func(t *testing.T) {
		v := viper.New()

		params, err := FromConfig(v)

		assert.Nil(t, params)
		assert.ErrorIs(t, err, ErrNoHosts)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "hosts", cfgErr.Key)
	})

	t.Run("empty host string is a configuration error", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "")

		_, err := FromConfig(v)

		assert.ErrorIs(t, err, ErrMalformedHost)
	})

	t.Run("bad embedded port is a configuration error", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "a,b:not-a-port")

		_, err := FromConfig(v)

		assert.ErrorIs(t, err, ErrMalformedHost)
	})

	t.Run("bad default port is a configuration error", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "a")
		v.Set("port", -1)

		_, err := FromConfig(v)

		assert.ErrorIs(t, err, ErrMalformedHost)
	})

	t.Run("credentials, vhost, timeout and ssl", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "broker")
		v.Set("username", "app")
		v.Set("password", "secret")
		v.Set("virtual-host", "/orders")
		v.Set("connection-timeout", "5s")
		v.Set("ssl", true)

		params, err := FromConfig(v)

		require.NoError(t, err)
		assert.Equal(t, "app", params.Username)
		assert.Equal(t, "secret", params.Password)
		assert.Equal(t, "/orders", params.VirtualHost)
		assert.Equal(t, 5*time.Second, params.ConnectionTimeout)
		assert.True(t, params.UseTLS)
	})

	t.Run("unset keys keep defaults", func(t *testing.T) {
		v := viper.New()
		v.Set("hosts", "broker")

		params, err := FromConfig(v)

		require.NoError(t, err)
		assert.Equal(t, "guest", params.Username)
		assert.Equal(t, "guest", params.Password)
		assert.Equal(t, "/", params.VirtualHost)
		assert.Equal(t, DefaultConnectionTimeout, params.ConnectionTimeout)
		assert.False(t, params.UseTLS)
	})
}
