package publish

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

// mockChannel mocks the Channel capability
type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *mockChannel) IsClosed() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockChannel) QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return ret.Get(0).(amqp.Queue), ret.Error(1)
}

func (m *mockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockOpener mocks the ChannelOpener capability
type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) OpenChannel() (Channel, error) {
	args := m.Called()
	if ch := args.Get(0); ch != nil {
		return ch.(Channel), args.Error(1)
	}
	return nil, args.Error(1)
}
