package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewSink_Disabled(t *testing.T) {
	_, err := NewSink(&config.Kafka{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSink_Send(t *testing.T) {
	s, err := NewSink(&config.Kafka{Brokers: []string{"localhost:9092"}}, zap.NewNop())
	require.NoError(t, err)

	writers := map[string]*fakeWriter{}
	s.newWriter = func(topic string) messageWriter {
		w := &fakeWriter{}
		writers[topic] = w
		return w
	}

	msg := &port.OutboxMessage{ID: "m-1", Topic: "payment-requests", Key: "42", Payload: []byte(`{"orderId":42}`)}
	require.NoError(t, s.Send(context.Background(), msg))
	require.NoError(t, s.Send(context.Background(), msg))

	w := writers["payment-requests"]
	require.NotNil(t, w)
	require.Len(t, w.messages, 2)
	assert.Equal(t, []byte("42"), w.messages[0].Key)
	assert.Equal(t, []byte(`{"orderId":42}`), w.messages[0].Value)
	assert.Equal(t, HeaderMessageID, w.messages[0].Headers[0].Key)
	assert.Equal(t, []byte("m-1"), w.messages[0].Headers[0].Value)

	require.NoError(t, s.Close())
	assert.True(t, w.closed)
}

func TestSink_SendError(t *testing.T) {
	s, err := NewSink(&config.Kafka{Brokers: []string{"localhost:9092"}}, zap.NewNop())
	require.NoError(t, err)

	cause := errors.New("leader not available")
	s.newWriter = func(string) messageWriter { return &fakeWriter{err: cause} }

	err = s.Send(context.Background(), &port.OutboxMessage{ID: "m-1", Topic: "t", Key: "1"})
	assert.ErrorIs(t, err, cause)
}
