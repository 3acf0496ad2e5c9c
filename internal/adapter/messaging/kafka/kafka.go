package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	HeaderMessageID = "message-id"
	HeaderOrderID   = "order-id"
)

var ErrDisabled = errors.New("kafka disabled: no brokers configured")

// messageWriter is the part of *kafka.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sink writes outbox messages to Kafka, one writer per topic. Messages are keyed
// by order id so redeliveries land on the same partition.
type Sink struct {
	brokers []string
	logger  *zap.Logger

	mu        sync.Mutex
	writers   map[string]messageWriter
	newWriter func(topic string) messageWriter
}

func NewSink(cfg *config.Kafka, logger *zap.Logger) (*Sink, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	s := &Sink{
		brokers: cfg.Brokers,
		logger:  logger,
		writers: make(map[string]messageWriter),
	}
	s.newWriter = s.kafkaWriter
	return s, nil
}

func (s *Sink) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:                   kafka.TCP(s.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (s *Sink) writer(topic string) messageWriter {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.writers[topic]
	if !ok {
		w = s.newWriter(topic)
		s.writers[topic] = w
	}
	return w
}

func (s *Sink) Send(ctx context.Context, msg *port.OutboxMessage) error {
	err := s.writer(msg.Topic).WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Payload,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: HeaderMessageID, Value: []byte(msg.ID)},
			{Key: HeaderOrderID, Value: []byte(msg.Key)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka write to %s: %w", msg.Topic, err)
	}

	s.logger.Debug("message sent",
		zap.String("topic", msg.Topic),
		zap.String("key", msg.Key),
		zap.String("id", string(msg.ID)))
	return nil
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for topic, w := range s.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}
	}
	s.writers = make(map[string]messageWriter)
	return errors.Join(errs...)
}
