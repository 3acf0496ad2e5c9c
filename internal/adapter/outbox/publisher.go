package outbox

import (
	"context"
	"encoding/json"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher stores payment requests in the outbox. Called with a transactional
// context, the message commits or rolls back together with the order.
type Publisher struct {
	store  port.OutboxStore
	topic  string
	logger *zap.Logger
}

func NewPublisher(store port.OutboxStore, topic string, logger *zap.Logger) (*Publisher, error) {
	return &Publisher{
		store:  store,
		topic:  topic,
		logger: logger,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, msg *domain.PaymentRequest) (domain.MessageID, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", &domain.PublishError{OrderID: msg.OrderID, Cause: err}
	}

	record := &port.OutboxMessage{
		ID:      domain.MessageID(uuid.NewString()),
		Topic:   p.topic,
		Key:     msg.DeduplicationKey(),
		Payload: payload,
	}

	err = p.store.Enqueue(ctx, record)
	if err != nil {
		return "", &domain.PublishError{OrderID: msg.OrderID, Cause: err}
	}

	p.logger.Debug("payment request queued",
		zap.Uint64("order", uint64(msg.OrderID)),
		zap.String("message", string(record.ID)))

	return record.ID, nil
}
