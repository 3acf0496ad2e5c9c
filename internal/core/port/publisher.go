package port

import (
	"context"
	"time"

	"github.com/MikeRez0/yporders/internal/core/domain"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher.go -package=mock

// PaymentPublisher hands payment requests over with at-least-once delivery.
// Failures are returned as *domain.PublishError and never retried here.
type PaymentPublisher interface {
	Publish(ctx context.Context, msg *domain.PaymentRequest) (domain.MessageID, error)
}

type OutboxMessage struct {
	ID        domain.MessageID
	Topic     string
	Key       string
	Payload   []byte
	Attempts  int
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}

type OutboxStore interface {
	Enqueue(ctx context.Context, msg *OutboxMessage) error
	// FetchPending returns unsent messages with fewer than maxAttempts attempts,
	// oldest first. maxAttempts of 0 disables the attempts filter.
	FetchPending(ctx context.Context, limit int, maxAttempts int) ([]*OutboxMessage, error)
	MarkSent(ctx context.Context, id domain.MessageID) error
	MarkFailed(ctx context.Context, id domain.MessageID, cause error) error
}

// MessageSink delivers an outbox message to the broker.
type MessageSink interface {
	Send(ctx context.Context, msg *OutboxMessage) error
}
