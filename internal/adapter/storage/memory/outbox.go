package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
)

type OutboxStore struct {
	mu       sync.Mutex
	messages []*port.OutboxMessage
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{}
}

func (s *OutboxStore) Enqueue(_ context.Context, msg *port.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.CreatedAt = time.Now().UTC()
	stored := *msg
	stored.Payload = slices.Clone(msg.Payload)
	s.messages = append(s.messages, &stored)
	return nil
}

func (s *OutboxStore) FetchPending(_ context.Context, limit int, maxAttempts int) ([]*port.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*port.OutboxMessage, 0)
	for _, msg := range s.messages {
		if len(out) >= limit {
			break
		}
		if msg.SentAt != nil || (maxAttempts > 0 && msg.Attempts >= maxAttempts) {
			continue
		}
		c := *msg
		out = append(out, &c)
	}
	return out, nil
}

func (s *OutboxStore) MarkSent(_ context.Context, id domain.MessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg := s.find(id); msg != nil {
		now := time.Now().UTC()
		msg.SentAt = &now
		return nil
	}
	return domain.ErrDataNotFound
}

func (s *OutboxStore) MarkFailed(_ context.Context, id domain.MessageID, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg := s.find(id); msg != nil {
		msg.Attempts++
		msg.LastError = cause.Error()
		return nil
	}
	return domain.ErrDataNotFound
}

func (s *OutboxStore) find(id domain.MessageID) *port.OutboxMessage {
	for _, msg := range s.messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}
