// Package memory keeps orders and outbox messages in process memory.
// It backs the service when no database is configured and in tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/MikeRez0/yporders/internal/core/domain"
)

type Repository struct {
	mu     sync.RWMutex
	orders map[domain.OrderID]*domain.Order
	// ids keeps insertion order
	ids    []domain.OrderID
	lastID atomic.Uint64
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[domain.OrderID]*domain.Order)}
}

func (r *Repository) NextOrderID(_ context.Context) (domain.OrderID, error) {
	return domain.OrderID(r.lastID.Add(1)), nil
}

func (r *Repository) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return nil, domain.ErrConflictingData
	}

	stored := clone(order)
	stored.Version = 1
	r.orders[stored.ID] = stored
	r.ids = append(r.ids, stored.ID)

	return clone(stored), nil
}

func (r *Repository) ReadOrder(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return clone(order), nil
}

func (r *Repository) UpdateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	if stored.Version != order.Version {
		return nil, domain.ErrConflictingData
	}

	updated := clone(order)
	updated.Version = stored.Version + 1
	r.orders[order.ID] = updated

	return clone(updated), nil
}

func (r *Repository) DeleteOrder(_ context.Context, id domain.OrderID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	r.ids = slices.DeleteFunc(r.ids, func(v domain.OrderID) bool { return v == id })

	return true, nil
}

func (r *Repository) ListOrders(_ context.Context, limit, offset uint64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Order, 0)
	total := uint64(len(r.ids))
	if offset >= total || limit == 0 {
		return list, nil
	}

	end := offset + limit
	if end > total || end < offset {
		end = total
	}
	for _, id := range r.ids[offset:end] {
		list = append(list, clone(r.orders[id]))
	}

	return list, nil
}

// WithinTransaction runs fn directly; writes made by fn are not rolled back.
func (r *Repository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func clone(o *domain.Order) *domain.Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	return &c
}
