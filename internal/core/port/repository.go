package port

import (
	"context"

	"github.com/MikeRez0/yporders/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// CreateOrder persists a new order and returns the stored representation.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// ReadOrder returns domain.ErrDataNotFound when no order has the id.
	ReadOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	// UpdateOrder overwrites the mutable fields of an existing order.
	// It fails with domain.ErrDataNotFound for a missing order and with
	// domain.ErrConflictingData when the stored version moved on.
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id domain.OrderID) (bool, error)
	// ListOrders pages over orders in insertion order.
	ListOrders(ctx context.Context, limit, offset uint64) ([]*domain.Order, error)
}

type IDGenerator interface {
	NextOrderID(ctx context.Context) (domain.OrderID, error)
}

// Transactor runs fn in one storage transaction. Repository and outbox calls made
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
