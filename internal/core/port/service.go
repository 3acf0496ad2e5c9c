package port

import (
	"context"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateOrder(ctx context.Context, items domain.Items, total decimal.Decimal,
		userID uint64, paymentMethod string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id domain.OrderID, items domain.Items,
		total decimal.Decimal, userID uint64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id domain.OrderID) (bool, error)
	ListOrders(ctx context.Context, limit, offset uint64) ([]*domain.Order, error)
}
