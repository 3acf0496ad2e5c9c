package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type Service struct {
	repo   port.Repository
	ids    port.IDGenerator
	logger *zap.Logger
}

func NewService(repo port.Repository, ids port.IDGenerator, logger *zap.Logger) (*Service, error) {
	if repo == nil || ids == nil {
		return nil, errors.New("order service: repository and id generator are required")
	}
	return &Service{
		repo:   repo,
		ids:    ids,
		logger: logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, items domain.Items, total decimal.Decimal,
	userID uint64, paymentMethod string) (*domain.Order, error) {
	id, err := s.ids.NextOrderID(ctx)
	if err != nil {
		s.logger.Error("Next order id", zap.Error(err))
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	order := domain.NewOrder(id, items, total, userID, paymentMethod)

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Uint64("order", uint64(id)), zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, id)
}

// UpdateOrder overwrites items and total of an existing order. The user reference
// changes only when userID is non-zero; status is never touched.
func (s *Service) UpdateOrder(ctx context.Context, id domain.OrderID, items domain.Items,
	total decimal.Decimal, userID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items
	order.Total = total
	if userID != 0 {
		order.UserID = userID
	}

	updated, err := s.repo.UpdateOrder(ctx, order)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) && !errors.Is(err, domain.ErrConflictingData) {
			s.logger.Error("Update order", zap.Uint64("order", uint64(id)), zap.Error(err))
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id domain.OrderID,
	status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("unknown order status %q", status),
		})
	}

	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	// TODO: enforce a transition table once payment and fulfilment states are settled
	order.Status = status

	updated, err := s.repo.UpdateOrder(ctx, order)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) && !errors.Is(err, domain.ErrConflictingData) {
			s.logger.Error("Update order status", zap.Uint64("order", uint64(id)), zap.Error(err))
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id domain.OrderID) (bool, error) {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, limit, offset uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx, limit, offset)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}
