package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port/mock"
	"github.com/MikeRez0/yporders/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, ids *mock.MockIDGenerator)

var items = domain.Items(`[{"id":1,"quantity":2}]`)

func storedOrder() *domain.Order {
	return &domain.Order{
		ID:            7,
		Items:         domain.Items(`[{"id":3,"quantity":1}]`),
		Total:         decimal.MustParse("10"),
		Status:        domain.OrderStatusPaid,
		UserID:        5,
		PaymentMethod: domain.DefaultPaymentMethod,
		Version:       2,
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	errDB := errors.New("db down")

	type createOrderTest struct {
		name      string
		mock      prepareMocks
		expError  error
		expStatus domain.OrderStatus
	}

	tests := []createOrderTest{
		{
			name: "Create good order",
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				ids.EXPECT().NextOrderID(gomock.Any()).Return(domain.OrderID(42), nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expStatus: domain.OrderStatusReceived,
		},
		{
			name: "Id generator fails",
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				ids.EXPECT().NextOrderID(gomock.Any()).Return(domain.OrderID(0), errDB)
			},
			expError: errDB,
		},
		{
			name: "Storage fails",
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				ids.EXPECT().NextOrderID(gomock.Any()).Return(domain.OrderID(43), nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errDB)
			},
			expError: errDB,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ids := mock.NewMockIDGenerator(mockCtrl)
			test.mock(repo, ids)

			s, err := service.NewService(repo, ids, logger)
			require.NoError(t, err)

			result, err := s.CreateOrder(context.Background(), items, decimal.MustParse("50.0"), 1, "")
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderID(42), result.ID)
			assert.Equal(t, test.expStatus, result.Status)
			assert.Equal(t, uint64(1), result.UserID)
			assert.Equal(t, domain.DefaultPaymentMethod, result.PaymentMethod)
			assert.Equal(t, 0, result.Total.Cmp(decimal.MustParse("50")))
		})
	}
}

func TestService_UpdateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	newTotal := decimal.MustParse("99.5")

	type updateOrderTest struct {
		name      string
		userID    uint64
		mock      prepareMocks
		expError  error
		expUserID uint64
	}

	tests := []updateOrderTest{
		{
			name:   "Update keeps user when none given",
			userID: 0,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(storedOrder(), nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expUserID: 5,
		},
		{
			name:   "Update overwrites user",
			userID: 9,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(storedOrder(), nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expUserID: 9,
		},
		{
			name:   "Order not found",
			userID: 1,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name:   "Concurrent update",
			userID: 1,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(storedOrder(), nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConflictingData)
			},
			expError: domain.ErrConflictingData,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ids := mock.NewMockIDGenerator(mockCtrl)
			test.mock(repo, ids)

			s, err := service.NewService(repo, ids, logger)
			require.NoError(t, err)

			result, err := s.UpdateOrder(context.Background(), 7, items, newTotal, test.userID)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.NotErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderID(7), result.ID)
			assert.Equal(t, domain.OrderStatusPaid, result.Status)
			assert.Equal(t, items, result.Items)
			assert.Equal(t, 0, result.Total.Cmp(newTotal))
			assert.Equal(t, test.expUserID, result.UserID)
		})
	}
}

func TestService_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()

	tests := []struct {
		name     string
		status   domain.OrderStatus
		mock     prepareMocks
		expError error
	}{
		{
			name:   "Any state to any state",
			status: domain.OrderStatusReceived,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(storedOrder(), nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
		},
		{
			name:     "Unknown status",
			status:   domain.OrderStatus("LOST"),
			mock:     func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {},
			expError: domain.ErrValidation,
		},
		{
			name:   "Order not found",
			status: domain.OrderStatusShipped,
			mock: func(repo *mock.MockRepository, ids *mock.MockIDGenerator) {
				repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID(7)).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ids := mock.NewMockIDGenerator(mockCtrl)
			test.mock(repo, ids)

			s, err := service.NewService(repo, ids, logger)
			require.NoError(t, err)

			result, err := s.UpdateOrderStatus(context.Background(), 7, test.status)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.status, result.Status)
			assert.Equal(t, uint64(5), result.UserID)
		})
	}
}

func TestService_DeleteAndList(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	ids := mock.NewMockIDGenerator(mockCtrl)
	s, err := service.NewService(repo, ids, zap.NewNop())
	require.NoError(t, err)

	repo.EXPECT().DeleteOrder(gomock.Any(), domain.OrderID(1)).Return(true, nil)
	repo.EXPECT().DeleteOrder(gomock.Any(), domain.OrderID(2)).Return(false, nil)
	repo.EXPECT().ListOrders(gomock.Any(), uint64(2), uint64(0)).Return([]*domain.Order{storedOrder()}, nil)

	ok, err := s.DeleteOrder(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteOrder(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, ok)

	list, err := s.ListOrders(context.Background(), 2, 0)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
