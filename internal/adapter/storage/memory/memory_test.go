package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MikeRez0/yporders/internal/adapter/storage/memory"
	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, repo *memory.Repository) *domain.Order {
	t.Helper()
	id, err := repo.NextOrderID(context.Background())
	require.NoError(t, err)

	o, err := repo.CreateOrder(context.Background(),
		domain.NewOrder(id, domain.Items(`[{"id":1}]`), decimal.One, 0, ""))
	require.NoError(t, err)
	return o
}

func TestRepository_NextOrderIDUnique(t *testing.T) {
	repo := memory.NewRepository()

	var mu sync.Mutex
	seen := make(map[domain.OrderID]struct{})
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.NextOrderID(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestRepository_ListOrders(t *testing.T) {
	repo := memory.NewRepository()
	created := make([]*domain.Order, 0, 5)
	for range 5 {
		created = append(created, newOrder(t, repo))
	}

	tests := []struct {
		name   string
		limit  uint64
		offset uint64
		expIDs []domain.OrderID
	}{
		{name: "first page", limit: 2, offset: 0, expIDs: []domain.OrderID{created[0].ID, created[1].ID}},
		{name: "tail", limit: 10, offset: 3, expIDs: []domain.OrderID{created[3].ID, created[4].ID}},
		{name: "past the end", limit: 2, offset: 5, expIDs: []domain.OrderID{}},
		{name: "zero limit", limit: 0, offset: 0, expIDs: []domain.OrderID{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			list, err := repo.ListOrders(context.Background(), test.limit, test.offset)
			require.NoError(t, err)

			ids := make([]domain.OrderID, 0, len(list))
			for _, o := range list {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}

func TestRepository_UpdateOrder(t *testing.T) {
	repo := memory.NewRepository()
	o := newOrder(t, repo)

	o.Total = decimal.Hundred
	updated, err := repo.UpdateOrder(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	// stale version
	_, err = repo.UpdateOrder(context.Background(), o)
	assert.ErrorIs(t, err, domain.ErrConflictingData)

	_, err = repo.UpdateOrder(context.Background(), &domain.Order{ID: 999})
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	read, err := repo.ReadOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, read.Total.Cmp(decimal.Hundred))
}

func TestRepository_DeleteOrder(t *testing.T) {
	repo := memory.NewRepository()
	o := newOrder(t, repo)
	other := newOrder(t, repo)

	ok, err := repo.DeleteOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.ReadOrder(context.Background(), o.ID)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	list, err := repo.ListOrders(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)
}

func TestOutboxStore(t *testing.T) {
	store := memory.NewOutboxStore()
	ctx := context.Background()

	for _, id := range []domain.MessageID{"a", "b", "c"} {
		require.NoError(t, store.Enqueue(ctx, &port.OutboxMessage{ID: id, Topic: "payments", Key: string(id)}))
	}

	require.NoError(t, store.MarkSent(ctx, "a"))
	require.NoError(t, store.MarkFailed(ctx, "b", errors.New("broker down")))
	require.NoError(t, store.MarkFailed(ctx, "b", errors.New("broker down")))

	pending, err := store.FetchPending(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, domain.MessageID("b"), pending[0].ID)
	assert.Equal(t, 2, pending[0].Attempts)
	assert.Equal(t, "broker down", pending[0].LastError)

	pending, err = store.FetchPending(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.MessageID("c"), pending[0].ID)

	assert.ErrorIs(t, store.MarkSent(ctx, "zzz"), domain.ErrDataNotFound)
}
