package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

func newOrder(t *testing.T, customerID string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customerID, []domain.Item{
		{ProductID: "p1", ProductName: "Mug", OwnerID: "b1", Quantity: 1, LineCost: 9.99},
	})
	require.NoError(t, err)
	return order
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepository()
	order := newOrder(t, "cust-a")

	saved, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	require.Equal(t, order.ID, saved.ID)

	fetched, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.OrderNumber, fetched.OrderNumber)
	require.Equal(t, domain.StatusPending, fetched.Status)

	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreate_RejectsDuplicateOrderNumber(t *testing.T) {
	repo := NewRepository()
	first := newOrder(t, "cust-a")
	_, err := repo.Create(context.Background(), first)
	require.NoError(t, err)

	second := newOrder(t, "cust-b")
	second.OrderNumber = first.OrderNumber
	_, err = repo.Create(context.Background(), second)
	require.ErrorIs(t, err, ports.ErrDuplicateOrderNumber)
}

func TestSetStatus(t *testing.T) {
	repo := NewRepository()
	order := newOrder(t, "cust-a")
	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)

	updated, err := repo.SetStatus(context.Background(), order.ID, domain.StatusShipped)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = repo.SetStatus(context.Background(), "missing", domain.StatusShipped)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FilterAndPagination(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := repo.Create(ctx, newOrder(t, "cust-a"))
		require.NoError(t, err)
	}
	shipped := newOrder(t, "cust-b")
	_, err := repo.Create(ctx, shipped)
	require.NoError(t, err)
	_, err = repo.SetStatus(ctx, shipped.ID, domain.StatusShipped)
	require.NoError(t, err)

	all, total, err := repo.List(ctx, ports.ListFilter{}, pagination.Request{Page: 1, PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, int64(8), total)
	require.Len(t, all, 5)

	rest, _, err := repo.List(ctx, ports.ListFilter{}, pagination.Request{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, rest, 3)

	mine, total, err := repo.List(ctx, ports.ListFilter{CustomerID: "cust-a"}, pagination.Request{})
	require.NoError(t, err)
	require.Equal(t, int64(7), total)
	require.Len(t, mine, 7)

	byStatus, total, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusShipped}, pagination.Request{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, shipped.ID, byStatus[0].ID)

	beyond, total, err := repo.List(ctx, ports.ListFilter{}, pagination.Request{Page: 9, PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, int64(8), total)
	require.Empty(t, beyond)
}

func TestList_NewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	first := newOrder(t, "cust-a")
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	second := newOrder(t, "cust-a")
	second.CreatedAt = first.CreatedAt.Add(1)
	second.UpdatedAt = second.CreatedAt
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	list, _, err := repo.List(ctx, ports.ListFilter{}, pagination.Request{})
	require.NoError(t, err)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestConcurrentWritesDoNotCorrupt(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := domain.NewOrder("cust-a", []domain.Item{{ProductID: "p1", Quantity: 1, LineCost: 1}})
			if err != nil {
				return
			}
			if _, err := repo.Create(ctx, order); err == nil {
				_, _ = repo.SetStatus(ctx, order.ID, domain.StatusShipped)
			}
		}()
	}
	wg.Wait()

	list, total, err := repo.List(ctx, ports.ListFilter{}, pagination.Request{Page: 1, PageSize: 100})
	require.NoError(t, err)
	require.Equal(t, total, int64(len(list)))
	for _, order := range list {
		require.Equal(t, domain.StatusShipped, order.Status)
	}
}
