//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newOrder(t *testing.T, customerID string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customerID, []domain.Item{
		{ProductID: "prod-1", ProductName: "Mug", OwnerID: "seller-1", Quantity: 2, LineCost: 7.5},
		{ProductID: "prod-2", ProductName: "Kettle", OwnerID: "seller-2", Quantity: 1, LineCost: 19.99},
	})
	require.NoError(t, err)
	return order
}

func TestPostgresRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, "customer-1")
	saved, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.Len(t, saved.Items, 2)
	assert.InDelta(t, 34.99, saved.TotalAmount, 0.0001)

	retrieved, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, retrieved.OrderNumber)
	assert.Equal(t, "Mug", retrieved.Items[0].ProductName)
}

func TestPostgresRepository_DuplicateOrderNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	first := newOrder(t, "customer-1")
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := newOrder(t, "customer-2")
	second.OrderNumber = first.OrderNumber
	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ports.ErrDuplicateOrderNumber)
}

func TestPostgresRepository_SetStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, "customer-1")
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	updated, err := repo.SetStatus(ctx, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.After(order.CreatedAt) || updated.UpdatedAt.Equal(order.CreatedAt))

	_, err = repo.SetStatus(ctx, "missing-id", domain.StatusShipped)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListScopedAndPaged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newOrder(t, "customer-1"))
		require.NoError(t, err)
	}
	other := newOrder(t, "customer-2")
	_, err := repo.Create(ctx, other)
	require.NoError(t, err)
	_, err = repo.SetStatus(ctx, other.ID, domain.StatusDelivered)
	require.NoError(t, err)

	scoped, total, err := repo.List(ctx, ports.ListFilter{CustomerID: "customer-1"}, pagination.Request{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, scoped, 2)
	for _, order := range scoped {
		assert.Equal(t, "customer-1", order.CustomerID)
		assert.Len(t, order.Items, 2)
	}

	delivered, total, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusDelivered}, pagination.Request{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, delivered, 1)
	assert.Equal(t, other.ID, delivered[0].ID)
}
