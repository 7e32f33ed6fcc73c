package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber signals an order number collision; the caller
	// regenerates the number and retries.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// ListFilter restricts a listing. Zero values mean unrestricted. It is
// produced exclusively by the access-scoped query layer, never by callers.
type ListFilter struct {
	CustomerID string
	Status     domain.Status
}

// Repository persists order aggregates. List always sorts by creation time,
// newest first.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter, page pagination.Request) ([]*domain.Order, int64, error)
}
