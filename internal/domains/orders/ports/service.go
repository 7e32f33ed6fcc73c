package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	Identity string
	Role     auth.Role
}

// ListQuery carries the raw caller-supplied listing parameters before the
// access scope is applied.
type ListQuery struct {
	Page     int
	PageSize int
	// Status is honored for elevated roles when it names a valid enum
	// value, silently ignored otherwise.
	Status string
}

// Service exposes the order lifecycle use cases to adapters. It is the only
// component permitted to mutate order state.
type Service interface {
	PlaceOrder(ctx context.Context, actor Actor, items []domain.Item) (*domain.Order, error)
	GetOrder(ctx context.Context, actor Actor, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, actor Actor, query ListQuery) ([]*domain.Order, pagination.Meta, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status string) (*domain.Order, error)
}
