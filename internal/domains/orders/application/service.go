package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// orderNumberRetries bounds regeneration attempts on a number collision.
const orderNumberRetries = 3

// Service orchestrates the order lifecycle: placement, role-scoped
// retrieval, and status transitions with best-effort notification.
type Service struct {
	repo     ports.Repository
	notifier ports.StatusNotifier
	logger   *slog.Logger
}

type Option func(*Service)

// WithNotifier wires the live-connection notifier invoked after status
// transitions.
func WithNotifier(notifier ports.StatusNotifier) Option {
	return func(s *Service) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, notifier: ports.NoopNotifier}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder creates a pending order owned by the calling customer.
// Elevated roles place no orders of their own; only customers may buy.
func (s *Service) PlaceOrder(ctx context.Context, actor ports.Actor, items []domain.Item) (*domain.Order, error) {
	if !auth.Authorize(actor.Role, auth.RoleCustomer) {
		return nil, s.forbidden(ctx, actor, "PlaceOrder", auth.RoleCustomer)
	}
	order, err := domain.NewOrder(actor.Identity, items)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	for attempt := 0; errors.Is(err, ports.ErrDuplicateOrderNumber) && attempt < orderNumberRetries; attempt++ {
		order.RegenerateNumber()
		saved, err = s.repo.Create(ctx, order)
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetOrder loads a single order, restricted to its owner unless the caller
// holds an elevated role.
func (s *Service) GetOrder(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.Elevated() && order.CustomerID != actor.Identity {
		// the caller learns nothing about other customers' orders,
		// not even their existence
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// ListOrders applies the access scope and returns one page of orders plus
// page metadata.
func (s *Service) ListOrders(ctx context.Context, actor ports.Actor, query ports.ListQuery) ([]*domain.Order, pagination.Meta, error) {
	filter, page := scopedFilter(actor, query)
	orders, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return orders, pagination.NewMeta(page, total), nil
}

// UpdateStatus transitions an order's status and then attempts to notify
// the owning customer. The write is the source of truth: a failed or
// undeliverable notification never rolls it back.
func (s *Service) UpdateStatus(ctx context.Context, actor ports.Actor, id string, rawStatus string) (*domain.Order, error) {
	if !auth.Authorize(actor.Role, auth.RoleAdmin) {
		return nil, s.forbidden(ctx, actor, "UpdateStatus", auth.RoleAdmin)
	}
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	delivered := s.notifier.NotifyStatusChange(ctx, order.CustomerID, status)
	s.logInfo(ctx, "order status notification attempted",
		slog.String("order.id", order.ID),
		slog.String("order.status", string(status)),
		slog.String("customer.id", order.CustomerID),
		slog.Bool("delivered", delivered),
	)
	return order, nil
}

func (s *Service) forbidden(ctx context.Context, actor ports.Actor, operation string, required auth.Role) error {
	s.logWarn(ctx, "operation forbidden",
		slog.String("operation", operation),
		slog.String("actor.id", actor.Identity),
		slog.String("actor.role", string(actor.Role)),
		slog.String("required.role", string(required)),
	)
	return fmt.Errorf("%w: %s requires role %s", ErrForbidden, operation, required)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
}

var _ ports.Service = (*Service)(nil)
