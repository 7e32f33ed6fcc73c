package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Status enumerates shipping progression. Any enum value is a legal
// transition target from any other; there is no forward-only machine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var (
	ErrEmptyCustomer   = errors.New("customer id is required")
	ErrNoItems         = errors.New("order requires at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidLineCost = errors.New("item cost must be a finite non-negative number")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// ParseStatus validates a transported status string against the enum.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether the status belongs to the enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

// Item is one purchased line within an order. Items are immutable after
// the order is created.
type Item struct {
	ProductID   string
	ProductName string
	OwnerID     string
	Quantity    int
	LineCost    float64
}

// Validate enforces per-item invariants.
func (i Item) Validate() error {
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if i.LineCost < 0 || math.IsNaN(i.LineCost) || math.IsInf(i.LineCost, 0) {
		return ErrInvalidLineCost
	}
	return nil
}

// Order is the purchase aggregate. TotalAmount is derived from the items
// and never mutated independently; Status changes only through SetStatus.
type Order struct {
	ID          string
	CustomerID  string
	OrderNumber string
	Items       []Item
	TotalAmount float64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder validates the items and constructs a pending order owned by the
// given customer, with a fresh id and order number.
func NewOrder(customerID string, items []Item) (*Order, error) {
	order := &Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		OrderNumber: NewOrderNumber(),
		Status:      StatusPending,
	}
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if err := order.SetItems(items); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	return order, nil
}

// SetItems replaces the item list and recomputes the derived total.
func (o *Order) SetItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	total := 0.0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.LineCost
	}
	o.Items = append([]Item(nil), items...)
	o.TotalAmount = total
	return nil
}

// SetStatus applies a status transition and stamps UpdatedAt.
func (o *Order) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Validate re-applies aggregate invariants for persistence.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return ErrEmptyCustomer
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return o.SetItems(o.Items)
}

// RegenerateNumber assigns a fresh order number after a uniqueness
// collision at the store.
func (o *Order) RegenerateNumber() {
	o.OrderNumber = NewOrderNumber()
}

// NewOrderNumber builds a human-readable unique code from the current
// timestamp and a random suffix, e.g. ORD-20260828-143501-a41f09.
func NewOrderNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand is unavailable only in degenerate environments;
		// a uuid fragment keeps the code unique.
		return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:6])
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102-150405"), hex.EncodeToString(suffix))
}
