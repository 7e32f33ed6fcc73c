package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Line items live in a
// child table; product/owner ids are additionally denormalized into array
// columns for catalog-side reporting queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	CustomerID  string         `gorm:"column:customer_id;size:64;index:idx_orders_customer_created"`
	OrderNumber string         `gorm:"column:order_number;size:64;uniqueIndex"`
	TotalAmount float64        `gorm:"column:total_amount"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	ProductIDs  pq.StringArray `gorm:"column:product_ids;type:text[]"`
	OwnerIDs    pq.StringArray `gorm:"column:owner_ids;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;index:idx_orders_customer_created"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64   `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID     string  `gorm:"column:order_id;size:64;index"`
	Position    int     `gorm:"column:position"`
	ProductID   string  `gorm:"column:product_id;size:64"`
	ProductName string  `gorm:"column:product_name"`
	OwnerID     string  `gorm:"column:owner_id;size:64"`
	Quantity    int     `gorm:"column:quantity"`
	LineCost    float64 `gorm:"column:line_cost"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create inserts an order with its line items in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record, items := toRecords(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateOrderNumber
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

// SetStatus updates the status column and stamps updated_at.
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// List returns one page of orders matching the filter, newest first, plus
// the total match count.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter, page pagination.Request) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	page = page.Normalize()

	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []orderRecord
	if err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return []*domain.Order{}, total, nil
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	itemsByOrder := make(map[string][]orderItemRecord, len(records))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, toDomain(record, itemsByOrder[record.ID]))
	}
	return orders, total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecords(order *domain.Order) (orderRecord, []orderItemRecord) {
	record := orderRecord{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for position, item := range order.Items {
		record.ProductIDs = append(record.ProductIDs, item.ProductID)
		record.OwnerIDs = append(record.OwnerIDs, item.OwnerID)
		items = append(items, orderItemRecord{
			OrderID:     order.ID,
			Position:    position,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			OwnerID:     item.OwnerID,
			Quantity:    item.Quantity,
			LineCost:    item.LineCost,
		})
	}
	return record, items
}

func toDomain(record orderRecord, items []orderItemRecord) *domain.Order {
	order := &domain.Order{
		ID:          record.ID,
		CustomerID:  record.CustomerID,
		OrderNumber: record.OrderNumber,
		TotalAmount: record.TotalAmount,
		Status:      domain.Status(record.Status),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			OwnerID:     item.OwnerID,
			Quantity:    item.Quantity,
			LineCost:    item.LineCost,
		})
	}
	return order
}
