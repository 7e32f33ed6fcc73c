// Package migrations owns the PostgreSQL schema for every bounded context.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate when run as a dedicated step.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
