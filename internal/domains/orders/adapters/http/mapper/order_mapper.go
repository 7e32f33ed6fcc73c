package mapper

import (
	"time"

	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// Item is the transport-layer shape of an order line.
type Item struct {
	ProductID   string  `json:"productId" binding:"required"`
	ProductName string  `json:"productName"`
	OwnerID     string  `json:"ownerId"`
	Quantity    int     `json:"quantity"`
	LineCost    float64 `json:"lineCost"`
}

// Order is the transport-layer shape used by the HTTP handlers.
type Order struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	OrderNumber string    `json:"orderNumber"`
	Items       []Item    `json:"items"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToDomainItems converts transport items into domain line items.
func ToDomainItems(items []Item) []ordersdomain.Item {
	result := make([]ordersdomain.Item, 0, len(items))
	for _, item := range items {
		result = append(result, ordersdomain.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			OwnerID:     item.OwnerID,
			Quantity:    item.Quantity,
			LineCost:    item.LineCost,
		})
	}
	return result
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			OwnerID:     item.OwnerID,
			Quantity:    item.Quantity,
			LineCost:    item.LineCost,
		})
	}
	return Order{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		OrderNumber: order.OrderNumber,
		Items:       items,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// FromDomainOrders converts a page of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
