// Package store holds the sample source model used by the propmap examples
// and by the static analysis tests.
package store

import (
	"time"
)

// Audit carries bookkeeping columns shared by every entity. Its fields are
// promoted into the embedding structs.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// Customer is a registered buyer.
type Customer struct {
	Audit

	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Address      *string
	IsActive     bool
}

// Product is an item available for sale. Prices are in cents.
type Product struct {
	Audit

	ID          int64
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Inventory   int
}

// Order is a purchase made by a customer.
type Order struct {
	Audit

	ID         int64
	CustomerID int64
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	OrderedAt  time.Time
}

// OrderItem is a product line within an order.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
