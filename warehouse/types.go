// Package warehouse holds the sample destination records used by the propmap
// examples and by the static analysis tests.
package warehouse

import (
	"time"

	"propmap/store"
)

// Customer is the warehouse copy of a store customer.
type Customer struct {
	ID        int64
	FullName  string
	FirstName string
	Email     string
	Address   *string
	Active    bool
	Source    string
	CreatedAt time.Time

	// PasswordHash never leaves the store.
	PasswordHash string `propmap:"ignore"`
}

// Product is a stocked item.
type Product struct {
	ID         int64
	SKU        string
	Name       string
	PriceCents int64
	Stock      int
	Weight     float64
}

// Shipment is built from a store order.
type Shipment struct {
	ID         int64
	CustomerID int64
	Status     store.OrderStatus
	Items      []store.OrderItem
	Carrier    string
	Notes      string `propmap:"ignore=true"`
}
