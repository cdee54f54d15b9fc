package order

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository stores completed orders.
type Repository interface {
	// Create persists a completed order.
	Create(ctx context.Context, o *CompletedOrder) error

	// GetByID returns the order or ErrOrderNotFound.
	GetByID(ctx context.Context, id snowflake.ID) (*CompletedOrder, error)

	// ListByPhone returns a customer's orders, newest first.
	ListByPhone(ctx context.Context, phone string) ([]*CompletedOrder, error)

	// ListByStatus returns orders in the given statuses, newest first. No
	// statuses means all orders.
	ListByStatus(ctx context.Context, statuses ...OrderStatus) ([]*CompletedOrder, error)

	// UpdateStatus sets the kitchen status of an order.
	UpdateStatus(ctx context.Context, id snowflake.ID, status OrderStatus) error

	// SearchCustomers returns customers whose name or phone contains q,
	// most recent order first. An empty q returns every customer.
	SearchCustomers(ctx context.Context, q string) ([]*Customer, error)

	// GetCustomer returns the customer for a phone number or
	// ErrCustomerNotFound.
	GetCustomer(ctx context.Context, phone string) (*Customer, error)
}
