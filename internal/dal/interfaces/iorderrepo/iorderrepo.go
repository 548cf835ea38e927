package iorderrepo

import (
	"context"
	"time"

	"github.com/corray333/cafe-order/internal/service/models/order"
)

// IOrderRepository defines the order store operations.
type IOrderRepository interface {
	// Insert persists an order with its line items and returns it with
	// generated identifiers.
	Insert(ctx context.Context, o *order.Order) (*order.Order, error)

	// FindByID fetches an order with its line items.
	FindByID(ctx context.Context, id int64) (*order.Order, error)

	// FindByIDForUpdate fetches an order and locks the row for the duration
	// of the surrounding transaction, serializing concurrent status changes.
	FindByIDForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Update persists mutable order fields (status, payment, timestamps,
	// cancellation details).
	Update(ctx context.Context, o *order.Order) error

	// Query retrieves orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// CountCreatedOn returns the number of orders created on the given day.
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
}
