package icustomerrepo

import (
	"context"

	"github.com/corray333/cafe-order/internal/service/models/customer"
)

// ICustomerRepository defines customer store access for the loyalty ledger.
type ICustomerRepository interface {
	// GetByID fetches a customer without locking.
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)

	// GetForUpdate fetches a customer and locks the row for the duration of
	// the surrounding transaction, serializing concurrent loyalty-balance
	// reads and writes for the same customer.
	GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error)

	// UpdateLoyaltyPoints sets the customer's loyalty balance.
	UpdateLoyaltyPoints(ctx context.Context, id int64, points int) error
}
