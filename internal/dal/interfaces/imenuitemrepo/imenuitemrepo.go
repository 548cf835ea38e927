package imenuitemrepo

import (
	"context"

	"github.com/corray333/cafe-order/internal/service/models/menuitem"
)

// IMenuItemRepository is the read-only catalog access the core consumes.
type IMenuItemRepository interface {
	// GetByID fetches one menu item with its customization schema.
	GetByID(ctx context.Context, id int64) (*menuitem.MenuItem, error)

	// List returns catalog entries, optionally only the available ones.
	List(ctx context.Context, onlyAvailable bool) ([]menuitem.MenuItem, error)
}
