package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/dal/postgres"
	"github.com/corray333/cafe-order/internal/service/models/menuitem"
)

// MenuItemDal represents the menu item data access layer model. The
// customization schema is stored as a jsonb document.
type MenuItemDal struct {
	Id             int64     `db:"id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Price          string    `db:"price"`
	Category       string    `db:"category"`
	IsAvailable    bool      `db:"is_available"`
	Customizations []byte    `db:"customizations"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (m *MenuItemDal) ToModel() (*menuitem.MenuItem, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu item price: %w", err)
	}

	var customizations []menuitem.Customization
	if len(m.Customizations) > 0 {
		if err := json.Unmarshal(m.Customizations, &customizations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customizations: %w", err)
		}
	}

	return &menuitem.MenuItem{
		ID:             m.Id,
		Name:           m.Name,
		Description:    m.Description,
		Price:          price,
		Category:       m.Category,
		IsAvailable:    m.IsAvailable,
		Customizations: customizations,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

type PostgresMenuItemRepository struct {
	conn postgres.Querier
}

func NewPostgresMenuItemRepository(conn postgres.Querier) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{
		conn: conn,
	}
}

var menuItemColumns = []string{
	"id",
	"name",
	"description",
	"price::text",
	"category",
	"is_available",
	"customizations",
	"created_at",
	"updated_at",
}

// GetByID fetches one menu item with its customization schema.
func (r *PostgresMenuItemRepository) GetByID(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	query, args, err := sq.Select(menuItemColumns...).
		From("menu_items").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build menu item query: %w", err)
	}

	var dal MenuItemDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.Category,
		&dal.IsAvailable,
		&dal.Customizations,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &menuitem.NotFoundError{MenuItemID: id}
		}

		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return dal.ToModel()
}

// List returns catalog entries, optionally only the available ones.
func (r *PostgresMenuItemRepository) List(ctx context.Context, onlyAvailable bool) ([]menuitem.MenuItem, error) {
	builder := sq.Select(menuItemColumns...).
		From("menu_items").
		OrderBy("category, name").
		PlaceholderFormat(sq.Dollar)

	if onlyAvailable {
		builder = builder.Where(sq.Eq{"is_available": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build menu list query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.Price,
			&dal.Category,
			&dal.IsAvailable,
			&dal.Customizations,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert menu item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
