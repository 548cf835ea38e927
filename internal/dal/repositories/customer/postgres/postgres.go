package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/cafe-order/internal/dal/postgres"
	"github.com/corray333/cafe-order/internal/service/models/customer"
)

// CustomerDal represents the customer data access layer model.
type CustomerDal struct {
	Id            int64     `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	LoyaltyPoints int       `db:"loyalty_points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts CustomerDal to the service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:            c.Id,
		Name:          c.Name,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type PostgresCustomerRepository struct {
	conn postgres.Querier
}

func NewPostgresCustomerRepository(conn postgres.Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
	}
}

func (r *PostgresCustomerRepository) get(ctx context.Context, id int64, forUpdate bool) (*customer.Customer, error) {
	builder := sq.Select(
		"id",
		"name",
		"email",
		"loyalty_points",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer query: %w", err)
	}

	var dal CustomerDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.LoyaltyPoints,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID fetches a customer without locking.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate fetches a customer and locks the row until the surrounding
// transaction ends. Concurrent orders redeeming points for the same customer
// queue on this lock instead of racing on the balance.
func (r *PostgresCustomerRepository) GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.get(ctx, id, true)
}

// UpdateLoyaltyPoints sets the customer's loyalty balance.
func (r *PostgresCustomerRepository) UpdateLoyaltyPoints(ctx context.Context, id int64, points int) error {
	query, args, err := sq.Update("customers").
		Set("loyalty_points", points).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build loyalty update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update loyalty points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}

	return nil
}
