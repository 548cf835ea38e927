package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corray333/cafe-order/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/imenuitemrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/cafe-order/internal/dal/postgres"
	customerrepo "github.com/corray333/cafe-order/internal/dal/repositories/customer/postgres"
	menuitemrepo "github.com/corray333/cafe-order/internal/dal/repositories/menuitem/postgres"
	orderrepo "github.com/corray333/cafe-order/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/cafe-order/internal/dal/repositories/outbox/postgres"
)

// unitOfWork scopes the order, menu, customer and outbox repositories to one
// transaction so order creation and cancellation commit or roll back as a
// single atomic unit.
type unitOfWork struct {
	pool *pgxpool.Pool
	ctx  context.Context
	tx   pgx.Tx

	orderRepo    iorderrepo.IOrderRepository
	menuItemRepo imenuitemrepo.IMenuItemRepository
	customerRepo icustomerrepo.ICustomerRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:         pool,
		orderRepo:    orderrepo.NewPostgresOrderRepository(pool),
		menuItemRepo: menuitemrepo.NewPostgresMenuItemRepository(pool),
		customerRepo: customerrepo.NewPostgresCustomerRepository(pool),
		outboxRepo:   outboxrepo.NewOutboxRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) MenuItemRepository() imenuitemrepo.IMenuItemRepository {
	return u.menuItemRepo
}

func (u *unitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin opens a transaction and rebinds every repository to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.ctx = ctx
	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.menuItemRepo = menuitemrepo.NewPostgresMenuItemRepository(tx)
	u.customerRepo = customerrepo.NewPostgresCustomerRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(u.ctx)
}

// Rollback aborts the transaction. Safe to defer after Commit: a rollback of
// an already-closed transaction is a no-op.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(u.ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
