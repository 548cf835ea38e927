package ordersvc

import (
	"context"
	"fmt"

	"github.com/corray333/cafe-order/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/imenuitemrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/cafe-order/internal/dal/postgres"
	"github.com/corray333/cafe-order/internal/dal/uow"
	"github.com/corray333/cafe-order/internal/service/models/menuitem"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/pricing"
)

// OrderService is a service for managing the order lifecycle: creation with
// validation, pricing and loyalty redemption, status transitions, and
// cancellation with loyalty reversal.
type OrderService struct {
	pgClient   *postgres.Client
	pricing    pricing.Config
	exchange   string
	uowFactory func() unitOfWork
}

func (s *OrderService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}

	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrderRepository() iorderrepo.IOrderRepository
	MenuItemRepository() imenuitemrepo.IMenuItemRepository
	CustomerRepository() icustomerrepo.ICustomerRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		pricing:  pricing.DefaultConfig(),
		exchange: "cafe.orders",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithPricingConfig overrides the default tax rate and delivery fee.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPricingConfig(cfg pricing.Config) option {
	return func(s *OrderService) {
		s.pricing = cfg
	}
}

// WithEventExchange sets the broker exchange order events are routed to.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventExchange(exchange string) option {
	return func(s *OrderService) {
		s.exchange = exchange
	}
}

// GetOrder retrieves one order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// GetOrders retrieves orders matching the filter.
func (s *OrderService) GetOrders(ctx context.Context, model *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, model)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []order.Order{}
	}

	return orders, nil
}

// GetMenu retrieves catalog entries for public browsing.
func (s *OrderService) GetMenu(ctx context.Context, onlyAvailable bool) ([]menuitem.MenuItem, error) {
	work := s.newUOW()

	items, err := work.MenuItemRepository().List(ctx, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	if items == nil {
		items = []menuitem.MenuItem{}
	}

	return items, nil
}
