package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/cafe-order/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/imenuitemrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/cafe-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/cafe-order/internal/service/loyalty"
	"github.com/corray333/cafe-order/internal/service/models/customer"
	"github.com/corray333/cafe-order/internal/service/models/menuitem"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/models/outbox"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeMenuItemRepo struct {
	items map[int64]menuitem.MenuItem
}

func (r *fakeMenuItemRepo) GetByID(_ context.Context, id int64) (*menuitem.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, &menuitem.NotFoundError{MenuItemID: id}
	}

	return &item, nil
}

func (r *fakeMenuItemRepo) List(_ context.Context, onlyAvailable bool) ([]menuitem.MenuItem, error) {
	var items []menuitem.MenuItem
	for _, item := range r.items {
		if onlyAvailable && !item.IsAvailable {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

type fakeCustomerRepo struct {
	customers map[int64]*customer.Customer
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	clone := *c

	return &clone, nil
}

func (r *fakeCustomerRepo) GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCustomerRepo) UpdateLoyaltyPoints(_ context.Context, id int64, points int) error {
	c, ok := r.customers[id]
	if !ok {
		return customer.ErrNotFound
	}
	c.LoyaltyPoints = points

	return nil
}

type fakeOrderRepo struct {
	orders map[int64]*order.Order
	nextID int64
}

func (r *fakeOrderRepo) Insert(_ context.Context, o *order.Order) (*order.Order, error) {
	r.nextID++
	o.ID = r.nextID
	for i := range o.Items {
		o.Items[i].ID = int64(i + 1)
		o.Items[i].OrderID = o.ID
	}
	clone := *o
	r.orders[o.ID] = &clone

	return o, nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	clone := *o

	return &clone, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return order.ErrNotFound
	}
	clone := *o
	r.orders[o.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var out []order.Order
	for _, o := range r.orders {
		if len(filter.CustomerIds) > 0 && !containsInt64(filter.CustomerIds, o.CustomerID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		out = append(out, *o)
	}

	return out, nil
}

func (r *fakeOrderRepo) CountCreatedOn(_ context.Context, day time.Time) (int64, error) {
	var count int64
	y, m, d := day.Date()
	for _, o := range r.orders {
		oy, om, od := o.CreatedAt.Date()
		if oy == y && om == m && od == d {
			count++
		}
	}

	return count, nil
}

func containsInt64(xs []int64, x int64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}

	return false
}

func containsStatus(xs []order.Status, x order.Status) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}

	return false
}

type fakeOutboxRepo struct {
	messages []outbox.OutboxMessage
}

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	r.messages = append(r.messages, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, limit int) ([]outbox.OutboxMessage, error) {
	if limit > len(r.messages) {
		limit = len(r.messages)
	}

	return r.messages[:limit], nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}

type fakeUOW struct {
	menuItems *fakeMenuItemRepo
	customers *fakeCustomerRepo
	orders    *fakeOrderRepo
	outbox    *fakeOutboxRepo

	begun      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(_ context.Context) error {
	u.begun = true

	return nil
}

func (u *fakeUOW) Commit() error {
	if !u.begun {
		return fmt.Errorf("commit without begin")
	}
	u.committed = true

	return nil
}

func (u *fakeUOW) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository          { return u.orders }
func (u *fakeUOW) MenuItemRepository() imenuitemrepo.IMenuItemRepository { return u.menuItems }
func (u *fakeUOW) CustomerRepository() icustomerrepo.ICustomerRepository { return u.customers }
func (u *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository       { return u.outbox }

type fixture struct {
	svc       *OrderService
	menuItems *fakeMenuItemRepo
	customers *fakeCustomerRepo
	orders    *fakeOrderRepo
	outbox    *fakeOutboxRepo
	uows      []*fakeUOW
}

func newFixture() *fixture {
	f := &fixture{
		menuItems: &fakeMenuItemRepo{items: map[int64]menuitem.MenuItem{}},
		customers: &fakeCustomerRepo{customers: map[int64]*customer.Customer{}},
		orders:    &fakeOrderRepo{orders: map[int64]*order.Order{}},
		outbox:    &fakeOutboxRepo{},
	}
	f.svc = MustNewOrderService()
	f.svc.uowFactory = func() unitOfWork {
		u := &fakeUOW{
			menuItems: f.menuItems,
			customers: f.customers,
			orders:    f.orders,
			outbox:    f.outbox,
		}
		f.uows = append(f.uows, u)

		return u
	}

	return f
}

func (f *fixture) lastUOW() *fakeUOW {
	return f.uows[len(f.uows)-1]
}

func (f *fixture) seedLatte() {
	f.menuItems.items[1] = menuitem.MenuItem{
		ID:          1,
		Name:        "Latte",
		Price:       dec("4.00"),
		Category:    "coffee",
		IsAvailable: true,
		Customizations: []menuitem.Customization{
			{
				Name:     "Size",
				Required: true,
				Options: []menuitem.Option{
					{Name: "Small", PriceModifier: dec("0")},
					{Name: "Large", PriceModifier: dec("0.50")},
				},
			},
			{
				Name:     "Milk",
				Required: false,
				Options: []menuitem.Option{
					{Name: "Oat", PriceModifier: dec("0.75")},
				},
			},
		},
	}
}

func (f *fixture) seedCustomer(id int64, points int) {
	f.customers.customers[id] = &customer.Customer{
		ID:            id,
		Name:          "Alex",
		Email:         "alex@example.com",
		LoyaltyPoints: points,
	}
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID: 7,
		Items: []RequestedItem{{
			MenuItemID: 1,
			Quantity:   3,
			Customizations: []RequestedCustomization{
				{Name: "Size", Option: "Large"},
			},
		}},
		OrderType:     order.OrderTypeDineIn,
		PaymentMethod: order.PaymentMethodCard,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.seedLatte()
	f.seedCustomer(7, 30)

	o, err := f.svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)

	// (4.00 + 0.50) * 3 = 13.50; tax 1.35; total 14.85; 1 point earned.
	assert.True(t, o.Subtotal.Equal(dec("13.50")), "subtotal %s", o.Subtotal)
	assert.True(t, o.Tax.Equal(dec("1.35")), "tax %s", o.Tax)
	assert.True(t, o.DeliveryFee.IsZero())
	assert.True(t, o.Total.Equal(dec("14.85")), "total %s", o.Total)
	assert.Equal(t, 1, o.LoyaltyPointsEarned)
	assert.Equal(t, 0, o.LoyaltyPointsRedeemed)

	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus)
	require.NotNil(t, o.EstimatedTime)

	wantNumber := fmt.Sprintf("ORD%s0001", time.Now().Format("060102"))
	assert.Equal(t, wantNumber, o.OrderNumber)

	require.Len(t, o.Items, 1)
	item := o.Items[0]
	assert.Equal(t, "Latte", item.Name)
	assert.True(t, item.UnitPrice.Equal(dec("4.00")))
	assert.True(t, item.Subtotal.Equal(dec("13.50")))
	require.Len(t, item.Customizations, 1)
	assert.Equal(t, "Large", item.Customizations[0].Option)
	assert.True(t, item.Customizations[0].PriceModifier.Equal(dec("0.50")))

	assert.Equal(t, 31, f.customers.customers[7].LoyaltyPoints)

	require.Len(t, f.outbox.messages, 1)
	assert.Equal(t, string(outbox.EventOrderCreated), f.outbox.messages[0].RoutingKey)

	assert.True(t, f.lastUOW().committed)
	assert.False(t, f.lastUOW().rolledBack)
}

func TestCreateOrderDeliveryWithRedemption(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.menuItems.items[2] = menuitem.MenuItem{
		ID:          2,
		Name:        "Family Feast",
		Price:       dec("20.00"),
		IsAvailable: true,
	}
	f.seedCustomer(7, 30)

	req := CreateOrderRequest{
		CustomerID:            7,
		Items:                 []RequestedItem{{MenuItemID: 2, Quantity: 1}},
		OrderType:             order.OrderTypeDelivery,
		PaymentMethod:         order.PaymentMethodOnline,
		DeliveryAddress:       "12 Main St",
		LoyaltyPointsToRedeem: 10,
	}

	o, err := f.svc.CreateOrder(ctx, req)
	require.NoError(t, err)

	// 20.00 + 2.00 tax + 5.00 fee - 10 points = 17.00; earns 1 point.
	assert.True(t, o.Subtotal.Equal(dec("20.00")))
	assert.True(t, o.Tax.Equal(dec("2.00")))
	assert.True(t, o.DeliveryFee.Equal(dec("5.00")))
	assert.True(t, o.Total.Equal(dec("17.00")), "total %s", o.Total)
	assert.Equal(t, 10, o.LoyaltyPointsRedeemed)
	assert.Equal(t, 1, o.LoyaltyPointsEarned)

	// 30 - 10 redeemed + 1 earned.
	assert.Equal(t, 21, f.customers.customers[7].LoyaltyPoints)
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
		field  string
	}{
		{
			name:   "no items",
			mutate: func(r *CreateOrderRequest) { r.Items = nil },
			field:  "items",
		},
		{
			name:   "zero quantity",
			mutate: func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
			field:  "items.quantity",
		},
		{
			name:   "delivery without address",
			mutate: func(r *CreateOrderRequest) { r.OrderType = order.OrderTypeDelivery },
			field:  "deliveryAddress",
		},
		{
			name:   "negative redemption",
			mutate: func(r *CreateOrderRequest) { r.LoyaltyPointsToRedeem = -1 },
			field:  "loyaltyPointsToRedeem",
		},
		{
			name:   "negative discount",
			mutate: func(r *CreateOrderRequest) { r.Discount = dec("-1") },
			field:  "discount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedLatte()
			f.seedCustomer(7, 30)

			req := validCreateRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateOrder(ctx, req)
			require.Error(t, err)

			var validationErr ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, f.orders.orders)
		})
	}
}

func TestCreateOrderCatalogFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown menu item", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 30)

		req := validCreateRequest()
		req.Items[0].MenuItemID = 99

		_, err := f.svc.CreateOrder(ctx, req)

		var notFoundErr *menuitem.NotFoundError
		require.True(t, errors.As(err, &notFoundErr))
		assert.False(t, f.lastUOW().committed)
	})

	t.Run("unavailable item", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		item := f.menuItems.items[1]
		item.IsAvailable = false
		f.menuItems.items[1] = item
		f.seedCustomer(7, 30)

		_, err := f.svc.CreateOrder(ctx, validCreateRequest())

		var unavailableErr *menuitem.UnavailableError
		require.True(t, errors.As(err, &unavailableErr))
	})

	t.Run("unknown customization", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 30)

		req := validCreateRequest()
		req.Items[0].Customizations = append(req.Items[0].Customizations,
			RequestedCustomization{Name: "Temperature", Option: "Extra Hot"})

		_, err := f.svc.CreateOrder(ctx, req)

		var customizationErr *menuitem.InvalidCustomizationError
		require.True(t, errors.As(err, &customizationErr))
		assert.Equal(t, "Temperature", customizationErr.Customization)
	})

	t.Run("unknown option", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 30)

		req := validCreateRequest()
		req.Items[0].Customizations[0].Option = "Venti"

		_, err := f.svc.CreateOrder(ctx, req)

		var optionErr *menuitem.InvalidOptionError
		require.True(t, errors.As(err, &optionErr))
	})

	t.Run("missing required customization", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 30)

		req := validCreateRequest()
		req.Items[0].Customizations = nil

		_, err := f.svc.CreateOrder(ctx, req)

		var missingErr *menuitem.MissingCustomizationError
		require.True(t, errors.As(err, &missingErr))
		assert.Equal(t, "Size", missingErr.Customization)
	})
}

func TestCreateOrderRedemptionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient balance", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 5)

		req := validCreateRequest()
		req.LoyaltyPointsToRedeem = 10

		_, err := f.svc.CreateOrder(ctx, req)

		var insufficientErr *loyalty.InsufficientPointsError
		require.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, 5, f.customers.customers[7].LoyaltyPoints, "balance must not change")
		assert.Empty(t, f.orders.orders)
		assert.True(t, f.lastUOW().rolledBack)
	})

	t.Run("redemption above pre-redemption total", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 100)

		// Pre-redemption total is 14.85, so the cap is 14.
		req := validCreateRequest()
		req.LoyaltyPointsToRedeem = 15

		_, err := f.svc.CreateOrder(ctx, req)

		var exceedsErr *loyalty.ExceedsOrderTotalError
		require.True(t, errors.As(err, &exceedsErr))
		assert.Equal(t, 100, f.customers.customers[7].LoyaltyPoints)
	})

	t.Run("redemption at the cap succeeds", func(t *testing.T) {
		f := newFixture()
		f.seedLatte()
		f.seedCustomer(7, 100)

		req := validCreateRequest()
		req.LoyaltyPointsToRedeem = 14

		o, err := f.svc.CreateOrder(ctx, req)
		require.NoError(t, err)
		assert.True(t, o.Total.Equal(dec("0.85")), "total %s", o.Total)
	})
}

func TestCreateOrderNumberSequence(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.seedLatte()
	f.seedCustomer(7, 0)

	first, err := f.svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)

	prefix := "ORD" + time.Now().Format("060102")
	assert.Equal(t, prefix+"0001", first.OrderNumber)
	assert.Equal(t, prefix+"0002", second.OrderNumber)
}

func (f *fixture) seedOrder(o order.Order) *order.Order {
	f.orders.nextID++
	o.ID = f.orders.nextID
	clone := o
	f.orders.orders[o.ID] = &clone

	return &clone
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("legal transition", func(t *testing.T) {
		f := newFixture()
		seeded := f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusPending})

		o, err := f.svc.UpdateOrderStatus(ctx, seeded.ID, order.StatusConfirmed, 42)
		require.NoError(t, err)

		assert.Equal(t, order.StatusConfirmed, o.Status)
		require.NotNil(t, o.ProcessedBy)
		assert.Equal(t, int64(42), *o.ProcessedBy)
		assert.Equal(t, order.StatusConfirmed, f.orders.orders[seeded.ID].Status)

		require.Len(t, f.outbox.messages, 1)
		assert.Equal(t, string(outbox.EventOrderStatusChanged), f.outbox.messages[0].RoutingKey)
		assert.True(t, f.lastUOW().committed)
	})

	t.Run("illegal transition", func(t *testing.T) {
		f := newFixture()
		seeded := f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusPending})

		_, err := f.svc.UpdateOrderStatus(ctx, seeded.ID, order.StatusReady, 42)

		var transitionErr *order.IllegalTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, order.StatusPending, f.orders.orders[seeded.ID].Status)
		assert.False(t, f.lastUOW().committed)
		assert.Empty(t, f.outbox.messages)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateOrderStatus(ctx, 99, order.StatusConfirmed, 42)
		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("staff cancellation reverses loyalty and refunds", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 5)
		seeded := f.seedOrder(order.Order{
			CustomerID:            7,
			Status:                order.StatusPreparing,
			PaymentMethod:         order.PaymentMethodOnline,
			PaymentStatus:         order.PaymentStatusPaid,
			LoyaltyPointsRedeemed: 10,
			LoyaltyPointsEarned:   2,
		})

		o, err := f.svc.UpdateOrderStatus(ctx, seeded.ID, order.StatusCancelled, 42)
		require.NoError(t, err)

		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus)
		require.NotNil(t, o.CancelledAt)

		// 5 + 10 refunded - 2 earned removed.
		assert.Equal(t, 13, f.customers.customers[7].LoyaltyPoints)

		require.Len(t, f.outbox.messages, 1)
		assert.Equal(t, string(outbox.EventOrderCancelled), f.outbox.messages[0].RoutingKey)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels pending order", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 5)
		seeded := f.seedOrder(order.Order{
			CustomerID:            7,
			Status:                order.StatusPending,
			PaymentStatus:         order.PaymentStatusPending,
			LoyaltyPointsRedeemed: 10,
			LoyaltyPointsEarned:   2,
		})

		o, err := f.svc.CancelOrder(ctx, seeded.ID, "changed my mind", 7)
		require.NoError(t, err)

		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.Equal(t, "changed my mind", o.CancelReason)
		require.NotNil(t, o.CancelledAt)
		assert.Equal(t, 13, f.customers.customers[7].LoyaltyPoints)

		require.Len(t, f.outbox.messages, 1)
		assert.Equal(t, string(outbox.EventOrderCancelled), f.outbox.messages[0].RoutingKey)
		assert.True(t, f.lastUOW().committed)
	})

	t.Run("not the owner", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 5)
		seeded := f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusPending})

		_, err := f.svc.CancelOrder(ctx, seeded.ID, "", 99)

		var unauthorizedErr *UnauthorizedError
		require.True(t, errors.As(err, &unauthorizedErr))
		assert.Equal(t, order.StatusPending, f.orders.orders[seeded.ID].Status)
	})

	t.Run("past the cancellation window", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 5)
		seeded := f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusPreparing})

		_, err := f.svc.CancelOrder(ctx, seeded.ID, "too slow", 7)

		var notCancellableErr *order.NotCancellableError
		require.True(t, errors.As(err, &notCancellableErr))
		assert.Equal(t, order.StatusPreparing, notCancellableErr.Status)
		assert.Equal(t, order.StatusPreparing, f.orders.orders[seeded.ID].Status)
	})

	t.Run("no loyalty to reverse", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(7, 5)
		seeded := f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusConfirmed})

		_, err := f.svc.CancelOrder(ctx, seeded.ID, "", 7)
		require.NoError(t, err)
		assert.Equal(t, 5, f.customers.customers[7].LoyaltyPoints)
	})
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusPending})
	f.seedOrder(order.Order{CustomerID: 7, Status: order.StatusCompleted})
	f.seedOrder(order.Order{CustomerID: 8, Status: order.StatusPending})

	orders, err := f.svc.GetOrders(ctx, &order.QueryOrdersModel{CustomerIds: []int64{7}})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = f.svc.GetOrders(ctx, &order.QueryOrdersModel{Statuses: []order.Status{order.StatusPending}})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = f.svc.GetOrders(ctx, &order.QueryOrdersModel{CustomerIds: []int64{99}})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetMenu(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.seedLatte()
	f.menuItems.items[2] = menuitem.MenuItem{ID: 2, Name: "Seasonal Pie", IsAvailable: false}

	items, err := f.svc.GetMenu(ctx, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = f.svc.GetMenu(ctx, false)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
