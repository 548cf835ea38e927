package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/service/loyalty"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/models/outbox"
)

// RequestedCustomization is one customization choice in an incoming order
// request, matched against the catalog by exact name.
type RequestedCustomization struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// RequestedItem is one item entry in an incoming order request.
type RequestedItem struct {
	MenuItemID     int64                    `json:"menuItemId"`
	Quantity       int                      `json:"quantity"`
	Customizations []RequestedCustomization `json:"customizations"`
}

// CreateOrderRequest carries the strictly-typed checkout input. Shape is
// validated once here; business rules are enforced against the catalog and
// the loyalty ledger inside the transaction.
type CreateOrderRequest struct {
	CustomerID            int64
	Items                 []RequestedItem
	OrderType             order.OrderType
	PaymentMethod         order.PaymentMethod
	Notes                 string
	DeliveryAddress       string
	LoyaltyPointsToRedeem int
	Discount              decimal.Decimal
}

func (r *CreateOrderRequest) validate() error {
	if len(r.Items) == 0 {
		return ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	for _, item := range r.Items {
		if item.Quantity < 1 {
			return ValidationError{Field: "items.quantity", Message: "quantity must be at least 1"}
		}
	}
	if r.OrderType == order.OrderTypeDelivery && r.DeliveryAddress == "" {
		return ValidationError{Field: "deliveryAddress", Message: "delivery address is required for delivery orders"}
	}
	if r.LoyaltyPointsToRedeem < 0 {
		return ValidationError{Field: "loyaltyPointsToRedeem", Message: "points to redeem cannot be negative"}
	}
	if r.Discount.IsNegative() {
		return ValidationError{Field: "discount", Message: "discount cannot be negative"}
	}

	return nil
}

// CreateOrder validates, prices and persists a new order as one atomic unit:
// catalog validation, totals computation, loyalty redemption, order numbering,
// the order insert, the customer balance update and the outbox event all
// commit or roll back together. The customer row is locked for the duration
// of the transaction so two concurrent orders cannot redeem the same points.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback() }()

	lineItems, err := validateAndPrice(ctx, work.MenuItemRepository(), req.Items)
	if err != nil {
		return nil, err
	}

	cust, err := work.CustomerRepository().GetForUpdate(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	// Redemption is capped by the order total before the redemption discount.
	base := s.pricing.PriceOrder(lineItems, req.OrderType, req.Discount, 0)
	if err := loyalty.ValidateRedemption(cust.LoyaltyPoints, req.LoyaltyPointsToRedeem, base.Total); err != nil {
		return nil, err
	}

	totals := s.pricing.PriceOrder(lineItems, req.OrderType, req.Discount, req.LoyaltyPointsToRedeem)

	newBalance, err := loyalty.ApplyEarnAndRedeem(cust.LoyaltyPoints, totals.PointsRedeemed, totals.PointsEarned)
	if err != nil {
		return nil, err
	}

	createdToday, err := work.OrderRepository().CountCreatedOn(ctx, now)
	if err != nil {
		return nil, err
	}

	estimated := now.Add(20 * time.Minute)
	o := &order.Order{
		OrderNumber:           order.GenerateOrderNumber(now, createdToday),
		CustomerID:            req.CustomerID,
		Items:                 lineItems,
		Status:                order.StatusPending,
		OrderType:             req.OrderType,
		PaymentMethod:         req.PaymentMethod,
		PaymentStatus:         order.PaymentStatusPending,
		Subtotal:              totals.Subtotal,
		Tax:                   totals.Tax,
		DeliveryFee:           totals.DeliveryFee,
		Discount:              totals.Discount,
		Total:                 totals.Total,
		LoyaltyPointsRedeemed: totals.PointsRedeemed,
		LoyaltyPointsEarned:   totals.PointsEarned,
		Notes:                 req.Notes,
		DeliveryAddress:       req.DeliveryAddress,
		EstimatedTime:         &estimated,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	o, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := work.CustomerRepository().UpdateLoyaltyPoints(ctx, cust.ID, newBalance); err != nil {
		return nil, err
	}

	if err := s.stageEvent(ctx, work, outbox.EventOrderCreated, o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return o, nil
}

// stageEvent writes an order lifecycle event to the outbox on the current
// transaction; the worker publishes it after commit.
func (s *OrderService) stageEvent(
	ctx context.Context,
	work unitOfWork,
	eventType outbox.EventType,
	o *order.Order,
	now time.Time,
) error {
	msg, err := outbox.NewOrderMessage(eventType, s.exchange, o, now)
	if err != nil {
		return err
	}

	return work.OutboxRepository().Insert(ctx, msg)
}
