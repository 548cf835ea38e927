package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/cafe-order/internal/service/loyalty"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/models/outbox"
)

// UnauthorizedError reports a cancellation attempt by a user who does not own
// the order.
type UnauthorizedError struct {
	UserID  int64
	OrderID int64
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %d is not allowed to modify order %d", e.UserID, e.OrderID)
}

// UpdateOrderStatus moves an order along the status machine on behalf of a
// staff member. The transition check, side-effect stamps, loyalty reversal on
// cancellation and the event write happen on one transaction; the order row
// is locked so concurrent transitions serialize.
func (s *OrderService) UpdateOrderStatus(
	ctx context.Context,
	orderID int64,
	requested order.Status,
	staffID int64,
) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback() }()

	o, err := work.OrderRepository().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Transition(requested, now); err != nil {
		return nil, err
	}
	o.ProcessedBy = &staffID

	eventType := outbox.EventOrderStatusChanged
	if requested == order.StatusCancelled {
		eventType = outbox.EventOrderCancelled
		if err := s.reverseLoyalty(ctx, work, o); err != nil {
			return nil, err
		}
	}

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err := s.stageEvent(ctx, work, eventType, o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return o, nil
}

// CancelOrder cancels an order on behalf of the customer who placed it. The
// customer window is narrower than the transition table: only pending and
// confirmed orders qualify; later cancellation is a staff decision through
// UpdateOrderStatus.
func (s *OrderService) CancelOrder(
	ctx context.Context,
	orderID int64,
	reason string,
	requestingUserID int64,
) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback() }()

	o, err := work.OrderRepository().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CustomerID != requestingUserID {
		return nil, &UnauthorizedError{UserID: requestingUserID, OrderID: orderID}
	}
	if !o.CanBeCancelled() {
		return nil, &order.NotCancellableError{Status: o.Status}
	}

	o.CancelReason = reason
	if err := o.Transition(order.StatusCancelled, now); err != nil {
		return nil, err
	}

	if err := s.reverseLoyalty(ctx, work, o); err != nil {
		return nil, err
	}

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err := s.stageEvent(ctx, work, outbox.EventOrderCancelled, o, now); err != nil {
		return nil, err
	}

	if err := work.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return o, nil
}

// reverseLoyalty refunds redeemed points and removes earned points on the
// current transaction. Callers invoke it exactly once per cancellation; the
// transition table makes cancelled terminal, so a second invocation cannot be
// reached.
func (s *OrderService) reverseLoyalty(ctx context.Context, work unitOfWork, o *order.Order) error {
	if o.LoyaltyPointsRedeemed == 0 && o.LoyaltyPointsEarned == 0 {
		return nil
	}

	cust, err := work.CustomerRepository().GetForUpdate(ctx, o.CustomerID)
	if err != nil {
		return err
	}

	newBalance := loyalty.ReverseForCancellation(cust.LoyaltyPoints, o.LoyaltyPointsRedeemed, o.LoyaltyPointsEarned)

	return work.CustomerRepository().UpdateLoyaltyPoints(ctx, cust.ID, newBalance)
}
