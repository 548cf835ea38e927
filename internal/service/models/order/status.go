package order

import (
	"errors"
	"fmt"
	"time"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// transitions is the full table of legal status transitions. Completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether next is a legal transition from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IllegalTransitionError reports a requested transition outside the table.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}

// NotCancellableError reports a customer cancellation attempt on an order
// past the cancellation window.
type NotCancellableError struct {
	Status Status
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("order with status %q can no longer be cancelled", e.Status)
}

// CanBeCancelled reports whether the customer may still cancel the order.
// This window is intentionally narrower than the transition table, which also
// lets staff cancel from preparing: once the kitchen has started, cancellation
// is a staff decision.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Transition moves the order to the next status, applying the per-status side
// effects: preparing resets the estimate to now+20m, ready sets it to now,
// completed stamps completedAt (once) and marks cash orders paid, cancelled
// stamps cancelledAt (once) and flips a paid order to refunded. Reversal of
// loyalty points on cancellation is the caller's responsibility.
func (o *Order) Transition(next Status, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return &IllegalTransitionError{From: o.Status, To: next}
	}

	switch next {
	case StatusPreparing:
		estimated := now.Add(20 * time.Minute)
		o.EstimatedTime = &estimated
	case StatusReady:
		estimated := now
		o.EstimatedTime = &estimated
	case StatusCompleted:
		if o.PaymentMethod == PaymentMethodCash {
			o.PaymentStatus = PaymentStatusPaid
		}
		if o.CompletedAt == nil {
			completed := now
			o.CompletedAt = &completed
		}
	case StatusCancelled:
		if o.CancelledAt == nil {
			cancelled := now
			o.CancelledAt = &cancelled
		}
		if o.PaymentStatus == PaymentStatusPaid {
			o.PaymentStatus = PaymentStatusRefunded
		}
	}

	o.Status = next
	o.UpdatedAt = now

	return nil
}
