// Package loyalty implements the customer points ledger: redemption
// validation against balance and order total, earn calculation, and the
// symmetric reversal applied on cancellation.
package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// One point is earned per this many units of currency spent; one redeemed
// point is worth one unit of currency.
const earnDivisor = 10

// InsufficientPointsError reports a redemption above the customer's balance.
type InsufficientPointsError struct {
	Requested int
	Balance   int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient loyalty points: requested %d, balance %d", e.Requested, e.Balance)
}

// ExceedsOrderTotalError reports a redemption above what the order costs
// before the redemption discount is applied.
type ExceedsOrderTotalError struct {
	Requested  int
	OrderTotal decimal.Decimal
}

func (e *ExceedsOrderTotalError) Error() string {
	return fmt.Sprintf("redemption of %d points exceeds order total %s", e.Requested, e.OrderTotal.StringFixed(2))
}

// ValidateRedemption checks a requested redemption against the customer's
// balance and the pre-redemption order total. It never mutates state; the
// caller applies the redemption only after validation passes.
func ValidateRedemption(balance, requested int, preRedemptionTotal decimal.Decimal) error {
	if requested == 0 {
		return nil
	}
	if requested > balance {
		return &InsufficientPointsError{Requested: requested, Balance: balance}
	}
	if int64(requested) > preRedemptionTotal.IntPart() {
		return &ExceedsOrderTotalError{Requested: requested, OrderTotal: preRedemptionTotal}
	}

	return nil
}

// PointsEarned is floor(total / 10), truncating toward zero.
func PointsEarned(total decimal.Decimal) int {
	if total.IsNegative() {
		return 0
	}

	return int(total.IntPart() / earnDivisor)
}

// ApplyEarnAndRedeem returns the balance after redeeming and earning points
// for a new order. The balance must never go negative; that is guaranteed by
// prior validation, not clamped silently, so an overdraw here is an error.
func ApplyEarnAndRedeem(balance, redeemed, earned int) (int, error) {
	if redeemed > balance {
		return balance, &InsufficientPointsError{Requested: redeemed, Balance: balance}
	}

	return balance - redeemed + earned, nil
}

// ReverseForCancellation returns the balance after refunding the points
// redeemed on a cancelled order and removing the points it earned. Earned
// points already spent elsewhere are forgiven rather than driving the balance
// negative. The caller must invoke this exactly once per cancellation.
func ReverseForCancellation(balance, redeemed, earned int) int {
	balance += redeemed
	balance -= earned
	if balance < 0 {
		balance = 0
	}

	return balance
}
