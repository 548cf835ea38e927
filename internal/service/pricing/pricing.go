// Package pricing computes order totals. All monetary math runs on
// shopspring decimals rounded to two places; the grand total is floored at
// zero and never rounded up.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/service/loyalty"
	"github.com/corray333/cafe-order/internal/service/models/order"
)

// Config carries the pricing knobs. Tax applies to every order; the delivery
// fee only to delivery orders.
type Config struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

// DefaultConfig returns the standard 10% tax rate and flat 5.00 delivery fee.
func DefaultConfig() Config {
	return Config{
		TaxRate:     decimal.NewFromFloat(0.10),
		DeliveryFee: decimal.NewFromFloat(5.00),
	}
}

// Totals is the result of pricing an order.
type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	DeliveryFee    decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	PointsRedeemed int
	PointsEarned   int
}

// LineSubtotal computes (unit price + sum of selected option modifiers) ×
// quantity, rounded to two places.
func LineSubtotal(unitPrice decimal.Decimal, customizations []order.SelectedCustomization, quantity int) decimal.Decimal {
	perUnit := unitPrice
	for _, c := range customizations {
		perUnit = perUnit.Add(c.PriceModifier)
	}

	return perUnit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// PriceOrder computes the totals for a validated line-item list:
//
//	total = max(0, subtotal + tax + deliveryFee − discount − pointsRedeemed)
//
// One redeemed point is worth one unit of currency. Points earned are
// floor(total / 10).
func (c Config) PriceOrder(items []order.LineItem, orderType order.OrderType, discount decimal.Decimal, pointsRedeemed int) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(c.TaxRate).Round(2)

	deliveryFee := decimal.Zero
	if orderType == order.OrderTypeDelivery {
		deliveryFee = c.DeliveryFee
	}

	total := subtotal.
		Add(tax).
		Add(deliveryFee).
		Sub(discount).
		Sub(decimal.NewFromInt(int64(pointsRedeemed)))
	if total.IsNegative() {
		total = decimal.Zero
	}
	total = total.Round(2)

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryFee:    deliveryFee,
		Discount:       discount,
		Total:          total,
		PointsRedeemed: pointsRedeemed,
		PointsEarned:   loyalty.PointsEarned(total),
	}
}
