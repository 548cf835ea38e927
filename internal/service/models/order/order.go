package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// OrderType determines delivery-fee application and address requirements.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

var ErrInvalidOrderType = errors.New("invalid order type")

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return OrderType(s), nil
	default:
		return "", ErrInvalidOrderType
	}
}

func (t OrderType) String() string {
	return string(t)
}

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus tracks the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// SelectedCustomization is one resolved customization choice on a line item.
// The price modifier is snapshotted from the catalog at order time.
type SelectedCustomization struct {
	Name          string          `json:"name"`
	Option        string          `json:"option"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// LineItem is one order entry. Name, unit price and customization modifiers
// are copied from the menu item at order time, never live-joined, and the
// subtotal is always recomputed server-side.
type LineItem struct {
	ID             int64                   `json:"id"`
	OrderID        int64                   `json:"orderId"`
	MenuItemID     int64                   `json:"menuItemId"`
	Name           string                  `json:"name"`
	UnitPrice      decimal.Decimal         `json:"unitPrice"`
	Quantity       int                     `json:"quantity"`
	Customizations []SelectedCustomization `json:"customizations"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
}

// Order represents a placed order. Subtotal, tax, delivery fee, discount and
// total are derived fields: they are recomputed by the pricing engine whenever
// any of their inputs change and are never settable independently.
type Order struct {
	ID                    int64           `json:"id"`
	OrderNumber           string          `json:"orderNumber"`
	CustomerID            int64           `json:"customerId"`
	Items                 []LineItem      `json:"items"`
	Status                Status          `json:"status"`
	OrderType             OrderType       `json:"orderType"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal `json:"tax"`
	DeliveryFee           decimal.Decimal `json:"deliveryFee"`
	Discount              decimal.Decimal `json:"discount"`
	Total                 decimal.Decimal `json:"total"`
	LoyaltyPointsRedeemed int             `json:"loyaltyPointsRedeemed"`
	LoyaltyPointsEarned   int             `json:"loyaltyPointsEarned"`
	Notes                 string          `json:"notes,omitempty"`
	DeliveryAddress       string          `json:"deliveryAddress,omitempty"`
	EstimatedTime         *time.Time      `json:"estimatedTime,omitempty"`
	CompletedAt           *time.Time      `json:"completedAt,omitempty"`
	CancelledAt           *time.Time      `json:"cancelledAt,omitempty"`
	CancelReason          string          `json:"cancelReason,omitempty"`
	ProcessedBy           *int64          `json:"processedBy,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// GenerateOrderNumber builds the human-readable, date-scoped order identifier:
// "ORD" + yymmdd + zero-padded daily sequence. The sequence is the count of
// orders already created today plus one; callers must obtain the count on the
// same transaction as the insert, and the orders table carries a uniqueness
// constraint as a backstop.
func GenerateOrderNumber(day time.Time, createdToday int64) string {
	return fmt.Sprintf("ORD%s%04d", day.Format("060102"), createdToday+1)
}
