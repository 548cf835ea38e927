package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/services/ordersvc"
	"github.com/corray333/cafe-order/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (*order.Order, error)
}

type createOrderRequest struct {
	CustomerID            int64                    `json:"customerId"`
	Items                 []ordersvc.RequestedItem `json:"items"`
	OrderType             string                   `json:"orderType"`
	PaymentMethod         string                   `json:"paymentMethod"`
	Notes                 string                   `json:"notes"`
	DeliveryAddress       string                   `json:"deliveryAddress"`
	LoyaltyPointsToRedeem int                      `json:"loyaltyPointsToRedeem"`
}

// CreateOrder handles the checkout request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	orderType, err := order.ParseOrderType(req.OrderType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}
	paymentMethod, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := service.CreateOrder(r.Context(), ordersvc.CreateOrderRequest{
		CustomerID:            req.CustomerID,
		Items:                 req.Items,
		OrderType:             orderType,
		PaymentMethod:         paymentMethod,
		Notes:                 req.Notes,
		DeliveryAddress:       req.DeliveryAddress,
		LoyaltyPointsToRedeem: req.LoyaltyPointsToRedeem,
		Discount:              decimal.Zero,
	})
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
