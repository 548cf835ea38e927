package cancelorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CancelOrder(ctx context.Context, orderID int64, reason string, requestingUserID int64) (*order.Order, error)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
	UserID int64  `json:"userId"`
}

// CancelOrder handles a customer cancellation request.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)

		return
	}

	var req cancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for cancel order", "error", err)

		return
	}

	cancelled, err := service.CancelOrder(r.Context(), id, req.Reason, req.UserID)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cancelled); err != nil {
		slog.Error("Error writing response for cancel order", "error", err)
	}
}
