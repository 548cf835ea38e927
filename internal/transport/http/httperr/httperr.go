// Package httperr maps core error values onto HTTP responses. Validation
// failures carry enough structured detail for a precise client message;
// anything unrecognized is a generic transient failure.
package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/cafe-order/internal/service/loyalty"
	"github.com/corray333/cafe-order/internal/service/models/customer"
	"github.com/corray333/cafe-order/internal/service/models/menuitem"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/services/ordersvc"
)

// Status returns the HTTP status code for a core error.
func Status(err error) int {
	var (
		itemNotFound    *menuitem.NotFoundError
		unavailable     *menuitem.UnavailableError
		invalidCustom   *menuitem.InvalidCustomizationError
		invalidOption   *menuitem.InvalidOptionError
		missingCustom   *menuitem.MissingCustomizationError
		insufficient    *loyalty.InsufficientPointsError
		exceedsTotal    *loyalty.ExceedsOrderTotalError
		illegal         *order.IllegalTransitionError
		notCancellable  *order.NotCancellableError
		unauthorized    *ordersvc.UnauthorizedError
		validationError ordersvc.ValidationError
	)

	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.As(err, &itemNotFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable),
		errors.As(err, &invalidCustom),
		errors.As(err, &invalidOption),
		errors.As(err, &missingCustom),
		errors.As(err, &insufficient),
		errors.As(err, &exceedsTotal),
		errors.As(err, &validationError):
		return http.StatusUnprocessableEntity
	case errors.As(err, &illegal),
		errors.As(err, &notCancellable):
		return http.StatusConflict
	case errors.As(err, &unauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Write sends the error as a JSON body with the mapped status code. Internal
// errors are masked and logged instead of leaked to the client.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		message = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}
