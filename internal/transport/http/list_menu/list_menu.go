package listmenu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/cafe-order/internal/service/models/menuitem"
	"github.com/corray333/cafe-order/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetMenu(ctx context.Context, onlyAvailable bool) ([]menuitem.MenuItem, error)
}

// ListMenu handles public menu browsing. By default only available items are
// returned; ?all=true includes unavailable ones for staff dashboards.
func ListMenu(w http.ResponseWriter, r *http.Request, service service) {
	onlyAvailable := r.URL.Query().Get("all") != "true"

	items, err := service.GetMenu(r.Context(), onlyAvailable)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("Error writing response for list menu", "error", err)
	}
}
