package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// CatalogHandler serves the classification lookup lists used by entry forms.
type CatalogHandler struct {
	DB *sql.DB
}

// ListTypes handles GET /api/catalog/types.
func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := store.ListHardwareTypes(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list hardware types", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list hardware types")
		return
	}
	if types == nil {
		types = []model.HardwareType{}
	}
	jsonResponse(w, http.StatusOK, types)
}

// ListLots handles GET /api/catalog/lots.
func (h *CatalogHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := store.ListLotNumbers(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list lot numbers", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list lot numbers")
		return
	}
	if lots == nil {
		lots = []model.LotNumber{}
	}
	jsonResponse(w, http.StatusOK, lots)
}
