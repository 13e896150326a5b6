package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// MovementsHandler handles ledger movement endpoints.
type MovementsHandler struct {
	DB *sql.DB
}

type createMovementRequest struct {
	Code        string `json:"code"`
	Quantity    int    `json:"quantity"`
	MO          string `json:"mo"`
	Operator    string `json:"operator"`
	QCPersonnel string `json:"qc_personnel"`
	Signature   string `json:"signature"`
}

// Create handles POST /api/movements. Negative quantity pulls stock,
// positive quantity returns it.
func (h *MovementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := store.ApplyMovement(r.Context(), h.DB, store.Movement{
		Code:        req.Code,
		Quantity:    req.Quantity,
		MO:          req.MO,
		Operator:    req.Operator,
		QCPersonnel: req.QCPersonnel,
		Signature:   req.Signature,
	})
	if err != nil {
		storeError(w, err, "failed to apply movement")
		return
	}

	slog.Info("movement applied",
		"box", result.Box.BoxID,
		"change", result.QuantityChange,
		"remaining", result.ResultingQuantity,
		"operator", req.Operator)
	jsonResponse(w, http.StatusCreated, result)
}
