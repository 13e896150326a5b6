package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// BoxesHandler handles box registry endpoints.
type BoxesHandler struct {
	DB *sql.DB
}

type createBoxRequest struct {
	HardwareType    string `json:"hardware_type"`
	LotNumber       string `json:"lot_number"`
	BoxNumber       string `json:"box_number"`
	InitialQuantity int    `json:"initial_quantity"`
	Barcode         string `json:"barcode"`
	Operator        string `json:"operator"`
	QCPersonnel     string `json:"qc_personnel"`
}

// Create handles POST /api/boxes.
func (h *BoxesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBoxRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	box, err := store.CreateBox(r.Context(), h.DB, store.NewBox{
		HardwareType:    req.HardwareType,
		LotNumber:       req.LotNumber,
		BoxNumber:       req.BoxNumber,
		InitialQuantity: req.InitialQuantity,
		Barcode:         req.Barcode,
		Operator:        req.Operator,
		QCPersonnel:     req.QCPersonnel,
	})
	if err != nil {
		storeError(w, err, "failed to create box")
		return
	}

	slog.Info("box created", "box", box.BoxID, "barcode", box.Barcode, "initial", box.InitialQuantity)
	jsonResponse(w, http.StatusCreated, box)
}

// List handles GET /api/boxes.
func (h *BoxesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	boxes, err := store.ListBoxes(r.Context(), h.DB, q.Get("hardware_type"), q.Get("lot_number"), q.Get("search"))
	if err != nil {
		slog.Error("failed to list boxes", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list boxes")
		return
	}
	if boxes == nil {
		boxes = []model.Box{}
	}
	jsonResponse(w, http.StatusOK, boxes)
}

// Get handles GET /api/boxes/{id}.
func (h *BoxesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid box id")
		return
	}

	box, err := store.GetBox(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get box", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get box")
		return
	}
	if box == nil {
		jsonError(w, http.StatusNotFound, "box not found")
		return
	}

	jsonResponse(w, http.StatusOK, box)
}

// Update handles PUT /api/boxes/{id}.
func (h *BoxesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid box id")
		return
	}

	var req model.BoxUpdate
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	box, err := store.UpdateBox(r.Context(), h.DB, id, req, claims.Username)
	if err != nil {
		storeError(w, err, "failed to update box")
		return
	}

	slog.Info("box updated", "user", claims.Username, "box", box.BoxID)
	jsonResponse(w, http.StatusOK, box)
}

// Delete handles DELETE /api/boxes/{id}.
func (h *BoxesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid box id")
		return
	}

	claims := GetClaims(r.Context())
	summary, err := store.DeleteBox(r.Context(), h.DB, id, claims.Username)
	if err != nil {
		storeError(w, err, "failed to delete box")
		return
	}

	slog.Info("box deleted", "user", claims.Username, "box", summary.BoxID,
		"deleted_events", summary.DeletedPullEvents)
	jsonResponse(w, http.StatusOK, summary)
}

// Events handles GET /api/boxes/{id}/events.
func (h *BoxesHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid box id")
		return
	}

	box, err := store.GetBox(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get box", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get box")
		return
	}
	if box == nil {
		jsonError(w, http.StatusNotFound, "box not found")
		return
	}

	events, err := store.ListPullEvents(r.Context(), h.DB, box.ID)
	if err != nil {
		slog.Error("failed to list pull events", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list pull events")
		return
	}
	if events == nil {
		events = []model.PullEvent{}
	}
	jsonResponse(w, http.StatusOK, events)
}

// Lookup handles GET /api/barcode/{code}. It resolves a scanned barcode, or
// a typed box ID, to its box.
func (h *BoxesHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		jsonError(w, http.StatusBadRequest, "code required")
		return
	}

	box, err := store.FindBoxByCode(r.Context(), h.DB, code)
	if err != nil {
		slog.Error("failed to look up box", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to look up box")
		return
	}
	if box == nil {
		jsonError(w, http.StatusNotFound, "box not found")
		return
	}

	jsonResponse(w, http.StatusOK, box)
}
