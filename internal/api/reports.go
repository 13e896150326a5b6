package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/export"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// ReportsHandler serves the dashboard summary and the Excel export.
type ReportsHandler struct {
	DB *sql.DB
}

// Summary handles GET /api/reports/summary.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := store.Summarize(r.Context(), h.DB, q.Get("hardware_type"), q.Get("lot_number"), q.Get("search"))
	if err != nil {
		slog.Error("failed to summarize inventory", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to summarize inventory")
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}

// Export handles GET /api/export, streaming the current inventory as an
// Excel workbook. Query filters match GET /api/boxes.
func (h *ReportsHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	boxes, err := store.ListBoxes(r.Context(), h.DB, q.Get("hardware_type"), q.Get("lot_number"), q.Get("search"))
	if err != nil {
		slog.Error("failed to list boxes for export", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export inventory")
		return
	}

	f, err := export.InventoryWorkbook(boxes)
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export inventory")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}
