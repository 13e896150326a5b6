package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// ActionsHandler serves the audit trail (admin only).
type ActionsHandler struct {
	DB *sql.DB
}

// parseTimeParam accepts RFC 3339 or a bare date.
func parseTimeParam(v string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", v)
}

// List handles GET /api/actions.
func (h *ActionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ActionFilter{
		ActionType: q.Get("action_type"),
		User:       q.Get("user"),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	if v := q.Get("from"); v != "" {
		ts, err := parseTimeParam(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := parseTimeParam(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filter.To = ts
	}

	actions, err := store.ListActions(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list actions", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list actions")
		return
	}
	if actions == nil {
		actions = []model.ActionLog{}
	}
	jsonResponse(w, http.StatusOK, actions)
}
