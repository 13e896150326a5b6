package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps store sentinel errors to HTTP statuses. fallback is used
// for errors that carry no sentinel (internal failures).
func storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateIdentity),
		errors.Is(err, store.ErrDuplicateCode):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrExceedsCapacity),
		errors.Is(err, store.ErrSameActor):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrBusy):
		jsonError(w, http.StatusServiceUnavailable, "storage busy, please retry")
	default:
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
