package api

import (
	"database/sql"
	"net/http"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	boxesHandler := &BoxesHandler{DB: db}
	movementsHandler := &MovementsHandler{DB: db}
	catalogHandler := &CatalogHandler{DB: db}
	reportsHandler := &ReportsHandler{DB: db}
	actionsHandler := &ActionsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Boxes: registration, lookup, and listing are open to the warehouse
	// floor; edits and deletions are admin only.
	mux.HandleFunc("POST /api/boxes", boxesHandler.Create)
	mux.HandleFunc("GET /api/boxes", boxesHandler.List)
	mux.HandleFunc("GET /api/boxes/{id}", boxesHandler.Get)
	mux.HandleFunc("GET /api/boxes/{id}/events", boxesHandler.Events)
	mux.Handle("PUT /api/boxes/{id}", authMW(requireAdmin(http.HandlerFunc(boxesHandler.Update))))
	mux.Handle("DELETE /api/boxes/{id}", authMW(requireAdmin(http.HandlerFunc(boxesHandler.Delete))))

	// Barcode resolution for scanners.
	mux.HandleFunc("GET /api/barcode/{code}", boxesHandler.Lookup)

	// Ledger movements (pull and return).
	mux.HandleFunc("POST /api/movements", movementsHandler.Create)

	// Classification lookups for entry forms.
	mux.HandleFunc("GET /api/catalog/types", catalogHandler.ListTypes)
	mux.HandleFunc("GET /api/catalog/lots", catalogHandler.ListLots)

	// Dashboard summary and Excel export.
	mux.HandleFunc("GET /api/reports/summary", reportsHandler.Summary)
	mux.HandleFunc("GET /api/export", reportsHandler.Export)

	// Audit trail (admin only).
	mux.Handle("GET /api/actions", authMW(requireAdmin(http.HandlerFunc(actionsHandler.List))))

	return mux
}
