package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/api"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/db"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/store"
)

const shutdownGrace = 5 * time.Second

type config struct {
	dbPath    string
	addr      string
	adminUser string
	logPath   string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.dbPath, "db", "inventory.sqlite3", "sqlite database `path`")
	flag.StringVar(&cfg.addr, "addr", ":8080", "listen `address`")
	flag.StringVar(&cfg.adminUser, "admin", "Admin", "admin `username` seeded on an empty database")
	flag.StringVar(&cfg.logPath, "log", "", "log `file` written in addition to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	logOut := io.Writer(os.Stderr)
	if cfg.logPath != "" {
		f, err := os.OpenFile(cfg.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stderr, f)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, nil)))

	database, err := db.Open(cfg.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.dbPath)

	if err := seedAdmin(ctx, database, cfg.adminUser); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	if purged, err := store.PurgeExpiredRevocations(ctx, database); err != nil {
		slog.Warn("could not purge expired token revocations", "error", err)
	} else if purged > 0 {
		slog.Info("purged expired token revocations", "count", purged)
	}

	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("loading signing secret: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(database, jwtSecret)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// seedAdmin creates the initial admin account when no live user exists, so a
// fresh or fully reset database is usable without manual SQL. The generated
// password is printed once; it is not recoverable afterwards.
func seedAdmin(ctx context.Context, database *sql.DB, username string) error {
	users, err := store.ListUsers(ctx, database)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	password, err := generatePassword()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := store.CreateUser(ctx, database, username, string(hash), model.RoleAdmin); err != nil {
		return err
	}

	slog.Info("admin account created", "username", username)
	fmt.Printf("Admin account %q created with password: %s\n", username, password)
	fmt.Println("Store it now; it cannot be recovered. Change it after logging in.")
	return nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
