package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/db"
)

func TestBusyOrPassesOtherErrorsThrough(t *testing.T) {
	plain := errors.New("boom")
	if got := busyOr(plain); got != plain {
		t.Errorf("busyOr(%v) = %v, want unchanged", plain, got)
	}
	if busyOr(nil) != nil {
		t.Error("busyOr(nil) should be nil")
	}
	if isUniqueViolation(plain, "boxes.box_id") {
		t.Error("plain error misclassified as unique violation")
	}
}

func TestGetOrCreateSurfacesBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	writer, err := db.Open(path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer writer.Close()
	if err := db.EnsureSchema(writer); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	ctx := context.Background()

	// Hold the write lock on one connection.
	tx, err := writer.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("beginning transaction: %v", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `INSERT INTO hardware_types (name) VALUES ('held')`); err != nil {
		t.Fatalf("taking write lock: %v", err)
	}

	// A second connection with no busy timeout hits the lock immediately;
	// the caller must observe the retryable kind, not a bare driver error.
	blocked, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening second connection: %v", err)
	}
	defer blocked.Close()
	blocked.SetMaxOpenConns(1)
	if _, err := blocked.ExecContext(ctx, `PRAGMA busy_timeout=0`); err != nil {
		t.Fatalf("setting busy_timeout: %v", err)
	}

	_, err = GetOrCreateHardwareType(ctx, blocked, "Resistor 1K")
	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy from locked database, got %v", err)
	}
}
