package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

// querier is the subset of *sql.DB and *sql.Tx the store helpers need, so
// catalog and audit writes can participate in a caller's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetOrCreateHardwareType returns the hardware type with the given name,
// creating it on first reference. Lookup is case-sensitive and exact.
// Concurrent creation of the same name is resolved by the unique index:
// the first writer wins and everyone observes that row.
func GetOrCreateHardwareType(ctx context.Context, db *sql.DB, name string) (*model.HardwareType, error) {
	return getOrCreateHardwareType(ctx, db, name)
}

func getOrCreateHardwareType(ctx context.Context, q querier, name string) (*model.HardwareType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: hardware type is required", ErrInvalidInput)
	}

	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO hardware_types (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, busyOr(fmt.Errorf("creating hardware type: %w", err))
	}

	ht := &model.HardwareType{}
	err = q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM hardware_types WHERE name = ?`, name,
	).Scan(&ht.ID, &ht.Name, &ht.CreatedAt)
	if err != nil {
		return nil, busyOr(fmt.Errorf("getting hardware type: %w", err))
	}
	return ht, nil
}

// GetOrCreateLotNumber returns the lot number with the given name, creating
// it on first reference. Same contract as GetOrCreateHardwareType.
func GetOrCreateLotNumber(ctx context.Context, db *sql.DB, name string) (*model.LotNumber, error) {
	return getOrCreateLotNumber(ctx, db, name)
}

func getOrCreateLotNumber(ctx context.Context, q querier, name string) (*model.LotNumber, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: lot number is required", ErrInvalidInput)
	}

	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO lot_numbers (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, busyOr(fmt.Errorf("creating lot number: %w", err))
	}

	ln := &model.LotNumber{}
	err = q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM lot_numbers WHERE name = ?`, name,
	).Scan(&ln.ID, &ln.Name, &ln.CreatedAt)
	if err != nil {
		return nil, busyOr(fmt.Errorf("getting lot number: %w", err))
	}
	return ln, nil
}

// ListHardwareTypes returns all hardware types ordered by name.
func ListHardwareTypes(ctx context.Context, db *sql.DB) ([]model.HardwareType, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM hardware_types ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing hardware types: %w", err)
	}
	defer rows.Close()

	var types []model.HardwareType
	for rows.Next() {
		var ht model.HardwareType
		if err := rows.Scan(&ht.ID, &ht.Name, &ht.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning hardware type: %w", err)
		}
		types = append(types, ht)
	}
	return types, rows.Err()
}

// ListLotNumbers returns all lot numbers ordered by name.
func ListLotNumbers(ctx context.Context, db *sql.DB) ([]model.LotNumber, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM lot_numbers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lot numbers: %w", err)
	}
	defer rows.Close()

	var lots []model.LotNumber
	for rows.Next() {
		var ln model.LotNumber
		if err := rows.Scan(&ln.ID, &ln.Name, &ln.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lot number: %w", err)
		}
		lots = append(lots, ln)
	}
	return lots, rows.Err()
}
