package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. pull_events reference boxes so that
// deleting a box can cascade through its ledger explicitly; action_logs
// deliberately carry no foreign keys, only denormalized snapshots, so audit
// history survives box edits and deletion.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'operator' CHECK (role IN ('admin', 'operator')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS hardware_types (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS lot_numbers (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS boxes (
    id                 INTEGER PRIMARY KEY,
    box_id             TEXT NOT NULL UNIQUE,
    hardware_type_id   INTEGER NOT NULL REFERENCES hardware_types(id),
    lot_number_id      INTEGER NOT NULL REFERENCES lot_numbers(id),
    box_number         TEXT NOT NULL,
    initial_quantity   INTEGER NOT NULL CHECK (initial_quantity > 0),
    remaining_quantity INTEGER NOT NULL,
    barcode            TEXT NOT NULL UNIQUE,
    operator           TEXT NOT NULL DEFAULT '',
    qc_personnel       TEXT NOT NULL DEFAULT '',
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS pull_events (
    id           INTEGER PRIMARY KEY,
    box_ref      INTEGER NOT NULL REFERENCES boxes(id),
    quantity     INTEGER NOT NULL CHECK (quantity != 0),
    mo           TEXT NOT NULL DEFAULT '',
    operator     TEXT NOT NULL,
    qc_personnel TEXT NOT NULL,
    signature    TEXT NOT NULL DEFAULT '',
    timestamp    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pull_events_box_ref ON pull_events(box_ref);

CREATE TABLE IF NOT EXISTS action_logs (
    id                 INTEGER PRIMARY KEY,
    action_type        TEXT NOT NULL,
    user               TEXT NOT NULL,
    timestamp          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    box_id             TEXT,
    hardware_type      TEXT,
    lot_number         TEXT,
    previous_quantity  INTEGER,
    quantity_change    INTEGER,
    available_quantity INTEGER,
    operator           TEXT,
    qc_personnel       TEXT,
    details            TEXT
);

CREATE INDEX IF NOT EXISTS idx_action_logs_timestamp ON action_logs(timestamp);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
