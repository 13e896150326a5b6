package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
)

const jwtSecretKey = "jwt_secret"

// GetJWTSecret returns the persisted signing secret, minting one on first
// call. Tokens stay valid across restarts because the secret lives with the
// rest of the data.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	return ensureSetting(ctx, db, jwtSecretKey, newSigningSecret)
}

// ensureSetting reads a settings value, generating and storing it when
// absent. Concurrent first calls may both generate; the INSERT OR IGNORE
// keeps one candidate and the re-read makes every caller agree on it.
func ensureSetting(ctx context.Context, db *sql.DB, key string, generate func() (string, error)) (string, error) {
	value, err := getSetting(ctx, db, key)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}

	candidate, err := generate()
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, candidate,
	); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	return getSetting(ctx, db, key)
}

func getSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

func newSigningSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
