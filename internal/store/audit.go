package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

// Audit page bounds.
const (
	defaultActionLimit = 100
	maxActionLimit     = 500
)

// appendAction writes one audit entry. It runs on the caller's transaction:
// an audit failure aborts the mutation it accompanies, never the other way
// around.
func appendAction(ctx context.Context, q querier, a model.ActionLog) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO action_logs (action_type, user, box_id, hardware_type, lot_number,
		                          previous_quantity, quantity_change, available_quantity,
		                          operator, qc_personnel, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ActionType, a.User, a.BoxID, a.HardwareType, a.LotNumber,
		a.PreviousQuantity, a.QuantityChange, a.AvailableQuantity,
		a.Operator, a.QCPersonnel, a.Details,
	)
	if err != nil {
		return busyOr(fmt.Errorf("recording action: %w", err))
	}
	return nil
}

// sqliteTimestamp matches the text form CURRENT_TIMESTAMP stores, so range
// bounds compare lexically against stored values.
const sqliteTimestamp = "2006-01-02 15:04:05"

// ActionFilter narrows an audit query. Zero values leave a dimension
// unbounded; time bounds are inclusive.
type ActionFilter struct {
	ActionType string
	User       string
	From       time.Time
	To         time.Time
	Limit      int
}

// ListActions returns audit entries most recent first, filtered by action
// type, user, and time range. The limit is bounded to keep scans cheap;
// zero or negative requests the default page size.
func ListActions(ctx context.Context, db *sql.DB, f ActionFilter) ([]model.ActionLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultActionLimit
	}
	if limit > maxActionLimit {
		limit = maxActionLimit
	}

	query := `SELECT id, action_type, user, timestamp, box_id, hardware_type, lot_number,
	                 previous_quantity, quantity_change, available_quantity,
	                 operator, qc_personnel, details
	          FROM action_logs WHERE 1=1`
	var args []any

	if f.ActionType != "" {
		query += ` AND action_type = ?`
		args = append(args, f.ActionType)
	}
	if f.User != "" {
		query += ` AND user = ?`
		args = append(args, f.User)
	}
	if !f.From.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, f.From.UTC().Format(sqliteTimestamp))
	}
	if !f.To.IsZero() {
		query += ` AND timestamp <= ?`
		args = append(args, f.To.UTC().Format(sqliteTimestamp))
	}

	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}
	defer rows.Close()

	var actions []model.ActionLog
	for rows.Next() {
		var a model.ActionLog
		var boxID, hwType, lot, operator, qc, details sql.NullString
		if err := rows.Scan(&a.ID, &a.ActionType, &a.User, &a.Timestamp, &boxID, &hwType, &lot,
			&a.PreviousQuantity, &a.QuantityChange, &a.AvailableQuantity,
			&operator, &qc, &details); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		a.BoxID = boxID.String
		a.HardwareType = hwType.String
		a.LotNumber = lot.String
		a.Operator = operator.String
		a.QCPersonnel = qc.String
		a.Details = details.String
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
