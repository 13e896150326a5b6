package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

// Movement is a single quantity change applied to a box. Quantity is
// signed: negative withdraws stock, positive returns it.
type Movement struct {
	Code        string // barcode or display box ID
	Quantity    int
	MO          string // manufacturing order
	Operator    string
	QCPersonnel string
	Signature   string
}

// Bounded retry for lock contention; past this the caller gets ErrBusy.
const (
	movementAttempts = 5
	movementBackoff  = 25 * time.Millisecond
)

// ApplyMovement is the sole path by which remaining quantity changes outside
// of a direct admin edit. It validates the movement, applies the quantity
// change, and appends one pull event and one audit entry, all in a single
// transaction: either all three effects become visible or none do.
//
// Validation order is fixed: structural checks, then box resolution, then
// quantity bounds, then the four-eyes rule. Withdrawals below zero fail with
// ErrInsufficientStock; returns above the initial quantity fail with
// ErrExceedsCapacity.
func ApplyMovement(ctx context.Context, db *sql.DB, m Movement) (*model.MovementResult, error) {
	m.Code = strings.TrimSpace(m.Code)
	m.Operator = strings.TrimSpace(m.Operator)
	m.QCPersonnel = strings.TrimSpace(m.QCPersonnel)

	if m.Code == "" {
		return nil, fmt.Errorf("%w: barcode or box id is required", ErrInvalidInput)
	}
	if m.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must not be zero", ErrInvalidInput)
	}
	if m.Operator == "" {
		return nil, fmt.Errorf("%w: operator is required", ErrInvalidInput)
	}
	if m.QCPersonnel == "" {
		return nil, fmt.Errorf("%w: qc personnel is required", ErrInvalidInput)
	}

	box, err := FindBoxByCode(ctx, db, m.Code)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, fmt.Errorf("%w: no box matches %q", ErrNotFound, m.Code)
	}

	var res *model.MovementResult
	for attempt := 0; ; attempt++ {
		res, err = applyMovementTx(ctx, db, box.ID, m)
		if err == nil || !errors.Is(err, ErrBusy) || attempt == movementAttempts-1 {
			return res, err
		}

		select {
		case <-time.After(time.Duration(attempt+1) * movementBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// applyMovementTx runs one attempt of the movement transaction. The guarded
// UPDATE is the first statement so the transaction starts as a writer and
// two racing movements cannot both observe the same remaining quantity.
func applyMovementTx(ctx context.Context, db *sql.DB, boxRef int64, m Movement) (*model.MovementResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, busyOr(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE boxes SET remaining_quantity = remaining_quantity + ?
		 WHERE id = ?
		   AND remaining_quantity + ? >= 0
		   AND remaining_quantity + ? <= initial_quantity`,
		m.Quantity, boxRef, m.Quantity, m.Quantity,
	)
	if err != nil {
		return nil, busyOr(fmt.Errorf("updating remaining quantity: %w", err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, classifyRejectedMovement(ctx, tx, boxRef, m.Quantity)
	}

	// Four-eyes rule. Checked after the quantity guard so a movement that is
	// both short on stock and self-approved reports the stock problem first;
	// the rollback discards the update either way.
	if m.Operator == m.QCPersonnel {
		return nil, fmt.Errorf("%w: %q", ErrSameActor, m.Operator)
	}

	box, err := scanBoxRow(tx.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.id = ?`, boxRef,
	))
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, fmt.Errorf("%w: box %d", ErrNotFound, boxRef)
	}

	resulting := box.RemainingQuantity
	previous := resulting - m.Quantity

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pull_events (box_ref, quantity, mo, operator, qc_personnel, signature)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		boxRef, m.Quantity, m.MO, m.Operator, m.QCPersonnel, m.Signature,
	)
	if err != nil {
		return nil, busyOr(fmt.Errorf("recording pull event: %w", err))
	}

	actionType := model.ActionPull
	if m.Quantity > 0 {
		actionType = model.ActionReturn
	}
	change := m.Quantity
	err = appendAction(ctx, tx, model.ActionLog{
		ActionType:        actionType,
		User:              m.Operator,
		BoxID:             box.BoxID,
		HardwareType:      box.HardwareTypeName,
		LotNumber:         box.LotNumberName,
		PreviousQuantity:  &previous,
		QuantityChange:    &change,
		AvailableQuantity: &resulting,
		Operator:          m.Operator,
		QCPersonnel:       m.QCPersonnel,
		Details:           movementDetails(m),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, busyOr(fmt.Errorf("committing movement: %w", err))
	}

	return &model.MovementResult{
		Box:               *box,
		PreviousQuantity:  previous,
		QuantityChange:    m.Quantity,
		ResultingQuantity: resulting,
	}, nil
}

// classifyRejectedMovement decides why the guarded update matched nothing.
func classifyRejectedMovement(ctx context.Context, tx *sql.Tx, boxRef int64, quantity int) error {
	var remaining, initial int
	err := tx.QueryRowContext(ctx,
		`SELECT remaining_quantity, initial_quantity FROM boxes WHERE id = ?`, boxRef,
	).Scan(&remaining, &initial)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: box %d", ErrNotFound, boxRef)
	}
	if err != nil {
		return busyOr(fmt.Errorf("checking box quantity: %w", err))
	}

	if remaining+quantity < 0 {
		return fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, remaining, -quantity)
	}
	return fmt.Errorf("%w: remaining %d + %d exceeds initial %d",
		ErrExceedsCapacity, remaining, quantity, initial)
}

func movementDetails(m Movement) string {
	var parts []string
	if m.MO != "" {
		parts = append(parts, "mo="+m.MO)
	}
	if m.Signature != "" {
		parts = append(parts, "signature="+m.Signature)
	}
	return strings.Join(parts, " ")
}

// ListPullEvents returns a box's ledger entries, most recent first.
func ListPullEvents(ctx context.Context, db *sql.DB, boxRef int64) ([]model.PullEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, box_ref, quantity, mo, operator, qc_personnel, signature, timestamp
		 FROM pull_events WHERE box_ref = ?
		 ORDER BY timestamp DESC, id DESC`, boxRef,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pull events: %w", err)
	}
	defer rows.Close()

	var events []model.PullEvent
	for rows.Next() {
		var ev model.PullEvent
		if err := rows.Scan(&ev.ID, &ev.BoxRef, &ev.Quantity, &ev.MO,
			&ev.Operator, &ev.QCPersonnel, &ev.Signature, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning pull event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
