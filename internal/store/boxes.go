package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/boxid"
	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

const boxColumns = `b.id, b.box_id, b.hardware_type_id, b.lot_number_id, b.box_number,
	        b.initial_quantity, b.remaining_quantity, b.barcode, b.operator, b.qc_personnel,
	        b.created_at, ht.name AS hardware_type, ln.name AS lot_number`

const boxJoins = `FROM boxes b
	 JOIN hardware_types ht ON ht.id = b.hardware_type_id
	 JOIN lot_numbers ln ON ln.id = b.lot_number_id`

// NewBox carries the fields for box creation.
type NewBox struct {
	HardwareType    string
	LotNumber       string
	BoxNumber       string
	InitialQuantity int
	Barcode         string // auto-generated when empty
	Operator        string
	QCPersonnel     string
}

// barcodeLength is the length of auto-generated barcodes.
const barcodeLength = 10

// CreateBox creates a box, lazily creating its hardware type and lot number,
// and records a box_add audit entry in the same transaction. The box ID is
// derived from the sanitized classification components; a derived ID or
// barcode already in use fails with ErrDuplicateIdentity or ErrDuplicateCode.
func CreateBox(ctx context.Context, db *sql.DB, nb NewBox) (*model.Box, error) {
	nb.BoxNumber = strings.TrimSpace(nb.BoxNumber)
	nb.Barcode = strings.TrimSpace(nb.Barcode)

	// Structural checks first, so every caller observes the same first error.
	if nb.BoxNumber == "" {
		return nil, fmt.Errorf("%w: box number is required", ErrInvalidInput)
	}
	if nb.InitialQuantity <= 0 {
		return nil, fmt.Errorf("%w: initial quantity must be greater than 0", ErrInvalidInput)
	}
	if strings.TrimSpace(nb.Operator) == "" {
		return nil, fmt.Errorf("%w: operator is required", ErrInvalidInput)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, busyOr(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	ht, err := getOrCreateHardwareType(ctx, tx, nb.HardwareType)
	if err != nil {
		return nil, err
	}
	lot, err := getOrCreateLotNumber(ctx, tx, nb.LotNumber)
	if err != nil {
		return nil, err
	}

	boxID, err := deriveBoxID(ht.Name, lot.Name, nb.BoxNumber)
	if err != nil {
		return nil, err
	}

	generated := nb.Barcode == ""
	if generated {
		nb.Barcode = generateBarcode()
	}

	var result sql.Result
	for {
		result, err = tx.ExecContext(ctx,
			`INSERT INTO boxes (box_id, hardware_type_id, lot_number_id, box_number,
			                    initial_quantity, remaining_quantity, barcode, operator, qc_personnel)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			boxID, ht.ID, lot.ID, nb.BoxNumber,
			nb.InitialQuantity, nb.InitialQuantity, nb.Barcode, nb.Operator, nb.QCPersonnel,
		)
		if err == nil {
			break
		}
		if isUniqueViolation(err, "boxes.box_id") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, boxID)
		}
		if isUniqueViolation(err, "boxes.barcode") {
			if generated {
				// Random collision, pick another one.
				nb.Barcode = generateBarcode()
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, nb.Barcode)
		}
		return nil, busyOr(fmt.Errorf("creating box: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting box id: %w", err)
	}

	initial := nb.InitialQuantity
	zero := 0
	details, _ := json.Marshal(map[string]any{
		"box_number": nb.BoxNumber,
		"barcode":    nb.Barcode,
	})
	err = appendAction(ctx, tx, model.ActionLog{
		ActionType:        model.ActionBoxAdd,
		User:              nb.Operator,
		BoxID:             boxID,
		HardwareType:      ht.Name,
		LotNumber:         lot.Name,
		PreviousQuantity:  &zero,
		QuantityChange:    &initial,
		AvailableQuantity: &initial,
		Operator:          nb.Operator,
		QCPersonnel:       nb.QCPersonnel,
		Details:           string(details),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, busyOr(fmt.Errorf("committing box creation: %w", err))
	}

	return GetBox(ctx, db, id)
}

// deriveBoxID builds the display identity and rejects components that
// sanitize to nothing.
func deriveBoxID(typeName, lotName, boxNumber string) (string, error) {
	components := []struct {
		field, value string
	}{
		{"hardware type", typeName},
		{"lot number", lotName},
		{"box number", boxNumber},
	}
	for _, c := range components {
		if boxid.Sanitize(c.value) == "" {
			return "", fmt.Errorf("%w: %s %q has no usable characters", ErrInvalidInput, c.field, c.value)
		}
	}
	return boxid.Derive(typeName, lotName, boxNumber), nil
}

// generateBarcode produces a random barcode value.
func generateBarcode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:barcodeLength]
}

// GetBox returns a box by ID with classification names joined.
func GetBox(ctx context.Context, db *sql.DB, id int64) (*model.Box, error) {
	return scanBoxRow(db.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.id = ?`, id,
	))
}

// GetBoxByBarcode returns a box by its barcode, or nil if absent.
func GetBoxByBarcode(ctx context.Context, db *sql.DB, barcode string) (*model.Box, error) {
	return scanBoxRow(db.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.barcode = ?`, barcode,
	))
}

// FindBoxByCode resolves a box by barcode first, falling back to the display
// box ID.
func FindBoxByCode(ctx context.Context, db *sql.DB, code string) (*model.Box, error) {
	box, err := GetBoxByBarcode(ctx, db, code)
	if err != nil || box != nil {
		return box, err
	}
	return scanBoxRow(db.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.box_id = ?`, code,
	))
}

func scanBoxRow(row *sql.Row) (*model.Box, error) {
	b := &model.Box{}
	err := row.Scan(&b.ID, &b.BoxID, &b.HardwareTypeID, &b.LotNumberID, &b.BoxNumber,
		&b.InitialQuantity, &b.RemainingQuantity, &b.Barcode, &b.Operator, &b.QCPersonnel,
		&b.CreatedAt, &b.HardwareTypeName, &b.LotNumberName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting box: %w", err)
	}
	return b, nil
}

// ListBoxes returns boxes with classification names, optionally filtered by
// exact type name, exact lot name, and a free-text search over box ID,
// barcode and classification names. Ordered by box ID.
func ListBoxes(ctx context.Context, db *sql.DB, typeFilter, lotFilter, search string) ([]model.Box, error) {
	query := `SELECT ` + boxColumns + ` ` + boxJoins + ` WHERE 1=1`
	var args []any

	if typeFilter != "" {
		query += ` AND ht.name = ?`
		args = append(args, typeFilter)
	}
	if lotFilter != "" {
		query += ` AND ln.name = ?`
		args = append(args, lotFilter)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query += ` AND (b.box_id LIKE ? OR b.barcode LIKE ? OR ht.name LIKE ? OR ln.name LIKE ?)`
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query += ` ORDER BY b.box_id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing boxes: %w", err)
	}
	defer rows.Close()

	var boxes []model.Box
	for rows.Next() {
		var b model.Box
		if err := rows.Scan(&b.ID, &b.BoxID, &b.HardwareTypeID, &b.LotNumberID, &b.BoxNumber,
			&b.InitialQuantity, &b.RemainingQuantity, &b.Barcode, &b.Operator, &b.QCPersonnel,
			&b.CreatedAt, &b.HardwareTypeName, &b.LotNumberName); err != nil {
			return nil, fmt.Errorf("scanning box: %w", err)
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}

// UpdateBox applies an admin edit: classification, box number, barcode, and
// both quantity fields may change. The box ID is re-derived and uniqueness
// re-checked (excluding the box itself); quantity bounds are re-validated.
// A box_edit audit entry is written in the same transaction.
func UpdateBox(ctx context.Context, db *sql.DB, id int64, upd model.BoxUpdate, adminUser string) (*model.Box, error) {
	upd.BoxNumber = strings.TrimSpace(upd.BoxNumber)
	upd.Barcode = strings.TrimSpace(upd.Barcode)

	if upd.BoxNumber == "" {
		return nil, fmt.Errorf("%w: box number is required", ErrInvalidInput)
	}
	if upd.Barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrInvalidInput)
	}
	if upd.InitialQuantity <= 0 {
		return nil, fmt.Errorf("%w: initial quantity must be greater than 0", ErrInvalidInput)
	}
	if upd.RemainingQuantity < 0 || upd.RemainingQuantity > upd.InitialQuantity {
		return nil, fmt.Errorf("%w: remaining quantity must be between 0 and %d",
			ErrInvalidInput, upd.InitialQuantity)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, busyOr(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	old, err := scanBoxRow(tx.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.id = ?`, id,
	))
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, fmt.Errorf("%w: box %d", ErrNotFound, id)
	}

	ht, err := getOrCreateHardwareType(ctx, tx, upd.HardwareTypeName)
	if err != nil {
		return nil, err
	}
	lot, err := getOrCreateLotNumber(ctx, tx, upd.LotNumberName)
	if err != nil {
		return nil, err
	}

	newBoxID, err := deriveBoxID(ht.Name, lot.Name, upd.BoxNumber)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE boxes SET box_id = ?, hardware_type_id = ?, lot_number_id = ?, box_number = ?,
		        initial_quantity = ?, remaining_quantity = ?, barcode = ?
		 WHERE id = ?`,
		newBoxID, ht.ID, lot.ID, upd.BoxNumber,
		upd.InitialQuantity, upd.RemainingQuantity, upd.Barcode, id,
	)
	if err != nil {
		if isUniqueViolation(err, "boxes.box_id") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, newBoxID)
		}
		if isUniqueViolation(err, "boxes.barcode") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, upd.Barcode)
		}
		return nil, busyOr(fmt.Errorf("updating box: %w", err))
	}

	prev := old.RemainingQuantity
	change := upd.RemainingQuantity - old.RemainingQuantity
	avail := upd.RemainingQuantity
	details, _ := json.Marshal(map[string]any{
		"old": map[string]any{
			"box_id":             old.BoxID,
			"hardware_type":      old.HardwareTypeName,
			"lot_number":         old.LotNumberName,
			"barcode":            old.Barcode,
			"initial_quantity":   old.InitialQuantity,
			"remaining_quantity": old.RemainingQuantity,
		},
		"new": map[string]any{
			"box_id":             newBoxID,
			"hardware_type":      ht.Name,
			"lot_number":         lot.Name,
			"barcode":            upd.Barcode,
			"initial_quantity":   upd.InitialQuantity,
			"remaining_quantity": upd.RemainingQuantity,
		},
	})
	err = appendAction(ctx, tx, model.ActionLog{
		ActionType:        model.ActionBoxEdit,
		User:              adminUser,
		BoxID:             newBoxID,
		HardwareType:      ht.Name,
		LotNumber:         lot.Name,
		PreviousQuantity:  &prev,
		QuantityChange:    &change,
		AvailableQuantity: &avail,
		Details:           string(details),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, busyOr(fmt.Errorf("committing box update: %w", err))
	}

	return GetBox(ctx, db, id)
}

// DeleteBox removes a box and its pull events in one transaction, recording
// a box_delete audit entry with a snapshot of the deleted state. The number
// of deleted pull events is returned for confirmation messaging.
func DeleteBox(ctx context.Context, db *sql.DB, id int64, adminUser string) (*model.DeletionSummary, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, busyOr(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	box, err := scanBoxRow(tx.QueryRowContext(ctx,
		`SELECT `+boxColumns+` `+boxJoins+` WHERE b.id = ?`, id,
	))
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, fmt.Errorf("%w: box %d", ErrNotFound, id)
	}

	// Ledger entries first, then the box itself.
	result, err := tx.ExecContext(ctx, `DELETE FROM pull_events WHERE box_ref = ?`, id)
	if err != nil {
		return nil, busyOr(fmt.Errorf("deleting pull events: %w", err))
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("counting deleted pull events: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM boxes WHERE id = ?`, id); err != nil {
		return nil, busyOr(fmt.Errorf("deleting box: %w", err))
	}

	prev := box.RemainingQuantity
	change := -box.RemainingQuantity
	zero := 0
	details, _ := json.Marshal(map[string]any{
		"barcode":             box.Barcode,
		"initial_quantity":    box.InitialQuantity,
		"remaining_quantity":  box.RemainingQuantity,
		"deleted_pull_events": deleted,
	})
	err = appendAction(ctx, tx, model.ActionLog{
		ActionType:        model.ActionBoxDelete,
		User:              adminUser,
		BoxID:             box.BoxID,
		HardwareType:      box.HardwareTypeName,
		LotNumber:         box.LotNumberName,
		PreviousQuantity:  &prev,
		QuantityChange:    &change,
		AvailableQuantity: &zero,
		Details:           string(details),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, busyOr(fmt.Errorf("committing box deletion: %w", err))
	}

	return &model.DeletionSummary{BoxID: box.BoxID, DeletedPullEvents: int(deleted)}, nil
}
