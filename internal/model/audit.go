package model

import "time"

// ActionLog is an append-only, fully denormalized record of a mutating
// action. It copies the box identity and classification names instead of
// referencing live rows so that history stays meaningful after the box is
// edited or deleted.
type ActionLog struct {
	ID                int64     `json:"id"`
	ActionType        string    `json:"action_type"`
	User              string    `json:"user"`
	Timestamp         time.Time `json:"timestamp"`
	BoxID             string    `json:"box_id,omitempty"`
	HardwareType      string    `json:"hardware_type,omitempty"`
	LotNumber         string    `json:"lot_number,omitempty"`
	PreviousQuantity  *int      `json:"previous_quantity,omitempty"`
	QuantityChange    *int      `json:"quantity_change,omitempty"`
	AvailableQuantity *int      `json:"available_quantity,omitempty"`
	Operator          string    `json:"operator,omitempty"`
	QCPersonnel       string    `json:"qc_personnel,omitempty"`
	Details           string    `json:"details,omitempty"`
}

// Action types.
const (
	ActionPull      = "pull"
	ActionReturn    = "return"
	ActionBoxAdd    = "box_add"
	ActionBoxEdit   = "box_edit"
	ActionBoxDelete = "box_delete"
)
