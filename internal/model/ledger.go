package model

import "time"

// PullEvent is one immutable ledger entry for a single movement. Quantity is
// signed: negative for pulls, positive for returns. Events are never updated,
// only superseded by later events.
type PullEvent struct {
	ID          int64     `json:"id"`
	BoxRef      int64     `json:"box_ref"`
	Quantity    int       `json:"quantity"`
	MO          string    `json:"mo,omitempty"`
	Operator    string    `json:"operator"`
	QCPersonnel string    `json:"qc_personnel"`
	Signature   string    `json:"signature,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MovementResult is returned to the caller after a successful movement.
type MovementResult struct {
	Box               Box `json:"box"`
	PreviousQuantity  int `json:"previous_quantity"`
	QuantityChange    int `json:"quantity_change"`
	ResultingQuantity int `json:"resulting_quantity"`
}
