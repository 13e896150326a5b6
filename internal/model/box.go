package model

import "time"

// Box represents a physical stock container tracked by the ledger.
type Box struct {
	ID                int64     `json:"id"`
	BoxID             string    `json:"box_id"`
	HardwareTypeID    int64     `json:"hardware_type_id"`
	LotNumberID       int64     `json:"lot_number_id"`
	BoxNumber         string    `json:"box_number"`
	InitialQuantity   int       `json:"initial_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Barcode           string    `json:"barcode"`
	Operator          string    `json:"operator,omitempty"`
	QCPersonnel       string    `json:"qc_personnel,omitempty"`
	CreatedAt         time.Time `json:"created_at"`

	// Joined fields (not always populated).
	HardwareTypeName string `json:"hardware_type,omitempty"`
	LotNumberName    string `json:"lot_number,omitempty"`
}

// Stock statuses derived from remaining quantity.
const (
	StatusStocked   = "stocked"
	StatusDepleted  = "depleted"
	StatusAnomalous = "anomalous"
)

// Status classifies the box by its remaining quantity. Anomalous (negative)
// is unreachable through the ledger engine but may appear in imported data
// and must still be reportable.
func (b *Box) Status() string {
	switch {
	case b.RemainingQuantity > 0:
		return StatusStocked
	case b.RemainingQuantity == 0:
		return StatusDepleted
	default:
		return StatusAnomalous
	}
}

// BoxUpdate carries the admin-editable fields for a box. All fields are
// required; the store re-derives the box ID and re-validates quantity bounds
// and uniqueness.
type BoxUpdate struct {
	HardwareTypeName  string `json:"hardware_type"`
	LotNumberName     string `json:"lot_number"`
	BoxNumber         string `json:"box_number"`
	Barcode           string `json:"barcode"`
	InitialQuantity   int    `json:"initial_quantity"`
	RemainingQuantity int    `json:"remaining_quantity"`
}

// DeletionSummary reports what a box deletion removed.
type DeletionSummary struct {
	BoxID             string `json:"box_id"`
	DeletedPullEvents int    `json:"deleted_pull_events"`
}
