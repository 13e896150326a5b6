package model

// FamilyGroup aggregates boxes sharing a family code, the fixed-length
// prefix of the box ID.
type FamilyGroup struct {
	FamilyCode     string `json:"family_code"`
	TypeName       string `json:"type_name"`
	BoxCount       int    `json:"box_count"`
	TotalInitial   int    `json:"total_initial"`
	TotalRemaining int    `json:"total_remaining"`
}

// TypeLotGroup aggregates boxes with an exact (type, lot) classification.
type TypeLotGroup struct {
	HardwareType   string `json:"hardware_type"`
	LotNumber      string `json:"lot_number"`
	BoxCount       int    `json:"box_count"`
	TotalInitial   int    `json:"total_initial"`
	TotalRemaining int    `json:"total_remaining"`
}

// StatusCounts breaks boxes down by stock status.
type StatusCounts struct {
	Stocked   int `json:"stocked"`
	Depleted  int `json:"depleted"`
	Anomalous int `json:"anomalous"`
}

// InventorySummary is the read-only dashboard aggregation, recomputed per
// query.
type InventorySummary struct {
	TotalBoxes      int            `json:"total_boxes"`
	TotalInitial    int            `json:"total_initial"`
	TotalRemaining  int            `json:"total_remaining"`
	UtilizationRate float64        `json:"utilization_rate"`
	Statuses        StatusCounts   `json:"statuses"`
	Families        []FamilyGroup  `json:"families"`
	TypeLots        []TypeLotGroup `json:"type_lots"`
}
