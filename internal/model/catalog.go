package model

import "time"

// HardwareType is a classification lookup entry, created lazily the first
// time a box references the name.
type HardwareType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LotNumber is a classification lookup entry with the same lifecycle as
// HardwareType.
type LotNumber struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
