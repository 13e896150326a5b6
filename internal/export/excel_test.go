package export

import (
	"testing"
	"time"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

func TestInventoryWorkbook(t *testing.T) {
	boxes := []model.Box{
		{
			BoxID:             "Resistor_1K_LOT-2024-01_B1",
			HardwareTypeName:  "Resistor 1K",
			LotNumberName:     "LOT-2024-01",
			BoxNumber:         "B1",
			InitialQuantity:   500,
			RemainingQuantity: 450,
			Barcode:           "RES1K24B1",
			CreatedAt:         time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			BoxID:             "Capacitor_10uF_LOT-2024-02_B2",
			HardwareTypeName:  "Capacitor 10uF",
			LotNumberName:     "LOT-2024-02",
			BoxNumber:         "B2",
			InitialQuantity:   200,
			RemainingQuantity: 0,
			Barcode:           "CAP10U24B2",
			CreatedAt:         time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	f, err := InventoryWorkbook(boxes)
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Inventory" {
		t.Errorf("got sheets %v, want [Inventory]", sheets)
	}

	got, err := f.GetCellValue("Inventory", "A1")
	if err != nil {
		t.Fatalf("reading header cell: %v", err)
	}
	if got != "Box ID" {
		t.Errorf("got header %q, want %q", got, "Box ID")
	}

	checks := map[string]string{
		"A2": "Resistor_1K_LOT-2024-01_B1",
		"B2": "Resistor 1K",
		"E2": "500",
		"F2": "450",
		"G2": "RES1K24B1",
		"H2": "stocked",
		"I2": "2024-03-15 10:30:00",
		"A3": "Capacitor_10uF_LOT-2024-02_B2",
		"H3": "depleted",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Inventory", cell)
		if err != nil {
			t.Fatalf("reading %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestInventoryWorkbookEmpty(t *testing.T) {
	f, err := InventoryWorkbook(nil)
	if err != nil {
		t.Fatalf("building workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Inventory", "A1")
	if err != nil {
		t.Fatalf("reading header cell: %v", err)
	}
	if got != "Box ID" {
		t.Errorf("got header %q, want %q", got, "Box ID")
	}
	if v, _ := f.GetCellValue("Inventory", "A2"); v != "" {
		t.Errorf("unexpected data row: %q", v)
	}
}
