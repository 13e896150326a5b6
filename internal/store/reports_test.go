package store

import (
	"context"
	"testing"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/db"
)

func TestSummarize(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mk := func(typ, lot, num string, qty int) {
		t.Helper()
		if _, err := CreateBox(ctx, database, NewBox{
			HardwareType: typ, LotNumber: lot, BoxNumber: num,
			InitialQuantity: qty, Operator: "alice",
		}); err != nil {
			t.Fatalf("CreateBox: %v", err)
		}
	}
	mk("RES", "L1", "B1", 100)
	mk("RES", "L1", "B2", 50)
	mk("RES", "L2", "B1", 30)
	mk("CAP", "L1", "B1", 20)

	// Deplete one box.
	box, _ := FindBoxByCode(ctx, database, "RES_L2_B1")
	if _, err := ApplyMovement(ctx, database, Movement{
		Code: box.Barcode, Quantity: -30, Operator: "alice", QCPersonnel: "bob",
	}); err != nil {
		t.Fatalf("ApplyMovement: %v", err)
	}

	summary, err := Summarize(ctx, database, "", "", "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if summary.TotalBoxes != 4 || summary.TotalInitial != 200 || summary.TotalRemaining != 170 {
		t.Errorf("unexpected totals: %d boxes, %d/%d", summary.TotalBoxes, summary.TotalInitial, summary.TotalRemaining)
	}
	if summary.Statuses.Stocked != 3 || summary.Statuses.Depleted != 1 || summary.Statuses.Anomalous != 0 {
		t.Errorf("unexpected statuses: %+v", summary.Statuses)
	}
	if summary.UtilizationRate != 15.0 {
		t.Errorf("expected utilization 15.0, got %v", summary.UtilizationRate)
	}

	// Family codes are the 3-character box id prefix: CAP and RES.
	if len(summary.Families) != 2 {
		t.Fatalf("expected 2 families, got %d", len(summary.Families))
	}
	if summary.Families[0].FamilyCode != "CAP" || summary.Families[1].FamilyCode != "RES" {
		t.Errorf("unexpected family codes: %+v", summary.Families)
	}
	if summary.Families[1].BoxCount != 3 || summary.Families[1].TotalRemaining != 150 {
		t.Errorf("unexpected RES family: %+v", summary.Families[1])
	}

	if len(summary.TypeLots) != 3 {
		t.Fatalf("expected 3 type-lot groups, got %d", len(summary.TypeLots))
	}

	// Group totals must add up to the global totals.
	var boxes, initial, remaining int
	for _, g := range summary.TypeLots {
		boxes += g.BoxCount
		initial += g.TotalInitial
		remaining += g.TotalRemaining
	}
	if boxes != summary.TotalBoxes || initial != summary.TotalInitial || remaining != summary.TotalRemaining {
		t.Errorf("type-lot groups do not sum to totals: %d/%d/%d", boxes, initial, remaining)
	}

	var fBoxes, fInitial, fRemaining int
	for _, g := range summary.Families {
		fBoxes += g.BoxCount
		fInitial += g.TotalInitial
		fRemaining += g.TotalRemaining
	}
	if fBoxes != summary.TotalBoxes || fInitial != summary.TotalInitial || fRemaining != summary.TotalRemaining {
		t.Errorf("family groups do not sum to totals: %d/%d/%d", fBoxes, fInitial, fRemaining)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	summary, err := Summarize(context.Background(), database, "", "", "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TotalBoxes != 0 || summary.UtilizationRate != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestSummarizeToleratesAnomalousData(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestBox(t, database, 100)

	// Imported legacy data can carry a negative remaining quantity. It is
	// unreachable through the ledger engine but must still be reported.
	ht, _ := GetOrCreateHardwareType(ctx, database, "Legacy")
	lot, _ := GetOrCreateLotNumber(ctx, database, "L0")
	if _, err := database.ExecContext(ctx,
		`INSERT INTO boxes (box_id, hardware_type_id, lot_number_id, box_number,
		                    initial_quantity, remaining_quantity, barcode)
		 VALUES ('Legacy_L0_B1', ?, ?, 'B1', 10, -3, 'LEGACY1')`,
		ht.ID, lot.ID,
	); err != nil {
		t.Fatalf("inserting legacy row: %v", err)
	}

	summary, err := Summarize(ctx, database, "", "", "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Statuses.Anomalous != 1 {
		t.Errorf("expected 1 anomalous box, got %d", summary.Statuses.Anomalous)
	}
	if summary.TotalRemaining != 97 {
		t.Errorf("expected total remaining 97, got %d", summary.TotalRemaining)
	}
}

func TestSummarizeFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mk := func(typ, num string) {
		t.Helper()
		if _, err := CreateBox(ctx, database, NewBox{
			HardwareType: typ, LotNumber: "L1", BoxNumber: num,
			InitialQuantity: 10, Operator: "alice",
		}); err != nil {
			t.Fatalf("CreateBox: %v", err)
		}
	}
	mk("RES", "B1")
	mk("CAP", "B1")

	summary, err := Summarize(ctx, database, "RES", "", "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TotalBoxes != 1 || len(summary.Families) != 1 {
		t.Errorf("expected filtered summary with 1 box, got %+v", summary)
	}
}
