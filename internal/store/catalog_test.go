package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/db"
)

func TestGetOrCreateHardwareType(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetOrCreateHardwareType(ctx, database, "Resistor")
	if err != nil {
		t.Fatalf("GetOrCreateHardwareType: %v", err)
	}

	second, err := GetOrCreateHardwareType(ctx, database, "Resistor")
	if err != nil {
		t.Fatalf("GetOrCreateHardwareType again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same entry, got ids %d and %d", first.ID, second.ID)
	}

	types, _ := ListHardwareTypes(ctx, database)
	if len(types) != 1 {
		t.Errorf("expected 1 hardware type, got %d", len(types))
	}
}

func TestGetOrCreateCaseSensitive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	lower, _ := GetOrCreateLotNumber(ctx, database, "lot-1")
	upper, _ := GetOrCreateLotNumber(ctx, database, "LOT-1")

	if lower.ID == upper.ID {
		t.Error("expected case-sensitive lookup to create distinct entries")
	}
}

func TestGetOrCreateEmptyName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := GetOrCreateHardwareType(ctx, database, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := GetOrCreateLotNumber(ctx, database, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	const callers = 10

	var wg sync.WaitGroup
	ids := make(chan int64, callers)

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ht, err := GetOrCreateHardwareType(ctx, database, "Connector")
			if err != nil {
				t.Errorf("GetOrCreateHardwareType: %v", err)
				return
			}
			ids <- ht.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected one shared entry, got ids %v", seen)
	}

	types, _ := ListHardwareTypes(ctx, database)
	if len(types) != 1 {
		t.Errorf("expected 1 row, got %d", len(types))
	}
}

func TestListCatalogsOrdered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Zener", "Amp", "Mosfet"} {
		GetOrCreateHardwareType(ctx, database, name)
	}

	types, err := ListHardwareTypes(ctx, database)
	if err != nil {
		t.Fatalf("ListHardwareTypes: %v", err)
	}
	if len(types) != 3 || types[0].Name != "Amp" || types[2].Name != "Zener" {
		t.Errorf("expected alphabetical order, got %v", types)
	}
}
