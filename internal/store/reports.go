package store

import (
	"context"
	"database/sql"
	"math"
	"sort"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

// familyCodeLength is how many leading characters of a box ID form its
// family code.
const familyCodeLength = 3

// familyCode extracts the grouping prefix from a box ID.
func familyCode(boxID string) string {
	if len(boxID) > familyCodeLength {
		return boxID[:familyCodeLength]
	}
	return boxID
}

// Summarize computes the dashboard aggregation: global totals, stock status
// breakdown, and per-family and per-(type, lot) groups. It is a pure read
// recomputed per call; group totals always sum to the global totals.
func Summarize(ctx context.Context, db *sql.DB, typeFilter, lotFilter, search string) (*model.InventorySummary, error) {
	boxes, err := ListBoxes(ctx, db, typeFilter, lotFilter, search)
	if err != nil {
		return nil, err
	}

	summary := &model.InventorySummary{}
	families := make(map[string]*model.FamilyGroup)
	typeLots := make(map[[2]string]*model.TypeLotGroup)

	for _, b := range boxes {
		summary.TotalBoxes++
		summary.TotalInitial += b.InitialQuantity
		summary.TotalRemaining += b.RemainingQuantity

		switch b.Status() {
		case model.StatusStocked:
			summary.Statuses.Stocked++
		case model.StatusDepleted:
			summary.Statuses.Depleted++
		default:
			summary.Statuses.Anomalous++
		}

		code := familyCode(b.BoxID)
		fg := families[code]
		if fg == nil {
			fg = &model.FamilyGroup{FamilyCode: code, TypeName: b.HardwareTypeName}
			families[code] = fg
		}
		fg.BoxCount++
		fg.TotalInitial += b.InitialQuantity
		fg.TotalRemaining += b.RemainingQuantity

		key := [2]string{b.HardwareTypeName, b.LotNumberName}
		tl := typeLots[key]
		if tl == nil {
			tl = &model.TypeLotGroup{HardwareType: key[0], LotNumber: key[1]}
			typeLots[key] = tl
		}
		tl.BoxCount++
		tl.TotalInitial += b.InitialQuantity
		tl.TotalRemaining += b.RemainingQuantity
	}

	if summary.TotalInitial > 0 {
		used := float64(summary.TotalInitial - summary.TotalRemaining)
		rate := used / float64(summary.TotalInitial) * 100
		summary.UtilizationRate = math.Round(rate*10) / 10
	}

	for _, fg := range families {
		summary.Families = append(summary.Families, *fg)
	}
	sort.Slice(summary.Families, func(i, j int) bool {
		return summary.Families[i].FamilyCode < summary.Families[j].FamilyCode
	})

	for _, tl := range typeLots {
		summary.TypeLots = append(summary.TypeLots, *tl)
	}
	sort.Slice(summary.TypeLots, func(i, j int) bool {
		a, b := summary.TypeLots[i], summary.TypeLots[j]
		if a.HardwareType != b.HardwareType {
			return a.HardwareType < b.HardwareType
		}
		return a.LotNumber < b.LotNumber
	})

	return summary, nil
}
