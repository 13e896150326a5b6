// Package export renders inventory listings as Excel workbooks for the
// download endpoint.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

const sheetName = "Inventory"

var header = []string{
	"Box ID",
	"Hardware Type",
	"Lot Number",
	"Box Number",
	"Initial Quantity",
	"Remaining Quantity",
	"Barcode",
	"Status",
	"Created Date",
}

// InventoryWorkbook builds a styled workbook from box views. The caller owns
// the returned file and must Close it after writing.
func InventoryWorkbook(boxes []model.Box) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	widths := make([]int, len(header))
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		widths[col] = len(h)
	}

	for i, b := range boxes {
		values := []any{
			b.BoxID,
			b.HardwareTypeName,
			b.LotNumberName,
			b.BoxNumber,
			b.InitialQuantity,
			b.RemainingQuantity,
			b.Barcode,
			b.Status(),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cell, v)
			if s := fmt.Sprint(v); len(s) > widths[col] {
				widths[col] = len(s)
			}
		}
	}

	for col := range header {
		name, _ := excelize.ColumnNumberToName(col + 1)
		width := float64(widths[col] + 2)
		if width > 50 {
			width = 50
		}
		f.SetColWidth(sheetName, name, name, width)
	}

	return f, nil
}
