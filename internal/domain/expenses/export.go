package expenses

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "Expenses"
	exportTimeLayout = "2006-01-02 15:04"
)

// Export writes items as an XLSX workbook: one row per expense followed by a
// total row. Dates are written in loc, or the local zone when loc is nil.
func Export(w io.Writer, items []Expense, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Date", "Category", "Amount", "Note"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, e := range items {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		values := []any{e.CreatedAt.In(loc).Format(exportTimeLayout), e.Category, e.Amount.InexactFloat64(), note}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totalCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	total := []any{"Total", "", Total(items).InexactFloat64(), ""}
	if err := f.SetSheetRow(exportSheet, totalCell, &total); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, row, row, bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "D", "D", 32); err != nil {
		return err
	}

	return f.Write(w)
}
