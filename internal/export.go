package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the active list and the year-grouped history to an xlsx
// workbook. The Active sheet uses the same column names ImportXLSX looks
// for, so an exported workbook can be imported back.
func ExportXLSX(path string, v Views) error {
	f := excelize.NewFile()
	defer f.Close()

	const activeSheet = "Active"
	if err := f.SetSheetName("Sheet1", activeSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	header := []any{"Provider", "Amount", "Cycle", "Start Date", "Renewal Date", "Details"}
	if err := writeRow(f, activeSheet, 1, header); err != nil {
		return err
	}
	for i, sub := range v.Active {
		row := []any{sub.ServiceProvider, sub.Amount, string(sub.BillingCycle), sub.StartDate, sub.RenewalDate, sub.Details}
		if err := writeRow(f, activeSheet, i+2, row); err != nil {
			return err
		}
	}

	const historySheet = "History"
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	historyHeader := []any{"Year", "Provider", "Amount", "Cycle", "Start Date", "Renewal Date", "Details"}
	if err := writeRow(f, historySheet, 1, historyHeader); err != nil {
		return err
	}
	rowNum := 2
	for _, group := range v.YearGroups {
		for _, sub := range group.Subs {
			row := []any{group.Year, sub.ServiceProvider, sub.Amount, string(sub.BillingCycle), sub.StartDate, sub.RenewalDate, sub.Details}
			if err := writeRow(f, historySheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("building cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
