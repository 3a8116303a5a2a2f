// Package xlsx exports the leave balance of many employees as a spreadsheet.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/leave-panel/internal/domain"
)

// SheetName is the single sheet of the workbook.
const SheetName = "Leave Summary"


// Exporter implements ports.EmployeeExporter.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Extension() string { return "xlsx" }
func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes one row per employee under domain.LeaveSummaryColumns.
func (e *Exporter) Export(ctx context.Context, employees []domain.EmployeeRecord, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(domain.LeaveSummaryColumns))
	for i, c := range domain.LeaveSummaryColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, emp := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := domain.SummaryOf(emp)
		row := []any{s.EmployeeID, s.FirstName, s.LastName, s.Title, s.Allowed, s.Taken, s.Remaining}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write employee %d: %w", s.EmployeeID, err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "D", 18); err != nil {
		return err
	}
	return f.Write(w)
}
