// Package leavecsv exports the leave balance of many employees as CSV.
package leavecsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/csg33k/leave-panel/internal/domain"
)

// Exporter implements ports.EmployeeExporter.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Extension() string   { return "csv" }
func (e *Exporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export writes a header row and one record per employee.
func (e *Exporter) Export(ctx context.Context, employees []domain.EmployeeRecord, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.LeaveSummaryColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := domain.SummaryOf(emp)
		if err := cw.Write([]string{
			strconv.FormatInt(s.EmployeeID, 10),
			s.FirstName,
			s.LastName,
			s.Title,
			strconv.Itoa(s.Allowed),
			strconv.Itoa(s.Taken),
			strconv.Itoa(s.Remaining),
		}); err != nil {
			return fmt.Errorf("write employee %d: %w", s.EmployeeID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
