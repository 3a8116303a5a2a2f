// Package pdf renders employee leave summaries as a printable PDF.
// One page is produced per employee; each page shows the same heading,
// subheading and details rows as the on-screen panel, followed by a leave
// balance bar.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/leave-panel/internal/domain"
	"github.com/csg33k/leave-panel/internal/view"
)

// Generator implements ports.EmployeeExporter.
type Generator struct {
	// Now stamps the footer; defaults to time.Now.
	Now func() time.Time
}

func New() *Generator {
	return &Generator{Now: time.Now}
}

func (g *Generator) Extension() string   { return "pdf" }
func (g *Generator) ContentType() string { return "application/pdf" }

// Export writes a multi-page PDF (one page per employee) to w.
func (g *Generator) Export(ctx context.Context, employees []domain.EmployeeRecord, w io.Writer) error {
	if len(employees) == 0 {
		return fmt.Errorf("no employees to export")
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	pdf.SetCreationDate(now())

	for i := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		drawEmployeePage(pdf, view.BuildPanel(employees[i]), domain.SummaryOf(employees[i]), now())
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func drawEmployeePage(pdf *fpdf.Fpdf, p view.Panel, s domain.LeaveSummary, generated time.Time) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-40, 7, "EMPLOYEE LEAVE SUMMARY", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 14

	// ── Heading ──────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(p.Title()), "", 1, "L", false, 0, "")
	y += 8
	if p.Subheading != "" {
		pdf.SetXY(marginL, y)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(contentW, 6, tr(p.Subheading), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 6
	}
	y += 4

	// ── Details table ────────────────────────────────────────────────────────
	labelW := contentW * 0.4
	valueW := contentW - labelW

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "EMPLOYEE INFORMATION", "LRT", 1, "L", true, 0, "")
	y += 5.5

	rowH := 6.5
	for i, r := range p.Rows {
		pdf.SetXY(marginL, y)
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, rowH, r.Label, "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, rowH, tr(r.Value), "1", 1, "L", true, 0, "")
		y += rowH
	}

	// ── Balance bar ──────────────────────────────────────────────────────────
	y += 6
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5.5, fmt.Sprintf("LEAVE BALANCE  %d of %d used", s.Taken, s.Allowed), "", 1, "L", false, 0, "")
	y += 6.5
	barH := 5.0
	pdf.SetDrawColor(30, 30, 30)
	pdf.Rect(marginL, y, contentW, barH, "D")
	if used := usedFraction(s); used > 0 {
		if s.Remaining < 0 {
			pdf.SetFillColor(192, 57, 43)
		} else {
			pdf.SetFillColor(44, 110, 73)
		}
		pdf.Rect(marginL, y, contentW*used, barH, "F")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Leave Panel", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Employee #%d | %s", s.EmployeeID, generated.Format("2006-01-02 15:04")), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// usedFraction is the share of the allowance already taken, clamped to [0,1].
func usedFraction(s domain.LeaveSummary) float64 {
	if s.Allowed <= 0 {
		if s.Taken > 0 {
			return 1
		}
		return 0
	}
	f := float64(s.Taken) / float64(s.Allowed)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
