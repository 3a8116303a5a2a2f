package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/csg33k/leave-panel/internal/adapters/pdf"
	"github.com/csg33k/leave-panel/internal/domain"
)

func fixedGenerator() *pdf.Generator {
	g := pdf.New()
	g.Now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return g
}

func employees() []domain.EmployeeRecord {
	return []domain.EmployeeRecord{
		{ID: 42, FirstName: "Ann", LastName: "Lee", Title: "Engineer", Email: "a@x.com", Phone: "555-1234", LeavesTaken: 3, MaxLeaves: 20, RemainingLeaves: 17},
		{ID: 43, FirstName: "Zoë", LastName: "Ray", Title: "Tech Lead", LeavesTaken: 16, MaxLeaves: 15, RemainingLeaves: -1},
		{ID: 44, FirstName: "No", LastName: "Allowance"},
	}
}

func TestExport_OnePagePerEmployee(t *testing.T) {
	var buf bytes.Buffer
	if err := fixedGenerator().Export(context.Background(), employees(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("/Count 3")) {
		t.Error("expected a 3 page document")
	}
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := fixedGenerator().Export(context.Background(), nil, &buf); err == nil {
		t.Fatal("expected error for empty export")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := fixedGenerator().Export(ctx, employees(), &buf); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestMetadata(t *testing.T) {
	g := pdf.New()
	if g.Extension() != "pdf" || g.ContentType() != "application/pdf" {
		t.Errorf("got %q %q", g.Extension(), g.ContentType())
	}
}
