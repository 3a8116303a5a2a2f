package ports

import (
	"context"
	"io"

	"github.com/csg33k/leave-panel/internal/domain"
)

// EmployeeDirectory is the HR backend as seen by the panel.
type EmployeeDirectory interface {
	// LoadEmployee fetches the record behind a per-employee link. The link is
	// either absolute or relative to the backend base URL.
	LoadEmployee(ctx context.Context, link string) (*domain.EmployeeRecord, error)

	// EmployeeLink returns the per-employee link for id.
	EmployeeLink(id int64) string

	ListEmployees(ctx context.Context) ([]domain.EmployeeSummary, error)

	// SubmitLeave posts one leave request for employeeID and returns the
	// backend's acknowledgement text.
	SubmitLeave(ctx context.Context, employeeID int64, d domain.LeaveRequestDraft) (string, error)
}

// EmployeeExporter writes a downloadable document for one or many employees.
type EmployeeExporter interface {
	// Extension is the file extension without the dot, e.g. "pdf".
	Extension() string
	ContentType() string
	Export(ctx context.Context, employees []domain.EmployeeRecord, w io.Writer) error
}

// ContactCodeRenderer draws an employee's contact card as an image code.
type ContactCodeRenderer interface {
	ContentType() string
	// Render writes a size×size image; size <= 0 selects the default.
	Render(ctx context.Context, emp domain.EmployeeRecord, size int, w io.Writer) error
}
