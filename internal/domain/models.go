package domain

import "strings"

// EmployeeRecord is the per-employee JSON resource served by the HR backend.
// RemainingLeaves is derived by the backend; it is displayed, never computed here.
type EmployeeRecord struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"fname"`
	LastName        string `json:"lname"`
	Title           string `json:"title"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	LeavesTaken     int    `json:"leave"`
	MaxLeaves       int    `json:"max_leaves"`
	RemainingLeaves int    `json:"remaining_leaves"`
}

// FullName is "First Last".
func (e EmployeeRecord) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EmployeeSummary is one entry of the backend's employee list.
type EmployeeSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// LeaveRequestDraft holds the two leave form fields as typed by the user.
type LeaveRequestDraft struct {
	Date   string `form:"leave_date" validate:"required,datetime=2006-01-02"`
	Reason string `form:"leave_reason" validate:"required"`
}

// Form field names shared by the templates, handlers and the backend client.
const (
	FieldLeaveDate   = "leave_date"
	FieldLeaveReason = "leave_reason"
)

// IsEmpty reports whether neither field has been filled in.
func (d LeaveRequestDraft) IsEmpty() bool {
	return strings.TrimSpace(d.Date) == "" && strings.TrimSpace(d.Reason) == ""
}

// LeaveSummary is the leave balance view of an employee.
type LeaveSummary struct {
	EmployeeID int64
	FirstName  string
	LastName   string
	Title      string
	Allowed    int
	Taken      int
	Remaining  int
}

// LeaveSummaryColumns heads every tabular leave summary export.
var LeaveSummaryColumns = []string{
	"Employee ID", "First Name", "Last Name", "Designation",
	"Total Leaves", "Leaves Taken", "Leaves Remaining",
}

// SummaryOf derives the leave balance of a fetched record.
func SummaryOf(e EmployeeRecord) LeaveSummary {
	return LeaveSummary{
		EmployeeID: e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Title:      e.Title,
		Allowed:    e.MaxLeaves,
		Taken:      e.LeavesTaken,
		Remaining:  e.RemainingLeaves,
	}
}
