// Package view turns backend records into flat, display-ready view-models.
// Nothing here performs I/O; templates and exporters consume the results.
package view

import (
	"strconv"

	"github.com/csg33k/leave-panel/internal/domain"
)

// Row labels of the details table, in display order.
const (
	LabelFirstName       = "First Name"
	LabelLastName        = "Last Name"
	LabelEmail           = "Email"
	LabelPhone           = "Phone"
	LabelLeavesTaken     = "Leaves Taken"
	LabelAllowedLeaves   = "Allowed Leaves"
	LabelRemainingLeaves = "Remaining leaves"
)

type Row struct {
	Label string
	Value string
}

// Panel is the read-only details view of one employee.
type Panel struct {
	EmployeeID int64
	Heading    string
	Name       string
	Subheading string
	Rows       []Row
}

// BuildPanel maps rec onto the details view. Values are copied verbatim.
func BuildPanel(rec domain.EmployeeRecord) Panel {
	return Panel{
		EmployeeID: rec.ID,
		Heading:    "Details for",
		Name:       rec.FirstName + " " + rec.LastName,
		Subheading: rec.Title,
		Rows: []Row{
			{LabelFirstName, rec.FirstName},
			{LabelLastName, rec.LastName},
			{LabelEmail, rec.Email},
			{LabelPhone, rec.Phone},
			{LabelLeavesTaken, strconv.Itoa(rec.LeavesTaken)},
			{LabelAllowedLeaves, strconv.Itoa(rec.MaxLeaves)},
			{LabelRemainingLeaves, strconv.Itoa(rec.RemainingLeaves)},
		},
	}
}

// Value returns the value of the row labelled label.
func (p Panel) Value(label string) (string, bool) {
	for _, r := range p.Rows {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// Title is the full heading line, e.g. "Details for Ann Lee".
func (p Panel) Title() string {
	return p.Heading + " " + p.Name
}

// ListItem is one anchor of the employee list.
type ListItem struct {
	ID    int64
	Name  string
	Title string
	// Link is the employee's JSON resource on the backend.
	Link string
}

// BuildEmployeeList maps the backend list onto anchors. link builds the
// per-employee JSON link.
func BuildEmployeeList(list []domain.EmployeeSummary, link func(int64) string) []ListItem {
	items := make([]ListItem, 0, len(list))
	for _, e := range list {
		items = append(items, ListItem{
			ID:    e.ID,
			Name:  e.FirstName + " " + e.LastName,
			Title: e.Title,
			Link:  link(e.ID),
		})
	}
	return items
}
