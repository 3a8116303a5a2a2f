package view_test

import (
	"fmt"
	"testing"

	"github.com/csg33k/leave-panel/internal/domain"
	"github.com/csg33k/leave-panel/internal/view"
)

func ann() domain.EmployeeRecord {
	return domain.EmployeeRecord{
		ID: 42, FirstName: "Ann", LastName: "Lee", Title: "Engineer",
		Email: "a@x.com", Phone: "555-1234",
		LeavesTaken: 3, MaxLeaves: 20, RemainingLeaves: 17,
	}
}

func TestBuildPanel_Scenario(t *testing.T) {
	p := view.BuildPanel(ann())

	if p.EmployeeID != 42 {
		t.Errorf("EmployeeID = %d, want 42", p.EmployeeID)
	}
	if got := p.Title(); got != "Details for Ann Lee" {
		t.Errorf("Title() = %q", got)
	}
	if p.Subheading != "Engineer" {
		t.Errorf("Subheading = %q, want Engineer", p.Subheading)
	}
	if v, ok := p.Value(view.LabelRemainingLeaves); !ok || v != "17" {
		t.Errorf("Remaining leaves = %q (ok=%v), want 17", v, ok)
	}
}

func TestBuildPanel_SevenRowsInOrder(t *testing.T) {
	p := view.BuildPanel(ann())
	want := []view.Row{
		{Label: "First Name", Value: "Ann"},
		{Label: "Last Name", Value: "Lee"},
		{Label: "Email", Value: "a@x.com"},
		{Label: "Phone", Value: "555-1234"},
		{Label: "Leaves Taken", Value: "3"},
		{Label: "Allowed Leaves", Value: "20"},
		{Label: "Remaining leaves", Value: "17"},
	}
	if len(p.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(p.Rows), len(want))
	}
	for i := range want {
		if p.Rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, p.Rows[i], want[i])
		}
	}
}

// Values must come through untouched: no trimming, truncation or escaping.
func TestBuildPanel_Verbatim(t *testing.T) {
	recs := []domain.EmployeeRecord{
		{ID: 1, FirstName: "  padded ", LastName: "O'Brien", Email: "<b>@x.com", Phone: "(871)967-6024x82190"},
		{ID: 2, FirstName: "Zoë", LastName: "Æsir", Title: "Tech Lead", LeavesTaken: 0, MaxLeaves: 0, RemainingLeaves: -2},
		{ID: 3, FirstName: "", LastName: fmt.Sprintf("%0300d", 7)},
	}
	for _, rec := range recs {
		p := view.BuildPanel(rec)
		checks := map[string]string{
			view.LabelFirstName:       rec.FirstName,
			view.LabelLastName:        rec.LastName,
			view.LabelEmail:           rec.Email,
			view.LabelPhone:           rec.Phone,
			view.LabelLeavesTaken:     fmt.Sprint(rec.LeavesTaken),
			view.LabelAllowedLeaves:   fmt.Sprint(rec.MaxLeaves),
			view.LabelRemainingLeaves: fmt.Sprint(rec.RemainingLeaves),
		}
		for label, want := range checks {
			got, ok := p.Value(label)
			if !ok {
				t.Fatalf("id %d: row %q missing", rec.ID, label)
			}
			if got != want {
				t.Errorf("id %d: %s = %q, want %q", rec.ID, label, got, want)
			}
		}
	}
}

func TestPanel_ValueMissing(t *testing.T) {
	if _, ok := view.BuildPanel(ann()).Value("Salary"); ok {
		t.Error("unexpected Salary row")
	}
}

func TestBuildEmployeeList(t *testing.T) {
	list := []domain.EmployeeSummary{
		{ID: 1, FirstName: "Ann", LastName: "Lee", Title: "Engineer"},
		{ID: 2, FirstName: "Bo", LastName: "Ray", Title: "Tech Lead"},
	}
	items := view.BuildEmployeeList(list, func(id int64) string {
		return fmt.Sprintf("http://hr.test/employees/%d", id)
	})
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[1].Name != "Bo Ray" || items[1].Link != "http://hr.test/employees/2" || items[1].Title != "Tech Lead" {
		t.Errorf("item = %+v", items[1])
	}
	if got := view.BuildEmployeeList(nil, nil); len(got) != 0 {
		t.Errorf("nil list produced %d items", len(got))
	}
}
