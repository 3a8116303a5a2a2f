package templates_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/csg33k/leave-panel/internal/domain"
	"github.com/csg33k/leave-panel/internal/leaveform"
	"github.com/csg33k/leave-panel/internal/templates"
	"github.com/csg33k/leave-panel/internal/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n%s", w, out)
		}
	}
}

func annPanel() view.Panel {
	return view.BuildPanel(domain.EmployeeRecord{
		ID: 42, FirstName: "Ann", LastName: "Lee", Title: "Engineer",
		Email: "a@x.com", Phone: "555-1234",
		LeavesTaken: 3, MaxLeaves: 20, RemainingLeaves: 17,
	})
}

func TestDetailsPanel_Rows(t *testing.T) {
	out := renderString(t, templates.DetailsPanel(annPanel(), leaveform.New(42, leaveform.Hidden)))
	mustContain(t, out,
		`Details for <span class="emp-name">Ann Lee</span>`,
		`<h5>Engineer</h5>`,
		`<tr><th>First Name</th><td>Ann</td></tr>`,
		`<tr><th>Last Name</th><td>Lee</td></tr>`,
		`<tr><th>Email</th><td>a@x.com</td></tr>`,
		`<tr><th>Phone</th><td>555-1234</td></tr>`,
		`<tr><th>Leaves Taken</th><td>3</td></tr>`,
		`<tr><th>Allowed Leaves</th><td>20</td></tr>`,
		`<tr><th>Remaining leaves</th><td>17</td></tr>`,
		`id="panel-alert" hx-swap-oob="innerHTML"`,
		`href="/panel/employees/42/qr.png"`,
	)
	if n := strings.Count(out, "<tr>"); n != 7 {
		t.Errorf("got %d rows, want 7", n)
	}
}

func TestDetailsPanel_HiddenFormShowsButton(t *testing.T) {
	out := renderString(t, templates.DetailsPanel(annPanel(), leaveform.New(42, leaveform.Hidden)))
	mustContain(t, out, `hx-get="/panel/employees/42/leave-form"`, "Add Leave</button>")
	if strings.Contains(out, "<form") {
		t.Error("hidden form rendered a <form>")
	}
}

func TestDetailsPanel_VisibleForm(t *testing.T) {
	out := renderString(t, templates.DetailsPanel(annPanel(), leaveform.New(42, leaveform.VisibleEmpty)))
	mustContain(t, out,
		`hx-post="/panel/employees/42/leaves"`,
		`name="leave_date" value=""`,
		`name="leave_reason" value=""`,
		`data-state="visible-empty"`,
	)
}

func TestDetailsPanel_EscapesValues(t *testing.T) {
	p := view.BuildPanel(domain.EmployeeRecord{ID: 1, FirstName: "<script>x</script>", LastName: "O'Brien"})
	out := renderString(t, templates.DetailsPanel(p, leaveform.New(1, leaveform.Hidden)))
	if strings.Contains(out, "<script>x</script>") {
		t.Error("first name was not escaped")
	}
	mustContain(t, out, "&lt;script&gt;x&lt;/script&gt;", "O&#39;Brien")
}

func TestLeaveForm_Notices(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *leaveform.Form)
		wants []string
	}{
		{
			name: "validation keeps values",
			setup: func(f *leaveform.Form) {
				f.Edit(domain.LeaveRequestDraft{Reason: "Flu"})
				f.Submit()
			},
			wants: []string{`class="alert alert-validation"`, domain.MsgFillAllFields, `value="Flu"`},
		},
		{
			name: "success clears",
			setup: func(f *leaveform.Form) {
				f.Edit(domain.LeaveRequestDraft{Date: "2024-05-01", Reason: "Flu"})
				f.Submit()
				f.Succeed("Leave details submitted successfully!")
			},
			wants: []string{`class="alert alert-success"`, "Leave details submitted successfully!", `name="leave_date" value=""`, `name="leave_reason" value=""`},
		},
		{
			name: "failure keeps values",
			setup: func(f *leaveform.Form) {
				f.Edit(domain.LeaveRequestDraft{Date: "2024-05-01", Reason: "Flu"})
				f.Submit()
				f.Fail(&domain.ServerError{Status: 500, Detail: "db down"})
			},
			wants: []string{`class="alert alert-error"`, "Error: db down", `value="2024-05-01"`, `value="Flu"`, `data-state="visible-dirty"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := leaveform.New(42, leaveform.VisibleEmpty)
			tt.setup(f)
			mustContain(t, renderString(t, templates.LeaveForm(f)), tt.wants...)
		})
	}
}

func TestIndex(t *testing.T) {
	items := []view.ListItem{{ID: 42, Name: "Ann Lee", Title: "Engineer", Link: "http://hr.test/employees/42"}}
	out := renderString(t, templates.Index(items, ""))
	mustContain(t, out,
		`<!DOCTYPE html>`,
		`class="userlink" href="http://hr.test/employees/42"`,
		`hx-get="/panel/employees/42"`,
		`hx-sync="#employee-list:replace"`,
		`<div id="details"></div>`,
		`<div id="panel-alert"></div>`,
	)
}

func TestIndex_Error(t *testing.T) {
	out := renderString(t, templates.Index(nil, "Error: backend down"))
	mustContain(t, out, "Error: backend down")
	if strings.Contains(out, "No employees.") {
		t.Error("empty-list message shown alongside the error")
	}
}

func TestFetchError(t *testing.T) {
	out := renderString(t, templates.FetchError("Error: <boom>"))
	mustContain(t, out, `role="alert"`, "Error: &lt;boom&gt;")
}
