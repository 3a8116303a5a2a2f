// Package templates holds the page and fragment components of the panel.
//
// The markup lives in html/template sources wrapped as templ components, so
// handlers render everything through templ.Component without a code
// generation step.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/leave-panel/internal/leaveform"
	"github.com/csg33k/leave-panel/internal/view"
)

// Region ids the fragments are swapped into.
const (
	DetailsID   = "details"
	AlertID     = "panel-alert"
	LeaveFormID = "leave-form-region"
)

var funcs = template.FuncMap{
	"itoa":        itoa,
	"noticeClass": noticeClass,
	"isHidden":    isHidden,
}

var pages = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>HR · Employees</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
  :root { --ink:#0d1117; --paper:#f5f0e8; --ledger:#e8e0cc; --accent:#c0392b; --accent2:#2c6e49; --muted:#6b5e4e; --rule:#b8a898; }
  * { box-sizing: border-box; }
  body { background: var(--paper); color: var(--ink); font-family: sans-serif; margin: 0; }
  .layout { max-width: 1000px; margin: 0 auto; padding: 32px 24px; display: grid; grid-template-columns: 280px 1fr; gap: 28px; }
  .section-header { font-size: 0.7rem; font-weight: 600; letter-spacing: 0.18em; text-transform: uppercase; color: var(--muted); border-bottom: 1px solid var(--rule); padding-bottom: 4px; margin-bottom: 16px; }
  .card { background: rgba(255,255,255,0.7); border: 1px solid var(--ledger); border-left: 4px solid var(--ink); padding: 16px 20px; }
  a.userlink { display: block; padding: 6px 0; color: var(--ink); text-decoration: none; border-bottom: 1px solid var(--ledger); }
  a.userlink:hover { color: var(--accent); }
  table { border-collapse: collapse; }
  th { text-align: left; padding: 4px 16px 4px 0; color: var(--muted); font-weight: 500; }
  td { padding: 4px 0; }
  input { border: 1px solid var(--rule); border-bottom: 2px solid var(--ink); padding: 6px 8px; }
  .btn { font-weight: 600; font-size: 0.8rem; padding: 8px 18px; border: 2px solid var(--ink); background: var(--ink); color: white; cursor: pointer; }
  .alert { padding: 8px 12px; margin-bottom: 12px; border-left: 4px solid; }
  .alert-success { border-color: var(--accent2); color: var(--accent2); }
  .alert-error, .alert-validation { border-color: var(--accent); color: var(--accent); }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator, .htmx-request.htmx-indicator { opacity: 1; }
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>
{{define "content"}}
<div class="layout">
  <div>
    <div class="section-header">Employees</div>
    {{if .Error}}<div class="alert alert-error" role="alert">{{.Error}}</div>{{end}}
    <div id="employee-list">
      {{range .Items}}
      <a class="userlink" href="{{.Link}}"
         hx-get="/panel/employees/{{itoa .ID}}"
         hx-target="#` + DetailsID + `"
         hx-swap="innerHTML"
         hx-sync="#employee-list:replace">{{.Name}}<br><small>{{.Title}}</small></a>
      {{else}}
      {{if not .Error}}<div class="alert">No employees.</div>{{end}}
      {{end}}
    </div>
  </div>
  <div>
    <div id="` + AlertID + `"></div>
    <div id="` + DetailsID + `"></div>
  </div>
</div>
{{end}}`))

var fragments = template.Must(template.New("fragments").Funcs(funcs).Parse(`
{{define "details-panel"}}
<div id="` + AlertID + `" hx-swap-oob="innerHTML"></div>
<div class="card" data-employee-id="{{itoa .Panel.EmployeeID}}">
  <h4>{{.Panel.Heading}} <span class="emp-name">{{.Panel.Name}}</span></h4>
  <h5>{{.Panel.Subheading}}</h5>
  <table>
    {{range .Panel.Rows}}
    <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
    {{end}}
  </table>
  <p>
    <a href="/panel/employees/{{itoa .Panel.EmployeeID}}/summary.pdf">Leave summary (PDF)</a> ·
    <a href="/panel/employees/{{itoa .Panel.EmployeeID}}/vcard">vCard</a> ·
    <a href="/panel/employees/{{itoa .Panel.EmployeeID}}/qr.png">QR code</a>
  </p>
  <div id="` + LeaveFormID + `">{{template "leave-form" .Form}}</div>
</div>
{{end}}

{{define "leave-form"}}
{{if isHidden .State}}
<button class="btn" type="button"
        hx-get="/panel/employees/{{itoa .EmployeeID}}/leave-form"
        hx-target="#` + LeaveFormID + `"
        hx-swap="innerHTML">Add Leave</button>
{{else}}
<div data-state="{{.State}}">
  <h5>Add Leave Details</h5>
  {{with .Notice}}{{if .Text}}<div class="{{noticeClass .Kind}}" role="alert">{{.Text}}</div>{{end}}{{end}}
  <form hx-post="/panel/employees/{{itoa .EmployeeID}}/leaves"
        hx-target="#` + LeaveFormID + `"
        hx-swap="innerHTML"
        hx-sync="this:drop">
    <label for="leave_date">Leave Date</label>
    <input type="date" id="leave_date" name="leave_date" value="{{.Draft.Date}}"><br><br>
    <label for="leave_reason">Leave Reason</label>
    <input type="text" id="leave_reason" name="leave_reason" value="{{.Draft.Reason}}"><br><br>
    <input class="btn" type="submit" value="Submit">
    <span class="htmx-indicator">Submitting…</span>
  </form>
</div>
{{end}}
{{end}}

{{define "fetch-error"}}
<div class="alert alert-error" role="alert">{{.}}</div>
{{end}}`))

type indexData struct {
	Items []view.ListItem
	Error string
}

type detailsData struct {
	Panel view.Panel
	Form  *leaveform.Form
}

// Index is the full page: employee list plus the empty details region.
// listErr is shown instead of the list when the backend could not be read.
func Index(items []view.ListItem, listErr string) templ.Component {
	return execute(pages, "base", indexData{Items: items, Error: listErr})
}

// DetailsPanel is the read-only details of one employee with its leave form.
func DetailsPanel(p view.Panel, f *leaveform.Form) templ.Component {
	return execute(fragments, "details-panel", detailsData{Panel: p, Form: f})
}

// LeaveForm is the leave form region in its current state.
func LeaveForm(f *leaveform.Form) templ.Component {
	return execute(fragments, "leave-form", f)
}

// FetchError is the alert shown when an employee could not be loaded.
func FetchError(msg string) templ.Component {
	return execute(fragments, "fetch-error", msg)
}

func execute(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
