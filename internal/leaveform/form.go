// Package leaveform models the leave request form shown under an employee's
// details as an explicit state machine:
//
//	Hidden ──Show──▶ VisibleEmpty ──Edit──▶ VisibleDirty ──Submit──▶ Submitting
//	                      ▲                      ▲                      │
//	                      └──────Succeed─────────┼──────────────────────┤
//	                                             └────────Fail──────────┘
//
// The page keeps no server-side session, so a handler rebuilds the form for
// each request and replays the transitions the request implies.
package leaveform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/csg33k/leave-panel/internal/domain"
)

type State int

const (
	Hidden State = iota
	VisibleEmpty
	VisibleDirty
	Submitting
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case VisibleEmpty:
		return "visible-empty"
	case VisibleDirty:
		return "visible-dirty"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseInitial maps the configured initial visibility onto a State.
func ParseInitial(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hidden":
		return Hidden, nil
	case "visible":
		return VisibleEmpty, nil
	}
	return Hidden, fmt.Errorf("unknown leave form initial state %q (want hidden or visible)", s)
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
	NoticeValidation
)

// Notice is the message displayed above the form fields.
type Notice struct {
	Kind NoticeKind
	Text string
}

// MsgDateFormat is shown when the leave date is not a calendar date.
const MsgDateFormat = "Leave date must be a calendar date (YYYY-MM-DD)."

var ErrInvalidTransition = errors.New("invalid leave form transition")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form is the leave request form of one displayed employee.
type Form struct {
	EmployeeID int64
	State      State
	Draft      domain.LeaveRequestDraft
	Notice     Notice
}

// New returns a form bound to employeeID in the given initial state.
// Submitting is not a valid initial state.
func New(employeeID int64, initial State) *Form {
	if initial != Hidden {
		initial = VisibleEmpty
	}
	return &Form{EmployeeID: employeeID, State: initial}
}

func (f *Form) Visible() bool {
	return f.State == VisibleEmpty || f.State == VisibleDirty
}

// Show reveals a hidden form. Showing a visible form is a no-op.
func (f *Form) Show() error {
	switch {
	case f.State == Hidden:
		f.State = VisibleEmpty
		f.Draft = domain.LeaveRequestDraft{}
		f.Notice = Notice{}
		return nil
	case f.Visible():
		return nil
	}
	return f.invalid("show")
}

// Edit replaces the draft with the user's current field values.
func (f *Form) Edit(d domain.LeaveRequestDraft) error {
	if !f.Visible() {
		return f.invalid("edit")
	}
	f.Draft = d
	if d.IsEmpty() {
		f.State = VisibleEmpty
	} else {
		f.State = VisibleDirty
	}
	return nil
}

// Submit validates the draft and moves to Submitting. A failed validation
// leaves the state unchanged, sets a validation notice and returns a
// *domain.ValidationError.
func (f *Form) Submit() error {
	if !f.Visible() {
		return f.invalid("submit")
	}
	if err := Validate(f.Draft); err != nil {
		f.Notice = Notice{Kind: NoticeValidation, Text: domain.UserMessage(err)}
		return err
	}
	f.State = Submitting
	f.Notice = Notice{}
	return nil
}

// Succeed clears the draft after the backend accepted it.
func (f *Form) Succeed(msg string) error {
	if f.State != Submitting {
		return f.invalid("succeed")
	}
	if msg == "" {
		msg = "Leave details submitted successfully!"
	}
	f.State = VisibleEmpty
	f.Draft = domain.LeaveRequestDraft{}
	f.Notice = Notice{Kind: NoticeSuccess, Text: msg}
	return nil
}

// Fail keeps the draft so the user can retry and reports cause.
func (f *Form) Fail(cause error) error {
	if f.State != Submitting {
		return f.invalid("fail")
	}
	f.State = VisibleDirty
	f.Notice = Notice{Kind: NoticeError, Text: domain.UserMessage(cause)}
	return nil
}

func (f *Form) invalid(event string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, f.State)
}

// Validate checks that both fields are filled in and the date is ISO.
func Validate(d domain.LeaveRequestDraft) error {
	trimmed := domain.LeaveRequestDraft{
		Date:   strings.TrimSpace(d.Date),
		Reason: strings.TrimSpace(d.Reason),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.ValidationError{Message: domain.MsgFillAllFields}
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &domain.ValidationError{Field: fieldName(fe.StructField()), Message: domain.MsgFillAllFields}
		}
	}
	fe := verrs[0]
	return &domain.ValidationError{Field: fieldName(fe.StructField()), Message: MsgDateFormat}
}

func fieldName(structField string) string {
	switch structField {
	case "Date":
		return domain.FieldLeaveDate
	case "Reason":
		return domain.FieldLeaveReason
	}
	return structField
}
