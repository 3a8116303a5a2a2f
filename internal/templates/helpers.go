package templates

import (
	"strconv"

	"github.com/csg33k/leave-panel/internal/leaveform"
)

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// noticeClass maps a form notice onto its alert CSS class.
func noticeClass(k leaveform.NoticeKind) string {
	switch k {
	case leaveform.NoticeSuccess:
		return "alert alert-success"
	case leaveform.NoticeError:
		return "alert alert-error"
	case leaveform.NoticeValidation:
		return "alert alert-validation"
	}
	return ""
}

func isHidden(s leaveform.State) bool { return s == leaveform.Hidden }
