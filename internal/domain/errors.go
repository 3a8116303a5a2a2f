package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// MsgFillAllFields is shown when either leave form field is blank.
const MsgFillAllFields = "Please fill in all fields."

// ErrCodeSize is returned when a QR code cannot be drawn at the requested size.
var ErrCodeSize = errors.New("qr code size out of range")

// ValidationError is a client-side form problem. It is detected before any
// backend call and is never reported upstream.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError is a network-level or decoding failure talking to the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-success status returned by the backend.
type ServerError struct {
	Op     string
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, detail)
}

// IsRetryable reports whether err belongs to the panel's error taxonomy.
// Every member of it leaves the page interactive; the user retries by hand.
func IsRetryable(err error) bool {
	var ve *ValidationError
	var te *TransportError
	var se *ServerError
	return errors.As(err, &ve) || errors.As(err, &te) || errors.As(err, &se)
}

// UserMessage renders err as the text shown next to the form or panel.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return "Error: " + se.Detail
		}
		return fmt.Sprintf("Error: server responded %d %s", se.Status, http.StatusText(se.Status))
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "Error: " + te.Err.Error()
	}
	return "Error: " + err.Error()
}
