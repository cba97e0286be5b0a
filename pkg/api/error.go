package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx response from the backend. Detail carries the
// human-readable message from the `{"detail": ...}` payload when the server
// sent one as a plain string; Body retains the raw payload so callers can
// log structured validation errors in full.
type Error struct {
	Status int
	Detail string
	Body   []byte
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status, Body: body}
	// Cart endpoints report errors as {"detail": ...}, auth endpoints as
	// {"message": ...}; detail may also be a structured validation payload,
	// in which case only Body carries it.
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(payload.Detail, &detail); err == nil {
				e.Detail = detail
			}
		}
		if e.Detail == "" && payload.Message != "" {
			e.Detail = payload.Message
		}
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is a
// transport-level failure (timeout, connection refused, decode error).
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// DetailOf returns the server-supplied detail message, or "" when absent.
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
