// Package apierr defines the error kinds the API surfaces and the
// structured error lists returned to clients.
package apierr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for status mapping and caller handling.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidArgument covers malformed or missing required input.
	KindInvalidArgument
	// KindNotFound covers references to entities that do not exist.
	KindNotFound
	// KindConflict covers uniqueness violations, including "already voted".
	KindConflict
	// KindStorage covers underlying persistence failures.
	KindStorage
	// KindUnauthorized covers failed auth/session checks.
	KindUnauthorized
)

// Item is one entry of the structured error list, matching the wire
// format clients display directly.
type Item struct {
	Value    string `json:"value,omitempty"`
	Location string `json:"location,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
}

// Error carries a kind, the client-facing error items and optionally the
// underlying cause. Status overrides the kind's default HTTP status when
// non-zero ("already voted" is a conflict served as 403).
type Error struct {
	Kind   Kind
	Status int
	Items  []Item
	cause  error
}

func (e *Error) Error() string {
	if len(e.Items) > 0 {
		return e.Items[0].Msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the error onto a response status code.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// InvalidArgument builds a 400 error with a parameter hint.
func InvalidArgument(msg, param, location string) *Error {
	return &Error{
		Kind:  KindInvalidArgument,
		Items: []Item{{Msg: msg, Param: param, Location: location}},
	}
}

// NotFound builds a 404 error carrying the offending value.
func NotFound(msg, param, location, value string) *Error {
	return &Error{
		Kind:  KindNotFound,
		Items: []Item{{Msg: msg, Param: param, Location: location, Value: value}},
	}
}

// Conflict builds a 409 error for uniqueness violations.
func Conflict(msg, param, location, value string) *Error {
	return &Error{
		Kind:  KindConflict,
		Items: []Item{{Msg: msg, Param: param, Location: location, Value: value}},
	}
}

// AlreadyVoted is the duplicate-vote conflict, served as 403 to match
// the API's historical behavior.
func AlreadyVoted(msg string) *Error {
	return &Error{
		Kind:   KindConflict,
		Status: http.StatusForbidden,
		Items:  []Item{{Msg: msg}},
	}
}

// Unauthorized builds a 401 error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Items: []Item{{Msg: msg}}}
}

// Storage wraps a persistence failure. The cause is kept for logging;
// clients only see the generic message.
func Storage(msg string, cause error) *Error {
	return &Error{
		Kind:  KindStorage,
		Items: []Item{{Msg: msg}},
		cause: cause,
	}
}

// From extracts an *Error from err, wrapping unknown errors as storage
// failures so every error renders as a structured list.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Storage("There was an error processing your request. Please, try again", err)
}

// KindOf reports the kind of err, KindUnknown for non-API errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
