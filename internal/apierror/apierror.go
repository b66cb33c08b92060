// Package apierror defines the error taxonomy shared by services and handlers.
// Services return *apierror.Error values; handlers map them to HTTP responses
// through a single envelope, so internal details (stack traces, SQL errors)
// never leak to clients.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for callers.
type Kind int

const (
	// KindValidation: malformed or semantically invalid input. Not retryable.
	KindValidation Kind = iota
	// KindPrecondition: valid input, but required state is absent
	// (e.g. no open till). The user must change state first.
	KindPrecondition
	// KindConflict: the operation collides with existing state
	// (e.g. a second open till for the same operator).
	KindConflict
	// KindConcurrency: a racing transaction invalidated an earlier read.
	// Callers may retry with fresh data; the server never retries.
	KindConcurrency
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindInternal: infrastructure failure, surfaced as a generic message.
	KindInternal
)

// Error is the canonical domain error.
type Error struct {
	Kind   Kind              `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

func Validation(detail string) *Error   { return &Error{Kind: KindValidation, Detail: detail} }
func Precondition(detail string) *Error { return &Error{Kind: KindPrecondition, Detail: detail} }
func Conflict(detail string) *Error     { return &Error{Kind: KindConflict, Detail: detail} }
func Concurrency(detail string) *Error  { return &Error{Kind: KindConcurrency, Detail: detail} }
func NotFound(detail string) *Error     { return &Error{Kind: KindNotFound, Detail: detail} }
func Internal(detail string) *Error     { return &Error{Kind: KindInternal, Detail: detail} }

// FieldErrors builds a validation error carrying per-field detail.
func FieldErrors(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "Dados inválidos", Fields: fields}
}

// HTTPStatus maps the error kind to the status code used by the HTTP layer.
// Validation, precondition and conflict failures all surface as 422 — the
// request was understood but cannot be processed as-is.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindPrecondition, KindConflict:
		return http.StatusUnprocessableEntity
	case KindConcurrency:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// From normalizes any error into an *Error. Unknown errors become
// KindInternal with a generic message so repository/driver text never
// reaches a client.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("Erro interno do servidor")
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
