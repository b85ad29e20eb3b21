package giantswarm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure of the request pipeline.
type ErrorKind int

// Error kinds. The set is flat: no kind is a refinement of another.
const (
	ErrorKindInvalidJSONFromCache ErrorKind = iota
	ErrorKindInvalidJSONFromAPI
	ErrorKindNotAllowedToRequestURI
	ErrorKindClientError
	ErrorKindServerError
	ErrorKindResponseContainsRedirection
	ErrorKindNotFound
	ErrorKindUnexpectedResponseStatus
	ErrorKindLoginRequired
	ErrorKindLogoutRequired
	ErrorKindResponseStatusMismatch
)

var errorKindNames = map[ErrorKind]string{
	ErrorKindInvalidJSONFromCache:        "invalid_json_from_cache",
	ErrorKindInvalidJSONFromAPI:          "invalid_json_from_api",
	ErrorKindNotAllowedToRequestURI:      "not_allowed_to_request_uri",
	ErrorKindClientError:                 "client_error",
	ErrorKindServerError:                 "server_error",
	ErrorKindResponseContainsRedirection: "response_contains_redirection",
	ErrorKindNotFound:                    "not_found",
	ErrorKindUnexpectedResponseStatus:    "unexpected_response_status",
	ErrorKindLoginRequired:               "login_required",
	ErrorKindLogoutRequired:              "logout_required",
	ErrorKindResponseStatusMismatch:      "response_status_mismatch",
}

var errorKindDescriptions = map[ErrorKind]string{
	ErrorKindInvalidJSONFromCache:        "received invalid JSON from cache",
	ErrorKindInvalidJSONFromAPI:          "received invalid JSON from API",
	ErrorKindNotAllowedToRequestURI:      "not allowed to request given URI",
	ErrorKindClientError:                 "a client error occurred",
	ErrorKindServerError:                 "a server error occurred",
	ErrorKindResponseContainsRedirection: "response contains unhandled redirection",
	ErrorKindNotFound:                    "requested URI not found",
	ErrorKindUnexpectedResponseStatus:    "unexpected response status",
	ErrorKindLoginRequired:               "login required",
	ErrorKindLogoutRequired:              "logout required",
	ErrorKindResponseStatusMismatch:      "received status_code does not match expected status",
}

// String returns the snake_case name used in logs and metric labels.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("error_kind_%d", int(k))
}

// Description returns a human readable sentence for the kind.
func (k ErrorKind) Description() string {
	if desc, ok := errorKindDescriptions[k]; ok {
		return desc
	}

	return "unknown error"
}

// Error is a pipeline failure tagged with its kind.
type Error struct {
	Kind ErrorKind
	// StatusCode is the transport status for classification failures.
	StatusCode int
	// Expected and Actual are set for ResponseStatusMismatch.
	Expected EnvelopeStatus
	Actual   EnvelopeStatus
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Description()

	switch {
	case e.Kind == ErrorKindResponseStatusMismatch && e.Expected != 0:
		msg = fmt.Sprintf("%s (expected: %d, got: %d)", msg, int(e.Expected), int(e.Actual))
	case e.StatusCode != 0:
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrNotFound) matches regardless of status or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// NewError creates an error of the given kind wrapping cause.
func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidJSONFromCache        = &Error{Kind: ErrorKindInvalidJSONFromCache}
	ErrInvalidJSONFromAPI          = &Error{Kind: ErrorKindInvalidJSONFromAPI}
	ErrNotAllowedToRequestURI      = &Error{Kind: ErrorKindNotAllowedToRequestURI}
	ErrClientError                 = &Error{Kind: ErrorKindClientError}
	ErrServerError                 = &Error{Kind: ErrorKindServerError}
	ErrResponseContainsRedirection = &Error{Kind: ErrorKindResponseContainsRedirection}
	ErrNotFound                    = &Error{Kind: ErrorKindNotFound}
	ErrUnexpectedResponseStatus    = &Error{Kind: ErrorKindUnexpectedResponseStatus}
	ErrLoginRequired               = &Error{Kind: ErrorKindLoginRequired}
	ErrLogoutRequired              = &Error{Kind: ErrorKindLogoutRequired}
	ErrResponseStatusMismatch      = &Error{Kind: ErrorKindResponseStatusMismatch}
)

// KindOf extracts the kind of a pipeline error.
func KindOf(err error) (ErrorKind, bool) {
	pipelineErr := &Error{}
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind, true
	}

	return 0, false
}

// IsKind checks if err is a pipeline error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	got, ok := KindOf(err)

	return ok && got == kind
}
