// Package apperr defines the error taxonomy shared by the usecase and HTTP
// layers. Handlers map kinds to HTTP status codes; messages are user-facing.
package apperr

import "errors"

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindInsufficientBalance
	KindExpired
	KindInvalidCode
	KindTransientNetwork
)

// Error is an application error with a user-facing message
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an application error of the given kind
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an application error wrapping an underlying cause. The cause is
// kept for logging; only Msg is shown to clients.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Validation reports client-fixable bad input
func Validation(msg string) *Error { return New(KindValidation, msg) }

// NotFound reports an unknown recipient, member or OTP
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Unauthorized reports a failed or missing authentication
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }

// InsufficientBalance reports a balance lower than the requested amount
func InsufficientBalance(msg string) *Error { return New(KindInsufficientBalance, msg) }

// Expired reports an OTP past its TTL
func Expired(msg string) *Error { return New(KindExpired, msg) }

// InvalidCode reports an OTP code mismatch
func InvalidCode(msg string) *Error { return New(KindInvalidCode, msg) }

// TransientNetwork reports a retryable transport failure
func TransientNetwork(msg string, err error) *Error {
	return Wrap(KindTransientNetwork, msg, err)
}

// Internal reports an unexpected failure
func Internal(msg string, err error) *Error { return Wrap(KindInternal, msg, err) }

// KindOf returns the kind of err, or KindInternal for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the HTTP status code of the API envelope
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientBalance, KindExpired, KindInvalidCode:
		return 400
	case KindUnauthorized:
		return 401
	case KindNotFound:
		return 404
	case KindTransientNetwork:
		return 503
	default:
		return 500
	}
}
