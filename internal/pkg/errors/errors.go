package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnprocessable
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimit
	KindTimeout
	KindServerError
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindValidation:    "validation",
	KindUnprocessable: "unprocessable",
	KindAuth:          "auth",
	KindForbidden:     "forbidden",
	KindNotFound:      "not_found",
	KindConflict:      "conflict",
	KindRateLimit:     "rate_limit",
	KindTimeout:       "timeout",
	KindServerError:   "server_error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus maps a kind to the status code returned to API callers.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type ErrorGeneral struct {
	Kind    Kind
	Code    int
	Message string
	Details string
	Err     error
}

func (e *ErrorGeneral) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ErrorGeneral) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying a user-facing remediation text.
func (e *ErrorGeneral) WithDetails(format string, args ...interface{}) *ErrorGeneral {
	cp := *e
	cp.Details = fmt.Sprintf(format, args...)
	return &cp
}

func New(kind Kind, message string) *ErrorGeneral {
	return &ErrorGeneral{Kind: kind, Code: kind.HTTPStatus(), Message: message}
}

func Wrap(kind Kind, err error, message string) *ErrorGeneral {
	return &ErrorGeneral{Kind: kind, Code: kind.HTTPStatus(), Message: message, Err: err}
}

func BadRequest(message string) *ErrorGeneral {
	return New(KindValidation, message)
}

func UnprocessableEntity(message string) *ErrorGeneral {
	return New(KindUnprocessable, message)
}

func UnauthorizedError(message string) *ErrorGeneral {
	return New(KindAuth, message)
}

func Forbidden(message string) *ErrorGeneral {
	return New(KindForbidden, message)
}

func NotFound(message string) *ErrorGeneral {
	return New(KindNotFound, message)
}

func Conflict(message string) *ErrorGeneral {
	return New(KindConflict, message)
}

func TooManyRequests(message string) *ErrorGeneral {
	return New(KindRateLimit, message)
}

func GatewayTimeout(message string) *ErrorGeneral {
	return New(KindTimeout, message)
}

func InternalServerError(message string) *ErrorGeneral {
	return New(KindServerError, message)
}

// As extracts the first *ErrorGeneral in the chain.
func As(err error) (*ErrorGeneral, bool) {
	var eg *ErrorGeneral
	if stderrors.As(err, &eg) {
		return eg, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if eg, ok := As(err); ok {
		return eg.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether err is transient infrastructure trouble.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindRateLimit, KindServerError:
		return true
	}
	return false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
