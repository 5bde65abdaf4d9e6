package airtable

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"

	"booking-portal/internal/pkg/errors"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
)

// Error types returned by the Airtable API that callers branch on.
const (
	TypeNotAuthorized          = "NOT_AUTHORIZED"
	TypeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	TypeNotFound               = "NOT_FOUND"
	TypeInvalidAttachment      = "INVALID_ATTACHMENT_OBJECT"
	TypeInvalidChoice          = "INVALID_MULTIPLE_CHOICE_OPTIONS"
	TypeInvalidValue           = "INVALID_VALUE_FOR_COLUMN"
	TypeUnknownField           = "UNKNOWN_FIELD_NAME"
	TypeRateLimited            = "RATE_LIMIT_REACHED"
)

// APIError is the decoded error body of a failed Airtable call.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airtable %d %s", e.Status, e.Type)
	}
	return fmt.Sprintf("airtable %d %s: %s", e.Status, e.Type, e.Message)
}

// AsAPIError extracts the Airtable error from a normalized error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Airtable returns either {"error": "NOT_FOUND"} or
// {"error": {"type": "...", "message": "..."}}.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type errorObject struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Error) == 0 {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	var obj errorObject
	if err := json.Unmarshal(eb.Error, &obj); err == nil {
		apiErr.Type = obj.Type
		apiErr.Message = obj.Message
		return apiErr
	}

	var code string
	if err := json.Unmarshal(eb.Error, &code); err == nil {
		apiErr.Type = code
	}
	return apiErr
}

func normalizeResponseError(status int, body []byte) error {
	apiErr := decodeAPIError(status, body)

	var kind errors.Kind
	// 401 and 403 both mean the configured token cannot reach the base.
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden, apiErr.Type == TypeNotAuthorized:
		kind = errors.KindForbidden
	case status == http.StatusNotFound:
		kind = errors.KindNotFound
	case status == http.StatusTooManyRequests:
		kind = errors.KindRateLimit
	case status == http.StatusUnprocessableEntity:
		kind = errors.KindUnprocessable
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = errors.KindTimeout
	case status >= http.StatusInternalServerError:
		kind = errors.KindServerError
	default:
		kind = errors.KindValidation
	}

	return errors.Wrap(kind, apiErr, "airtable request failed")
}

func normalizeTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.Canceled) && ctx.Err() != nil:
		return errors.Wrap(errors.KindUnknown, err, "airtable request cancelled")
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, circuit.ErrBreakerTimeout),
		stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Wrap(errors.KindTimeout, err, "airtable request timed out")
	case stderrors.Is(err, circuit.ErrBreakerOpen):
		return errors.Wrap(errors.KindServerError, err, "airtable circuit breaker open")
	default:
		return errors.Wrap(errors.KindServerError, err, "airtable request error")
	}
}
