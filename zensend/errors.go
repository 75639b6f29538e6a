package zensend

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	// ErrTypeTransport is a connection or I/O failure, including context cancellation.
	ErrTypeTransport ErrorType = "TRANSPORT"
	// ErrTypeDecode is a JSON response body that does not parse into an envelope.
	ErrTypeDecode ErrorType = "DECODE"
	// ErrTypeUnexpectedResponse is a non-JSON response or an envelope with
	// neither success nor failure.
	ErrTypeUnexpectedResponse ErrorType = "UNEXPECTED_RESPONSE"
	// ErrTypeAPI is a failure envelope returned by the API.
	ErrTypeAPI ErrorType = "API"
)

// APIError is the failure object of an API envelope.
type APIError struct {
	Failcode          string   `json:"failcode"`
	Parameter         *string  `json:"parameter,omitempty"`
	CostInPence       *float64 `json:"cost_in_pence,omitempty"`
	NewBalanceInPence *float64 `json:"new_balance_in_pence,omitempty"`
}

func (APIError) requiredKeys() []string { return []string{"failcode"} }

func (e APIError) String() string {
	if e.Parameter != nil {
		return fmt.Sprintf("%s (parameter %s)", e.Failcode, *e.Parameter)
	}
	return e.Failcode
}

// Error is returned by every Client operation that fails.
type Error struct {
	Type       ErrorType
	StatusCode int
	Failure    *APIError
	Cause      error
}

func (e *Error) Error() string {
	switch e.Type {
	case ErrTypeAPI:
		return fmt.Sprintf("zensend %s error: %s", e.Type, e.Failure)
	case ErrTypeUnexpectedResponse:
		return fmt.Sprintf("zensend %s error: HTTP status %d", e.Type, e.StatusCode)
	default:
		return fmt.Sprintf("zensend %s error: %v", e.Type, e.Cause)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsAPIError returns the failure object carried by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var zErr *Error
	if errors.As(err, &zErr) && zErr.Type == ErrTypeAPI && zErr.Failure != nil {
		return zErr.Failure, true
	}
	return nil, false
}

// IsType reports whether err is a *Error of the given type.
func IsType(err error, t ErrorType) bool {
	var zErr *Error
	return errors.As(err, &zErr) && zErr.Type == t
}

func transportError(err error) *Error {
	return &Error{Type: ErrTypeTransport, Cause: err}
}

func decodeError(status int, err error) *Error {
	return &Error{Type: ErrTypeDecode, StatusCode: status, Cause: err}
}

func unexpectedResponseError(status int) *Error {
	return &Error{Type: ErrTypeUnexpectedResponse, StatusCode: status}
}

func apiError(status int, failure *APIError) *Error {
	return &Error{Type: ErrTypeAPI, StatusCode: status, Failure: failure}
}
