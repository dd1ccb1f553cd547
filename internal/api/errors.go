package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

type ErrorType string

const (
	ErrConnection ErrorType = "connection"
	ErrStatus     ErrorType = "status"
	ErrDecode     ErrorType = "decode"
	ErrEncode     ErrorType = "encode"
	ErrTimeout    ErrorType = "timeout"
)

// Error is returned by every Client operation.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Type, so errors.Is(err, &Error{Type: ErrStatus})
// works without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.StatusCode == 0 || t.StatusCode == e.StatusCode)
}

func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewConnectionError(message string, cause error) *Error {
	return NewError(ErrConnection, message, cause)
}

func NewStatusError(method, path string, statusCode int, body string) *Error {
	message := fmt.Sprintf("%s %s: unexpected status %d", method, path, statusCode)
	if body = strings.TrimSpace(body); body != "" {
		message += ": " + body
	}
	return &Error{
		Type:       ErrStatus,
		Message:    message,
		StatusCode: statusCode,
	}
}

// ClassifyError maps a foreign error onto an *Error.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrTimeout, "request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(ErrTimeout, "request timed out", err)
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewError(ErrTimeout, "request timed out", err)
	default:
		return NewConnectionError("connection failed", err)
	}
}

func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrConnection:
		return "Could not reach the contacts server."
	case ErrTimeout:
		return "The contacts server took too long to answer."
	case ErrStatus:
		if e.StatusCode == 404 {
			return "The contact no longer exists on the server."
		}
		return fmt.Sprintf("The contacts server rejected the request (%d).", e.StatusCode)
	case ErrDecode:
		return "The contacts server sent a response that could not be read."
	case ErrEncode:
		return "The contact could not be prepared for sending."
	default:
		return "An unexpected error occurred."
	}
}
