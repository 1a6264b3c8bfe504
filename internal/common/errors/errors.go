// Package errors provides the standardized error vocabulary of the assistant
// service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeTurnAbandoned   ErrorCode = "TURN_ABANDONED"
	ErrCodeUnknownAction   ErrorCode = "UNKNOWN_ACTION_KIND"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"

	ErrCodeTemplateRegistryInvalid ErrorCode = "TEMPLATE_REGISTRY_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeTurnRecordFailed         ErrorCode = "TURN_RECORD_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTurnAbandonedError marks a turn whose caller went away before the reply
// was delivered. The pending reply is dropped, not an application failure.
func NewTurnAbandonedError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTurnAbandoned,
		Message:   "Turn abandoned by caller",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownActionError creates a non-retryable action dispatch error.
func NewUnknownActionError(kind string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownAction,
		Message:   "Unknown action kind",
		Details:   fmt.Sprintf("kind: %s", kind),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a retryable throttling error.
func NewRateLimitedError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests for session",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateRegistryInvalidError creates a non-retryable registry load error.
func NewTemplateRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateRegistryInvalid,
		Message:   "Template registry failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTurnRecordFailedError wraps a best-effort persistence failure. Callers
// log these and move on; the reply path never sees them.
func NewTurnRecordFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTurnRecordFailed,
		Message:   "Turn record write failed",
		Details:   fmt.Sprintf("sink: %s, error: %s", sink, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError wraps a notification delivery failure.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
