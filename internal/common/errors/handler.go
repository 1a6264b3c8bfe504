package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler normalizes application errors into HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteHTTPError logs err and writes its JSON form with the mapped status.
func (h *ErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"errorCode": stdErr.Code,
		"message":   stdErr.Message,
		"details":   stdErr.Details,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": stdErr,
	})
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps error codes onto HTTP status codes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest, ErrCodeUnknownAction:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeTurnAbandoned:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
