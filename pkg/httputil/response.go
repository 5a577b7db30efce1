package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/reviewcarousel/pkg/errors"
	"github.com/utafrali/reviewcarousel/pkg/logger"
	"github.com/utafrali/reviewcarousel/pkg/validator"
)

// ErrorBody is the error envelope: {"error":{"code":..,"message":..}}.
type ErrorBody struct {
	Error *ErrorResponse `json:"error"`
}

// ErrorResponse describes one error.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorCode writes an error envelope with an explicit code and message.
func WriteErrorCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, ErrorBody{Error: &ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}})
}

// WriteError maps err onto an error envelope. AppErrors keep their code and
// status; anything else becomes a logged 500. The request-scoped logger is
// preferred over fallback when the middleware installed one.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			l.ErrorContext(r.Context(), "request failed",
				slog.String("error", err.Error()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
		WriteErrorCode(w, r, appErr.Status, appErr.Code, appErr.Message)
		return
	}

	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		WriteErrorCode(w, r, status, "INTERNAL_ERROR", "an internal error occurred")
		return
	}

	WriteErrorCode(w, r, status, http.StatusText(status), err.Error())
}

// WriteValidationError writes a 400 with field-level messages when err is a
// *validator.ValidationError.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: &ErrorResponse{
			Code:      "VALIDATION_ERROR",
			Message:   valErr.Error(),
			Fields:    valErr.Fields(),
			RequestID: logger.CorrelationIDFromContext(r.Context()),
		}})
		return
	}

	WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error())
}
