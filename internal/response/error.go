package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/leads-dashboard/internal/errs"
	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound   *errs.NotFoundError
		validation *errs.ValidationError
		external   *errs.ExternalServiceError
		format     *errs.FormatError
	)

	switch {
	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &external):
		level := slog.LevelError
		if external.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", external.Service,
			"status_code", external.StatusCode,
			"transient", external.Transient,
			"error", external.Message)

		status := http.StatusBadGateway
		if external.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, "service_unavailable", external.Message)

	case errors.As(err, &format):
		log.Error("upstream format error",
			"service", format.Service,
			"error", format.Message)
		h.WriteError(w, r, http.StatusBadGateway, "invalid_feed", format.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
