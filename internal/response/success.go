package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := SuccessEnvelope{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}

// WriteCSV sends body as a file download.
func (h *responseHandler) WriteCSV(w http.ResponseWriter, r *http.Request, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, body); err != nil {
		logger.FromContext(r.Context()).Error("failed to write csv response", "error", err, "filename", filename)
	}
}
