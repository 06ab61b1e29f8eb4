package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/models"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeResult answers an extraction. Client errors become an HTTP error with a
// detail body; anything else is reported inside a 200 envelope with code 500.
func writeResult(w http.ResponseWriter, r *http.Request, text string, err error, start time.Time) {
	cost := costMs(start)
	if err == nil {
		writeJSON(w, http.StatusOK, models.SuccessEnvelope(text, cost))
		return
	}

	if ee, ok := core.AsExtractionError(err); ok {
		slog.WarnContext(r.Context(), "extraction rejected", "path", r.URL.Path, "status", ee.Status, "err", err)
		writeDetail(w, ee.Status, ee.Detail)
		return
	}

	slog.ErrorContext(r.Context(), "extraction failed", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusOK, models.FailureEnvelope(http.StatusInternalServerError, err.Error(), cost))
}

func costMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
