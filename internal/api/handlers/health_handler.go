package handlers

import (
	"net/http"

	"github.com/markdave123-py/docsight/internal/models"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{Status: "ok"})
}
