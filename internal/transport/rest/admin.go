package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hawlguard/zakat-backend/internal/job/detection"
)

type detectionTrigger interface {
	Trigger(ctx context.Context) (detection.RunSummary, error)
}

// AdminHandler serves operational endpoints.
type AdminHandler struct {
	detection detectionTrigger
	log       *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(detection detectionTrigger, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		detection: detection,
		log:       logger.With("handler", "admin"),
	}
}

type runSummaryResponse struct {
	Users         int    `json:"users"`
	Processed     int    `json:"processed"`
	Skipped       int    `json:"skipped"`
	Crossings     int    `json:"crossings"`
	Completions   int    `json:"completions"`
	Interruptions int    `json:"interruptions"`
	Duration      string `json:"duration"`
}

// RunDetection handles POST /admin/detection/run. The pass runs synchronously
// and its summary is returned to the caller.
func (h *AdminHandler) RunDetection(w http.ResponseWriter, r *http.Request) {
	summary, err := h.detection.Trigger(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "manual detection run", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "detection run failed")
		return
	}

	writeJSON(w, http.StatusOK, runSummaryResponse{
		Users:         summary.Users,
		Processed:     summary.Processed,
		Skipped:       summary.Skipped,
		Crossings:     summary.Crossings,
		Completions:   summary.Completions,
		Interruptions: summary.Interruptions,
		Duration:      summary.Duration.String(),
	})
}
