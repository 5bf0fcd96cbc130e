package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/sse"
	"github.com/mcoot/forceteam/internal/storage"
)

const (
	defaultReportLimit = 50
	maxReportLimit     = 1000
)

// ReportHandler serves the report journal and the live event stream
type ReportHandler struct {
	journal storage.Journal
	hub     *sse.Hub
}

// NewReportHandler creates a new report handler
func NewReportHandler(journal storage.Journal, hub *sse.Hub) *ReportHandler {
	return &ReportHandler{
		journal: journal,
		hub:     hub,
	}
}

// List handles GET /api/v1/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = min(n, maxReportLimit)
	}

	reports, err := h.journal.List(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if reports == nil {
		reports = []model.Report{}
	}
	response.JSON(w, http.StatusOK, response.Reports{Reports: reports})
}

// Events handles GET /api/v1/events
func (h *ReportHandler) Events(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hub)
}
