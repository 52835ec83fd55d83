package handlers

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/finboard-io/engine/internal/api/types"
	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/internal/report"
	"github.com/finboard-io/engine/internal/repository"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

const (
	maxUploadBytes    = 32 << 20
	recentEventsLimit = 20
)

type reportGenerator interface {
	Available() bool
	Generate(ctx context.Context, attachments []report.Attachment, events []models.Event) (*report.Result, error)
}

// ReportsHandler accepts multipart uploads and forwards them to the
// external reporting agent together with a window of recent events.
type ReportsHandler struct {
	gen    reportGenerator
	events repository.EventRepository
	log    *zap.Logger
}

func NewReportsHandler(gen reportGenerator, events repository.EventRepository, log *zap.Logger) *ReportsHandler {
	return &ReportsHandler{gen: gen, events: events, log: log}
}

func (h *ReportsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ReportResponse{Success: false, Message: "invalid multipart form"})
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, types.ReportResponse{Success: false, Message: "no files uploaded"})
		return
	}

	attachments := make([]report.Attachment, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.ReportResponse{Success: false, Message: "unreadable attachment: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.ReportResponse{Success: false, Message: "unreadable attachment: " + fh.Filename})
			return
		}
		attachments = append(attachments, report.Attachment{Name: fh.Filename, Data: data})
	}

	// Recent financial data accompanies the attachments. An unavailable
	// backend degrades to an empty window; the agent call still happens.
	events, err := h.events.ListRecent(r.Context(), recentEventsLimit)
	if err != nil {
		h.log.Warn("recent events unavailable for report", zap.Error(err))
		events = nil
	}

	res, err := h.gen.Generate(r.Context(), attachments, events)
	if err != nil {
		status := http.StatusInternalServerError
		if appErr.IsCode(err, appErr.CodeUnavailable) {
			status = http.StatusServiceUnavailable
		}
		h.log.Error("report generation failed", zap.Error(err))
		writeJSON(w, status, types.ReportResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, types.ReportResponse{Success: res.Success, Message: res.Message, ReportURL: res.ReportURL})
}
