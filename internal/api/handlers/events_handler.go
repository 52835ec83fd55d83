package handlers

import (
	"net/http"
	"strconv"

	"github.com/finboard-io/engine/internal/api/types"
	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/internal/repository"
)

const defaultQueryLimit = 100

// EventsHandler serves the read-only agent query over the events table.
type EventsHandler struct {
	events repository.EventRepository
}

func NewEventsHandler(events repository.EventRepository) *EventsHandler {
	return &EventsHandler{events: events}
}

// AgentQuery returns the most recent N events, time descending. Unlike
// the list endpoints this one surfaces backend failures as a typed error
// body: callers asked for a window of data and must be able to tell an
// outage from an empty window.
func (h *EventsHandler) AgentQuery(w http.ResponseWriter, r *http.Request) {
	limit := defaultQueryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeErrorStr(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.events.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: events})
}
