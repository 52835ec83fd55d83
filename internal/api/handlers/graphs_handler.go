package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/finboard-io/engine/internal/api/types"
	"github.com/finboard-io/engine/internal/api/validators"
	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/internal/repository"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

// GraphsHandler serves CRUD for report/visualization configurations.
// Graphs carry no referential checks; only target existence is verified
// before update and delete.
type GraphsHandler struct {
	graphs repository.GraphRepository
	log    *zap.Logger
}

func NewGraphsHandler(graphs repository.GraphRepository, log *zap.Logger) *GraphsHandler {
	return &GraphsHandler{graphs: graphs, log: log}
}

func (h *GraphsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.GraphCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	attrs, err := marshalAttributes(req.Attributes)
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid attributes")
		return
	}

	g := models.Graph{Type: req.Type, Title: req.Title, Query: req.Query, Attributes: attrs}
	if err := h.graphs.Create(r.Context(), &g); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: g})
}

func (h *GraphsHandler) List(w http.ResponseWriter, r *http.Request) {
	graphs, err := h.graphs.List(r.Context())
	if err != nil {
		h.log.Warn("list graphs degraded to empty", zap.Error(err))
		graphs = nil
	}
	if graphs == nil {
		graphs = []models.Graph{}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: graphs})
}

func (h *GraphsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseGraphID(w, r)
	if !ok {
		return
	}
	var g models.Graph
	if err := h.graphs.GetByID(r.Context(), id, &g); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Graph not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: g})
}

func (h *GraphsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseGraphID(w, r)
	if !ok {
		return
	}

	var existing models.Graph
	if err := h.graphs.GetByID(r.Context(), id, &existing); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Graph not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var req types.GraphUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Query != nil {
		fields["query"] = *req.Query
	}
	if req.Attributes != nil {
		attrs, err := marshalAttributes(req.Attributes)
		if err != nil {
			writeErrorStr(w, http.StatusBadRequest, "invalid attributes")
			return
		}
		fields["attributes"] = attrs
	}

	if len(fields) == 0 {
		writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: existing})
		return
	}

	var updated models.Graph
	if err := h.graphs.UpdateFields(r.Context(), id, fields, &updated); err != nil {
		writeError(w, types.StatusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: updated})
}

func (h *GraphsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseGraphID(w, r)
	if !ok {
		return
	}

	var existing models.Graph
	if err := h.graphs.GetByID(r.Context(), id, &existing); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Graph not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.graphs.Delete(r.Context(), id); err != nil {
		writeError(w, types.StatusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Message: "Graph deleted successfully"})
}

func parseGraphID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid graph id")
		return uuid.Nil, false
	}
	return id, true
}

func marshalAttributes(attrs map[string]any) (datatypes.JSON, error) {
	if attrs == nil {
		return nil, nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
