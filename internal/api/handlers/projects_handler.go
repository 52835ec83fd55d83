package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/finboard-io/engine/internal/api/types"
	"github.com/finboard-io/engine/internal/api/validators"
	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/internal/repository"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

type ProjectsHandler struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	log      *zap.Logger
}

func NewProjectsHandler(projects repository.ProjectRepository, users repository.UserRepository, log *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, users: users, log: log}
}

// Create verifies the owner exists before inserting. The lookup replaces
// a foreign key; like the email check it is not atomic with the insert.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	var owner models.User
	if err := h.users.GetByID(r.Context(), req.OwnerID, &owner); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Owner not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	p := models.Project{Title: req.Title, Description: req.Description, OwnerID: req.OwnerID}
	if err := h.projects.Create(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.log.Warn("list projects degraded to empty", zap.Error(err))
		projects = nil
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: projects})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var p models.Project
	if err := h.projects.GetByID(r.Context(), id, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Project not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

// ListByUser returns the projects owned by one user, 404 when the user
// itself does not exist.
func (h *ProjectsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeErrorStr(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var owner models.User
	if err := h.users.GetByID(r.Context(), userID, &owner); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "User not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	projects, err := h.projects.ListByOwner(r.Context(), userID)
	if err != nil {
		h.log.Warn("list projects by owner degraded to empty", zap.Error(err))
		projects = nil
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: projects})
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var existing models.Project
	if err := h.projects.GetByID(r.Context(), id, &existing); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Project not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var req types.ProjectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: existing})
		return
	}

	// UpdatedAt refreshes on every effective update via gorm's update tracking.
	var updated models.Project
	if err := h.projects.UpdateFields(r.Context(), id, fields, &updated); err != nil {
		writeError(w, types.StatusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: updated})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var existing models.Project
	if err := h.projects.GetByID(r.Context(), id, &existing); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, http.StatusNotFound, appErr.New(appErr.CodeNotFound, "Project not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, types.StatusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Message: "Project deleted successfully"})
}
