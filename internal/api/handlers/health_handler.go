package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finboard-io/engine/internal/api/types"
	"github.com/finboard-io/engine/pkg/database"
)

// HealthHandler serves the liveness/diagnostic endpoints. Health reports
// backend connectivity but never fails: a disconnected database is a
// degraded state, not a dead process.
type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "Hello from the Finboard engine"},
	})
}

func (h *HealthHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    types.EchoResponse{Echo: body, Timestamp: time.Now().UTC()},
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:            "ok",
		DatabaseConnected: h.db.Connected(),
		Timestamp:         time.Now().UTC(),
	})
}
