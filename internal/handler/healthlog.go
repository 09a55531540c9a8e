package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
	"hearth/internal/websocket"
)

type HealthLogHandler struct {
	logs   *store.HealthLogStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewHealthLogHandler(hs *store.HealthLogStore, hub *websocket.Hub, logger *slog.Logger) *HealthLogHandler {
	return &HealthLogHandler{logs: hs, hub: hub, logger: logger}
}

func (h *HealthLogHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())
	if familyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}
	logs, err := h.logs.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list health logs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if logs == nil {
		logs = []model.HealthLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *HealthLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid log ID")
		return
	}
	log, err := h.logs.GetByID(id)
	if err != nil {
		h.logger.Error("get health log", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if log == nil || log.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "health log not found")
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// Create records a health log entry. Environmental context is captured
// once by the client at logging time and stored as-is.
func (h *HealthLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok || ac.ActiveFamilyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}

	var req struct {
		Content     string                      `json:"content"`
		Mood        model.Mood                  `json:"mood"`
		Timestamp   *time.Time                  `json:"timestamp"`
		Environment *model.EnvironmentalContext `json:"environmental_context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	log := &model.HealthLog{
		FamilyID:    ac.ActiveFamilyID,
		Author:      ac.Persona.Name,
		Timestamp:   ts,
		Content:     req.Content,
		Mood:        req.Mood,
		Environment: req.Environment,
	}
	created, err := h.logs.Create(log)
	if err != nil {
		h.logger.Error("create health log", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(created.FamilyID, websocket.NewMessage("health_log", "created", created.ID, nil))
	}
	writeJSON(w, http.StatusCreated, created)
}
