package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hearth/internal/appconfig"
	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
)

type AppConfigHandler struct {
	configs *store.AppConfigStore
	logger  *slog.Logger
}

func NewAppConfigHandler(cs *store.AppConfigStore, logger *slog.Logger) *AppConfigHandler {
	return &AppConfigHandler{configs: cs, logger: logger}
}

func (h *AppConfigHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.configs.ListApplications()
	if err != nil {
		h.logger.Error("list applications", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if apps == nil {
		apps = []model.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// UserApplications returns every application the caller has a config
// for, with the configs attached, plus the system settings blob.
func (h *AppConfigHandler) UserApplications(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	resp, err := h.configs.UserApplications(userID)
	if err != nil {
		h.logger.Error("user applications", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// withEffective attaches the resolved config data, the application's
// defaults with the user's override merged on top.
func (h *AppConfigHandler) withEffective(cfg *model.AppConfig) *model.AppConfig {
	app, err := h.configs.GetApplication(cfg.AppID)
	if err != nil || app == nil {
		return cfg
	}
	cfg.EffectiveConfig = appconfig.Effective(*app, *cfg)
	return cfg
}

func (h *AppConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cfg, err := h.configs.GetConfig(id)
	if err != nil {
		h.logger.Error("get config", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if cfg == nil || cfg.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "config not found")
		return
	}
	writeJSON(w, http.StatusOK, h.withEffective(cfg))
}

func (h *AppConfigHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		AppID       string           `json:"app_id"`
		Environment string           `json:"environment"`
		ConfigData  model.ConfigData `json:"config_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.AppID = strings.TrimSpace(req.AppID)
	if req.AppID == "" {
		writeError(w, http.StatusBadRequest, "app_id is required")
		return
	}
	if req.Environment == "" {
		req.Environment = "production"
	}

	app, err := h.configs.GetApplication(req.AppID)
	if err != nil {
		h.logger.Error("get application", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if app == nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}

	cfg, err := h.configs.CreateConfig(&model.AppConfig{
		ID:          uuid.NewString(),
		UserID:      userID,
		AppID:       req.AppID,
		Environment: req.Environment,
		ConfigData:  req.ConfigData,
	})
	if err != nil {
		h.logger.Error("create config", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, h.withEffective(cfg))
}

// UpdateConfig deep-merges the request's config data onto the stored
// blob, so partial updates leave sibling keys intact.
func (h *AppConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		ConfigData model.ConfigData `json:"config_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	stored, err := h.configs.GetConfig(id)
	if err != nil {
		h.logger.Error("get config", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if stored == nil || stored.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "config not found")
		return
	}

	merged := appconfig.Merge(stored.ConfigData, req.ConfigData)
	cfg, err := h.configs.UpdateConfigData(id, merged)
	if err != nil {
		h.logger.Error("update config", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, h.withEffective(cfg))
}
