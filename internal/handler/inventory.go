package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"hearth/internal/auth"
	"hearth/internal/inventory"
	"hearth/internal/model"
	"hearth/internal/store"
	"hearth/internal/websocket"
)

type InventoryHandler struct {
	items  *store.InventoryStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewInventoryHandler(is *store.InventoryStore, hub *websocket.Hub, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{items: is, hub: hub, logger: logger}
}

func (h *InventoryHandler) broadcast(familyID, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, websocket.NewMessage("inventory_item", action, id, nil))
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())
	if familyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}
	items, err := h.items.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list inventory", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok || ac.ActiveFamilyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}

	var req struct {
		Name          string                  `json:"name"`
		Image         string                  `json:"image"`
		Category      model.InventoryCategory `json:"category"`
		Status        model.InventoryStatus   `json:"status"`
		Brand         string                  `json:"brand"`
		Store         string                  `json:"store"`
		Notes         string                  `json:"notes"`
		UsageScenario string                  `json:"usage_scenario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		req.Category = inventory.Categorize(req.Name)
	}

	item := &model.InventoryItem{
		FamilyID:      ac.ActiveFamilyID,
		Name:          req.Name,
		Image:         req.Image,
		Category:      req.Category,
		Status:        req.Status,
		Brand:         req.Brand,
		Store:         req.Store,
		Notes:         req.Notes,
		UsageScenario: req.UsageScenario,
	}
	created, err := h.items.Create(item)
	if err != nil {
		h.logger.Error("create inventory item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.broadcast(created.FamilyID, "created", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// scopedItemID parses the ID parameter and confirms the item belongs
// to the caller's active family. Out-of-family items are reported as
// missing rather than forbidden.
func (h *InventoryHandler) scopedItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return 0, false
	}
	item, err := h.items.GetByID(id)
	if err != nil {
		h.logger.Error("get inventory item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return 0, false
	}
	if item == nil || item.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "item not found")
		return 0, false
	}
	return id, true
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedItemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name          string                  `json:"name"`
		Image         string                  `json:"image"`
		Category      model.InventoryCategory `json:"category"`
		Brand         string                  `json:"brand"`
		Store         string                  `json:"store"`
		Notes         string                  `json:"notes"`
		UsageScenario string                  `json:"usage_scenario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.items.Update(id, &model.InventoryItem{
		Name:          req.Name,
		Image:         req.Image,
		Category:      req.Category,
		Brand:         req.Brand,
		Store:         req.Store,
		Notes:         req.Notes,
		UsageScenario: req.UsageScenario,
	})
	if err != nil {
		h.logger.Error("update inventory item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.broadcast(item.FamilyID, "updated", item.ID)
	writeJSON(w, http.StatusOK, item)
}

// UpdateStatus moves an item through the stock ladder (IN_STOCK,
// RUNNING_LOW, OUT_OF_STOCK) without touching the rest of the record.
func (h *InventoryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedItemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status model.InventoryStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	item, err := h.items.UpdateStatus(id, req.Status)
	if err != nil {
		h.logger.Error("update inventory status", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.broadcast(item.FamilyID, "updated", item.ID)
	writeJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())
	id, ok := h.scopedItemID(w, r)
	if !ok {
		return
	}

	if err := h.items.Delete(id); err != nil {
		h.logger.Error("delete inventory item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.broadcast(familyID, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := h.scopedItemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
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

	item, err := h.items.AddComment(id, ac.Persona, req.Content)
	if err != nil {
		h.logger.Error("add inventory comment", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.broadcast(item.FamilyID, "updated", item.ID)
	writeJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedItemID(w, r)
	if !ok {
		return
	}
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment ID")
		return
	}

	item, err := h.items.DeleteComment(id, commentID)
	if err != nil {
		h.logger.Error("delete inventory comment", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.broadcast(item.FamilyID, "updated", item.ID)
	writeJSON(w, http.StatusOK, item)
}
