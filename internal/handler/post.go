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

type PostHandler struct {
	posts  *store.PostStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewPostHandler(ps *store.PostStore, hub *websocket.Hub, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: ps, hub: hub, logger: logger}
}

func (h *PostHandler) broadcast(familyID, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, websocket.NewMessage("post", action, id, nil))
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID := auth.FamilyID(r.Context())
	if familyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}
	posts, err := h.posts.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// scopedPostID parses the ID parameter and confirms the post belongs
// to the caller's active family. Posts outside the family are reported
// as missing rather than forbidden, so IDs don't leak across families.
func (h *PostHandler) scopedPostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post ID")
		return 0, false
	}
	post, err := h.posts.GetByID(id)
	if err != nil {
		h.logger.Error("get post", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return 0, false
	}
	if post == nil || post.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "post not found")
		return 0, false
	}
	return id, true
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post ID")
		return
	}
	post, err := h.posts.GetByID(id)
	if err != nil {
		h.logger.Error("get post", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil || post.FamilyID != auth.FamilyID(r.Context()) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok || ac.ActiveFamilyID == "" {
		writeError(w, http.StatusConflict, "no active family")
		return
	}

	var req struct {
		Type      model.PostType `json:"type"`
		Content   string         `json:"content"`
		Priority  model.Priority `json:"priority"`
		DueDate   *time.Time     `json:"due_date"`
		Subject   *model.Member  `json:"subject"`
		Media     []model.Media  `json:"media"`
		Assignees []model.Member `json:"assignees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Type == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "type and content are required")
		return
	}

	post := &model.Post{
		FamilyID:     ac.ActiveFamilyID,
		Type:         req.Type,
		Content:      req.Content,
		Author:       ac.Persona.Name,
		AuthorAvatar: ac.Persona.Avatar,
		Timestamp:    time.Now(),
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		Subject:      req.Subject,
		Media:        req.Media,
		Assignees:    req.Assignees,
	}
	if req.Type.Actionable() {
		post.Status = model.StatusTodo
	}
	created, err := h.posts.Create(post)
	if err != nil {
		h.logger.Error("create post", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.broadcast(created.FamilyID, "created", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// ToggleReaction adds the caller's reaction if absent, removes it if
// present. Commit reactions also enlist the caller as an assignee and
// move a TODO post to IN_PROGRESS on the add path.
func (h *PostHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := h.scopedPostID(w, r)
	if !ok {
		return
	}

	var req struct {
		Type model.ReactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	post, err := h.posts.ToggleReaction(id, ac.Persona, req.Type)
	if err != nil {
		h.logger.Error("toggle reaction", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	h.broadcast(post.FamilyID, "updated", post.ID)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := h.scopedPostID(w, r)
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

	post, err := h.posts.AddComment(id, ac.Persona, req.Content)
	if err != nil {
		h.logger.Error("add comment", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	h.broadcast(post.FamilyID, "updated", post.ID)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedPostID(w, r)
	if !ok {
		return
	}
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment ID")
		return
	}

	post, err := h.posts.DeleteComment(id, commentID)
	if err != nil {
		h.logger.Error("delete comment", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	h.broadcast(post.FamilyID, "updated", post.ID)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedPostID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.MarkDone(id)
	if err != nil {
		h.logger.Error("mark done", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	h.broadcast(post.FamilyID, "updated", post.ID)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) AddSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.scopedPostID(w, r)
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

	post, err := h.posts.AddSuggestion(id, req.Content)
	if err != nil {
		h.logger.Error("add suggestion", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	h.broadcast(post.FamilyID, "updated", post.ID)
	writeJSON(w, http.StatusOK, post)
}
