package handler

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hearth/internal/auth"
	"hearth/internal/model"
	"hearth/internal/store"
)

const inviteCodeLen = 6

// Unambiguous uppercase alphabet for invite codes.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type AuthHandler struct {
	users    *store.UserStore
	families *store.FamilyStore
	sessions *store.SessionStore
	issuer   *auth.TokenIssuer
	logger   *slog.Logger
}

func NewAuthHandler(us *store.UserStore, fs *store.FamilyStore, ss *store.SessionStore, issuer *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    us,
		families: fs,
		sessions: ss,
		issuer:   issuer,
		logger:   logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := h.users.PasswordHash(req.Username)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil || user == nil {
		h.logger.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.startSession(w, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		Password    string `json:"password"`
		Avatar      string `json:"avatar"`
		Age         int    `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Username == "" || req.DisplayName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, display name, and password are required")
		return
	}

	existing, err := h.users.GetByUsername(req.Username)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.users.Create(req.Username, req.DisplayName, req.Avatar, req.Age, string(hash))
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.startSession(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.sessions.DeleteByToken(ac.Token); err != nil {
		h.logger.Error("delete session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session resolves the bearer token back into a full AuthResponse so a
// client can rehydrate after a restart.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	user, err := h.users.GetByID(ac.UserID)
	if err != nil || user == nil {
		h.logger.Error("session user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	resp, err := h.authResponse(user, ac.Token)
	if err != nil {
		h.logger.Error("session response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		Name string `json:"name"`
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

	family, err := h.families.Create(uuid.NewString(), req.Name, newInviteCode())
	if err != nil {
		h.logger.Error("create family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.families.AddMember(family.ID, ac.UserID, "admin"); err != nil {
		h.logger.Error("add member", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.users.SetActiveFamily(ac.UserID, &family.ID); err != nil {
		h.logger.Error("set active family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Reload so the creator shows up in the member list.
	family, err = h.families.GetByID(family.ID)
	if err != nil {
		h.logger.Error("reload family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, family)
}

func (h *AuthHandler) JoinFamily(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))
	if code == "" {
		writeError(w, http.StatusBadRequest, "invite code is required")
		return
	}

	family, err := h.families.GetByInviteCode(code)
	if err != nil {
		h.logger.Error("lookup invite code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if family == nil {
		writeError(w, http.StatusNotFound, "no family with that invite code")
		return
	}

	member, err := h.families.IsMember(family.ID, ac.UserID)
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if member {
		writeError(w, http.StatusConflict, "already a member of that family")
		return
	}

	if err := h.families.AddMember(family.ID, ac.UserID, "member"); err != nil {
		h.logger.Error("add member", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.users.SetActiveFamily(ac.UserID, &family.ID); err != nil {
		h.logger.Error("set active family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	family, err = h.families.GetByID(family.ID)
	if err != nil {
		h.logger.Error("reload family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func (h *AuthHandler) SwitchFamily(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		FamilyID string `json:"family_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.FamilyID == "" {
		writeError(w, http.StatusBadRequest, "family_id is required")
		return
	}

	member, err := h.families.IsMember(req.FamilyID, ac.UserID)
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !member {
		// The previously active family stays untouched.
		writeError(w, http.StatusForbidden, "not a member of that family")
		return
	}

	if err := h.users.SetActiveFamily(ac.UserID, &req.FamilyID); err != nil {
		h.logger.Error("set active family", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active_family_id": req.FamilyID})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *model.User) {
	token, expiresAt, err := h.issuer.Issue(user.ID, time.Now())
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.sessions.Create(token, user.ID, expiresAt); err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	resp, err := h.authResponse(user, token)
	if err != nil {
		h.logger.Error("auth response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) authResponse(user *model.User, token string) (*model.AuthResponse, error) {
	families, err := h.families.ListFamiliesForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if families == nil {
		families = []model.Family{}
	}
	return &model.AuthResponse{
		AccessToken:    token,
		User:           user.Persona(),
		Families:       families,
		ActiveFamilyID: user.ActiveFamilyID,
	}, nil
}

func newInviteCode() string {
	buf := make([]byte, inviteCodeLen)
	rand.Read(buf)
	code := make([]byte, inviteCodeLen)
	for i, b := range buf {
		code[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(code)
}
