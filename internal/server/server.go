package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hearth/internal/auth"
	"hearth/internal/handler"
	"hearth/internal/middleware"
	"hearth/internal/store"
	ws "hearth/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	postH        *handler.PostHandler
	inventoryH   *handler.InventoryHandler
	healthLogH   *handler.HealthLogHandler
	appConfigH   *handler.AppConfigHandler
	issuer       *auth.TokenIssuer
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, tokenSecret string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	issuer := auth.NewTokenIssuer(tokenSecret)

	userStore := store.NewUserStore(db)
	familyStore := store.NewFamilyStore(db)
	sessionStore := store.NewSessionStore(db)
	postStore := store.NewPostStore(db)
	inventoryStore := store.NewInventoryStore(db)
	healthLogStore := store.NewHealthLogStore(db)
	appConfigStore := store.NewAppConfigStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, familyStore, sessionStore, issuer, logger.With("component", "auth")),
		postH:        handler.NewPostHandler(postStore, hub, logger.With("component", "post")),
		inventoryH:   handler.NewInventoryHandler(inventoryStore, hub, logger.With("component", "inventory")),
		healthLogH:   handler.NewHealthLogHandler(healthLogStore, hub, logger.With("component", "health_log")),
		appConfigH:   handler.NewAppConfigHandler(appConfigStore, logger.With("component", "app_config")),
		issuer:       issuer,
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/v1/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/v1/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("GET /healthz", s.healthHandler)

	// WebSocket sync. Browsers cannot set headers on the upgrade request,
	// so the token rides in a query parameter instead.
	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.resolveFamily, s.logger.With("component", "websocket")))

	// Protected routes behind bearer auth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.issuer, s.sessionStore, s.userStore)
	outerMux.Handle("/api/v1/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

// resolveFamily authenticates a websocket upgrade from the token query
// parameter and returns the caller's active family.
func (s *Server) resolveFamily(r *http.Request) (string, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return "", fmt.Errorf("missing token")
	}
	if _, err := s.issuer.Verify(token); err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	sess, err := s.sessionStore.GetByToken(token)
	if err != nil || sess == nil {
		return "", fmt.Errorf("no session for token")
	}
	user, err := s.userStore.GetByID(sess.UserID)
	if err != nil || user == nil {
		return "", fmt.Errorf("no user for session")
	}
	if user.ActiveFamilyID == nil {
		return "", fmt.Errorf("no active family")
	}
	return *user.ActiveFamilyID, nil
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session lifecycle
	mux.HandleFunc("POST /api/v1/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/v1/auth/session", s.authH.Session)

	// Family membership
	mux.HandleFunc("POST /api/v1/families", s.authH.CreateFamily)
	mux.HandleFunc("POST /api/v1/families/join", s.authH.JoinFamily)
	mux.HandleFunc("POST /api/v1/families/switch", s.authH.SwitchFamily)

	// Feed posts
	mux.HandleFunc("GET /api/v1/posts", s.postH.List)
	mux.HandleFunc("POST /api/v1/posts", s.postH.Create)
	mux.HandleFunc("GET /api/v1/posts/{id}", s.postH.Get)
	mux.HandleFunc("POST /api/v1/posts/{id}/reactions", s.postH.ToggleReaction)
	mux.HandleFunc("POST /api/v1/posts/{id}/comments", s.postH.AddComment)
	mux.HandleFunc("DELETE /api/v1/posts/{id}/comments/{commentID}", s.postH.DeleteComment)
	mux.HandleFunc("POST /api/v1/posts/{id}/done", s.postH.MarkDone)
	mux.HandleFunc("POST /api/v1/posts/{id}/suggestions", s.postH.AddSuggestion)

	// Inventory
	mux.HandleFunc("GET /api/v1/inventory", s.inventoryH.List)
	mux.HandleFunc("POST /api/v1/inventory", s.inventoryH.Create)
	mux.HandleFunc("PUT /api/v1/inventory/{id}", s.inventoryH.Update)
	mux.HandleFunc("PUT /api/v1/inventory/{id}/status", s.inventoryH.UpdateStatus)
	mux.HandleFunc("DELETE /api/v1/inventory/{id}", s.inventoryH.Delete)
	mux.HandleFunc("POST /api/v1/inventory/{id}/comments", s.inventoryH.AddComment)
	mux.HandleFunc("DELETE /api/v1/inventory/{id}/comments/{commentID}", s.inventoryH.DeleteComment)

	// Health logs
	mux.HandleFunc("GET /api/v1/health-logs", s.healthLogH.List)
	mux.HandleFunc("POST /api/v1/health-logs", s.healthLogH.Create)
	mux.HandleFunc("GET /api/v1/health-logs/{id}", s.healthLogH.Get)

	// Applications and per-user configs
	mux.HandleFunc("GET /api/v1/apps", s.appConfigH.ListApplications)
	mux.HandleFunc("GET /api/v1/user/applications", s.appConfigH.UserApplications)
	mux.HandleFunc("GET /api/v1/app-configs/{id}", s.appConfigH.GetConfig)
	mux.HandleFunc("POST /api/v1/app-configs", s.appConfigH.CreateConfig)
	mux.HandleFunc("PUT /api/v1/app-configs/{id}", s.appConfigH.UpdateConfig)
}
