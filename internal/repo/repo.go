// Package repo defines the repository contracts the session and feed
// stores depend on. Two implementations exist: an in-memory fixture for
// demo mode and an HTTP client for a real backend.
package repo

import (
	"context"
	"errors"

	"hearth/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNoSession          = errors.New("no session")
	ErrNoActiveFamily     = errors.New("no active family")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyMember      = errors.New("already a member")
	ErrNotMember          = errors.New("not a member")
)

// TokenSource supplies the current access token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Auth handles identity, session, and family membership.
type Auth interface {
	Login(ctx context.Context, username, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, username, displayName, password string) (*model.AuthResponse, error)
	// Logout invalidates the current token remotely. Callers treat
	// failure as advisory; the local session ends either way.
	Logout(ctx context.Context) error
	// CheckSession resolves the stored token into a session. A missing
	// or rejected token yields ErrNoSession.
	CheckSession(ctx context.Context) (*model.AuthResponse, error)
	CreateFamily(ctx context.Context, name string) (*model.Family, error)
	JoinFamily(ctx context.Context, inviteCode string) (*model.Family, error)
	SwitchFamily(ctx context.Context, familyID string) error
}

// Domain handles per-family posts, inventory, and health logs.
type Domain interface {
	Posts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, p model.Post) (*model.Post, error)
	ToggleReaction(ctx context.Context, postID int64, rt model.ReactionType) (*model.Post, error)
	AddComment(ctx context.Context, postID int64, content string) (*model.Post, error)
	DeleteComment(ctx context.Context, postID, commentID int64) (*model.Post, error)
	MarkDone(ctx context.Context, postID int64) (*model.Post, error)
	AddSuggestion(ctx context.Context, postID int64, content string) (*model.Post, error)

	Inventory(ctx context.Context) ([]model.InventoryItem, error)
	CreateItem(ctx context.Context, it model.InventoryItem) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, id int64, it model.InventoryItem) (*model.InventoryItem, error)
	UpdateItemStatus(ctx context.Context, id int64, status model.InventoryStatus) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
	AddItemComment(ctx context.Context, itemID int64, content string) (*model.InventoryItem, error)
	DeleteItemComment(ctx context.Context, itemID, commentID int64) (*model.InventoryItem, error)

	HealthLogs(ctx context.Context) ([]model.HealthLog, error)
	AddHealthLog(ctx context.Context, hl model.HealthLog) (*model.HealthLog, error)
}
