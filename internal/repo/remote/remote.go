// Package remote implements the repository contracts against the REST
// backend. Requests carry the ambient access token as a bearer credential.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"hearth/internal/model"
	"hearth/internal/repo"
)

type Repo struct {
	client *resty.Client
	tokens repo.TokenSource
}

func New(baseURL string, tokens repo.TokenSource) *Repo {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Repo{client: c, tokens: tokens}
}

func (r *Repo) req(ctx context.Context) *resty.Request {
	req := r.client.R().SetContext(ctx)
	if token := r.tokens.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// statusError maps the common response codes onto the repository's
// sentinel errors. Call-specific codes are handled at the call site
// before falling back here.
func statusError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return repo.ErrNoSession
	case http.StatusNotFound:
		return repo.ErrNotFound
	case http.StatusConflict:
		return repo.ErrNoActiveFamily
	case http.StatusForbidden:
		return repo.ErrNotMember
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
}

func (r *Repo) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	resp, err := r.req(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/v1/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, repo.ErrInvalidCredentials
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) Register(ctx context.Context, username, displayName, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	resp, err := r.req(ctx).
		SetBody(map[string]string{
			"username":     username,
			"display_name": displayName,
			"password":     password,
		}).
		SetResult(&out).
		Post("/api/v1/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil, repo.ErrUsernameTaken
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) Logout(ctx context.Context) error {
	resp, err := r.req(ctx).Post("/api/v1/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

func (r *Repo) CheckSession(ctx context.Context) (*model.AuthResponse, error) {
	if r.tokens.Token() == "" {
		return nil, repo.ErrNoSession
	}
	var out model.AuthResponse
	resp, err := r.req(ctx).SetResult(&out).Get("/api/v1/auth/session")
	if err != nil {
		return nil, fmt.Errorf("session request: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, repo.ErrNoSession
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) CreateFamily(ctx context.Context, name string) (*model.Family, error) {
	var out model.Family
	resp, err := r.req(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&out).
		Post("/api/v1/families")
	if err != nil {
		return nil, fmt.Errorf("create family request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) JoinFamily(ctx context.Context, inviteCode string) (*model.Family, error) {
	var out model.Family
	resp, err := r.req(ctx).
		SetBody(map[string]string{"invite_code": inviteCode}).
		SetResult(&out).
		Post("/api/v1/families/join")
	if err != nil {
		return nil, fmt.Errorf("join family request: %w", err)
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil, repo.ErrAlreadyMember
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) SwitchFamily(ctx context.Context, familyID string) error {
	resp, err := r.req(ctx).
		SetBody(map[string]string{"family_id": familyID}).
		Post("/api/v1/families/switch")
	if err != nil {
		return fmt.Errorf("switch family request: %w", err)
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

func (r *Repo) Posts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	resp, err := r.req(ctx).SetResult(&out).Get("/api/v1/posts")
	if err != nil {
		return nil, fmt.Errorf("list posts request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return out, nil
}

func (r *Repo) CreatePost(ctx context.Context, p model.Post) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).SetBody(p).SetResult(&out).Post("/api/v1/posts")
	if err != nil {
		return nil, fmt.Errorf("create post request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) ToggleReaction(ctx context.Context, postID int64, rt model.ReactionType) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).
		SetBody(map[string]string{"type": string(rt)}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/v1/posts/%d/reactions", postID))
	if err != nil {
		return nil, fmt.Errorf("toggle reaction request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) AddComment(ctx context.Context, postID int64, content string) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).
		SetBody(map[string]string{"content": content}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/v1/posts/%d/comments", postID))
	if err != nil {
		return nil, fmt.Errorf("add comment request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) DeleteComment(ctx context.Context, postID, commentID int64) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).
		SetResult(&out).
		Delete(fmt.Sprintf("/api/v1/posts/%d/comments/%d", postID, commentID))
	if err != nil {
		return nil, fmt.Errorf("delete comment request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) MarkDone(ctx context.Context, postID int64) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/api/v1/posts/%d/done", postID))
	if err != nil {
		return nil, fmt.Errorf("mark done request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) AddSuggestion(ctx context.Context, postID int64, content string) (*model.Post, error) {
	var out model.Post
	resp, err := r.req(ctx).
		SetBody(map[string]string{"content": content}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/v1/posts/%d/suggestions", postID))
	if err != nil {
		return nil, fmt.Errorf("add suggestion request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) Inventory(ctx context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	resp, err := r.req(ctx).SetResult(&out).Get("/api/v1/inventory")
	if err != nil {
		return nil, fmt.Errorf("list inventory request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return out, nil
}

func (r *Repo) CreateItem(ctx context.Context, it model.InventoryItem) (*model.InventoryItem, error) {
	var out model.InventoryItem
	resp, err := r.req(ctx).SetBody(it).SetResult(&out).Post("/api/v1/inventory")
	if err != nil {
		return nil, fmt.Errorf("create item request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) UpdateItem(ctx context.Context, id int64, it model.InventoryItem) (*model.InventoryItem, error) {
	var out model.InventoryItem
	resp, err := r.req(ctx).SetBody(it).SetResult(&out).Put(fmt.Sprintf("/api/v1/inventory/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update item request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) UpdateItemStatus(ctx context.Context, id int64, status model.InventoryStatus) (*model.InventoryItem, error) {
	var out model.InventoryItem
	resp, err := r.req(ctx).
		SetBody(map[string]string{"status": string(status)}).
		SetResult(&out).
		Put(fmt.Sprintf("/api/v1/inventory/%d/status", id))
	if err != nil {
		return nil, fmt.Errorf("update item status request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) DeleteItem(ctx context.Context, id int64) error {
	resp, err := r.req(ctx).Delete(fmt.Sprintf("/api/v1/inventory/%d", id))
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

func (r *Repo) AddItemComment(ctx context.Context, itemID int64, content string) (*model.InventoryItem, error) {
	var out model.InventoryItem
	resp, err := r.req(ctx).
		SetBody(map[string]string{"content": content}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/v1/inventory/%d/comments", itemID))
	if err != nil {
		return nil, fmt.Errorf("add item comment request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) DeleteItemComment(ctx context.Context, itemID, commentID int64) (*model.InventoryItem, error) {
	var out model.InventoryItem
	resp, err := r.req(ctx).
		SetResult(&out).
		Delete(fmt.Sprintf("/api/v1/inventory/%d/comments/%d", itemID, commentID))
	if err != nil {
		return nil, fmt.Errorf("delete item comment request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}

func (r *Repo) HealthLogs(ctx context.Context) ([]model.HealthLog, error) {
	var out []model.HealthLog
	resp, err := r.req(ctx).SetResult(&out).Get("/api/v1/health-logs")
	if err != nil {
		return nil, fmt.Errorf("list health logs request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return out, nil
}

func (r *Repo) AddHealthLog(ctx context.Context, hl model.HealthLog) (*model.HealthLog, error) {
	var out model.HealthLog
	resp, err := r.req(ctx).SetBody(hl).SetResult(&out).Post("/api/v1/health-logs")
	if err != nil {
		return nil, fmt.Errorf("add health log request: %w", err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return &out, nil
}
