package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"hearth/internal/database"
	"hearth/internal/model"
	"hearth/internal/repo"
	"hearth/internal/server"
)

type memToken struct{ token string }

func (m *memToken) Token() string { return m.token }

// setupRemote runs the real router behind httptest so the client and
// backend are checked against each other.
func setupRemote(t *testing.T) (*Repo, *memToken) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(server.New(db, "test-secret", logger).Router())
	t.Cleanup(srv.Close)

	tokens := &memToken{}
	return New(srv.URL, tokens), tokens
}

func login(t *testing.T, r *Repo, tokens *memToken) *model.AuthResponse {
	t.Helper()
	resp, err := r.Register(context.Background(), "mom", "Mom", "demo")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tokens.token = resp.AccessToken
	if _, err := r.CreateFamily(context.Background(), "Test Family"); err != nil {
		t.Fatalf("create family: %v", err)
	}
	return resp
}

func TestLoginErrors(t *testing.T) {
	r, _ := setupRemote(t)

	_, err := r.Login(context.Background(), "ghost", "nope")
	if !errors.Is(err, repo.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	r, tokens := setupRemote(t)
	login(t, r, tokens)

	_, err := r.Register(context.Background(), "mom", "Mom Again", "demo")
	if !errors.Is(err, repo.ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestCheckSessionWithoutToken(t *testing.T) {
	r, _ := setupRemote(t)

	_, err := r.CheckSession(context.Background())
	if !errors.Is(err, repo.ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestPostRoundTrip(t *testing.T) {
	r, tokens := setupRemote(t)
	login(t, r, tokens)

	created, err := r.CreatePost(context.Background(), model.Post{
		Type:    model.PostTask,
		Content: "Water the garden",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.Status != model.StatusTodo {
		t.Errorf("status = %q, want %q", created.Status, model.StatusTodo)
	}

	updated, err := r.ToggleReaction(context.Background(), created.ID, model.ReactionIllDoIt)
	if err != nil {
		t.Fatalf("toggle reaction: %v", err)
	}
	if updated.Status != model.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, model.StatusInProgress)
	}
	if !updated.HasAssignee("Mom") {
		t.Error("expected Mom assigned after commit reaction")
	}

	posts, err := r.Posts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("posts = %d, want 1", len(posts))
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	r, tokens := setupRemote(t)
	login(t, r, tokens)

	item, err := r.CreateItem(context.Background(), model.InventoryItem{
		Name:     "Milk",
		Category: model.CategoryIngredient,
		Status:   model.StockInStock,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	updated, err := r.UpdateItemStatus(context.Background(), item.ID, model.StockRunningLow)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.StockRunningLow {
		t.Errorf("status = %q, want %q", updated.Status, model.StockRunningLow)
	}

	if err := r.DeleteItem(context.Background(), item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	items, err := r.Inventory(context.Background())
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

func TestHealthLogRoundTrip(t *testing.T) {
	r, tokens := setupRemote(t)
	login(t, r, tokens)

	created, err := r.AddHealthLog(context.Background(), model.HealthLog{
		Content: "Slept badly",
		Mood:    model.MoodTired,
	})
	if err != nil {
		t.Fatalf("add health log: %v", err)
	}
	if created.Author != "Mom" {
		t.Errorf("author = %q, want %q", created.Author, "Mom")
	}

	logs, err := r.HealthLogs(context.Background())
	if err != nil {
		t.Fatalf("list health logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("logs = %d, want 1", len(logs))
	}
}
