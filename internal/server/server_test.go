package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hearth/internal/database"
	"hearth/internal/model"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, "test-secret", logger).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, h http.Handler, username string) model.AuthResponse {
	t.Helper()
	rec := doJSON(t, h, "POST", "/api/v1/auth/register", "", map[string]any{
		"username":     username,
		"password":     "demo",
		"display_name": "Test " + username,
		"avatar":       "🙂",
		"age":          30,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body)
	}
	var resp model.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func TestAuthFlow(t *testing.T) {
	h := setupTestServer(t)

	reg := registerUser(t, h, "mom")
	if reg.AccessToken == "" {
		t.Fatal("expected access token after register")
	}
	if reg.User.Name != "Test mom" {
		t.Errorf("display name = %q, want %q", reg.User.Name, "Test mom")
	}

	// Wrong password
	rec := doJSON(t, h, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "mom", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Correct password
	rec = doJSON(t, h, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "mom", "password": "demo",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body)
	}
	var login model.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	// Session check rehydrates the same identity
	rec = doJSON(t, h, "GET", "/api/v1/auth/session", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Logout invalidates the token
	rec = doJSON(t, h, "POST", "/api/v1/auth/logout", login.AccessToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = doJSON(t, h, "GET", "/api/v1/auth/session", login.AccessToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("session after logout status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestDuplicateRegister(t *testing.T) {
	h := setupTestServer(t)

	registerUser(t, h, "alex")
	rec := doJSON(t, h, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "alex", "password": "demo", "display_name": "Alex",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestFamilyFlow(t *testing.T) {
	h := setupTestServer(t)

	mom := registerUser(t, h, "mom")
	dad := registerUser(t, h, "dad")

	rec := doJSON(t, h, "POST", "/api/v1/families", mom.AccessToken, map[string]any{
		"name": "Test Family",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create family status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body)
	}
	var fam model.Family
	if err := json.Unmarshal(rec.Body.Bytes(), &fam); err != nil {
		t.Fatalf("decode create family response: %v", err)
	}
	if len(fam.InviteCode) != 6 {
		t.Errorf("invite code = %q, want 6 characters", fam.InviteCode)
	}
	if len(fam.Members) != 1 {
		t.Errorf("members = %d, want 1", len(fam.Members))
	}

	// The creator's session now reports the new family as active
	rec = doJSON(t, h, "GET", "/api/v1/auth/session", mom.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d, body %s", rec.Code, rec.Body)
	}
	var sess model.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if sess.ActiveFamilyID == nil || *sess.ActiveFamilyID != fam.ID {
		t.Error("expected new family to become active")
	}

	// Joining with a bad code fails without touching membership
	rec = doJSON(t, h, "POST", "/api/v1/families/join", dad.AccessToken, map[string]any{
		"invite_code": "NOPE99",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("bad join status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doJSON(t, h, "POST", "/api/v1/families/join", dad.AccessToken, map[string]any{
		"invite_code": fam.InviteCode,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body)
	}

	// Joining twice conflicts
	rec = doJSON(t, h, "POST", "/api/v1/families/join", dad.AccessToken, map[string]any{
		"invite_code": fam.InviteCode,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("rejoin status = %d, want %d", rec.Code, http.StatusConflict)
	}

	// Switching to a family you do not belong to is forbidden
	stranger := registerUser(t, h, "stranger")
	rec = doJSON(t, h, "POST", "/api/v1/families/switch", stranger.AccessToken, map[string]any{
		"family_id": fam.ID,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("switch status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestPostReactionOverHTTP(t *testing.T) {
	h := setupTestServer(t)

	mom := registerUser(t, h, "mom")
	rec := doJSON(t, h, "POST", "/api/v1/families", mom.AccessToken, map[string]any{
		"name": "Test Family",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create family status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, "POST", "/api/v1/posts", mom.AccessToken, map[string]any{
		"type":    "TASK",
		"content": "Water the garden",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d, body %s", rec.Code, rec.Body)
	}
	var post model.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if post.Status != model.StatusTodo {
		t.Errorf("status = %q, want %q", post.Status, model.StatusTodo)
	}

	rec = doJSON(t, h, "POST", fmt.Sprintf("/api/v1/posts/%d/reactions", post.ID), mom.AccessToken, map[string]any{
		"type": "ILL_DO_IT",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reaction status = %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode reacted post: %v", err)
	}
	if post.Status != model.StatusInProgress {
		t.Errorf("status = %q, want %q", post.Status, model.StatusInProgress)
	}
	if !post.HasAssignee("Test mom") {
		t.Error("expected author added as assignee")
	}
}

func TestCrossFamilyAccessDenied(t *testing.T) {
	h := setupTestServer(t)

	mom := registerUser(t, h, "mom")
	rec := doJSON(t, h, "POST", "/api/v1/families", mom.AccessToken, map[string]any{
		"name": "Test Family",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create family status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, "POST", "/api/v1/posts", mom.AccessToken, map[string]any{
		"type":    "TASK",
		"content": "Water the garden",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d, body %s", rec.Code, rec.Body)
	}
	var post model.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}

	rec = doJSON(t, h, "POST", "/api/v1/inventory", mom.AccessToken, map[string]any{
		"name": "Olive oil",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, body %s", rec.Code, rec.Body)
	}
	var item model.InventoryItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	// A member of a different family sees none of it.
	bob := registerUser(t, h, "bob")
	rec = doJSON(t, h, "POST", "/api/v1/families", bob.AccessToken, map[string]any{
		"name": "Other Family",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create other family status = %d, body %s", rec.Code, rec.Body)
	}

	attempts := []struct {
		name, method, path string
		body               any
	}{
		{"get post", "GET", fmt.Sprintf("/api/v1/posts/%d", post.ID), nil},
		{"react", "POST", fmt.Sprintf("/api/v1/posts/%d/reactions", post.ID), map[string]any{"type": "ILL_DO_IT"}},
		{"comment", "POST", fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), map[string]any{"content": "hi"}},
		{"mark done", "POST", fmt.Sprintf("/api/v1/posts/%d/done", post.ID), nil},
		{"suggest", "POST", fmt.Sprintf("/api/v1/posts/%d/suggestions", post.ID), map[string]any{"content": "idea"}},
		{"update item", "PUT", fmt.Sprintf("/api/v1/inventory/%d", item.ID), map[string]any{"name": "Canola oil"}},
		{"item status", "PUT", fmt.Sprintf("/api/v1/inventory/%d/status", item.ID), map[string]any{"status": "OUT_OF_STOCK"}},
		{"item comment", "POST", fmt.Sprintf("/api/v1/inventory/%d/comments", item.ID), map[string]any{"content": "hi"}},
		{"delete item", "DELETE", fmt.Sprintf("/api/v1/inventory/%d", item.ID), nil},
	}
	for _, a := range attempts {
		rec = doJSON(t, h, a.method, a.path, bob.AccessToken, a.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want %d", a.name, rec.Code, http.StatusNotFound)
		}
	}

	// The records are untouched.
	rec = doJSON(t, h, "GET", fmt.Sprintf("/api/v1/posts/%d", post.ID), mom.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get post status = %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if post.Status != model.StatusTodo {
		t.Errorf("status = %q, want %q", post.Status, model.StatusTodo)
	}
	if len(post.Assignees) != 0 || len(post.Reactions) != 0 || len(post.Comments) != 0 {
		t.Error("expected post to be unchanged by foreign requests")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	h := setupTestServer(t)

	rec := doJSON(t, h, "GET", "/api/v1/posts", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
