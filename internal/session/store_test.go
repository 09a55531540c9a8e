package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"hearth/internal/repo"
	"hearth/internal/repo/memory"
)

func setupSessionStore(t *testing.T) *Store {
	t.Helper()
	tokens, err := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("new token store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(memory.New(tokens), tokens, logger)
}

func TestLoginPopulatesSession(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.Login(context.Background(), "mom", "demo"); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess := s.Session()
	if !sess.Authenticated {
		t.Fatal("expected authenticated session")
	}
	if sess.User.Name != "Mom" {
		t.Errorf("user = %q, want %q", sess.User.Name, "Mom")
	}
	if sess.ActiveFamilyID != memory.DemoFamilyID {
		t.Errorf("active family = %q, want %q", sess.ActiveFamilyID, memory.DemoFamilyID)
	}
	if len(sess.Families) != 1 {
		t.Errorf("families = %d, want 1", len(sess.Families))
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	s := setupSessionStore(t)

	err := s.Login(context.Background(), "mom", "wrong")
	if !errors.Is(err, repo.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if s.Session().Authenticated {
		t.Error("expected session to stay unauthenticated")
	}
}

func TestCreateFamilyBecomesActive(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.Register(context.Background(), "newbie", "Newbie", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.Session().ActiveFamilyID != "" {
		t.Fatal("expected no active family after fresh registration")
	}

	fam, err := s.CreateFamily(context.Background(), "Test Family")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if len(fam.InviteCode) != 6 {
		t.Errorf("invite code = %q, want 6 characters", fam.InviteCode)
	}
	if len(fam.Members) != 1 {
		t.Errorf("members = %d, want 1", len(fam.Members))
	}

	sess := s.Session()
	if sess.ActiveFamilyID != fam.ID {
		t.Errorf("active family = %q, want %q", sess.ActiveFamilyID, fam.ID)
	}
	if len(sess.Families) != 1 {
		t.Errorf("families = %d, want 1", len(sess.Families))
	}
}

func TestJoinFamilyByInviteCode(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.Register(context.Background(), "newbie", "Newbie", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	fam, err := s.JoinFamily(context.Background(), "DEMO42")
	if err != nil {
		t.Fatalf("join family: %v", err)
	}
	if fam.ID != memory.DemoFamilyID {
		t.Errorf("family = %q, want %q", fam.ID, memory.DemoFamilyID)
	}
	if s.Session().ActiveFamilyID != memory.DemoFamilyID {
		t.Error("expected joined family to become active")
	}

	// Joining again conflicts and changes nothing
	if _, err := s.JoinFamily(context.Background(), "DEMO42"); !errors.Is(err, repo.ErrAlreadyMember) {
		t.Errorf("err = %v, want ErrAlreadyMember", err)
	}
}

func TestSwitchFamilyRequiresMembership(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.Login(context.Background(), "mom", "demo"); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := s.SwitchFamily(context.Background(), "fam_other")
	if !errors.Is(err, repo.ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
	if s.Session().ActiveFamilyID != memory.DemoFamilyID {
		t.Error("expected active family to stay unchanged")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.Login(context.Background(), "mom", "demo"); err != nil {
		t.Fatalf("login: %v", err)
	}
	s.Logout(context.Background())

	sess := s.Session()
	if sess.Authenticated {
		t.Error("expected unauthenticated session after logout")
	}
	if sess.ActiveFamilyID != "" {
		t.Errorf("active family = %q, want empty", sess.ActiveFamilyID)
	}
}

func TestCheckSessionRehydrates(t *testing.T) {
	tokens, err := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("new token store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := memory.New(tokens)

	first := NewStore(backend, tokens, logger)
	if err := first.Login(context.Background(), "dad", "demo"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A second store sharing the token file picks the session back up
	second := NewStore(backend, tokens, logger)
	if err := second.CheckSession(context.Background()); err != nil {
		t.Fatalf("check session: %v", err)
	}
	if second.Session().User.Name != "Dad" {
		t.Errorf("user = %q, want %q", second.Session().User.Name, "Dad")
	}
}

func TestCheckSessionWithoutToken(t *testing.T) {
	s := setupSessionStore(t)

	if err := s.CheckSession(context.Background()); err != nil {
		t.Fatalf("check session: %v", err)
	}
	if s.Session().Authenticated {
		t.Error("expected unauthenticated session")
	}
}
