// Package session tracks who is logged in, which families they belong
// to, and which family is active. Domain data is not its concern; the
// feed store observes the active family and reacts to changes.
package session

import (
	"context"
	"errors"
	"log/slog"

	"hearth/internal/model"
	"hearth/internal/repo"
	"hearth/internal/state"
)

// Session is the immutable snapshot published to subscribers.
type Session struct {
	Authenticated  bool
	User           model.Member
	Families       []model.Family
	ActiveFamilyID string
}

type Store struct {
	auth    repo.Auth
	tokens  *TokenStore
	session *state.Value[Session]
	logger  *slog.Logger
}

func NewStore(auth repo.Auth, tokens *TokenStore, logger *slog.Logger) *Store {
	return &Store{
		auth:    auth,
		tokens:  tokens,
		session: state.NewValue(Session{}),
		logger:  logger,
	}
}

// Session returns the current snapshot.
func (s *Store) Session() Session {
	return s.session.Get()
}

// Subscribe registers fn to run on every session change.
func (s *Store) Subscribe(fn func(Session)) (cancel func()) {
	return s.session.Subscribe(fn)
}

func (s *Store) apply(resp *model.AuthResponse) error {
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		return err
	}
	snap := Session{
		Authenticated: true,
		User:          resp.User,
		Families:      resp.Families,
	}
	if resp.ActiveFamilyID != nil {
		snap.ActiveFamilyID = *resp.ActiveFamilyID
	}
	s.session.Set(snap)
	return nil
}

// Login authenticates and replaces the session. On failure the existing
// session is left untouched.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.apply(resp)
}

// Register creates an account with no families and starts a session.
func (s *Store) Register(ctx context.Context, username, displayName, password string) error {
	resp, err := s.auth.Register(ctx, username, displayName, password)
	if err != nil {
		return err
	}
	return s.apply(resp)
}

// CreateFamily creates a family with the caller as sole member and makes
// it active.
func (s *Store) CreateFamily(ctx context.Context, name string) (*model.Family, error) {
	if !s.session.Get().Authenticated {
		return nil, repo.ErrNoSession
	}
	fam, err := s.auth.CreateFamily(ctx, name)
	if err != nil {
		return nil, err
	}
	s.session.Update(func(snap Session) Session {
		snap.Families = append(append([]model.Family(nil), snap.Families...), *fam)
		snap.ActiveFamilyID = fam.ID
		return snap
	})
	return fam, nil
}

// JoinFamily adds the caller to the family behind the invite code and
// makes it active.
func (s *Store) JoinFamily(ctx context.Context, inviteCode string) (*model.Family, error) {
	if !s.session.Get().Authenticated {
		return nil, repo.ErrNoSession
	}
	fam, err := s.auth.JoinFamily(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	s.session.Update(func(snap Session) Session {
		snap.Families = append(append([]model.Family(nil), snap.Families...), *fam)
		snap.ActiveFamilyID = fam.ID
		return snap
	})
	return fam, nil
}

// SwitchFamily changes only the active family pointer. A failed switch
// leaves the previously active family in place.
func (s *Store) SwitchFamily(ctx context.Context, familyID string) error {
	snap := s.session.Get()
	if !snap.Authenticated {
		return repo.ErrNoSession
	}
	member := false
	for _, f := range snap.Families {
		if f.ID == familyID {
			member = true
			break
		}
	}
	if !member {
		return repo.ErrNotMember
	}
	if err := s.auth.SwitchFamily(ctx, familyID); err != nil {
		return err
	}
	s.session.Update(func(snap Session) Session {
		snap.ActiveFamilyID = familyID
		return snap
	})
	return nil
}

// Logout ends the session unconditionally. A failed remote invalidation
// is logged and swallowed; the client must always end up logged out.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("clear token", "error", err)
	}
	s.session.Set(Session{})
}

// CheckSession resolves a stored token into a session at startup. An
// absent or rejected token clears all session state and is not an error.
func (s *Store) CheckSession(ctx context.Context) error {
	resp, err := s.auth.CheckSession(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNoSession) {
			if cerr := s.tokens.Clear(); cerr != nil {
				s.logger.Warn("clear token", "error", cerr)
			}
			s.session.Set(Session{})
			return nil
		}
		return err
	}
	return s.apply(resp)
}
