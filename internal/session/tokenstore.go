package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the access token to a single file so a session
// survives a restart. It is the only state that outlives the process.
type TokenStore struct {
	mu    sync.Mutex
	path  string
	token string
}

// NewTokenStore loads any previously saved token from path.
func NewTokenStore(path string) (*TokenStore, error) {
	ts := &TokenStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ts, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	ts.token = strings.TrimSpace(string(data))
	return ts, nil
}

// Token returns the current token, or "" when logged out.
func (ts *TokenStore) Token() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token
}

// Save stores the token in memory and on disk.
func (ts *TokenStore) Save(token string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = token
	if err := os.MkdirAll(filepath.Dir(ts.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(ts.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear forgets the token in memory and removes the file.
func (ts *TokenStore) Clear() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = ""
	if err := os.Remove(ts.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
