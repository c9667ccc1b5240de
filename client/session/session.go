// Package session persists the authentication token and the cached user
// between client calls and between process runs.
//
// Only one token is held at a time. Absence, or an empty value, means the
// caller is unauthenticated.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/42tr/venus/client/internal/types"
)

// Fixed storage keys shared by every Store implementation.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store is a persistent string key-value store.
//
// Get never fails: storage that cannot be read reports the key as absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Session is the typed view over a Store used by the client.
type Session struct {
	store Store
}

// New wraps store. A nil store falls back to an in-memory one.
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store}
}

// Token returns the persisted bearer token, if any.
func (s *Session) Token() (string, bool) {
	tok, ok := s.store.Get(TokenKey)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// SetToken replaces the persisted token.
func (s *Session) SetToken(token string) error {
	if err := s.store.Set(TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// User returns the cached user record. A corrupt entry reads as absent.
func (s *Session) User() (*types.User, bool) {
	raw, ok := s.store.Get(UserKey)
	if !ok || raw == "" {
		return nil, false
	}
	var u types.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

// SetUser replaces the cached user record.
func (s *Session) SetUser(u types.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.store.Set(UserKey, string(b)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// SetAuth stores the token and user from a successful register or login.
// The user is written first and the token last, so a failed write never
// leaves a new token behind. If the token write fails the session is
// cleared rather than left holding a mismatched user.
func (s *Session) SetAuth(resp types.AuthResponse) error {
	if err := s.SetUser(resp.User); err != nil {
		return err
	}
	if err := s.SetToken(resp.Token); err != nil {
		_ = s.Clear()
		return err
	}
	return nil
}

// Clear removes the token and the cached user. Clearing an empty session is
// a no-op.
func (s *Session) Clear() error {
	if err := s.store.Delete(TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.store.Delete(UserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
