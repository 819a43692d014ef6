// Package token holds the most recently obtained Spotify token set for the
// server process. The store is deliberately memory only: restarting the
// server forgets the session and the user logs in again. It is created by
// the composition root in cmd/web and handed to the handlers that mutate it
// (OAuth callback and refresh) so there is no hidden package-level state.
package token

import (
	"sync"
	"time"
)

// Set is a snapshot of the stored token state. RefreshToken may be empty
// when Spotify did not issue one.
type Set struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Store guards the token set with a mutex. The original deployment was
// single threaded; Go's HTTP server is not, so concurrent callback and
// refresh requests must not tear the fields.
type Store struct {
	mu  sync.RWMutex
	set Set
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current token set.
func (s *Store) Get() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// Replace overwrites the whole token set. Called after a successful
// authorization-code exchange.
func (s *Store) Replace(access, refresh string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = Set{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}
}

// UpdateAccess replaces the access token and expiry, keeping the refresh
// token. Spotify does not rotate refresh tokens on use.
func (s *Store) UpdateAccess(access string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.AccessToken = access
	s.set.ExpiresAt = expiresAt
}

// ClearAccess drops the access token and expiry after a failed refresh so
// later consumers do not reuse a token known to be stale. The refresh token
// is kept; it is still valid and the next refresh may succeed.
func (s *Store) ClearAccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.AccessToken = ""
	s.set.ExpiresAt = time.Time{}
}
