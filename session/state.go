// session/state.go
package session

import (
	"sync"

	"go-foodorder/models"
)

// State holds the authentication status of one browser session:
// authenticated flag, current user, access credential and a loading gate
// that blocks cart backend selection until the startup auth check
// resolves. It implements the token source the service clients use.
type State struct {
	mu            sync.RWMutex
	authenticated bool
	user          *models.User
	accessToken   string
	refreshToken  string
	loading       bool
}

// NewState starts in the loading phase so nothing races the startup
// auth check.
func NewState() *State {
	return &State{loading: true}
}

// IsAuthenticated reports whether the session is logged in.
func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsLoading reports whether the startup auth check is still unresolved.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading toggles the startup gate.
func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// User returns a copy of the current user, nil when logged out.
func (s *State) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UpdateUser merges profile changes into the session's user.
func (s *State) UpdateUser(user models.User) {
	s.mu.Lock()
	if s.authenticated {
		s.user = &user
	}
	s.mu.Unlock()
}

// AccessToken implements services.TokenSource.
func (s *State) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken implements services.TokenSource; called after a refresh.
func (s *State) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// RefreshToken returns the stored refresh credential.
func (s *State) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Login transitions the session to authenticated.
func (s *State) Login(user models.User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.authenticated = true
	s.user = &user
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.loading = false
	s.mu.Unlock()
}

// Logout transitions the session back to guest.
func (s *State) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
}

// Invalidate implements services.TokenSource: a credential rejected after
// refresh logs the session out. In-flight operations are abandoned, not
// retried under stale credentials.
func (s *State) Invalidate() {
	s.Logout()
}
