package client

import "sync"

// Session holds the bearer token of the signed-in user. Login sets it,
// Logout clears it, and every authenticated request reads it.
type Session struct {
	mu    sync.RWMutex
	email string
	token string
}

// NewSession returns a signed-out session.
func NewSession() *Session {
	return &Session{}
}

// Login stores the token issued for email.
func (s *Session) Login(email, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.token = email, token
}

// Logout forgets the token.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.token = "", ""
}

// Token returns the current token and whether one is set.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Email returns the signed-in email, or "".
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}
