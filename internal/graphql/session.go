package graphql

import "sync"

// Session holds bearer token of authenticated admin session.
// Token is replaced whenever backend rotates it.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns new Session without token.
func NewSession() *Session {
	return &Session{}
}

// Token returns currently held token or empty string.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces held token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
