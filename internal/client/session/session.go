// Package session holds the client's authentication state as an explicit
// context object. Components subscribe to the unauthenticated→authenticated
// transition instead of polling ambient globals.
package session

import "sync"

// Session carries the bearer credential and notifies subscribers when the
// client becomes authenticated. The transition is edge-triggered: replacing
// the token while already authenticated does not fire subscribers again; a
// Clear followed by a new SetToken does.
type Session struct {
	mu    sync.Mutex
	token string
	subs  []func()
}

func New() *Session {
	return &Session{}
}

// Token returns the current bearer token, empty when unauthenticated.
// Satisfies api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// OnAuthenticated registers fn to run on every unauthenticated→authenticated
// transition. Subscribers run synchronously in registration order, outside
// the session lock.
func (s *Session) OnAuthenticated(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetToken stores the credential. Subscribers fire only when this call moves
// the session from unauthenticated to authenticated.
func (s *Session) SetToken(token string) {
	if token == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = token
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if wasAuthenticated {
		return
	}
	for _, fn := range subs {
		fn()
	}
}

// Clear drops the credential (logout or session expiry). Local-only entries
// are unaffected; they remain pending sync across logins.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
