package client

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// Session owns the caller's tokens and tenant selection. Construct one, hand
// it to whatever needs it, and mutate it only through its own methods.
type Session struct {
	mu    sync.Mutex
	conf  *oauth2.Config
	token *oauth2.Token

	schoolID string
	prefs    *Preferences

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSession builds a session that exchanges credentials at tokenURL.
func NewSession(tokenURL, clientID string) *Session {
	return &Session{
		conf: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{TokenURL: tokenURL},
		},
		ready: make(chan struct{}),
	}
}

// Initialize restores persisted state and signals readiness. Safe to call more
// than once; later calls do nothing.
func (s *Session) Initialize(prefs *Preferences) {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.prefs = prefs
		if prefs != nil {
			s.schoolID = prefs.SelectedSchool()
		}
		s.mu.Unlock()
		close(s.ready)
	})
}

// Ready is closed once Initialize has run. Callers block on it instead of
// polling.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return &ValidationError{Message: "email and password are required"}
	}

	tok, err := s.conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil && s.token.Valid()
}

// SelectSchool switches the active tenant and persists the choice.
func (s *Session) SelectSchool(id string) error {
	s.mu.Lock()
	s.schoolID = id
	prefs := s.prefs
	s.mu.Unlock()

	if prefs != nil {
		return prefs.SetSelectedSchool(id)
	}
	return nil
}

func (s *Session) SchoolID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schoolID
}

// Token implements oauth2.TokenSource so a Session can back a Client directly.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return nil, errors.New("not logged in")
	}
	return s.token, nil
}

var _ oauth2.TokenSource = (*Session)(nil)
