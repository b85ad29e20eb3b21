// Package session holds the API token of one client.
package session

import (
	"context"
	"sync"

	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// State owns the session token. Reads never block on an in-flight login
// or logout; concurrent logins are serialized so only one can win.
type State struct {
	transition sync.Mutex

	mu    sync.RWMutex
	token string

	endpoint  string
	persister giantswarm.TokenPersister
	logger    giantswarm.Logger
}

// Option configures a State.
type Option func(*State)

// WithPersister stores the token under endpoint after every transition.
func WithPersister(endpoint string, persister giantswarm.TokenPersister) Option {
	return func(s *State) {
		s.endpoint = endpoint
		s.persister = persister
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger giantswarm.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New creates a session, restored from token when it is non-empty.
func New(token string, opts ...Option) *State {
	state := &State{token: token}

	for _, opt := range opts {
		opt(state)
	}

	return state
}

// Token returns the current token, empty when logged out.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// IsAuthenticated reports whether a token is set.
func (s *State) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetToken replaces the token without any network call.
func (s *State) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// RequireAuth fails with LoginRequired when no token is set.
func (s *State) RequireAuth() error {
	if !s.IsAuthenticated() {
		return giantswarm.NewError(giantswarm.ErrorKindLoginRequired, nil)
	}

	return nil
}

// Login calls exchange to obtain a token and stores it. It fails with
// LogoutRequired, leaving the token untouched, when already logged in.
func (s *State) Login(ctx context.Context, exchange func(context.Context) (string, error)) error {
	s.transition.Lock()
	defer s.transition.Unlock()

	if s.IsAuthenticated() {
		return giantswarm.NewError(giantswarm.ErrorKindLogoutRequired, nil)
	}

	token, err := exchange(ctx)
	if err != nil {
		return err
	}

	s.SetToken(token)
	s.persist(token)

	return nil
}

// Logout calls revoke and clears the token once it succeeds.
func (s *State) Logout(ctx context.Context, revoke func(context.Context) error) error {
	s.transition.Lock()
	defer s.transition.Unlock()

	err := s.RequireAuth()
	if err != nil {
		return err
	}

	err = revoke(ctx)
	if err != nil {
		return err
	}

	s.SetToken("")
	s.persist("")

	return nil
}

func (s *State) persist(token string) {
	if s.persister == nil {
		return
	}

	err := s.persister.UpdateToken(s.endpoint, token)
	if err != nil && s.logger != nil {
		s.logger.Warn("failed to persist session token", map[string]interface{}{
			"endpoint": s.endpoint,
			"error":    err.Error(),
		})
	}
}
