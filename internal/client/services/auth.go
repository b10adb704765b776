// Package services layers the application logic between the REPL and the
// API client: authentication state and the deck cache.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mindcard/mindcard-cli/internal/client/api"
	"github.com/mindcard/mindcard-cli/internal/client/models"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/credentials"
	"github.com/mindcard/mindcard-cli/internal/logging"
	"github.com/mindcard/mindcard-cli/internal/statex"
)

// Phase is the authentication state machine's position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// AuthState is the observable authentication state. Err is set only in
// PhaseError.
type AuthState struct {
	Phase Phase
	Err   string
}

// AuthService owns the session: it restores it from the credential store
// on construction, runs login/register/logout against the API, and keeps
// the token and user snapshot persisted.
type AuthService struct {
	client api.Client
	creds  credentials.Repository
	log    logging.Logger

	state *statex.Value[AuthState]
	user  *statex.Value[*models.User]
}

// NewAuthService builds the service and restores a cached session: when
// both a token and a user snapshot are present in the store the state is
// Success, otherwise Idle. No network call is made.
func NewAuthService(ctx context.Context, client api.Client, creds credentials.Repository, log logging.Logger) *AuthService {
	s := &AuthService{
		client: client,
		creds:  creds,
		log:    log,
		state:  statex.New(AuthState{Phase: PhaseIdle}),
		user:   statex.New[*models.User](nil),
	}
	s.restore(ctx)
	return s
}

func (s *AuthService) restore(ctx context.Context) {
	token, err := s.creds.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "session restore: read token", "error", err)
		return
	}
	raw, err := s.creds.Get(ctx, credentials.KeyCurrentUser)
	if err != nil {
		s.log.Warn(ctx, "session restore: read user", "error", err)
		return
	}
	// A session is authenticated only when both halves are present.
	if len(token) == 0 || len(raw) == 0 {
		return
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn(ctx, "session restore: corrupt user snapshot", "error", err)
		return
	}

	s.user.Set(&user)
	s.state.Set(AuthState{Phase: PhaseSuccess})
	s.log.Info(ctx, "session restored", "user_id", user.ID)
}

// State returns the current auth state snapshot.
func (s *AuthService) State() AuthState {
	return s.state.Get()
}

// Watch subscribes to auth state changes.
func (s *AuthService) Watch() (<-chan AuthState, func()) {
	return s.state.Subscribe()
}

// CurrentUser returns the logged-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	return s.user.Get()
}

// Login authenticates with the backend. On success the token and user are
// persisted and the state becomes Success; every failure mode becomes a
// visible Error state, never a propagated fault.
func (s *AuthService) Login(ctx context.Context, email, password string) {
	s.state.Set(AuthState{Phase: PhaseLoading})

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.fail(ctx, "login", err)
		return
	}
	if res.User == nil {
		// Transport-level success, but the payload is unusable.
		s.state.Set(AuthState{Phase: PhaseError, Err: "user not returned"})
		s.log.Warn(ctx, "login response missing user")
		return
	}

	if err := s.persistSession(ctx, res.AccessToken, res.User); err != nil {
		s.fail(ctx, "login", err)
		return
	}

	s.user.Set(res.User)
	s.state.Set(AuthState{Phase: PhaseSuccess})
	s.log.Info(ctx, "logged in", "user_id", res.User.ID)
}

// Register creates an account and, on success, logs in with the same
// credentials: the registration endpoint does not return a usable session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) {
	s.state.Set(AuthState{Phase: PhaseLoading})

	if _, err := s.client.Register(ctx, name, email, password); err != nil {
		s.fail(ctx, "register", err)
		return
	}

	s.Login(ctx, email, password)
}

// ResetState returns an Error state to Idle without touching the current
// user.
func (s *AuthService) ResetState() {
	s.state.Update(func(st AuthState) AuthState {
		if st.Phase == PhaseError {
			return AuthState{Phase: PhaseIdle}
		}
		return st
	})
}

// Logout clears the persisted session and the in-memory user.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.creds.Delete(ctx, credentials.KeyAccessToken); err != nil {
		s.log.Warn(ctx, "logout: clear token", "error", err)
	}
	if err := s.creds.Delete(ctx, credentials.KeyCurrentUser); err != nil {
		s.log.Warn(ctx, "logout: clear user", "error", err)
	}
	s.user.Set(nil)
	s.state.Set(AuthState{Phase: PhaseIdle})
	s.log.Info(ctx, "logged out")
}

func (s *AuthService) persistSession(ctx context.Context, token string, user *models.User) error {
	if err := s.creds.Set(ctx, credentials.KeyAccessToken, []byte(token)); err != nil {
		return err
	}
	snapshot, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.creds.Set(ctx, credentials.KeyCurrentUser, snapshot)
}

// fail converts any error into an Error state. HTTP failures carry the
// backend's message (or the generic "<op> failed: status <code>" fallback
// baked into StatusError); everything else uses the error text.
func (s *AuthService) fail(ctx context.Context, op string, err error) {
	msg := err.Error()
	var se *api.StatusError
	if !errors.As(err, &se) && msg == "" {
		msg = op + " failed"
	}
	s.state.Set(AuthState{Phase: PhaseError, Err: msg})
	s.log.Warn(ctx, op+" failed", "error", err)
}
