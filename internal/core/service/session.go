package service

import (
	"context"
	"net/http"

	"github.com/yndnr/libros-go/internal/cli/connection"
	"github.com/yndnr/libros-go/internal/core/domain"
	"github.com/yndnr/libros-go/internal/telemetry/logger"
	"github.com/yndnr/libros-go/internal/telemetry/metric"
)

// TokenStore holds the single session token.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, bool, error)
	ClearToken(ctx context.Context) error
}

// Login outcomes recorded in the logins_total metric.
const (
	loginSuccess  = "success"
	loginRejected = "rejected"
	loginError    = "error"
)

// SessionService handles the session lifecycle: Anonymous while no token
// is stored, Authenticated while one is.
type SessionService struct {
	gw      Gateway
	store   TokenStore
	metrics *metric.Registry
	log     logger.Logger
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithSessionMetrics records login and forced logout counts in reg.
func WithSessionMetrics(reg *metric.Registry) SessionOption {
	return func(s *SessionService) {
		s.metrics = reg
	}
}

// WithSessionLogger sets the logger.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *SessionService) {
		s.log = l
	}
}

// NewSessionService creates a new SessionService.
func NewSessionService(gw Gateway, store TokenStore, opts ...SessionOption) *SessionService {
	s := &SessionService{
		gw:    gw,
		store: store,
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and stores it. The bool is the
// outcome; on false the error explains why and the stored token, if any,
// is left untouched.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (bool, error) {
	log := s.log.WithContext(ctx)

	var resp loginResponse
	if err := s.gw.Send(ctx, http.MethodPost, connection.LoginPath, creds, &resp); err != nil {
		se := classify(err)
		result := loginError
		if se.Kind == domain.KindUnauthorized || se.Kind == domain.KindValidation {
			result = loginRejected
		}
		s.countLogin(result)
		log.Warn("login failed", "user", creds, "kind", se.Kind.String(), "reason", se.Message())
		return false, domain.ErrLoginFailed.WithDetails(se.Message()).WithCause(se)
	}

	if resp.Token == "" {
		s.countLogin(loginError)
		log.Warn("login failed", "user", creds, "reason", "empty token")
		return false, domain.ErrLoginFailed.WithDetails("server returned an empty token")
	}

	if err := s.store.SetToken(ctx, resp.Token); err != nil {
		s.countLogin(loginError)
		log.Error("store session token", "error", err)
		return false, domain.ErrSessionStore.WithCause(err)
	}

	s.countLogin(loginSuccess)
	log.Info("logged in", "user", creds)
	return true, nil
}

// Logout clears the stored token. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		return domain.ErrSessionStore.WithCause(err)
	}
	s.log.WithContext(ctx).Info("logged out")
	return nil
}

// IsAuthenticated reports whether a token is stored. It never contacts
// the server; a store read error counts as not authenticated.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := s.store.Token(ctx)
	if err != nil {
		s.log.WithContext(ctx).Warn("read session token", "error", err)
		return false
	}
	return ok
}

// HandleUnauthorized clears the session after the server rejected it
// and reports whether there was one to clear.
func (s *SessionService) HandleUnauthorized(ctx context.Context) bool {
	if !s.IsAuthenticated(ctx) {
		return false
	}
	if err := s.store.ClearToken(ctx); err != nil {
		s.log.WithContext(ctx).Error("clear rejected session token", "error", err)
		return false
	}
	if s.metrics != nil {
		s.metrics.ForcedLogouts.Inc()
	}
	s.log.WithContext(ctx).Warn("session rejected by server, logged out")
	return true
}

func (s *SessionService) countLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(result).Inc()
	}
}
