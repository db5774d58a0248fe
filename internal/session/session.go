package session

import (
	"context"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
)

// Session holds the process-wide identity issued by the external session
// provider, with explicit login/logout lifecycle transitions and typed
// read accessors. It is never an ambient global; components receive it
// by reference.
type Session struct {
	mu        sync.RWMutex
	api       *api.Client
	logger    *zap.Logger
	user      *domain.User
	token     string
	expiresAt time.Time
}

// New constructs an unauthenticated session.
func New(client *api.Client, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{api: client, logger: logger}
}

// Login exchanges credentials for an identity and stores it.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	result, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	s.adopt(result)
	return &result.User, nil
}

// Signup registers a customer account and stores the issued identity.
func (s *Session) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	result, err := s.api.Signup(ctx, api.SignupInput{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	s.adopt(result)
	return &result.User, nil
}

// Logout discards the identity. Stateless on the server side.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.expiresAt = time.Time{}
}

// Current returns the logged-in user, if any.
func (s *Session) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token returns the bearer token, empty when logged out. The api.Client
// reads it through SetTokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the token expiry, zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// IsAdmin reports whether the current user may reach admin surfaces.
func (s *Session) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.IsAdmin()
}

func (s *Session) adopt(result *api.AuthResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := result.User
	s.user = &user
	s.token = result.Token
	s.expiresAt = tokenExpiry(result.Token)
	s.logger.Info("session established",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
}

// tokenExpiry reads the exp claim without verifying the signature;
// verification is the server's job, the client only surfaces expiry.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
