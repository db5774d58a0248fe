package session

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/apitest"
	"github.com/Amanjarngal/localfix-client/internal/config"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

func newSession(t *testing.T) (*Session, *apitest.Server) {
	t.Helper()
	srv, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake api: %v", err)
	}
	t.Cleanup(srv.Close)
	client := api.NewClient(config.APIConfig{BaseURL: srv.URL}, zap.NewNop())
	sess := New(client, zap.NewNop())
	client.SetTokenSource(sess.Token)
	return sess, srv
}

func TestLoginEstablishesIdentity(t *testing.T) {
	sess, srv := newSession(t)
	seeded := srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleCustomer)

	if _, ok := sess.Current(); ok {
		t.Fatal("fresh session must be unauthenticated")
	}
	user, err := sess.Login(context.Background(), "asha@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != seeded.ID || user.Role != domain.RoleCustomer {
		t.Errorf("got user %+v", user)
	}
	current, ok := sess.Current()
	if !ok || current.Email != "asha@example.com" {
		t.Errorf("Current returned %+v, %v", current, ok)
	}
	if sess.Token() == "" {
		t.Error("token should be stored for the request layer")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	sess, srv := newSession(t)
	srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleCustomer)

	_, err := sess.Login(context.Background(), "asha@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if !apperrors.IsAuthError(err) {
		t.Errorf("got error %v, want an auth error", err)
	}
	if _, ok := sess.Current(); ok {
		t.Error("failed login must not establish a session")
	}
}

func TestSignupLogsTheUserIn(t *testing.T) {
	sess, _ := newSession(t)

	user, err := sess.Signup(context.Background(), "Ravi", "ravi@example.com", "hunter2")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("signup role %q, want customer", user.Role)
	}
	if _, ok := sess.Current(); !ok {
		t.Error("signup should establish the session immediately")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	sess, srv := newSession(t)
	srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleCustomer)

	if _, err := sess.Signup(context.Background(), "Imposter", "asha@example.com", "x"); err == nil {
		t.Fatal("duplicate email should be rejected")
	}
}

func TestExpiresAtParsedFromToken(t *testing.T) {
	sess, srv := newSession(t)
	srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleCustomer)

	if !sess.ExpiresAt().IsZero() {
		t.Fatal("logged-out expiry should be zero")
	}
	if _, err := sess.Login(context.Background(), "asha@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	exp := sess.ExpiresAt()
	if exp.IsZero() {
		t.Fatal("expiry should be readable from the issued token")
	}
	until := time.Until(exp)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("expiry %v from now, want about an hour", until)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	sess, srv := newSession(t)
	srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleAdmin)
	if _, err := sess.Login(context.Background(), "asha@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	if !sess.IsAdmin() {
		t.Fatal("admin user should pass IsAdmin")
	}

	sess.Logout()
	if _, ok := sess.Current(); ok {
		t.Error("user survived logout")
	}
	if sess.Token() != "" {
		t.Error("token survived logout")
	}
	if !sess.ExpiresAt().IsZero() {
		t.Error("expiry survived logout")
	}
	if sess.IsAdmin() {
		t.Error("IsAdmin must be false when logged out")
	}
}
