package api

import (
	"context"
	"net/http"

	"github.com/Amanjarngal/localfix-client/internal/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the registration payload.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the identity issued by the session provider.
type AuthResult struct {
	User  domain.User
	Token string
}

// Login exchanges credentials for an identity and opaque token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var user domain.User
	env, err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", creds, &user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: env.Token}, nil
}

// Signup registers a new customer account and logs it in.
func (c *Client) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	var user domain.User
	env, err := c.sendJSON(ctx, http.MethodPost, "/api/auth/signup", input, &user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: env.Token}, nil
}

// ListUsers returns all accounts. Admin surface only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := c.getJSON(ctx, "/api/auth/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
