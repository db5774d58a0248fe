package admin

import (
	"context"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/session"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

// Overview aggregates the dashboard counters from two list fetches.
type Overview struct {
	TotalUsers       int
	TotalProviders   int
	PendingProviders int
}

// LoadOverview computes the dashboard numbers. Admin role required.
func LoadOverview(ctx context.Context, client *api.Client, sess *session.Session) (Overview, error) {
	if !sess.IsAdmin() {
		return Overview{}, apperrors.NewForbidden("admin role required")
	}

	users, err := client.ListUsers(ctx)
	if err != nil {
		return Overview{}, err
	}
	providers, err := client.ListProviders(ctx)
	if err != nil {
		return Overview{}, err
	}

	pending := 0
	for _, app := range providers {
		if app.Status == domain.ApplicationStatusPending {
			pending++
		}
	}
	return Overview{
		TotalUsers:       len(users),
		TotalProviders:   len(providers),
		PendingProviders: pending,
	}, nil
}
