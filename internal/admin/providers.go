package admin

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	"github.com/Amanjarngal/localfix-client/internal/session"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

// ApplicationsPanel lists provider applications and drives the one-way
// pending -> approved|rejected transition. Every status update is
// followed by exactly one full list refetch; nothing is patched locally.
type ApplicationsPanel struct {
	mu       sync.Mutex
	api      *api.Client
	session  *session.Session
	notifier *notify.Notifier
	logger   *zap.Logger

	apps []domain.ProviderApplication
}

// NewApplicationsPanel constructs the panel.
func NewApplicationsPanel(client *api.Client, sess *session.Session, notifier *notify.Notifier, logger *zap.Logger) *ApplicationsPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationsPanel{api: client, session: sess, notifier: notifier, logger: logger}
}

// Load fetches all applications. Admin role required.
func (p *ApplicationsPanel) Load(ctx context.Context) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	apps, err := p.api.ListProviders(ctx)
	if err != nil {
		p.logger.Warn("failed to load applications", zap.Error(err))
		p.notifier.Error("Could not load applications")
		return err
	}
	p.mu.Lock()
	p.apps = apps
	p.mu.Unlock()
	return nil
}

// Applications returns the fetched list unfiltered.
func (p *ApplicationsPanel) Applications() []domain.ProviderApplication {
	return p.Filter("")
}

// Filter returns the applications whose business name, owner name or
// email contains the term, case-insensitively. An empty term returns
// the full list.
func (p *ApplicationsPanel) Filter(term string) []domain.ProviderApplication {
	p.mu.Lock()
	defer p.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]domain.ProviderApplication, 0, len(p.apps))
	for _, app := range p.apps {
		if term == "" ||
			strings.Contains(strings.ToLower(app.BusinessName), term) ||
			strings.Contains(strings.ToLower(app.OwnerName), term) ||
			strings.Contains(strings.ToLower(app.Email), term) {
			out = append(out, app)
		}
	}
	return out
}

// CanReview reports whether the transition buttons render for an
// application, i.e. whether it is still pending.
func (p *ApplicationsPanel) CanReview(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, app := range p.apps {
		if app.ID == id {
			return app.Status == domain.ApplicationStatusPending
		}
	}
	return false
}

// UpdateStatus approves or rejects a pending application, then refetches
// the list. Calling it on an already-reviewed application is a no-op:
// the buttons are gone once status leaves pending.
func (p *ApplicationsPanel) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	if status != domain.ApplicationStatusApproved && status != domain.ApplicationStatusRejected {
		return apperrors.NewValidationError("status must be approved or rejected", nil)
	}
	if !p.CanReview(id) {
		return nil
	}

	if _, err := p.api.UpdateProviderStatus(ctx, id, status); err != nil {
		message := "Failed to update status"
		if de := apperrors.ToDomainError(err); de != nil && de.Message != "" && !apperrors.IsTransportError(err) {
			message = de.Message
		}
		p.logger.Warn("failed to update application status", zap.String("id", id), zap.Error(err))
		p.notifier.Error(message)
		return err
	}

	p.notifier.Success("Application " + string(status) + " successfully")
	return p.Load(ctx)
}
