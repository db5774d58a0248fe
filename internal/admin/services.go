package admin

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	"github.com/Amanjarngal/localfix-client/internal/session"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

// ConfirmFunc asks the operator to confirm a destructive action. The
// deletion is abandoned when it returns false.
type ConfirmFunc func(prompt string) bool

// ServicesPanel is the admin surface for full create/update/delete of
// services and their problems. Every mutation is followed by one full
// refetch of the affected collection.
type ServicesPanel struct {
	mu       sync.Mutex
	api      *api.Client
	session  *session.Session
	notifier *notify.Notifier
	logger   *zap.Logger

	services []domain.Service
	problems map[string][]domain.Problem
}

// NewServicesPanel constructs the panel.
func NewServicesPanel(client *api.Client, sess *session.Session, notifier *notify.Notifier, logger *zap.Logger) *ServicesPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServicesPanel{
		api:      client,
		session:  sess,
		notifier: notifier,
		logger:   logger,
		problems: make(map[string][]domain.Problem),
	}
}

// Load fetches the full services list. Admin role required.
func (p *ServicesPanel) Load(ctx context.Context) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	services, err := p.api.ListServices(ctx)
	if err != nil {
		p.logger.Warn("failed to load services", zap.Error(err))
		p.notifier.Error("Could not load services")
		return err
	}
	p.mu.Lock()
	p.services = services
	p.mu.Unlock()
	return nil
}

// Services returns the fetched categories.
func (p *ServicesPanel) Services() []domain.Service {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Service, len(p.services))
	copy(out, p.services)
	return out
}

// Problems fetches and remembers the problems of one service.
func (p *ServicesPanel) Problems(ctx context.Context, serviceID string) ([]domain.Problem, error) {
	problems, err := p.api.ListProblems(ctx, serviceID)
	if err != nil {
		p.logger.Warn("failed to load problems", zap.String("service_id", serviceID), zap.Error(err))
		p.notifier.Error("Could not load problems")
		return nil, err
	}
	p.mu.Lock()
	p.problems[serviceID] = problems
	p.mu.Unlock()
	return problems, nil
}

// SaveService creates (empty id) or updates a category, then refetches
// the services collection.
func (p *ServicesPanel) SaveService(ctx context.Context, id string, input api.ServiceInput) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	var err error
	if id == "" {
		_, err = p.api.CreateService(ctx, input)
	} else {
		_, err = p.api.UpdateService(ctx, id, input)
	}
	if err != nil {
		p.logger.Warn("failed to save service", zap.String("id", id), zap.Error(err))
		p.notifier.Error("Failed to save service")
		return err
	}
	p.notifier.Success("Service saved")
	return p.Load(ctx)
}

// DeleteService removes a category after a blocking confirmation; the
// server cascades the deletion to its problems.
func (p *ServicesPanel) DeleteService(ctx context.Context, id string, confirm ConfirmFunc) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	if confirm == nil || !confirm("Are you sure? This will delete all associated problems.") {
		return nil
	}
	if err := p.api.DeleteService(ctx, id); err != nil {
		p.logger.Warn("failed to delete service", zap.String("id", id), zap.Error(err))
		p.notifier.Error("Failed to delete service")
		return err
	}
	p.mu.Lock()
	delete(p.problems, id)
	p.mu.Unlock()
	p.notifier.Success("Service deleted")
	return p.Load(ctx)
}

// SaveProblem creates (empty id) or updates a priced issue, then
// refetches the owning service's problems.
func (p *ServicesPanel) SaveProblem(ctx context.Context, id string, input api.ProblemInput) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	var err error
	if id == "" {
		_, err = p.api.CreateProblem(ctx, input)
	} else {
		_, err = p.api.UpdateProblem(ctx, id, input)
	}
	if err != nil {
		p.logger.Warn("failed to save problem", zap.String("id", id), zap.Error(err))
		p.notifier.Error("Failed to save problem")
		return err
	}
	p.notifier.Success("Problem saved")
	_, err = p.Problems(ctx, input.ServiceID)
	return err
}

// DeleteProblem removes a priced issue after confirmation, then
// refetches the owning service's problems.
func (p *ServicesPanel) DeleteProblem(ctx context.Context, id, serviceID string, confirm ConfirmFunc) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	if confirm == nil || !confirm("Are you sure?") {
		return nil
	}
	if err := p.api.DeleteProblem(ctx, id); err != nil {
		p.logger.Warn("failed to delete problem", zap.String("id", id), zap.Error(err))
		p.notifier.Error("Failed to delete problem")
		return err
	}
	p.notifier.Success("Problem deleted")
	_, err := p.Problems(ctx, serviceID)
	return err
}
