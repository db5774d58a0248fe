package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/notify"
)

// Browser is the read-only catalog view: the services list plus problems
// fetched lazily on first selection of a service and cached per service
// id for the lifetime of the page view. It has no mutation capability.
type Browser struct {
	mu       sync.Mutex
	api      *api.Client
	notifier *notify.Notifier
	logger   *zap.Logger

	services []domain.Service
	problems map[string][]domain.Problem
	loaded   bool
}

// NewBrowser constructs an empty catalog view.
func NewBrowser(client *api.Client, notifier *notify.Notifier, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		api:      client,
		notifier: notifier,
		logger:   logger,
		problems: make(map[string][]domain.Problem),
	}
}

// Load fetches the services list. A failure keeps the view empty and
// surfaces a non-fatal notification; there is no retry.
func (b *Browser) Load(ctx context.Context) error {
	services, err := b.api.ListServices(ctx)
	if err != nil {
		b.logger.Warn("failed to load services", zap.Error(err))
		b.notifier.Error("Could not load services")
		return err
	}
	b.mu.Lock()
	b.services = services
	b.loaded = true
	b.mu.Unlock()
	return nil
}

// Loaded reports whether the services list has been fetched.
func (b *Browser) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Services returns the fetched service categories.
func (b *Browser) Services() []domain.Service {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Service, len(b.services))
	copy(out, b.services)
	return out
}

// Problems returns the priced issues of one service, fetching on first
// access and answering from the per-view cache afterwards.
func (b *Browser) Problems(ctx context.Context, serviceID string) ([]domain.Problem, error) {
	b.mu.Lock()
	if cached, ok := b.problems[serviceID]; ok {
		b.mu.Unlock()
		return cached, nil
	}
	b.mu.Unlock()

	problems, err := b.api.ListProblems(ctx, serviceID)
	if err != nil {
		b.logger.Warn("failed to load problems", zap.String("service_id", serviceID), zap.Error(err))
		b.notifier.Error("Could not load problems")
		return nil, err
	}

	b.mu.Lock()
	b.problems[serviceID] = problems
	b.mu.Unlock()
	return problems, nil
}

// Reset discards cached state, as a fresh page view would.
func (b *Browser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.services = nil
	b.problems = make(map[string][]domain.Problem)
	b.loaded = false
}
