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

// UsersPanel is the read-only user management list with client-side
// substring filtering over the already-fetched collection.
type UsersPanel struct {
	mu       sync.Mutex
	api      *api.Client
	session  *session.Session
	notifier *notify.Notifier
	logger   *zap.Logger

	users []domain.User
}

// NewUsersPanel constructs the panel.
func NewUsersPanel(client *api.Client, sess *session.Session, notifier *notify.Notifier, logger *zap.Logger) *UsersPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersPanel{api: client, session: sess, notifier: notifier, logger: logger}
}

// Load fetches the full user list. Admin role required.
func (p *UsersPanel) Load(ctx context.Context) error {
	if !p.session.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	users, err := p.api.ListUsers(ctx)
	if err != nil {
		p.logger.Warn("failed to load users", zap.Error(err))
		p.notifier.Error("Could not load users")
		return err
	}
	p.mu.Lock()
	p.users = users
	p.mu.Unlock()
	return nil
}

// Users returns the fetched list unfiltered.
func (p *UsersPanel) Users() []domain.User {
	return p.Filter("")
}

// Filter returns the users whose name or email contains the term,
// case-insensitively. An empty term returns the full list.
func (p *UsersPanel) Filter(term string) []domain.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]domain.User, 0, len(p.users))
	for _, user := range p.users {
		if term == "" ||
			strings.Contains(strings.ToLower(user.Name), term) ||
			strings.Contains(strings.ToLower(user.Email), term) {
			out = append(out, user)
		}
	}
	return out
}
