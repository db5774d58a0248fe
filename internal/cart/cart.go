package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	"github.com/Amanjarngal/localfix-client/internal/session"
)

// State is the cart view's lifecycle position.
type State int

const (
	// StateUnauthenticated means no user is logged in; the view prompts
	// for login instead of rendering items.
	StateUnauthenticated State = iota
	// StateLoading means a fetch is in flight and the view shows a
	// spinner.
	StateLoading
	// StateLoaded means the view reflects the last server response,
	// empty or populated.
	StateLoaded
)

// ErrNotLoggedIn is returned by operations that need a user. It is
// advisory; callers surface it as a prompt, not a hard failure.
var ErrNotLoggedIn = errors.New("login required for cart operations")

// View maintains the authoritative cart for the logged-in user and
// mediates add/remove operations. Every displayed total and count comes
// from the last server response; nothing is computed locally, so
// concurrent tabs need no conflict resolution beyond last-response-wins.
type View struct {
	mu       sync.Mutex
	api      *api.Client
	session  *session.Session
	notifier *notify.Notifier
	logger   *zap.Logger

	state State
	cart  *domain.Cart
}

// NewView constructs a cart view bound to the session's user.
func NewView(client *api.Client, sess *session.Session, notifier *notify.Notifier, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		api:      client,
		session:  sess,
		notifier: notifier,
		logger:   logger,
		state:    StateUnauthenticated,
	}
}

// Fetch loads the cart for the current user. On failure it reports a
// non-fatal notification and keeps the prior snapshot; there is no retry.
func (v *View) Fetch(ctx context.Context) error {
	user, ok := v.session.Current()
	if !ok {
		v.mu.Lock()
		v.state = StateUnauthenticated
		v.cart = nil
		v.mu.Unlock()
		return ErrNotLoggedIn
	}

	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	cart, err := v.api.GetCart(ctx, user.ID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Warn("failed to load cart", zap.String("user_id", user.ID), zap.Error(err))
		v.notifier.Error("Could not load cart")
		// Keep whatever snapshot we had; an empty view is still a
		// valid loaded state.
		v.state = StateLoaded
		return err
	}
	v.state = StateLoaded
	v.cart = cart
	return nil
}

// AddItem POSTs the addition and replaces the whole local cart with the
// server response. Callers without a user get an advisory error.
func (v *View) AddItem(ctx context.Context, problemID, serviceLabel string) error {
	user, ok := v.session.Current()
	if !ok {
		v.notifier.Error("Please login to add items to cart")
		return ErrNotLoggedIn
	}

	cart, err := v.api.AddCartItem(ctx, user.ID, problemID, serviceLabel)
	if err != nil {
		v.logger.Warn("failed to add to cart", zap.String("problem_id", problemID), zap.Error(err))
		v.notifier.Error("Failed to add to cart")
		return err
	}

	v.mu.Lock()
	v.state = StateLoaded
	v.cart = cart
	v.mu.Unlock()
	return nil
}

// RemoveItem POSTs the removal under the same replace-whole-state
// contract as AddItem.
func (v *View) RemoveItem(ctx context.Context, problemID string) error {
	user, ok := v.session.Current()
	if !ok {
		return ErrNotLoggedIn
	}

	cart, err := v.api.RemoveCartItem(ctx, user.ID, problemID)
	if err != nil {
		v.logger.Warn("failed to remove from cart", zap.String("problem_id", problemID), zap.Error(err))
		v.notifier.Error("Failed to remove item")
		return err
	}

	v.mu.Lock()
	v.state = StateLoaded
	v.cart = cart
	v.mu.Unlock()
	v.notifier.Success("Item removed")
	return nil
}

// State returns the lifecycle position.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Items returns the items of the last server response. Safe to call in
// any state; an unloaded or empty cart yields an empty slice, never a
// crash on missing data.
func (v *View) Items() []domain.CartItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cart == nil {
		return nil
	}
	out := make([]domain.CartItem, len(v.cart.Items))
	copy(out, v.cart.Items)
	return out
}

// Total returns the server-computed total of the last response.
func (v *View) Total() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cart == nil {
		return 0
	}
	return v.cart.TotalPrice
}

// Count returns the item count of the last response.
func (v *View) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cart == nil {
		return 0
	}
	return len(v.cart.Items)
}

// Empty reports whether the loaded cart holds no items.
func (v *View) Empty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cart.IsEmpty()
}
