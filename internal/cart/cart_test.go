package cart

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/apitest"
	"github.com/Amanjarngal/localfix-client/internal/config"
	"github.com/Amanjarngal/localfix-client/internal/domain"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	"github.com/Amanjarngal/localfix-client/internal/session"
)

type env struct {
	srv      *apitest.Server
	client   *api.Client
	session  *session.Session
	notifier *notify.Notifier
	view     *View
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake api: %v", err)
	}
	t.Cleanup(srv.Close)

	client := api.NewClient(config.APIConfig{BaseURL: srv.URL}, zap.NewNop())
	sess := session.New(client, zap.NewNop())
	client.SetTokenSource(sess.Token)
	notifier := notify.NewNotifier()
	return &env{
		srv:      srv,
		client:   client,
		session:  sess,
		notifier: notifier,
		view:     NewView(client, sess, notifier, zap.NewNop()),
	}
}

func (e *env) login(t *testing.T) domain.User {
	t.Helper()
	e.srv.SeedUser("Asha", "asha@example.com", "secret", domain.RoleCustomer)
	user, err := e.session.Login(context.Background(), "asha@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return *user
}

func TestTotalsAlwaysComeFromServer(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	svc := e.srv.SeedService("Plumbing", "", "wrench")
	leak := e.srv.SeedProblem(svc.ID, "Leaking tap", "", 299)
	clog := e.srv.SeedProblem(svc.ID, "Clogged drain", "", 549)

	ctx := context.Background()
	steps := []struct {
		op        func() error
		wantTotal float64
		wantCount int
	}{
		{func() error { return e.view.AddItem(ctx, leak.ID, svc.Name) }, 299, 1},
		{func() error { return e.view.AddItem(ctx, clog.ID, svc.Name) }, 848, 2},
		{func() error { return e.view.RemoveItem(ctx, leak.ID) }, 549, 1},
		{func() error { return e.view.AddItem(ctx, leak.ID, svc.Name) }, 848, 2},
		{func() error { return e.view.RemoveItem(ctx, clog.ID) }, 299, 1},
	}
	for i, step := range steps {
		if err := step.op(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if got := e.view.Total(); got != step.wantTotal {
			t.Errorf("step %d: total %v, want %v", i, got, step.wantTotal)
		}
		if got := e.view.Count(); got != step.wantCount {
			t.Errorf("step %d: count %d, want %d", i, got, step.wantCount)
		}
	}
}

func TestAddItemRequiresLogin(t *testing.T) {
	e := newEnv(t)
	var notes []notify.Notification
	e.notifier.Subscribe(func(n notify.Notification) { notes = append(notes, n) })

	err := e.view.AddItem(context.Background(), "p1", "Plumbing")
	if err != ErrNotLoggedIn {
		t.Fatalf("got %v, want ErrNotLoggedIn", err)
	}
	if len(notes) != 1 || notes[0].Level != notify.LevelError {
		t.Fatalf("expected one advisory error notification, got %+v", notes)
	}
	if e.srv.Hits("POST", "/api/cart/add") != 0 {
		t.Error("no request should reach the server without a user")
	}
}

func TestEmptyCartIsALoadedStateNotACrash(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	if err := e.view.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if e.view.State() != StateLoaded {
		t.Errorf("got state %v, want loaded", e.view.State())
	}
	if !e.view.Empty() {
		t.Error("fresh cart should be empty")
	}
	if items := e.view.Items(); len(items) != 0 {
		t.Errorf("got items %+v", items)
	}
	if e.view.Total() != 0 {
		t.Errorf("got total %v", e.view.Total())
	}
}

func TestFetchWithoutUserIsUnauthenticated(t *testing.T) {
	e := newEnv(t)
	if err := e.view.Fetch(context.Background()); err != ErrNotLoggedIn {
		t.Fatalf("got %v, want ErrNotLoggedIn", err)
	}
	if e.view.State() != StateUnauthenticated {
		t.Errorf("got state %v", e.view.State())
	}
}

func TestUnavailableItemKeptWithPlaceholder(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	svc := e.srv.SeedService("Electrical", "", "zap")
	fan := e.srv.SeedProblem(svc.ID, "Fan not spinning", "", 199)
	socket := e.srv.SeedProblem(svc.ID, "Dead socket", "", 149)

	ctx := context.Background()
	if err := e.view.AddItem(ctx, fan.ID, svc.Name); err != nil {
		t.Fatal(err)
	}
	if err := e.view.AddItem(ctx, socket.ID, svc.Name); err != nil {
		t.Fatal(err)
	}

	// The problem disappears server-side behind the client's back.
	e.srv.DeleteProblemDirect(fan.ID)
	if err := e.view.Fetch(ctx); err != nil {
		t.Fatal(err)
	}

	items := e.view.Items()
	if len(items) != 2 {
		t.Fatalf("the client must never drop items; got %d", len(items))
	}
	var placeholders int
	for _, item := range items {
		if !item.Available() {
			placeholders++
			if item.Title() != "Service Unavailable" {
				t.Errorf("got placeholder %q", item.Title())
			}
			if item.Price() != 0 {
				t.Errorf("unavailable item price %v", item.Price())
			}
		}
	}
	if placeholders != 1 {
		t.Errorf("got %d placeholders, want 1", placeholders)
	}
	// The server excludes the dead reference from the total.
	if e.view.Total() != 149 {
		t.Errorf("got total %v, want 149", e.view.Total())
	}
}

func TestFetchFailureKeepsPriorSnapshot(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	svc := e.srv.SeedService("Plumbing", "", "wrench")
	leak := e.srv.SeedProblem(svc.ID, "Leaking tap", "", 299)

	ctx := context.Background()
	if err := e.view.AddItem(ctx, leak.ID, svc.Name); err != nil {
		t.Fatal(err)
	}

	e.srv.Close()
	if err := e.view.Fetch(ctx); err == nil {
		t.Fatal("expected fetch to fail after shutdown")
	}
	if e.view.Total() != 299 || e.view.Count() != 1 {
		t.Errorf("prior snapshot lost: total %v count %d", e.view.Total(), e.view.Count())
	}
	if e.view.State() != StateLoaded {
		t.Errorf("got state %v, want loaded", e.view.State())
	}
}

func TestMutationReplacesWholeCart(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	svc := e.srv.SeedService("Plumbing", "", "wrench")
	leak := e.srv.SeedProblem(svc.ID, "Leaking tap", "", 299)

	ctx := context.Background()
	if err := e.view.AddItem(ctx, leak.ID, svc.Name); err != nil {
		t.Fatal(err)
	}
	items := e.view.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ServiceName != "Plumbing" || items[0].Problem == nil || items[0].Problem.Price != 299 {
		t.Errorf("server-populated item not adopted: %+v", items[0])
	}
}
