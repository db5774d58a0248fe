package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/admin"
	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/cart"
	"github.com/Amanjarngal/localfix-client/internal/catalog"
	"github.com/Amanjarngal/localfix-client/internal/config"
	"github.com/Amanjarngal/localfix-client/internal/notify"
	"github.com/Amanjarngal/localfix-client/internal/observability"
	"github.com/Amanjarngal/localfix-client/internal/session"
)

// app bundles the wired components behind the interactive shell. The
// process is the "page": session and view state live exactly as long as
// it does.
type app struct {
	logger   *zap.Logger
	session  *session.Session
	browser  *catalog.Browser
	cart     *cart.View
	client   *api.Client
	notifier *notify.Notifier

	users     *admin.UsersPanel
	apps      *admin.ApplicationsPanel
	servicesP *admin.ServicesPanel

	in *bufio.Scanner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	notifier := notify.NewNotifier()
	notifier.Subscribe(printNotification)

	client := api.NewClient(cfg.API, logger, api.WithMetrics(metrics))
	sess := session.New(client, logger)
	client.SetTokenSource(sess.Token)

	a := &app{
		logger:    logger,
		session:   sess,
		client:    client,
		notifier:  notifier,
		browser:   catalog.NewBrowser(client, notifier, logger),
		cart:      cart.NewView(client, sess, notifier, logger),
		users:     admin.NewUsersPanel(client, sess, notifier, logger),
		apps:      admin.NewApplicationsPanel(client, sess, notifier, logger),
		servicesP: admin.NewServicesPanel(client, sess, notifier, logger),
		in:        bufio.NewScanner(os.Stdin),
	}

	fmt.Printf("LocalFix %s — API at %s\n", cfg.App.Version, cfg.API.BaseURL)
	fmt.Println(`Type "help" for commands.`)
	a.run(context.Background())
}

func printNotification(n notify.Notification) {
	prefix := "·"
	switch n.Level {
	case notify.LevelSuccess:
		prefix = "✓"
	case notify.LevelError:
		prefix = "✗"
	}
	fmt.Printf("%s %s\n", prefix, n.Message)
}

func (a *app) run(ctx context.Context) {
	for {
		fmt.Print(a.prompt())
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		switch args[0] {
		case "quit", "exit":
			return
		case "help":
			a.printHelp()
		case "login":
			a.cmdLogin(ctx)
		case "signup":
			a.cmdSignup(ctx)
		case "logout":
			a.session.Logout()
			fmt.Println("Logged out.")
		case "whoami":
			a.cmdWhoami()
		case "services":
			a.cmdServices(ctx)
		case "problems":
			a.cmdProblems(ctx, args[1:])
		case "cart":
			a.cmdCart(ctx, args[1:])
		case "enroll":
			a.cmdEnroll(ctx)
		case "admin":
			a.cmdAdmin(ctx, args[1:])
		default:
			fmt.Printf("unknown command %q; try \"help\"\n", args[0])
		}
	}
}

func (a *app) prompt() string {
	if user, ok := a.session.Current(); ok {
		return user.Name + "> "
	}
	return "localfix> "
}

func (a *app) printHelp() {
	fmt.Println(`Commands:
  login | signup | logout | whoami
  services                 list service categories
  problems <n>             list priced problems of service number n
  cart [add <n> <m> | rm <m>]
                           show cart, add problem m of service n, remove
  enroll                   start the provider enrollment wizard
  admin users|apps|services|overview
  quit`)
}

// readLine prompts and reads one trimmed line.
func (a *app) readLine(prompt string) string {
	fmt.Print(prompt)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

// confirm asks a yes/no question; only "y"/"yes" proceeds.
func (a *app) confirm(prompt string) bool {
	answer := strings.ToLower(a.readLine(prompt + " [y/N] "))
	return answer == "y" || answer == "yes"
}
