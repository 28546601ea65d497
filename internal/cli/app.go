package cli

import (
	"fmt"
	"log/slog"
	"os"

	"geotodo/internal/config"
	"geotodo/internal/logger"
	"geotodo/pkg/api"
	"geotodo/pkg/session"
	"geotodo/pkg/task"
)

// consoleAlerter plays the role of the mobile alert dialog.
type consoleAlerter struct{}

func (consoleAlerter) Alert(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}

// consoleNavigator stands in for the app router.
type consoleNavigator struct{}

func (consoleNavigator) ToAuthenticated() {
	fmt.Println("Logged in.")
}

func (consoleNavigator) ToLogin() {
	fmt.Fprintln(os.Stderr, "Run 'geotodo login <email> <password>' to continue.")
}

// app wires one CLI invocation: config, logger, the session manager with its
// persisted session restored, and - when a session exists - the token-bound
// synchronizer.
type app struct {
	cfg     config.Client
	logger  *slog.Logger
	alert   consoleAlerter
	manager *session.Manager
	client  *api.Client
	sync    *task.Synchronizer
}

func newApp() *app {
	cfg := config.LoadClient()
	log := logger.Load()

	a := &app{
		cfg:    cfg,
		logger: log,
	}

	store := session.NewFileStore(cfg.SessionFile)
	auth := api.NewAuthClient(cfg.APIURL)
	a.manager = session.NewManager(auth, store, consoleNavigator{}, a.alert, log)
	a.manager.Restore()

	token := ""
	if s := a.manager.Active(); s != nil {
		token = s.Token
	}
	a.client = api.NewClient(cfg.APIURL, token)
	a.sync = task.NewSynchronizer(a.client, a.manager, a.alert, log)

	return a
}

func (a *app) requireSession() error {
	if a.manager.Active() == nil {
		consoleNavigator{}.ToLogin()
		return fmt.Errorf("not logged in")
	}
	return nil
}
