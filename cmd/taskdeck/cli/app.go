// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/config"
	"github.com/taskdeck/taskdeck/lib/session"
	"github.com/taskdeck/taskdeck/lib/tasks"
)

// AppOptions are the shared flags every command accepts: where the
// config file is and which server to talk to.
type AppOptions struct {
	// ConfigFile overrides the TASKDECK_CONFIG environment variable.
	ConfigFile string

	// Server overrides the configured base URL.
	Server string
}

// AddFlags registers the shared flags on a command's flag set.
func (o *AppOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.ConfigFile, "config", "", "config file (default $TASKDECK_CONFIG)")
	flags.StringVar(&o.Server, "server", "", "server base URL (overrides config)")
}

// App holds the wired collaborators a command operates on: the loaded
// configuration, the session controller restored from disk, the API
// client, and the task synchronizer.
type App struct {
	Config   *config.Config
	Store    session.Store
	Sessions *session.Controller
	Client   *api.Client
	Sync     *tasks.Synchronizer
	Logger   *slog.Logger
}

// BuildApp loads configuration and wires the client stack. The session
// controller probes the stored token here, so App.Sessions reflects the
// persisted login state immediately.
func BuildApp(options AppOptions) (*App, error) {
	var cfg *config.Config
	var err error
	if options.ConfigFile != "" {
		cfg, err = config.LoadFile(options.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if options.Server != "" {
		cfg.Server.BaseURL = options.Server
	}

	logger := NewCommandLogger()

	store := session.NewFileStore(cfg.Session.File)
	sessions := session.NewController(store, logger)

	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.Server.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout()},
		Logger:     logger,
		Tokens:     sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("building API client: %w", err)
	}

	return &App{
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Client:   client,
		Sync:     tasks.NewSynchronizer(client, sessions),
		Logger:   logger,
	}, nil
}

// RequireSession returns the active session or an error telling the
// user to log in. Commands that talk to the task API call this first so
// the failure is immediate and clear rather than a server 401.
func (a *App) RequireSession() (session.Session, error) {
	active, ok := a.Sessions.Current()
	if !ok {
		return session.Session{}, fmt.Errorf("not logged in (run 'taskdeck login')")
	}
	return active, nil
}
