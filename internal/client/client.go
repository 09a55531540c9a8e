// Package client wires the session and feed stores to a repository
// implementation selected by configuration.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"hearth/internal/assistant"
	"hearth/internal/environment"
	"hearth/internal/feed"
	"hearth/internal/logging"
	"hearth/internal/repo"
	"hearth/internal/repo/memory"
	"hearth/internal/repo/remote"
	"hearth/internal/session"
)

// Config is parsed from HEARTH_CLIENT_-prefixed environment variables.
type Config struct {
	// Mode selects the repository backing: "mock" or "remote".
	Mode      string `envconfig:"MODE" default:"mock"`
	BaseURL   string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	TokenPath string `envconfig:"TOKEN_PATH" default:""`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	AssistantURL    string `envconfig:"ASSISTANT_URL" default:"https://generativelanguage.googleapis.com"`
	AssistantModel  string `envconfig:"ASSISTANT_MODEL" default:"gemini-2.0-flash"`
	AssistantAPIKey string `envconfig:"ASSISTANT_API_KEY" default:""`

	// Fallback coordinates when no live location source exists.
	Latitude  float64 `envconfig:"LATITUDE" default:"0"`
	Longitude float64 `envconfig:"LONGITUDE" default:"0"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("hearth_client", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse client config: %w", err)
	}
	return cfg, nil
}

// App bundles the wired stores and services.
type App struct {
	Config      Config
	Session     *session.Store
	Feed        *feed.Store
	Environment *environment.Service
	Generator   assistant.Generator
	Logger      *slog.Logger

	unsubscribe func()
}

// New builds the app: token store, repositories per Config.Mode, the
// session and feed stores, and the session-to-feed coupling that clears
// domain data when no family is active and refetches when one becomes
// active.
func New(cfg Config) (*App, error) {
	logger := logging.Setup(cfg.LogLevel)

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		tokenPath = filepath.Join(dir, "hearth", "token")
	}
	tokens, err := session.NewTokenStore(tokenPath)
	if err != nil {
		return nil, err
	}

	var authRepo repo.Auth
	var domainRepo repo.Domain
	switch cfg.Mode {
	case "mock":
		mem := memory.New(tokens)
		authRepo, domainRepo = mem, mem
	case "remote":
		rem := remote.New(cfg.BaseURL, tokens)
		authRepo, domainRepo = rem, rem
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	app := &App{
		Config:      cfg,
		Session:     session.NewStore(authRepo, tokens, logger.With("component", "session")),
		Feed:        feed.NewStore(domainRepo, logger.With("component", "feed")),
		Environment: environment.NewService(),
		Generator:   assistant.NewHTTPGenerator(cfg.AssistantURL, cfg.AssistantModel, cfg.AssistantAPIKey),
		Logger:      logger,
	}

	app.unsubscribe = app.Session.Subscribe(func(snap session.Session) {
		if snap.ActiveFamilyID == "" {
			app.Feed.ClearAll()
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		app.Feed.RefreshAll(ctx)
	})

	return app, nil
}

// Locator returns the configured fallback position source.
func (a *App) Locator() environment.Locator {
	return environment.FixedLocator{
		Coords: environment.Coordinates{Latitude: a.Config.Latitude, Longitude: a.Config.Longitude},
	}
}

// Close releases the session subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}
