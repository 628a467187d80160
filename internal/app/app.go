// Package app wires the components shared by the server and the CLI.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/collector"
	"github.com/kurihiro0119/github-portfolio/internal/config"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
	"github.com/kurihiro0119/github-portfolio/internal/logging"
	"github.com/kurihiro0119/github-portfolio/internal/portfolio"
	"github.com/kurihiro0119/github-portfolio/internal/render"
)

// App holds the configured components of one process
type App struct {
	Config    *config.Config
	Content   *config.Content
	Logger    *logrus.Logger
	Locale    *locale.Locale
	Store     *portfolio.Store
	Renderer  *render.Renderer
	Projector *aggregator.Projector
}

// Load reads the configuration and builds every component
func Load() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return New(cfg)
}

// New builds every component from a validated configuration
func New(cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	fetcher, err := collector.NewGitHubCollector(collector.Options{
		Token:   cfg.GitHubToken,
		BaseURL: cfg.GitHubAPIURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub collector: %w", err)
	}

	loc := locale.Lookup(cfg.Locale)
	tz := cfg.Location()

	renderer, err := render.New(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	loader := portfolio.NewLoader(fetcher, cfg.FetchTimeout, logger)
	return &App{
		Config:    cfg,
		Content:   content,
		Logger:    logger,
		Locale:    loc,
		Store:     portfolio.NewStore(loader, cfg.GitHubUser, logger),
		Renderer:  renderer.WithLocation(tz),
		Projector: aggregator.NewProjector(loc, tz, cfg.GitHubUser),
	}, nil
}
