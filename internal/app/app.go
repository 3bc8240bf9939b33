package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/config"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/filestore"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
)

// App encapsulates the configuration, logger and manifest store of one
// cmdgen invocation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	store  manifest.Store
}

// NewApp returns an App that prints results to outW and logs to logW. A nil
// store selects the file store at the configured manifest directory.
func NewApp(outW, logW io.Writer, cfg *config.Model, store manifest.Store) *App {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	if store == nil {
		store = filestore.New(cfg.Manifest.Dir)
	}
	logger.Debug("App configured.", "manifest", cfg.Manifest.Dir, "strictness", cfg.Collect.Strictness)
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		store:  store,
	}
}

// Store returns the manifest store. This is primarily for testing.
func (a *App) Store() manifest.Store {
	return a.store
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
