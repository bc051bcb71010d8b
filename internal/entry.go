// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/sitegen/internal/content"
	"github.com/starford/sitegen/internal/dateformat"
	"github.com/starford/sitegen/internal/pipeline"
	"github.com/starford/sitegen/internal/publish"
	"github.com/starford/sitegen/internal/searchindex"
	"github.com/starford/sitegen/internal/slug"
	"github.com/starford/sitegen/internal/storage"
	"github.com/starford/sitegen/internal/watch"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if app.logger == nil {
		// Initialize structured JSON logger.
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
		slog.SetDefault(app.logger)
	}
	return app, nil
}

// Build runs the pipeline once and publishes the result.
func Build(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	app.logConfig()

	_, err = app.build(ctx)
	return err
}

// Watch builds once, then rebuilds whenever the content directories change
// until ctx is cancelled or the process receives SIGINT or SIGTERM. A failed
// build is logged and does not stop watching.
func Watch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	app.logConfig()
	cfg := app.config
	logger := app.logger

	if _, err := app.build(ctx); err != nil {
		logger.Error("Initial build failed", slog.String("error", err.Error()))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	roots := []string{cfg.Content.Posts}
	if cfg.Content.Notes != "" {
		roots = append(roots, cfg.Content.Notes)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watch.Run(gCtx, roots, cfg.App.Watch.Debounce, logger, func(ctx context.Context, changed []string) error {
			logger.Info("Rebuilding", slog.Int("changed", len(changed)))
			_, err := app.build(ctx)
			return err
		})
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped successfully")
	return nil
}

// Search queries the search database written by the last build.
func Search(query string, limit int, opts ...Option) ([]searchindex.SearchResult, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	path := app.config.Output.SearchPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("search index %s: %w (run build first)", path, err)
	}

	db, err := searchindex.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Search(query, limit)
}

func (a *application) logConfig() {
	cfg := a.config
	a.logger.Info("Configuration loaded",
		slog.String("posts_path", cfg.Content.Posts),
		slog.String("notes_path", cfg.Content.Notes),
		slog.String("output_path", cfg.Output.Path),
		slog.String("path_prefix", cfg.Site.PathPrefix),
		slog.Bool("search_index", cfg.Output.SearchIndex),
		slog.String("log_level", cfg.App.LogLevel.String()))
}

func (a *application) pipelineOptions() (pipeline.Options, error) {
	site := a.config.Site
	from, err := dateformat.Compile(site.DateFromFormat)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("date_from_format: %w", err)
	}
	display, err := dateformat.Compile(site.DateFormat)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("date_format: %w", err)
	}

	t := a.config.Templates
	return pipeline.Options{
		Slug:       slug.Options{FromTitle: site.SlugFromTitle},
		DateLayout: from,
		Emit: pipeline.EmitOptions{
			Templates: pipeline.Templates{
				Post:     t.Post,
				Tag:      t.Tag,
				Category: t.Category,
				Note:     t.Note,
			},
			DefaultCategory: site.DefaultCategory,
			DisplayDate:     display,
			SiteTitle:       site.Title,
			SiteURL:         site.URL,
			PathPrefix:      site.PathPrefix,
		},
	}, nil
}

// source opens the content directories. The posts directory is created when
// missing; a missing notes directory means the site has no notes.
func (a *application) source() (content.Source, storage.Provider, error) {
	cfg := a.config.Content

	if err := os.MkdirAll(cfg.Posts, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create posts dir: %w", err)
	}
	posts, err := storage.NewFS(cfg.Posts)
	if err != nil {
		return nil, nil, fmt.Errorf("init posts storage: %w", err)
	}

	var notes storage.Provider
	if cfg.Notes != "" {
		store, err := storage.NewFS(cfg.Notes)
		switch {
		case err == nil:
			notes = store
		case errors.Is(err, fs.ErrNotExist):
			a.logger.Debug("notes dir missing", slog.String("path", cfg.Notes))
		default:
			return nil, nil, fmt.Errorf("init notes storage: %w", err)
		}
	}

	return content.NewVault(posts, notes, content.Options{
		PostExtensions:    cfg.Extensions,
		NotesPublicPrefix: cfg.NotesPublicPrefix,
	}), notes, nil
}

// build runs the pipeline, publishes the plan and refreshes the search index.
func (a *application) build(ctx context.Context) (*pipeline.Result, error) {
	cfg := a.config

	src, assets, err := a.source()
	if err != nil {
		return nil, err
	}
	opts, err := a.pipelineOptions()
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Build(ctx, src, opts, a.logger)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Output.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(cfg.Output.Path)
	if err != nil {
		return nil, fmt.Errorf("init output storage: %w", err)
	}
	if _, err := publish.Sync(res.Plan, res.Notes, out, assets, a.logger); err != nil {
		return nil, err
	}

	if cfg.Output.SearchIndex {
		if err := a.index(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (a *application) index(res *pipeline.Result) error {
	db, err := searchindex.Open(a.config.Output.SearchPath())
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer db.Close()

	stats, err := db.Sync(searchindex.Rows(res.Index, res.Taxonomy, res.Notes, a.config.Site.DefaultCategory), a.logger)
	if err != nil {
		return err
	}
	a.logger.Info("search index synced",
		slog.Int("upserted", stats.Upserted),
		slog.Int("unchanged", stats.Unchanged),
		slog.Int("removed", stats.Removed))
	return nil
}
