package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jgivc/sitebundle/internal/adapter/mdadapter"
	"github.com/jgivc/sitebundle/internal/adapter/shadapter"
	"github.com/jgivc/sitebundle/internal/config"
	"github.com/jgivc/sitebundle/internal/entity"
	"github.com/jgivc/sitebundle/internal/service/builder"
	"github.com/jgivc/sitebundle/internal/service/resolver"
	"github.com/jgivc/sitebundle/internal/service/sitemap"
	"github.com/jgivc/sitebundle/internal/storage/manifest"
)

type Options struct {
	ConfigPath string
	SiteMap    string
	Verbose    bool
	Out        io.Writer // Run summary, os.Stdout if nil
}

type App struct {
	opts Options
	cfg  *config.Config
	log  *slog.Logger
}

func New(opts Options) *App {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &App{
		opts: opts,
	}
}

// Run loads the config and the sitemap and builds the output folder. It blocks until every site is prepared.
func (a *App) Run(ctx context.Context) error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	if a.opts.SiteMap != "" {
		cfg.SiteMap = a.opts.SiteMap
	}
	a.cfg = cfg

	lo := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	}
	if a.opts.Verbose {
		lo.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo)).With(slog.String("run_id", uuid.NewString()))
	a.log = log

	sites, err := manifest.NewSiteMapStorage(log).Load(cfg.SiteMapPath())
	if err != nil {
		return fmt.Errorf("cannot load sitemap: %w", err)
	}

	srv, err := a.newSiteMapService()
	if err != nil {
		return err
	}

	log.Info("Start", slog.String("project_root", cfg.ProjectRoot), slog.String("output", cfg.OutputRoot()))

	reports, err := srv.Run(ctx, sites)
	a.printReports(reports)
	if err != nil {
		return err
	}

	return nil
}

func (a *App) newSiteMapService() (*sitemap.SiteMapService, error) {
	runner := shadapter.NewRunner(a.cfg.Shell, a.log)
	res := resolver.NewPathResolver(a.cfg.ProjectRoot, a.cfg.OutputRoot())
	b := builder.NewSiteBuilder(runner, &a.cfg.BuildConfig, a.cfg.ProjectRoot, a.log)

	srv := sitemap.NewSiteMapService(runner, res, b, a.cfg.OutputRoot(), a.cfg.ProjectRoot, a.log)

	if a.cfg.IndexConfig.Enabled() {
		target := filepath.Join(a.cfg.OutputRoot(), a.cfg.IndexConfig.FileName)

		index, err := mdadapter.NewIndexRenderer(a.cfg.IndexSourcePath(), target, a.log)
		if err != nil {
			return nil, fmt.Errorf("cannot create index renderer: %w", err)
		}

		srv.WithIndexRenderer(index)
	}

	return srv, nil
}

func (a *App) printReports(reports []*entity.SiteReport) {
	for i, r := range reports {
		mode := "static"
		if r.Application {
			mode = "application"
		}

		fmt.Fprintf(a.opts.Out, "%d. %s -> %s (%s, %s)\n", i+1, r.Source, r.Destination, mode, r.Duration.Round(time.Millisecond))
	}
}
