package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jgivc/sitebundle/internal/common"
	"github.com/jgivc/sitebundle/internal/entity"
)

type CommandRunner interface {
	Run(ctx context.Context, command, dir string, policy entity.StderrPolicy) (string, error)
}

type SiteResolver interface {
	Resolve(site *entity.Site) *entity.ResolvedSite
}

type SiteBuilder interface {
	Prepare(ctx context.Context, resolved *entity.ResolvedSite, site *entity.Site) error
}

type IndexRenderer interface {
	Render(reports []*entity.SiteReport) error
}

type SiteMapService struct {
	runner     CommandRunner
	resolver   SiteResolver
	builder    SiteBuilder
	index      IndexRenderer
	outputRoot string
	workDir    string
	log        *slog.Logger
}

func NewSiteMapService(runner CommandRunner, resolver SiteResolver, builder SiteBuilder, outputRoot, workDir string, log *slog.Logger) *SiteMapService {
	return &SiteMapService{
		runner:     runner,
		resolver:   resolver,
		builder:    builder,
		outputRoot: outputRoot,
		workDir:    workDir,
		log:        log.With(slog.String("item", "SiteMapService")),
	}
}

// WithIndexRenderer sets the renderer called after every site has been prepared.
func (s *SiteMapService) WithIndexRenderer(index IndexRenderer) *SiteMapService {
	s.index = index

	return s
}

// Run recreates the output folder and prepares the sites one by one in sitemap order.
// It stops at the first failure and returns the reports of the sites prepared so far.
func (s *SiteMapService) Run(ctx context.Context, sites []*entity.Site) ([]*entity.SiteReport, error) {
	log := s.log.With(slog.String("output", s.outputRoot))
	log.Info("Preparing sitemap", slog.Int("sites", len(sites)))

	if err := s.resetOutput(ctx); err != nil {
		log.Error("Cannot reset output folder", slog.Any("error", err))

		return nil, err
	}

	reports := make([]*entity.SiteReport, 0, len(sites))
	for i, site := range sites {
		start := time.Now()
		resolved := s.resolver.Resolve(site)

		if err := s.builder.Prepare(ctx, resolved, site); err != nil {
			log.Error("Cannot prepare site", slog.Int("n", i), slog.String("source", site.Source), slog.Any("error", err))

			return reports, fmt.Errorf("cannot prepare site %s: %w", site.Source, err)
		}

		reports = append(reports, &entity.SiteReport{
			Source:      site.Source,
			BasePath:    resolved.BasePath,
			Destination: resolved.Destination,
			Application: site.Application,
			Duration:    time.Since(start),
		})
	}

	if s.index != nil {
		if err := s.index.Render(reports); err != nil {
			log.Error("Cannot render index page", slog.Any("error", err))

			return reports, fmt.Errorf("cannot render index page: %w", err)
		}
	}

	log.Info("Done preparing sitemap")

	return reports, nil
}

func (s *SiteMapService) resetOutput(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, "rm -rf "+s.outputRoot, s.workDir, entity.StderrFail); err != nil {
		return &common.OutputFolderCleanupError{Path: s.outputRoot, Err: err}
	}

	if _, err := s.runner.Run(ctx, "mkdir -p "+s.outputRoot, s.workDir, entity.StderrLog); err != nil {
		return fmt.Errorf("cannot create output folder %s: %w", s.outputRoot, err)
	}

	return nil
}
