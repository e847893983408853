package builder

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jgivc/sitebundle/internal/common"
	"github.com/jgivc/sitebundle/internal/config"
	"github.com/jgivc/sitebundle/internal/entity"
	"github.com/spf13/afero"
)

const (
	copyCommand = "cp -r"
)

type CommandRunner interface {
	Run(ctx context.Context, command, dir string, policy entity.StderrPolicy) (string, error)
}

type siteBuilder struct {
	runner  CommandRunner
	fs      afero.Fs
	cfg     *config.BuildConfig
	workDir string
	log     *slog.Logger
}

// NewSiteBuilder creates a builder, copy commands are run in workDir.
func NewSiteBuilder(runner CommandRunner, cfg *config.BuildConfig, workDir string, log *slog.Logger) *siteBuilder {
	return NewSiteBuilderWithFS(afero.NewOsFs(), runner, cfg, workDir, log)
}

func NewSiteBuilderWithFS(fs afero.Fs, runner CommandRunner, cfg *config.BuildConfig, workDir string, log *slog.Logger) *siteBuilder {
	return &siteBuilder{
		runner:  runner,
		fs:      fs,
		cfg:     cfg,
		workDir: workDir,
		log:     log.With(slog.String("item", "SiteBuilder")),
	}
}

func (b *siteBuilder) Prepare(ctx context.Context, resolved *entity.ResolvedSite, site *entity.Site) error {
	log := b.log.With(slog.String("source", site.Source), slog.String("base_path", site.BasePath))
	log.Info("Preparing site", slog.Bool("application", site.Application))

	if site.Application {
		if err := b.BuildApp(ctx, resolved.Source, resolved.BasePath, site.Production); err != nil {
			return err
		}

		buildDir := filepath.Join(resolved.Source, b.cfg.OutputDir)
		if err := b.copyDir(ctx, buildDir, resolved.Destination); err != nil {
			return fmt.Errorf("cannot copy build output: %w", err)
		}
	} else {
		if err := b.copyDir(ctx, resolved.Source, resolved.Destination); err != nil {
			return fmt.Errorf("cannot copy site files: %w", err)
		}
	}

	log.Info("Done preparing site")

	return nil
}

// BuildApp installs the application dependencies and builds it, then checks the build output exists.
func (b *siteBuilder) BuildApp(ctx context.Context, sourceDir, basePath string, production bool) error {
	log := b.log.With(slog.String("dir", sourceDir))

	log.Info("Installing dependencies", slog.String("command", b.cfg.InstallCommand))
	if _, err := b.runner.Run(ctx, b.cfg.InstallCommand, sourceDir, entity.StderrLog); err != nil {
		return fmt.Errorf("cannot install dependencies: %w", err)
	}

	command := b.BuildCommand(basePath, production)

	log.Info("Building application", slog.String("command", command))
	if _, err := b.runner.Run(ctx, command, sourceDir, entity.StderrLog); err != nil {
		return fmt.Errorf("cannot build application: %w", err)
	}

	outputDir := filepath.Join(sourceDir, b.cfg.OutputDir)
	ok, err := afero.DirExists(b.fs, outputDir)
	if err != nil {
		log.Error("Cannot check build output", slog.String("path", outputDir), slog.Any("error", err))
	}

	if !ok {
		return &common.BuildVerificationError{SourceDir: sourceDir, OutputDir: outputDir}
	}

	log.Info("Done building application")

	return nil
}

func (b *siteBuilder) BuildCommand(basePath string, production bool) string {
	return b.cfg.Command + " " + strings.Join(BuildFlags(basePath, production), " ")
}

func (b *siteBuilder) copyDir(ctx context.Context, src, dst string) error {
	_, err := b.runner.Run(ctx, fmt.Sprintf("%s %s/ %s", copyCommand, src, dst), b.workDir, entity.StderrLog)

	return err
}
