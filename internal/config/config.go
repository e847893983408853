package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	defaultProjectRoot    = "."
	defaultOutputFolder   = "public"
	defaultSiteMap        = "sitemap.json"
	defaultShell          = "sh"
	defaultInstallCommand = "npm i"
	defaultBuildCommand   = "ng build"
	defaultBuildOutputDir = "dist"
	defaultIndexFileName  = "index.html"
)

type BuildConfig struct {
	InstallCommand string `yaml:"install_command"`
	Command        string `yaml:"command"`
	OutputDir      string `yaml:"output_dir"`
}

type IndexConfig struct {
	Source   string `yaml:"source"`
	FileName string `yaml:"filename"`
}

// Enabled reports whether a landing page should be rendered into the output root.
func (c *IndexConfig) Enabled() bool {
	return c.Source != ""
}

type Config struct {
	ProjectRoot  string      `yaml:"project_root"`
	OutputFolder string      `yaml:"output_folder"`
	SiteMap      string      `yaml:"sitemap"`
	LogLevel     string      `yaml:"log_level"`
	Shell        string      `yaml:"shell"`
	BuildConfig  BuildConfig `yaml:"build"`
	IndexConfig  IndexConfig `yaml:"index"`
}

func (c *Config) SetDefaults() {
	if c.ProjectRoot == "" {
		c.ProjectRoot = defaultProjectRoot
	}

	if c.OutputFolder == "" {
		c.OutputFolder = defaultOutputFolder
	}

	if c.SiteMap == "" {
		c.SiteMap = defaultSiteMap
	}

	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}

	if c.Shell == "" {
		c.Shell = defaultShell
	}

	if c.BuildConfig.InstallCommand == "" {
		c.BuildConfig.InstallCommand = defaultInstallCommand
	}

	if c.BuildConfig.Command == "" {
		c.BuildConfig.Command = defaultBuildCommand
	}

	if c.BuildConfig.OutputDir == "" {
		c.BuildConfig.OutputDir = defaultBuildOutputDir
	}

	if c.IndexConfig.FileName == "" {
		c.IndexConfig.FileName = defaultIndexFileName
	}
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}

	out := filepath.Clean(c.OutputFolder)
	if out == "." || filepath.IsAbs(out) || out == ".." || strings.HasPrefix(out, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output folder must be a folder inside the project root: %q", c.OutputFolder)
	}

	if c.BuildConfig.OutputDir == "" || filepath.IsAbs(c.BuildConfig.OutputDir) {
		return fmt.Errorf("build output dir must be relative to the application sources: %q", c.BuildConfig.OutputDir)
	}

	return nil
}

// OutputRoot is the absolute path of the output folder.
func (c *Config) OutputRoot() string {
	return filepath.Join(c.ProjectRoot, c.OutputFolder)
}

// SiteMapPath is the sitemap location, relative paths are taken from the project root.
func (c *Config) SiteMapPath() string {
	return c.resolve(c.SiteMap)
}

func (c *Config) IndexSourcePath() string {
	if !c.IndexConfig.Enabled() {
		return ""
	}

	return c.resolve(c.IndexConfig.Source)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.ProjectRoot, path)
}
