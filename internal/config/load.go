package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	envFileName = ".env"

	EnvProjectRoot  = "SITEBUNDLE_PROJECT_ROOT"
	EnvOutputFolder = "SITEBUNDLE_OUTPUT_FOLDER"
	EnvSiteMap      = "SITEBUNDLE_SITEMAP"
	EnvLogLevel     = "SITEBUNDLE_LOG_LEVEL"
	EnvShell        = "SITEBUNDLE_SHELL"
)

// Load reads the config file, applies the environment on top of it and fills in defaults.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(envFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot load %s file: %w", envFileName, err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.SetDefaults()

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot get project root absolute path: %w", err)
	}
	cfg.ProjectRoot = root

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	for name, field := range map[string]*string{
		EnvProjectRoot:  &c.ProjectRoot,
		EnvOutputFolder: &c.OutputFolder,
		EnvSiteMap:      &c.SiteMap,
		EnvLogLevel:     &c.LogLevel,
		EnvShell:        &c.Shell,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}
}
