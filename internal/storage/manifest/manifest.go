package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jgivc/sitebundle/internal/common"
	"github.com/jgivc/sitebundle/internal/entity"
	"github.com/jgivc/sitebundle/internal/service/resolver"
	"github.com/jgivc/sitebundle/internal/util"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const (
	extYAML = ".yaml"
	extYML  = ".yml"
)

type siteMapStorage struct {
	fs  afero.Fs
	log *slog.Logger
}

func NewSiteMapStorage(log *slog.Logger) *siteMapStorage {
	return NewSiteMapStorageWithFS(afero.NewOsFs(), log)
}

func NewSiteMapStorageWithFS(fs afero.Fs, log *slog.Logger) *siteMapStorage {
	return &siteMapStorage{
		fs:  fs,
		log: log.With(slog.String("item", "SiteMapStorage")),
	}
}

// Load reads and validates the sitemap. Files with a .yml or .yaml extension are parsed as YAML, anything else as JSON.
func (s *siteMapStorage) Load(path string) ([]*entity.Site, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read sitemap: %w", err)
	}

	var sites []*entity.Site

	switch strings.ToLower(filepath.Ext(path)) {
	case extYAML, extYML:
		if err := yaml.UnmarshalStrict(data, &sites); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidSiteMap, path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sites); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidSiteMap, path, err)
		}
	}

	if err := s.validate(sites); err != nil {
		return nil, err
	}

	s.log.Info("Load sitemap", slog.String("path", path), slog.Int("sites", len(sites)), slog.String("digest", util.GetIDFromBytes(data)))

	return sites, nil
}

func (s *siteMapStorage) validate(sites []*entity.Site) error {
	var errs []error
	seen := make(map[string]int, len(sites))

	for i, site := range sites {
		if site == nil {
			errs = append(errs, fmt.Errorf("site %d: empty entry", i))

			continue
		}

		if strings.TrimSpace(site.Source) == "" {
			errs = append(errs, fmt.Errorf("site %d: source is required", i))
		}

		basePath := filepath.Clean(resolver.NormalizeBasePath(site.BasePath))
		switch {
		case strings.TrimSpace(site.BasePath) == "" || basePath == ".":
			errs = append(errs, fmt.Errorf("site %d: basePath is required", i))
		case filepath.IsAbs(basePath):
			errs = append(errs, fmt.Errorf("site %d: basePath %q must be relative", i, site.BasePath))
		case basePath == ".." || strings.HasPrefix(basePath, ".."+string(filepath.Separator)):
			errs = append(errs, fmt.Errorf("site %d: basePath %q leaves the output folder", i, site.BasePath))
		case strings.Contains(basePath, string(filepath.Separator)):
			errs = append(errs, fmt.Errorf("site %d: basePath %q must be a single folder", i, site.BasePath))
		}

		if site.Production && !site.Application {
			s.log.Warn("productionEnv is ignored for static sites", slog.String("source", site.Source))
		}

		if prev, exists := seen[basePath]; exists {
			s.log.Warn("Sites share the same basePath, the later one wins",
				slog.String("base_path", basePath), slog.Int("first", prev), slog.Int("second", i))
		}
		seen[basePath] = i
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidSiteMap, errors.Join(errs...))
	}

	return nil
}
