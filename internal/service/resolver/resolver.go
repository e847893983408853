package resolver

import (
	"path/filepath"
	"strings"

	"github.com/jgivc/sitebundle/internal/entity"
)

const (
	pathSeparator = "/"
)

type pathResolver struct {
	projectRoot string
	outputRoot  string
}

func NewPathResolver(projectRoot, outputRoot string) *pathResolver {
	return &pathResolver{
		projectRoot: projectRoot,
		outputRoot:  outputRoot,
	}
}

// Resolve computes the paths of a site. The destination is joined with the
// original base path, the normalized one is used only for build flags.
func (r *pathResolver) Resolve(site *entity.Site) *entity.ResolvedSite {
	return &entity.ResolvedSite{
		BasePath:    NormalizeBasePath(site.BasePath),
		Source:      filepath.Join(r.projectRoot, site.Source),
		Destination: filepath.Join(r.outputRoot, site.BasePath),
	}
}

// NormalizeBasePath strips a single leading separator.
func NormalizeBasePath(basePath string) string {
	return strings.TrimPrefix(basePath, pathSeparator)
}
