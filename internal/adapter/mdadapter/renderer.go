package mdadapter

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/jgivc/sitebundle/internal/entity"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

const (
	defaultTitle = "Sites"
	filePerm     = 0o644
)

//go:embed index.html
var defaultIndexContent string

type Frontmatter struct {
	Title string `yaml:"title"`
}

type PageContext struct {
	Title       string
	ContentHTML template.HTML
	Sites       []*entity.SiteReport
}

type indexRenderer struct {
	fs     afero.Fs
	md     goldmark.Markdown
	tmpl   *template.Template
	source string
	target string

	log *slog.Logger
}

// NewIndexRenderer creates a renderer converting the markdown file source into the html page target.
func NewIndexRenderer(source, target string, log *slog.Logger) (*indexRenderer, error) {
	return NewIndexRendererWithFS(afero.NewOsFs(), source, target, log)
}

func NewIndexRendererWithFS(fs afero.Fs, source, target string, log *slog.Logger) (*indexRenderer, error) {
	tmpl, err := template.New("index").Parse(defaultIndexContent)
	if err != nil {
		return nil, fmt.Errorf("cannot parse index template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &indexRenderer{
		fs:     fs,
		md:     md,
		tmpl:   tmpl,
		source: source,
		target: target,
		log:    log.With(slog.String("item", "IndexRenderer")),
	}, nil
}

// Render writes the index page listing the prepared sites. An existing page is left untouched.
func (r *indexRenderer) Render(reports []*entity.SiteReport) error {
	log := r.log.With(slog.String("source", r.source), slog.String("target", r.target))

	exists, err := afero.Exists(r.fs, r.target)
	if err != nil {
		return fmt.Errorf("cannot check index page: %w", err)
	}

	if exists {
		log.Warn("Index page already exists, skip")

		return nil
	}

	data, err := afero.ReadFile(r.fs, r.source)
	if err != nil {
		return fmt.Errorf("cannot read index source: %w", err)
	}

	pc := parser.NewContext()

	var buf bytes.Buffer
	if err := r.md.Convert(data, &buf, parser.WithContext(pc)); err != nil {
		return fmt.Errorf("cannot convert markdown: %w", err)
	}

	page := &PageContext{
		Title:       defaultTitle,
		ContentHTML: template.HTML(buf.String()),
		Sites:       reports,
	}

	if fm := frontmatter.Get(pc); fm != nil {
		var meta Frontmatter
		if err := fm.Decode(&meta); err != nil {
			return fmt.Errorf("cannot decode frontmatter: %w", err)
		}

		if meta.Title != "" {
			page.Title = meta.Title
		}
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, page); err != nil {
		return fmt.Errorf("cannot execute index template: %w", err)
	}

	if err := r.fs.MkdirAll(filepath.Dir(r.target), os.ModePerm); err != nil {
		return fmt.Errorf("cannot create index folder: %w", err)
	}

	if err := afero.WriteFile(r.fs, r.target, out.Bytes(), filePerm); err != nil {
		return fmt.Errorf("cannot write index page: %w", err)
	}

	log.Info("Index page written", slog.Int("sites", len(reports)))

	return nil
}
