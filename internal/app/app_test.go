package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunSiteMapOverride(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yml")

	writeFile(t, cfgPath, "project_root: "+root+"\nlog_level: error\n")
	writeFile(t, filepath.Join(root, "sitemap.json"), `[{"source": "missing", "basePath": "/missing"}]`)
	writeFile(t, filepath.Join(root, "other.json"), `[{"source": "sites/home", "basePath": "/home"}]`)
	writeFile(t, filepath.Join(root, "sites", "home", "index.html"), "home page")

	var out bytes.Buffer
	a := New(Options{ConfigPath: cfgPath, SiteMap: "other.json", Out: &out})
	require.NoError(t, a.Run(context.Background()))

	content, err := os.ReadFile(filepath.Join(root, "public", "home", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "home page", string(content))

	require.Contains(t, out.String(), "1. sites/home -> "+filepath.Join(root, "public", "home")+" (static, ")
}

func TestRunReportsFailure(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yml")

	writeFile(t, cfgPath, "project_root: "+root+"\nlog_level: error\n")
	writeFile(t, filepath.Join(root, "sitemap.json"), `[
		{"source": "sites/home", "basePath": "/home"},
		{"source": "missing", "basePath": "/missing"}
	]`)
	writeFile(t, filepath.Join(root, "sites", "home", "index.html"), "home page")

	var out bytes.Buffer
	err := New(Options{ConfigPath: cfgPath, Out: &out}).Run(context.Background())
	require.ErrorContains(t, err, "cannot prepare site missing")

	require.Contains(t, out.String(), "1. sites/home -> ")
	require.NotContains(t, out.String(), "2. ")
}

func TestRunMissingSiteMap(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yml")
	writeFile(t, cfgPath, "project_root: "+root+"\nlog_level: error\n")

	err := New(Options{ConfigPath: cfgPath, SiteMap: "none.json"}).Run(context.Background())
	require.ErrorContains(t, err, "cannot load sitemap")

	_, statErr := os.Stat(filepath.Join(root, "public"))
	require.True(t, os.IsNotExist(statErr))
}
