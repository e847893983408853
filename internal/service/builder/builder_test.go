package builder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/jgivc/sitebundle/internal/common"
	"github.com/jgivc/sitebundle/internal/config"
	"github.com/jgivc/sitebundle/internal/entity"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, command, dir string, policy entity.StderrPolicy) (string, error) {
	args := m.Called(ctx, command, dir, policy)

	return args.String(0), args.Error(1)
}

func newTestConfig() *config.BuildConfig {
	cfg := &config.Config{}
	cfg.SetDefaults()

	return &cfg.BuildConfig
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPrepareStaticSite(t *testing.T) {
	runner := &MockCommandRunner{}
	runner.On("Run", mock.Anything, "cp -r /project/static/ /project/public/foo", "/project", entity.StderrLog).Return("", nil).Once()

	b := NewSiteBuilderWithFS(afero.NewMemMapFs(), runner, newTestConfig(), "/project", newTestLogger())

	err := b.Prepare(context.Background(), &entity.ResolvedSite{
		BasePath:    "foo",
		Source:      "/project/static",
		Destination: "/project/public/foo",
	}, &entity.Site{Source: "static", BasePath: "/foo"})
	require.NoError(t, err)

	runner.AssertExpectations(t)
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestPrepareApplicationSite(t *testing.T) {
	for _, production := range []bool{false, true} {
		t.Run(map[bool]string{false: "development", true: "production"}[production], func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll("/project/app/dist", os.ModeDir))

			var buildCommand string
			runner := &MockCommandRunner{}
			runner.On("Run", mock.Anything, "npm i", "/project/app", entity.StderrLog).Return("", nil).Once()
			runner.On("Run", mock.Anything, mock.MatchedBy(func(cmd string) bool { return strings.HasPrefix(cmd, "ng build ") }), "/project/app", entity.StderrLog).
				Run(func(args mock.Arguments) { buildCommand = args.String(1) }).
				Return("", nil).Once()
			runner.On("Run", mock.Anything, "cp -r /project/app/dist/ /project/public/foo", "/project", entity.StderrLog).Return("", nil).Once()

			b := NewSiteBuilderWithFS(fs, runner, newTestConfig(), "/project", newTestLogger())

			err := b.Prepare(context.Background(), &entity.ResolvedSite{
				BasePath:    "foo",
				Source:      "/project/app",
				Destination: "/project/public/foo",
			}, &entity.Site{Source: "app", BasePath: "/foo", Application: true, Production: production})
			require.NoError(t, err)

			runner.AssertExpectations(t)
			require.Equal(t, "install", callKind(runner.Calls[0]))
			require.Equal(t, "build", callKind(runner.Calls[1]))
			require.Equal(t, "copy", callKind(runner.Calls[2]))

			for _, flag := range []string{
				"--baseHref=/foo/", "--deployUrl=/foo/",
				"--aot", "--optimization", "--buildOptimizer",
				"--outputHashing=all", "--namedChunks=false", "--vendorChunk=false",
				"--sourceMap=false", "--extractLicenses", "--extractCss",
			} {
				require.Contains(t, strings.Fields(buildCommand), flag)
			}
			require.Equal(t, production, strings.Contains(buildCommand, "--prod"))
		})
	}
}

func TestPrepareApplicationWithoutOutput(t *testing.T) {
	runner := &MockCommandRunner{}
	runner.On("Run", mock.Anything, "npm i", "/project/app", entity.StderrLog).Return("", nil).Once()
	runner.On("Run", mock.Anything, mock.AnythingOfType("string"), "/project/app", entity.StderrLog).Return("", nil).Once()

	b := NewSiteBuilderWithFS(afero.NewMemMapFs(), runner, newTestConfig(), "/project", newTestLogger())

	err := b.Prepare(context.Background(), &entity.ResolvedSite{
		BasePath:    "foo",
		Source:      "/project/app",
		Destination: "/project/public/foo",
	}, &entity.Site{Source: "app", BasePath: "foo", Application: true})

	var verifyErr *common.BuildVerificationError
	require.ErrorAs(t, err, &verifyErr)
	require.Equal(t, "/project/app/dist", verifyErr.OutputDir)

	runner.AssertNumberOfCalls(t, "Run", 2)
	for _, call := range runner.Calls {
		require.NotEqual(t, "copy", callKind(call))
	}
}

func TestPrepareApplicationInstallFails(t *testing.T) {
	installErr := &common.CommandExecutionError{Command: "npm i", Dir: "/project/app", Err: errors.New("exit status 1")}

	runner := &MockCommandRunner{}
	runner.On("Run", mock.Anything, "npm i", "/project/app", entity.StderrLog).Return("", installErr).Once()

	b := NewSiteBuilderWithFS(afero.NewMemMapFs(), runner, newTestConfig(), "/project", newTestLogger())

	err := b.Prepare(context.Background(), &entity.ResolvedSite{
		Source:      "/project/app",
		Destination: "/project/public/app",
		BasePath:    "app",
	}, &entity.Site{Source: "app", BasePath: "app", Application: true})

	require.ErrorIs(t, err, installErr)
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestBuildCommandCustomTool(t *testing.T) {
	cfg := newTestConfig()
	cfg.Command = "npx ng build"

	b := NewSiteBuilderWithFS(afero.NewMemMapFs(), &MockCommandRunner{}, cfg, "/", newTestLogger())

	require.Equal(t,
		"npx ng build --baseHref=/a/b/ --deployUrl=/a/b/ --aot --optimization --buildOptimizer "+
			"--outputHashing=all --namedChunks=false --vendorChunk=false --sourceMap=false --extractLicenses --extractCss --prod",
		b.BuildCommand("a/b", true),
	)
}

func callKind(call mock.Call) string {
	cmd := call.Arguments.String(1)

	switch {
	case cmd == "npm i":
		return "install"
	case strings.HasPrefix(cmd, "ng build"):
		return "build"
	case strings.HasPrefix(cmd, "cp -r"):
		return "copy"
	}

	return "unknown"
}
