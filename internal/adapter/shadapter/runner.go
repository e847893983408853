package shadapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/jgivc/sitebundle/internal/common"
	"github.com/jgivc/sitebundle/internal/entity"
)

const (
	defaultShell = "sh"
)

type runner struct {
	shell string
	log   *slog.Logger
}

func NewRunner(shell string, log *slog.Logger) *runner {
	if shell == "" {
		shell = defaultShell
	}

	return &runner{
		shell: shell,
		log:   log.With(slog.String("item", "CommandRunner")),
	}
}

// Run executes command with dir as working directory and returns its stdout.
// Stdout is returned even when an error caused by stderr output is reported.
func (r *runner) Run(ctx context.Context, command, dir string, policy entity.StderrPolicy) (string, error) {
	log := r.log.With(slog.String("command", command), slog.String("dir", dir))
	log.Debug("Run command", slog.String("policy", policy.String()))

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Error("Command failed", slog.Any("error", err))

		return stdout.String(), &common.CommandExecutionError{
			Command: command,
			Dir:     dir,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	if stderr.Len() > 0 {
		text := strings.TrimSpace(stderr.String())

		if policy == entity.StderrFail {
			return stdout.String(), fmt.Errorf("%w: %s", common.ErrStderrOutput, text)
		}

		log.Warn("Command stderr", slog.String("stderr", text))
	}

	return stdout.String(), nil
}
