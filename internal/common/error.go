package common

import (
	"fmt"
	"strings"
)

var (
	ErrStderrOutput   = fmt.Errorf("command wrote to stderr")
	ErrInvalidSiteMap = fmt.Errorf("invalid sitemap")
)

// CommandExecutionError is returned when a command cannot be started or exits with a non-zero status.
type CommandExecutionError struct {
	Command string
	Dir     string
	Stderr  string
	Err     error
}

func (e *CommandExecutionError) Error() string {
	msg := fmt.Sprintf("command %q in %s failed: %v", e.Command, e.Dir, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// OutputFolderCleanupError is returned when the output folder cannot be removed.
type OutputFolderCleanupError struct {
	Path string
	Err  error
}

func (e *OutputFolderCleanupError) Error() string {
	return fmt.Sprintf("cannot clean up %s folder, please check write permissions: %v", e.Path, e.Err)
}

func (e *OutputFolderCleanupError) Unwrap() error {
	return e.Err
}

// BuildVerificationError is returned when the build command finished but left no output directory.
type BuildVerificationError struct {
	SourceDir string
	OutputDir string
}

func (e *BuildVerificationError) Error() string {
	return fmt.Sprintf("application on %s was not built correctly: %s not found", e.SourceDir, e.OutputDir)
}
