// Package exec launches the proxied program as a child process with its
// temp-directory variables pointed at a scratch directory.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrLaunch indicates the child process could not be started at all.
var ErrLaunch = errors.New("failed to execute process")

// Strategy builds the child command for one attempt. Strategies are chosen
// once per resolved program with Select.
type Strategy interface {
	Command(ctx context.Context, args, env []string) *exec.Cmd
}

// Direct runs an absolute program image with the arguments verbatim.
type Direct struct {
	Path string
}

// Command returns a command running d.Path directly.
func (d Direct) Command(ctx context.Context, args, env []string) *exec.Cmd {
	// #nosec G204 -- the program is the one this proxy stands in for.
	cmd := exec.CommandContext(ctx, d.Path, args...)
	cmd.Env = env
	return cmd
}

// Shell runs a bare command name through the platform command interpreter so
// builtins and names resolved at launch time keep working.
type Shell struct {
	Name string
}

// Command returns a command running s.Name through the shell.
func (s Shell) Command(ctx context.Context, args, env []string) *exec.Cmd {
	return shellCommand(ctx, s.Name, args, env)
}

// Select picks the launch strategy for a resolved program.
func Select(program string) Strategy {
	if filepath.IsAbs(program) {
		return Direct{Path: program}
	}
	return Shell{Name: program}
}

// ProcessLauncher runs the child with the proxy's own stdio.
type ProcessLauncher struct {
	Strategy Strategy
	Args     []string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Environ  func() []string // defaults to os.Environ
}

// Launch runs the child once with tempDir exposed through the temp-directory
// variables and waits for it. A child that exits without a numeric code is
// reported as 1. An error is returned only if the child could not be started.
func (l *ProcessLauncher) Launch(ctx context.Context, tempDir string) (int, error) {
	env := WithTempDir(l.environ(), tempDir)
	cmd := l.Strategy.Command(ctx, l.Args, env)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return exitCode(cmd.Run())
}

func (l *ProcessLauncher) environ() []string {
	if l.Environ != nil {
		return l.Environ()
	}
	return environ()
}

// environ returns the current environment.
func environ() []string {
	return os.Environ()
}

// TempEnvVars returns the variable names that carry the temp directory on
// this platform.
func TempEnvVars() []string {
	return append([]string(nil), tempEnvVars...)
}

// WithTempDir returns a copy of env in which every temp-directory variable is
// set to dir.
func WithTempDir(env []string, dir string) []string {
	out := make([]string, 0, len(env)+len(tempEnvVars))
	for _, kv := range env {
		key, _, _ := strings.Cut(kv, "=")
		if !isTempEnvVar(key) {
			out = append(out, kv)
		}
	}
	for _, name := range tempEnvVars {
		out = append(out, name+"="+dir)
	}
	return out
}

func isTempEnvVar(key string) bool {
	for _, name := range tempEnvVars {
		if key == name || (foldEnvKeys && strings.EqualFold(key, name)) {
			return true
		}
	}
	return false
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("%w: %w", ErrLaunch, err)
}
