// Package retry runs the proxied program until it succeeds or the retry
// budget is spent, giving every attempt its own fresh scratch directory.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/vertti/randomtemp/pkg/output"
)

// scratchPrefix starts every temporary directory name.
const scratchPrefix = ".tmp"

// ErrScratchDir indicates the scratch directory for an attempt could not be created.
var ErrScratchDir = errors.New("cannot create temporary directory")

// Launcher runs the child once with tempDir as its temp directory and
// returns its exit code. A non-nil error means the child never started.
type Launcher interface {
	Launch(ctx context.Context, tempDir string) (int, error)
}

// Attempt records one try.
type Attempt struct {
	Number   int    // 1-based
	TempDir  string // removed before the next attempt starts
	ExitCode int
}

// Loop owns the scratch directories and the retry decision.
type Loop struct {
	Launcher Launcher
	FS       afero.Fs // scratch directories are created and removed here
	BaseDir  string
	MaxTrial uint8        // additional attempts after the first
	Stdout   io.Writer    // receives the "Retry attempt: N" lines
	Logger   *slog.Logger // optional
}

// Run executes attempts until one exits 0 or 1+MaxTrial attempts have run,
// and returns the last exit code. Scratch-directory and launch failures
// abort immediately with an error and are not retried.
func (l *Loop) Run(ctx context.Context) (int, error) {
	for n := 1; ; n++ {
		if n > 1 {
			output.PrintRetry(l.Stdout, n-1)
		}
		attempt, err := l.runAttempt(ctx, n)
		if err != nil {
			return 1, err
		}
		if attempt.ExitCode == 0 || n > int(l.MaxTrial) {
			return attempt.ExitCode, nil
		}
	}
}

func (l *Loop) runAttempt(ctx context.Context, n int) (attempt Attempt, err error) {
	attempt.Number = n

	dir, err := afero.TempDir(l.FS, l.BaseDir, scratchPrefix)
	if err != nil {
		return attempt, fmt.Errorf("%w in %s: %w", ErrScratchDir, l.BaseDir, err)
	}
	attempt.TempDir = dir
	defer l.release(dir)

	l.logger().Debug("attempt started", "attempt", n, "tempdir", dir)

	attempt.ExitCode, err = l.Launcher.Launch(ctx, dir)
	if err != nil {
		return attempt, err
	}

	l.logger().Debug("attempt finished", "attempt", n, "exit_code", attempt.ExitCode)
	return attempt, nil
}

func (l *Loop) release(dir string) {
	if err := l.FS.RemoveAll(dir); err != nil {
		l.logger().Warn("failed to remove temporary directory", "tempdir", dir, "error", err)
		return
	}
	l.logger().Debug("removed temporary directory", "tempdir", dir)
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
