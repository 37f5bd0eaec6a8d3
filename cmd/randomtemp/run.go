package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vertti/randomtemp/pkg/config"
	"github.com/vertti/randomtemp/pkg/exec"
	"github.com/vertti/randomtemp/pkg/output"
	"github.com/vertti/randomtemp/pkg/resolve"
	"github.com/vertti/randomtemp/pkg/retry"
)

// exitError carries a non-zero exit code out of cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Seams for tests.
var (
	executablePath = os.Executable
	newFS          = afero.NewOsFs
	searcher       resolve.Searcher = resolve.RealSearcher{}
)

// runProxy resolves the real program and runs it under the retry loop.
// Fatal errors are printed once to stderr and exit 1.
func runProxy(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	fs := newFS()

	cfg, err := config.Load(fs)
	if err != nil {
		return fail(cmd, err)
	}
	logger := newLogger(cfg, stderr)
	logger.Debug("randomtemp starting", "version", Version, "basedir", cfg.BaseDir, "maxtrial", cfg.MaxTrial)

	self, err := executablePath()
	if err != nil {
		return fail(cmd, fmt.Errorf("cannot get the current working executable: %w", err))
	}

	r := &resolve.Resolver{Self: self, Searcher: searcher}
	program, err := r.Resolve(cfg.Executable)
	if err != nil {
		return fail(cmd, err)
	}
	strategy := exec.Select(program)
	logger.Debug("resolved program", "program", program, "strategy", fmt.Sprintf("%T", strategy))

	loop := &retry.Loop{
		Launcher: &exec.ProcessLauncher{
			Strategy: strategy,
			Args:     args,
			Stdin:    cmd.InOrStdin(),
			Stdout:   cmd.OutOrStdout(),
			Stderr:   stderr,
		},
		FS:       fs,
		BaseDir:  cfg.BaseDir,
		MaxTrial: cfg.MaxTrial,
		Stdout:   cmd.OutOrStdout(),
		Logger:   logger,
	}

	code, err := loop.Run(cmd.Context())
	if err != nil {
		return fail(cmd, err)
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func fail(cmd *cobra.Command, err error) error {
	output.PrintError(cmd.ErrOrStderr(), err)
	return &exitError{code: 1}
}
