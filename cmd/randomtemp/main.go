package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the proxy with args forwarded verbatim and returns the
// process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

// newRootCmd builds the single command. Flag parsing is disabled: every
// argument belongs to the proxied program.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "randomtemp [args...]",
		Short: "Run a program with a fresh temporary directory, retrying on failure",
		Long: `randomtemp stands in for another program. Each run creates a new,
uniquely named temporary directory, points TMPDIR (TEMP and TMP on Windows)
at it, runs the real program with the same arguments and retries with a new
directory when the program fails.

Environment:
  RANDOMTEMP_EXECUTABLE  program to run instead of the one named like this binary
  RANDOMTEMP_BASEDIR     directory temporary directories are created in (default: cwd)
  RANDOMTEMP_MAXTRIAL    retries after the first attempt, 0..255 (default: 3)
  RANDOMTEMP_LOG_LEVEL   debug, info, warn or error (default: warn)
  RANDOMTEMP_LOG_FORMAT  text or json (default: text)`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               runProxy,
	}
}

func init() {
	// randomtemp is routinely started by build tools rather than a shell.
	cobra.MousetrapHelpText = ""
}
