//go:build !windows

package exec

import (
	"context"
	"os/exec"
)

var tempEnvVars = []string{"TMPDIR"}

const foldEnvKeys = false

// shellCommand runs name through sh. The script forwards "$@" so every
// argument reaches the program as a single word; name is passed again as $0
// for diagnostics.
func shellCommand(ctx context.Context, name string, args, env []string) *exec.Cmd {
	argv := append([]string{"-c", name + ` "$@"`, name}, args...)
	// #nosec G204 -- name comes from the proxy's own configuration.
	cmd := exec.CommandContext(ctx, "sh", argv...)
	cmd.Env = env
	return cmd
}
