//go:build windows

package exec

import (
	"context"
	"os/exec"
)

// Toolchains disagree on which of the two they read.
var tempEnvVars = []string{"TEMP", "TMP"}

const foldEnvKeys = true

// CommandLineVar carries the quoted command line into cmd so it is not
// re-escaped on the way in.
const CommandLineVar = "RANDOMTEMP_COMMANDLINE"

// shellCommand runs name through cmd /q /c.
func shellCommand(ctx context.Context, name string, args, env []string) *exec.Cmd {
	env = append(env, CommandLineVar+"="+CommandLine(name, args))
	// #nosec G204 -- name comes from the proxy's own configuration.
	cmd := exec.CommandContext(ctx, "cmd", "/q", "/c", "%"+CommandLineVar+"%")
	cmd.Env = env
	return cmd
}
