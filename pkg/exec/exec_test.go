package exec

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestStrategyInterface(t *testing.T) {
	var _ Strategy = Direct{}
	var _ Strategy = Shell{}
}

func TestSelect(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "gcc")

	tests := []struct {
		name    string
		program string
		want    Strategy
	}{
		{"absolute path", abs, Direct{Path: abs}},
		{"bare name", "gcc", Shell{Name: "gcc"}},
		{"relative path", filepath.Join("bin", "gcc"), Shell{Name: filepath.Join("bin", "gcc")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.program); got != tt.want {
				t.Errorf("Select(%q) = %#v, want %#v", tt.program, got, tt.want)
			}
		})
	}
}

func TestDirect_Command(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool")
	env := []string{"A=1"}

	cmd := Direct{Path: path}.Command(context.Background(), []string{"a b", "-c"}, env)

	if cmd.Path != path {
		t.Errorf("Path = %q, want %q", cmd.Path, path)
	}
	want := []string{path, "a b", "-c"}
	if strings.Join(cmd.Args, "|") != strings.Join(want, "|") {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
	if len(cmd.Env) != 1 || cmd.Env[0] != "A=1" {
		t.Errorf("Env = %v, want %v", cmd.Env, env)
	}
}

func TestWithTempDir(t *testing.T) {
	vars := TempEnvVars()
	if len(vars) == 0 {
		t.Fatal("TempEnvVars() is empty")
	}

	env := []string{"PATH=/bin", "HOME=/home/u"}
	for _, name := range vars {
		env = append(env, name+"=/old")
	}

	got := WithTempDir(env, "/scratch/.tmpAbc")

	seen := map[string]string{}
	for _, kv := range got {
		key, value, _ := strings.Cut(kv, "=")
		if _, dup := seen[key]; dup {
			t.Errorf("variable %s appears twice in %v", key, got)
		}
		seen[key] = value
	}
	for _, name := range vars {
		if seen[name] != "/scratch/.tmpAbc" {
			t.Errorf("%s = %q, want %q", name, seen[name], "/scratch/.tmpAbc")
		}
	}
	if seen["PATH"] != "/bin" || seen["HOME"] != "/home/u" {
		t.Errorf("unrelated variables changed: %v", got)
	}
	if len(env) != 2+len(vars) || !strings.HasSuffix(env[len(env)-1], "=/old") {
		t.Errorf("input env modified: %v", env)
	}
}

func TestWithTempDir_AddsMissing(t *testing.T) {
	got := WithTempDir(nil, "/scratch")
	if len(got) != len(TempEnvVars()) {
		t.Errorf("WithTempDir(nil) = %v, want one entry per temp variable", got)
	}
}

func TestExitCode_Nil(t *testing.T) {
	code, err := exitCode(nil)
	if code != 0 || err != nil {
		t.Errorf("exitCode(nil) = %d, %v; want 0, nil", code, err)
	}
}

func TestExitCode_LaunchFailure(t *testing.T) {
	cause := errors.New("exec: no such file or directory")

	code, err := exitCode(cause)

	if !errors.Is(err, ErrLaunch) {
		t.Errorf("exitCode() error = %v, want %v", err, ErrLaunch)
	}
	if !errors.Is(err, cause) {
		t.Errorf("exitCode() error = %v, want it to wrap %v", err, cause)
	}
	if code != 1 {
		t.Errorf("exitCode() = %d, want 1", code)
	}
}

func TestProcessLauncher_MissingImage(t *testing.T) {
	l := &ProcessLauncher{
		Strategy: Direct{Path: filepath.Join(t.TempDir(), "nonexistent-command-xyz-12345")},
		Environ:  func() []string { return nil },
	}

	_, err := l.Launch(context.Background(), t.TempDir())

	if !errors.Is(err, ErrLaunch) {
		t.Errorf("Launch() error = %v, want %v", err, ErrLaunch)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("Launch() error = %v, want a start failure, not an exit status", err)
	}
}

func TestEnviron(t *testing.T) {
	t.Setenv("RANDOMTEMP_TEST_VAR", "1")

	found := false
	for _, e := range environ() {
		if e == "RANDOMTEMP_TEST_VAR=1" {
			found = true
			break
		}
	}
	if !found {
		t.Error("environ() does not contain RANDOMTEMP_TEST_VAR")
	}
}
