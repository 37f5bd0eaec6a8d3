// Package resolve decides which real program randomtemp proxies to.
//
// The result never designates the running binary itself: a proxy installed
// under the name of the program it wraps must not end up executing itself.
package resolve

import (
	"errors"
	"fmt"
	"os/exec"
)

var (
	// ErrSelfPretend is returned when the override names the running binary.
	// Its message is empty; callers print nothing for it.
	ErrSelfPretend = errors.New("")

	// ErrNotFound is returned when no distinct program matches the binary's own name.
	ErrNotFound = errors.New("cannot find which executable to pretend to be, " +
		"either specify RANDOMTEMP_EXECUTABLE through the environment " +
		"or rename the executable to another one in PATH")

	// ErrInvalidOverride is returned when a bare override with an extension
	// cannot be found on PATH.
	ErrInvalidOverride = errors.New("RANDOMTEMP_EXECUTABLE points to an invalid executable")
)

// Searcher abstracts PATH lookup for testability.
type Searcher interface {
	LookPath(file string) (string, error)
}

// RealSearcher searches the process PATH.
type RealSearcher struct{}

// LookPath finds file in PATH.
func (RealSearcher) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Resolver finds the program to run on behalf of the binary at Self.
type Resolver struct {
	Self     string   // absolute path of the running binary
	Searcher Searcher // injected for testing
}

// Resolve returns the path or bare command name to execute. override is the
// value of RANDOMTEMP_EXECUTABLE, empty when unset.
func (r *Resolver) Resolve(override string) (string, error) {
	if override != "" {
		program, err := r.resolveOverride(override)
		if !errors.Is(err, ErrSelfPretend) {
			return program, err
		}
		program, err = r.resolveSelf()
		if err != nil {
			return "", fmt.Errorf("%w%w", ErrSelfPretend, err)
		}
		return program, nil
	}
	return r.resolveSelf()
}

func (r *Resolver) resolveOverride(override string) (string, error) {
	id := Identity(override)
	if id.IsAbs() {
		return override, nil
	}
	if SameProgram(id, Identity(r.Self)) {
		return "", ErrSelfPretend
	}
	if path, ok := r.search(id.Name()); ok {
		return path, nil
	}
	// Without an extension the name may still mean something to the shell
	// (a builtin or an alias), so it is handed over unresolved.
	if !id.HasExt() {
		return override, nil
	}
	return "", ErrInvalidOverride
}

func (r *Resolver) resolveSelf() (string, error) {
	if path, ok := r.search(Identity(r.Self).Name()); ok {
		return path, nil
	}
	return "", ErrNotFound
}

// search looks name up on PATH and rejects a hit that is the running binary.
// Only the first match is considered.
func (r *Resolver) search(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path, err := r.Searcher.LookPath(name)
	if err != nil || path == "" {
		return "", false
	}
	if sameLocation(path, r.Self) {
		return "", false
	}
	return path, true
}
