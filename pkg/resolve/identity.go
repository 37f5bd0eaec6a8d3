package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Identity is a path-like reference to a program: either the running binary
// or a candidate it may proxy to.
type Identity string

// IsAbs reports whether the identity is an absolute path.
func (id Identity) IsAbs() bool {
	return filepath.IsAbs(string(id))
}

// Name returns the final path element, or "" when there is none.
func (id Identity) Name() string {
	if id == "" {
		return ""
	}
	name := filepath.Base(string(id))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// Stem returns the name without its last extension. A name that only has a
// leading dot (".profile") is its own stem.
func (id Identity) Stem() string {
	name := id.Name()
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// HasExt reports whether the name carries an extension such as ".exe".
func (id Identity) HasExt() bool {
	name := id.Name()
	ext := filepath.Ext(name)
	return ext != "" && ext != name
}

// SameProgram reports whether a and b name the same logical program: their
// stems match, so "gcc" and "/usr/bin/gcc.exe" are the same program.
func SameProgram(a, b Identity) bool {
	sa, sb := a.Stem(), b.Stem()
	if sa == "" || sb == "" {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.EqualFold(sa, sb)
	}
	return sa == sb
}

// sameLocation reports whether two paths refer to the same file on disk.
// Paths that cannot be stat'ed are compared lexically.
func sameLocation(a, b string) bool {
	fa, errA := os.Stat(a)
	fb, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(fa, fb)
	}
	ca, cb := filepath.Clean(a), filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(ca, cb)
	}
	return ca == cb
}
