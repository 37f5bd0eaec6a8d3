// Package config collects randomtemp's settings from the environment once at
// start-up. The resulting Config is a plain value handed to the resolver and
// the retry loop; nothing downstream reads the environment again.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Environment variables understood by randomtemp.
const (
	EnvExecutable = "RANDOMTEMP_EXECUTABLE"
	EnvBaseDir    = "RANDOMTEMP_BASEDIR"
	EnvMaxTrial   = "RANDOMTEMP_MAXTRIAL"
	EnvLogLevel   = "RANDOMTEMP_LOG_LEVEL"
	EnvLogFormat  = "RANDOMTEMP_LOG_FORMAT"
)

// DefaultMaxTrial is the retry budget used when RANDOMTEMP_MAXTRIAL is unset.
const DefaultMaxTrial uint8 = 3

var (
	ErrInvalidBaseDir  = errors.New("the directory specified in " + EnvBaseDir + " doesn't exist")
	ErrInvalidMaxTrial = errors.New(EnvMaxTrial + " is not a valid number in 0..255")
)

// Config holds the validated settings.
type Config struct {
	Executable string     // override program; empty when unset
	BaseDir    string     // absolute directory scratch directories are created in
	MaxTrial   uint8      // additional attempts after the first
	LogLevel   slog.Level // diagnostics threshold
	LogFormat  string     // "text" or "json"
}

// Load reads and validates the environment. fs is used to check that the
// base directory exists.
func Load(fs afero.Fs) (Config, error) {
	v := viper.New()
	for key, env := range map[string]string{
		"executable": EnvExecutable,
		"basedir":    EnvBaseDir,
		"maxtrial":   EnvMaxTrial,
		"log_level":  EnvLogLevel,
		"log_format": EnvLogFormat,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	cfg := Config{
		Executable: v.GetString("executable"),
		MaxTrial:   DefaultMaxTrial,
		LogLevel:   ParseLogLevel(v.GetString("log_level")),
		LogFormat:  parseLogFormat(v.GetString("log_format")),
	}

	var err error
	if cfg.BaseDir, err = baseDir(fs, v.GetString("basedir")); err != nil {
		return Config{}, err
	}

	if v.IsSet("maxtrial") {
		if cfg.MaxTrial, err = ParseMaxTrial(v.GetString("maxtrial")); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// ParseMaxTrial parses a retry budget in 0..255.
func ParseMaxTrial(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, ErrInvalidMaxTrial
	}
	return uint8(n), nil
}

// ParseLogLevel maps a level name to a slog level. Unknown names give warn,
// which keeps routine diagnostics quiet.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func parseLogFormat(raw string) string {
	if strings.ToLower(strings.TrimSpace(raw)) == "json" {
		return "json"
	}
	return "text"
}

// baseDir returns the absolute base directory: dir when set, otherwise the
// working directory.
func baseDir(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot get the current working directory: %w", err)
		}
		return wd, nil
	}

	ok, err := afero.DirExists(fs, dir)
	if err != nil || !ok {
		return "", ErrInvalidBaseDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", EnvBaseDir, err)
	}
	return abs, nil
}
