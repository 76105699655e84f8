package config

import (
	"os"
	"path/filepath"
)

// Defaults for the store location under the user's home directory.
const (
	defaultDirName  = ".calctl"
	defaultFileName = "events.json"
)

// Config carries everything an engine invocation needs. It is built once
// in main and passed down explicitly; there is no process-wide mutable
// state.
type Config struct {
	Store struct {
		Path    string
		Backend string // "json" or "sqlite"
	}
	Server struct {
		Listen string
	}
	LogLevel string
}

// Load builds a Config from the environment. pathOverride, when non-empty,
// wins over CALCTL_DB and the home-directory default.
func Load(pathOverride string) *Config {
	cfg := &Config{}

	cfg.Store.Path = ResolveStorePath(pathOverride)
	cfg.Store.Backend = getEnv("CALCTL_BACKEND", "json")
	cfg.Server.Listen = getEnv("CALCTL_LISTEN", "127.0.0.1:8310")
	cfg.LogLevel = getEnv("CALCTL_LOG_LEVEL", "warn")

	return cfg
}

// ResolveStorePath resolves the store location in priority order:
// explicit override, CALCTL_DB, then ~/.calctl/events.json. The result is
// a pure function of those three inputs.
func ResolveStorePath(override string) string {
	if override != "" {
		return expandHome(override)
	}
	if env := os.Getenv("CALCTL_DB"); env != "" {
		return expandHome(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory rather than failing;
		// the store layer surfaces any real I/O problem on save.
		return filepath.Join(defaultDirName, defaultFileName)
	}
	return filepath.Join(home, defaultDirName, defaultFileName)
}

func expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
