package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStorePathPriority(t *testing.T) {
	t.Setenv("CALCTL_DB", "/tmp/env-events.json")

	// Explicit override wins over the environment.
	assert.Equal(t, "/tmp/override.json", ResolveStorePath("/tmp/override.json"))

	// Environment wins over the home default.
	assert.Equal(t, "/tmp/env-events.json", ResolveStorePath(""))
}

func TestResolveStorePathDefault(t *testing.T) {
	t.Setenv("CALCTL_DB", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".calctl", "events.json"), ResolveStorePath(""))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CALCTL_DB", "/tmp/db.json")
	t.Setenv("CALCTL_BACKEND", "")
	t.Setenv("CALCTL_LOG_LEVEL", "")

	cfg := Load("")
	assert.Equal(t, "/tmp/db.json", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Store.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Server.Listen)
}
