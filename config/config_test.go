package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("EXPORT_DIR", "")
	t.Setenv("WATCH_TARGETS", "")
	t.Setenv("DOCKER_LOOKUP", "")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Empty(t, cfg.Targets)
	assert.True(t, cfg.DockerLookup)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "3")
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("WATCH_TARGETS", "chrome, 1234 ,nginx")
	t.Setenv("DOCKER_LOOKUP", "false")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, []string{"chrome", "1234", "nginx"}, cfg.Targets)
	assert.False(t, cfg.DockerLookup)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "fast"},
		{"zero", "0"},
		{"negative", "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POLL_INTERVAL_SECONDS", tt.value)
			cfg := Load()
			assert.Equal(t, 5*time.Second, cfg.PollInterval)
		})
	}
}
