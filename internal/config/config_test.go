package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, time.Second/64, cfg.TickInterval)
	assert.Equal(t, HostModeSim, cfg.HostMode)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 1000, cfg.JournalCapacity)
	assert.Equal(t, "forceteam:commands", cfg.RedisCommandChannel)
	assert.False(t, cfg.RedisBusEnabled)
	assert.Empty(t, cfg.AdminTokenHash)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TICK_INTERVAL", "10ms")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("REDIS_BUS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, StorageRedis, cfg.StorageType)
	assert.True(t, cfg.RedisBusEnabled)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}},
		{"bus without url", map[string]string{"REDIS_BUS_ENABLED": "true"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "postgres"}},
		{"unknown host mode", map[string]string{"HOST_MODE": "cs2"}},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"unparseable interval", map[string]string{"TICK_INTERVAL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
