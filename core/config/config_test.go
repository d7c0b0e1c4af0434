package config_test

import (
	"testing"

	"fleet-console/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "@every 5m", cfg.Sync.SweepSchedule)
		assert.Equal(t, 15, cfg.Sync.StaleAfterMinutes)
		assert.False(t, cfg.Sync.ArchiveEnabled)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "3000")
		t.Setenv("DATABASE_DRIVER", "sqlite")
		t.Setenv("SYNC_STALE_AFTER_MINUTES", "30")

		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.Server.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, 30, cfg.Sync.StaleAfterMinutes)
	})
}
