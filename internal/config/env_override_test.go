package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("KWMAP_DEBUG enables file logging", func(t *testing.T) {
		t.Setenv("KWMAP_DEBUG", "1")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("invalid KWMAP_DEBUG is ignored", func(t *testing.T) {
		t.Setenv("KWMAP_DEBUG", "maybe")

		cfg := DefaultConfig()
		cfg.Logging.DebugMode = true
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("KWMAP_LOG_LEVEL and KWMAP_DEBOUNCE", func(t *testing.T) {
		t.Setenv("KWMAP_LOG_LEVEL", "debug")
		t.Setenv("KWMAP_DEBOUNCE", "1s")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, time.Second, cfg.GetDebounce())
	})

	t.Run("KWMAP_DARK_MODE", func(t *testing.T) {
		t.Setenv("KWMAP_DARK_MODE", "false")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		require.NotNil(t, cfg.UI.DarkMode)
		assert.False(t, *cfg.UI.DarkMode)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("KWMAP_DEBOUNCE", "75ms")

		path := Path(t.TempDir())
		cfg := DefaultConfig()
		cfg.Search.Debounce = "500ms"
		require.NoError(t, cfg.Save(path))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 75*time.Millisecond, loaded.GetDebounce())
	})
}
