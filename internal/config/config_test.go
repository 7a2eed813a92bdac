package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sheetgen/internal/config"
	"github.com/KirkDiggler/sheetgen/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{config.EnvTemplate, config.EnvOutput, config.EnvSort, config.EnvLogLevel} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Parse(nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.TemplatePath)
	assert.Empty(t, cfg.OutputPath)
	assert.False(t, cfg.SortByName)
	assert.Equal(t, config.LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestParse_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEETGEN_TEMPLATE", "sheet.j2")
	t.Setenv("SHEETGEN_OUTPUT", "sheet.html")
	t.Setenv("SHEETGEN_SORT", "true")
	t.Setenv("SHEETGEN_LOG_LEVEL", " DEBUG ")

	cfg, err := config.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "sheet.j2", cfg.TemplatePath)
	assert.Equal(t, "sheet.html", cfg.OutputPath)
	assert.True(t, cfg.SortByName)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestParse_InvalidValues(t *testing.T) {
	t.Run("bad bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHEETGEN_SORT", "sometimes")

		_, err := config.Parse(nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("bad log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHEETGEN_LOG_LEVEL", "chatty")

		_, err := config.Parse(nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

func TestParse_OverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTemplate, "env.j2")
	t.Setenv(config.EnvSort, "sometimes")
	t.Setenv(config.EnvLogLevel, "chatty")

	cfg, err := config.Parse(config.Overrides{
		config.EnvSort:     "true",
		config.EnvLogLevel: "Info",
	})
	require.NoError(t, err)

	assert.Equal(t, "env.j2", cfg.TemplatePath)
	assert.True(t, cfg.SortByName)
	assert.Equal(t, config.LogLevelInfo, cfg.LogLevel)
}

func TestParse_InvalidOverride(t *testing.T) {
	clearEnv(t)

	_, err := config.Parse(config.Overrides{config.EnvLogLevel: "chatty"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHEETGEN_TEMPLATE=from-file.j2\nSHEETGEN_LOG_LEVEL=info\n"), 0o600))

	cfg, err := config.Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "from-file.j2", cfg.TemplatePath)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, config.LogLevelWarn, cfg.LogLevel)
}
