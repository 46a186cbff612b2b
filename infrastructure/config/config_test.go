package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/beautiful-mermaid/infrastructure/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "layouts.db", cfg.DatabasePath)
	assert.Equal(t, "preview", cfg.WatchNamespace)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LAYOUT_DB_PATH", "/tmp/layouts.db")
	t.Setenv("ENABLE_CORS", "false")
	t.Setenv("SVG_FILE", "diagram.svg")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "/tmp/layouts.db", cfg.DatabasePath)
	assert.Equal(t, "diagram.svg", cfg.WatchFile)
	assert.False(t, cfg.EnableCORS)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_BoolParsing(t *testing.T) {
	for _, v := range []string{"true", "1", "yes"} {
		t.Setenv("ENABLE_CORS", v)
		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.EnableCORS, "value %q", v)
	}

	t.Setenv("ENABLE_CORS", "off")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.EnableCORS)
}
