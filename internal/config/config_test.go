package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does not leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigPathEnv, "PORT", "DB_PATH", "JWT_SECRET", "LOG_LEVEL", "CELL_SIZE_KM",
		"DEFAULT_PLANTATION_ID", "DEFAULT_ROI_ID", "DEFAULT_CA_ID", "RATE_LIMIT", "CACHE_GEOMETRY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.1, cfg.Calculation.CellSizeKm)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "pollinator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: ":9090"
log_level: debug
cache_geometry: false
calculation:
  cell_size_km: 0.25
  default_roi_id: 2
`), 0o644))
	t.Setenv(ConfigPathEnv, path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DEFAULT_CA_ID", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides file")
	assert.False(t, cfg.CacheGeometry)
	assert.Equal(t, 0.25, cfg.Calculation.CellSizeKm)
	assert.Equal(t, int64(1), cfg.Calculation.DefaultPlantationID, "kept default")
	assert.Equal(t, int64(2), cfg.Calculation.DefaultROIID)
	assert.Equal(t, int64(3), cfg.Calculation.DefaultCAID)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unparsable cell size", "CELL_SIZE_KM", "fine"},
		{"zero cell size", "CELL_SIZE_KM", "0"},
		{"negative default id", "DEFAULT_PLANTATION_ID", "-1"},
		{"unparsable id", "DEFAULT_ROI_ID", "one"},
		{"negative rate limit", "RATE_LIMIT", "-5"},
		{"unparsable bool", "CACHE_GEOMETRY", "sometimes"},
		{"missing config file", ConfigPathEnv, "/nonexistent/pollinator.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
