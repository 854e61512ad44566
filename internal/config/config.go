package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable holding an optional YAML config file
const ConfigPathEnv = "POLLINATOR_CONFIG"

// Config holds application configuration
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"` // empty disables auth on /api/v1
	LogLevel  string `yaml:"log_level"`

	// Requests per minute per client IP, 0 disables limiting
	RateLimit     int  `yaml:"rate_limit"`
	CacheGeometry bool `yaml:"cache_geometry"`

	Calculation CalculationConfig `yaml:"calculation"`
}

// CalculationConfig holds calculation defaults
type CalculationConfig struct {
	CellSizeKm          float64 `yaml:"cell_size_km"`
	DefaultPlantationID int64   `yaml:"default_plantation_id"`
	DefaultROIID        int64   `yaml:"default_roi_id"`
	DefaultCAID         int64   `yaml:"default_ca_id"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:          ":8080",
		DBPath:        "./data/pollinator.db",
		LogLevel:      "info",
		RateLimit:     60,
		CacheGeometry: true,
		Calculation: CalculationConfig{
			CellSizeKm:          0.1,
			DefaultPlantationID: 1,
			DefaultROIID:        1,
			DefaultCAID:         1,
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// POLLINATOR_CONFIG (if set) and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.DBPath = dbPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if v := os.Getenv("CELL_SIZE_KM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CELL_SIZE_KM %q: %w", v, err)
		}
		c.Calculation.CellSizeKm = f
	}

	ids := []struct {
		env string
		dst *int64
	}{
		{"DEFAULT_PLANTATION_ID", &c.Calculation.DefaultPlantationID},
		{"DEFAULT_ROI_ID", &c.Calculation.DefaultROIID},
		{"DEFAULT_CA_ID", &c.Calculation.DefaultCAID},
	}
	for _, id := range ids {
		v := os.Getenv(id.env)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", id.env, v, err)
		}
		*id.dst = n
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}
	if v := os.Getenv("CACHE_GEOMETRY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_GEOMETRY %q: %w", v, err)
		}
		c.CacheGeometry = b
	}
	return nil
}

// Validate rejects settings the calculation cannot run with
func (c *Config) Validate() error {
	if !(c.Calculation.CellSizeKm > 0) {
		return fmt.Errorf("cell size must be positive, got %g", c.Calculation.CellSizeKm)
	}
	if c.Calculation.DefaultPlantationID <= 0 || c.Calculation.DefaultROIID <= 0 || c.Calculation.DefaultCAID <= 0 {
		return fmt.Errorf("default identifiers must be positive, got plantation=%d roi=%d ca=%d",
			c.Calculation.DefaultPlantationID, c.Calculation.DefaultROIID, c.Calculation.DefaultCAID)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}
