package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Grid  GridConfig  `mapstructure:"grid"`
	UI    UIConfig    `mapstructure:"ui"`
	Plan  string      `mapstructure:"plan"`
	Log   LogConfig   `mapstructure:"log"`
	Debug bool        `mapstructure:"debug"`
}

// GridConfig holds canvas cell geometry. The column count is fixed by
// the layout model, not configurable.
type GridConfig struct {
	CellWidth int `mapstructure:"cell_width"`
	RowHeight int `mapstructure:"row_height"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme           string        `mapstructure:"theme"`
	UpdateDebounce  time.Duration `mapstructure:"update_debounce"`
	ResizeDebounce  time.Duration `mapstructure:"resize_debounce"`
	ZoomStep        float64       `mapstructure:"zoom_step"`
	DefaultChart    string        `mapstructure:"default_chart"`
	ToastDuration   time.Duration `mapstructure:"toast_duration"`
}

// LogConfig holds log sink parameters
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// LoadConfig loads configuration from a YAML file and environment
// variables. An empty file argument searches the default locations; an
// explicit file must exist.
func LoadConfig(file string) (*Config, error) {
	// Viper state is global; start from a clean slate so repeated loads
	// cannot inherit an earlier explicit file.
	viper.Reset()
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.config/mosaic")
		viper.AddConfigPath(".")
	}

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("MOSAIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Apply defaults
	applyDefaults()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, defaults carry the load
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	// Validate grid config
	if cfg.Grid.CellWidth < 4 {
		return fmt.Errorf("grid.cell_width must be >= 4, got %d", cfg.Grid.CellWidth)
	}
	if cfg.Grid.RowHeight < 1 {
		return fmt.Errorf("grid.row_height must be >= 1, got %d", cfg.Grid.RowHeight)
	}

	// Validate plan tier
	validPlans := []string{"free", "pro", "enterprise"}
	validPlan := false
	for _, plan := range validPlans {
		if cfg.Plan == plan {
			validPlan = true
			break
		}
	}
	if !validPlan {
		return fmt.Errorf("plan must be one of: %v, got %s", validPlans, cfg.Plan)
	}

	// Validate UI config
	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	if cfg.UI.UpdateDebounce < 10*time.Millisecond || cfg.UI.UpdateDebounce > time.Second {
		return fmt.Errorf("ui.update_debounce must be between 10ms and 1s, got %v", cfg.UI.UpdateDebounce)
	}
	if cfg.UI.ResizeDebounce < 10*time.Millisecond || cfg.UI.ResizeDebounce > time.Second {
		return fmt.Errorf("ui.resize_debounce must be between 10ms and 1s, got %v", cfg.UI.ResizeDebounce)
	}
	if cfg.UI.ZoomStep <= 0 || cfg.UI.ZoomStep > 1 {
		return fmt.Errorf("ui.zoom_step must be between 0 and 1, got %v", cfg.UI.ZoomStep)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if cfg.Log.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("log.level must be one of: %v, got %s", validLevels, cfg.Log.Level)
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults() {
	// Grid defaults
	viper.SetDefault("grid.cell_width", 10)
	viper.SetDefault("grid.row_height", 3)

	// UI defaults
	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.update_debounce", "50ms")
	viper.SetDefault("ui.resize_debounce", "50ms")
	viper.SetDefault("ui.zoom_step", 0.25)
	viper.SetDefault("ui.default_chart", "bar")
	viper.SetDefault("ui.toast_duration", "3s")

	// Plan default
	viper.SetDefault("plan", "free")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.path", "")

	// Debug default
	viper.SetDefault("debug", false)
}
