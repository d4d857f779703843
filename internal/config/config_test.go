package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Grid: GridConfig{CellWidth: 10, RowHeight: 3},
		UI: UIConfig{
			Theme:          "dark",
			UpdateDebounce: 50 * time.Millisecond,
			ResizeDebounce: 50 * time.Millisecond,
			ZoomStep:       0.1,
			DefaultChart:   "bar",
			ToastDuration:  3 * time.Second,
		},
		Plan: "free",
		Log:  LogConfig{Level: "info"},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"pro plan", func(c *Config) { c.Plan = "pro" }, false},
		{"enterprise plan", func(c *Config) { c.Plan = "enterprise" }, false},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
		{"zoom step at one", func(c *Config) { c.UI.ZoomStep = 1 }, false},

		{"narrow cells", func(c *Config) { c.Grid.CellWidth = 3 }, true},
		{"zero row height", func(c *Config) { c.Grid.RowHeight = 0 }, true},
		{"unknown plan", func(c *Config) { c.Plan = "platinum" }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"debounce too fast", func(c *Config) { c.UI.UpdateDebounce = 5 * time.Millisecond }, true},
		{"debounce too slow", func(c *Config) { c.UI.UpdateDebounce = 2 * time.Second }, true},
		{"resize debounce too fast", func(c *Config) { c.UI.ResizeDebounce = time.Millisecond }, true},
		{"zoom step zero", func(c *Config) { c.UI.ZoomStep = 0 }, true},
		{"zoom step too big", func(c *Config) { c.UI.ZoomStep = 1.5 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := ValidateConfig(cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with no file: %v", err)
	}
	if cfg.Grid.CellWidth != 10 {
		t.Errorf("cell width = %d, want 10", cfg.Grid.CellWidth)
	}
	if cfg.UI.UpdateDebounce != 50*time.Millisecond {
		t.Errorf("update debounce = %v, want 50ms", cfg.UI.UpdateDebounce)
	}
	if cfg.Plan != "free" {
		t.Errorf("plan = %q, want free", cfg.Plan)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "ui:\n  theme: light\nplan: pro\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(%q): %v", path, err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.Plan != "pro" {
		t.Errorf("plan = %q, want pro", cfg.Plan)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("explicit config file that does not exist should error")
	}
}
