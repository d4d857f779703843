package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/logger"
)

// DashboardFile is the on-disk dashboard document.
type DashboardFile struct {
	Name    string                  `yaml:"name"`
	Widgets []dashboard.Widget      `yaml:"widgets"`
	Layout  []dashboard.LayoutEntry `yaml:"layout"`
}

// LoadDashboard reads a dashboard document. A missing file yields an
// empty named dashboard rather than an error.
func LoadDashboard(path string) (*DashboardFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			name := filepath.Base(path)
			if ext := filepath.Ext(name); ext != "" {
				name = name[:len(name)-len(ext)]
			}
			return &DashboardFile{Name: name}, nil
		}
		return nil, fmt.Errorf("reading dashboard file: %w", err)
	}

	var doc DashboardFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dashboard file: %w", err)
	}
	if doc.Name == "" {
		doc.Name = "untitled"
	}
	logger.Info("dashboard loaded", "path", path, "widgets", len(doc.Widgets))
	return &doc, nil
}

// SaveDashboard writes the dashboard document atomically.
func SaveDashboard(path string, doc *DashboardFile) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing dashboard file: %w", err)
	}
	logger.Info("dashboard saved", "path", path, "widgets", len(doc.Widgets))
	return nil
}
