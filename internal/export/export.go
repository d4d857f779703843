// Package export writes chart artifacts out of the dashboard: styled
// or plain text snapshots of a rendered widget, the compiled
// specification as JSON, and the underlying dataset as CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/xuri/excelize/v2"

	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/logger"
)

// Format selects the snapshot flavor written by Snapshot.
type Format int

const (
	// FormatPlain strips all styling, a portable text raster.
	FormatPlain Format = iota
	// FormatANSI keeps escape sequences so the snapshot replays in a
	// terminal with colors intact.
	FormatANSI
)

func (f Format) String() string {
	if f == FormatANSI {
		return "ansi"
	}
	return "plain"
}

func (f Format) extension() string {
	if f == FormatANSI {
		return ".ans"
	}
	return ".txt"
}

// DefaultDir resolves the export directory, creating it on first use.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "mosaic", "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	return dir, nil
}

func artifactPath(dir, title, suffix string) string {
	stamp := time.Now().Format("20060102-150405")
	name := sanitize(title)
	if name == "" {
		name = "widget"
	}
	return filepath.Join(dir, name+"-"+stamp+suffix)
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}

// Snapshot writes a rendered widget frame to disk in the requested
// format and returns the written path.
func Snapshot(title, rendered string, format Format) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	content := rendered
	if format == FormatPlain {
		content = ansi.Strip(rendered)
	}
	path := artifactPath(dir, title, format.extension())
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	logger.Info("snapshot exported", "path", path, "format", format.String())
	return path, nil
}

// SpecJSON serializes a compiled specification to an indented JSON
// file and returns the written path.
func SpecJSON(title string, s *spec.Specification) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding spec: %w", err)
	}
	path := artifactPath(dir, title, ".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing spec: %w", err)
	}
	logger.Info("spec exported", "path", path)
	return path, nil
}

// EncodeSpec returns a specification as indented JSON, the payload
// pushed to the clipboard by the copy action.
func EncodeSpec(s *spec.Specification) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding spec: %w", err)
	}
	return string(data), nil
}

// tabulate flattens a specification's primary series into rows for
// the tabular exporters. The header row comes first.
func tabulate(s *spec.Specification) [][]string {
	if len(s.Series) == 0 {
		return nil
	}
	sr := s.Series[0]

	if sr.Kind == "heatmap" {
		rows := [][]string{{"x", "y", "value"}}
		for _, p := range sr.Data {
			xi, yi := int(p.X), int(p.Y)
			x := fmt.Sprintf("%d", xi)
			y := fmt.Sprintf("%d", yi)
			if xi >= 0 && xi < len(s.XAxis.Categories) {
				x = s.XAxis.Categories[xi]
			}
			if yi >= 0 && yi < len(s.YAxis.Categories) {
				y = s.YAxis.Categories[yi]
			}
			rows = append(rows, []string{x, y, formatNum(p.Value)})
		}
		return rows
	}

	if sr.Kind == "scatter" {
		rows := [][]string{{"x", "y"}}
		for _, p := range sr.Data {
			rows = append(rows, []string{formatNum(p.X), formatNum(p.Y)})
		}
		return rows
	}

	if len(s.Indicators) > 0 {
		rows := [][]string{{"indicator", "value"}}
		for i, name := range s.Indicators {
			v := ""
			if i < len(sr.Data) {
				v = formatNum(sr.Data[i].Value)
			}
			rows = append(rows, []string{name, v})
		}
		return rows
	}

	rows := [][]string{{"name", "value"}}
	for _, p := range sr.Data {
		name := p.Name
		if name == "" {
			name = formatNum(p.X)
		}
		rows = append(rows, []string{name, formatNum(p.Value)})
	}
	return rows
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DataCSV writes the primary series dataset as CSV and returns the
// written path.
func DataCSV(title string, s *spec.Specification) (string, error) {
	rows := tabulate(s)
	if rows == nil {
		return "", fmt.Errorf("nothing to export")
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	path := artifactPath(dir, title, ".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	logger.Info("data exported", "path", path, "rows", len(rows)-1)
	return path, nil
}

// DataXLSX writes the primary series dataset as a single-sheet
// workbook and returns the written path.
func DataXLSX(title string, s *spec.Specification) (string, error) {
	rows := tabulate(s)
	if rows == nil {
		return "", fmt.Errorf("nothing to export")
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := "Data"
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("resolving cell: %w", err)
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			if n, err := strconv.ParseFloat(v, 64); err == nil && i > 0 {
				vals[j] = n
			} else {
				vals[j] = v
			}
		}
		if err := wb.SetSheetRow(sheet, cell, &vals); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}

	path := artifactPath(dir, title, ".xlsx")
	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	logger.Info("data exported", "path", path, "rows", len(rows)-1)
	return path, nil
}
