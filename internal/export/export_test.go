package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/compile"
	"github.com/mosaicboard/mosaic/internal/chart/spec"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Revenue", "Revenue"},
		{"CPU load", "CPU-load"},
		{"a/b\\c:d", "abcd"},
		{"snake_case", "snake-case"},
		{"émoji 🎉", "moji-"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := sanitize(tc.in); got != tc.want {
			t.Errorf("sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestArtifactPathFallbackName(t *testing.T) {
	p := artifactPath("/tmp", "///", ".txt")
	base := filepath.Base(p)
	if !strings.HasPrefix(base, "widget-") {
		t.Errorf("unusable titles fall back to widget-, got %q", base)
	}
	if !strings.HasSuffix(base, ".txt") {
		t.Errorf("suffix missing from %q", base)
	}
}

func TestSnapshotPlainStripsANSI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rendered := "\x1b[31mred bars\x1b[0m"
	path, err := Snapshot("Demo", rendered, FormatPlain)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if strings.Contains(string(data), "\x1b") {
		t.Error("plain snapshots must not carry escape sequences")
	}
	if !strings.Contains(string(data), "red bars") {
		t.Errorf("text content missing: %q", data)
	}
	if filepath.Ext(path) != ".txt" {
		t.Errorf("plain snapshots use .txt, got %q", path)
	}
}

func TestSnapshotANSIKeepsStyling(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rendered := "\x1b[31mred\x1b[0m"
	path, err := Snapshot("Demo", rendered, FormatANSI)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), "\x1b[31m") {
		t.Error("ansi snapshots keep escape sequences")
	}
	if filepath.Ext(path) != ".ans" {
		t.Errorf("ansi snapshots use .ans, got %q", path)
	}
}

func TestEncodeSpecIndented(t *testing.T) {
	s := compile.Compile(chart.KindBar, chart.Config{"title": "T"}, nil)
	out, err := EncodeSpec(s)
	if err != nil {
		t.Fatalf("EncodeSpec: %v", err)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("clipboard payload should be indented JSON")
	}
	if !strings.Contains(out, `"series"`) {
		t.Errorf("series missing from payload:\n%s", out)
	}
}

func TestTabulateCategory(t *testing.T) {
	s := &spec.Specification{Series: []spec.Series{{
		Kind: "bar",
		Data: []spec.SeriesPoint{
			{Name: "Mon", Value: 10},
			{Name: "Tue", Value: 12.5},
		},
	}}}
	rows := tabulate(s)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "name" || rows[0][1] != "value" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][1] != "12.5" {
		t.Errorf("value formatting = %q", rows[2][1])
	}
}

func TestTabulateScatter(t *testing.T) {
	s := &spec.Specification{Series: []spec.Series{{
		Kind: "scatter",
		Data: []spec.SeriesPoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}}}
	rows := tabulate(s)
	if rows[0][0] != "x" || rows[0][1] != "y" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "2" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestTabulateHeatmapUsesAxisLabels(t *testing.T) {
	s := &spec.Specification{
		XAxis: spec.Axis{Categories: []string{"00", "04"}},
		YAxis: spec.Axis{Categories: []string{"Mon"}},
		Series: []spec.Series{{
			Kind: "heatmap",
			Data: []spec.SeriesPoint{
				{X: 0, Y: 0, Value: 5},
				{X: 1, Y: 0, Value: 7},
				{X: 9, Y: 9, Value: 1},
			},
		}},
	}
	rows := tabulate(s)
	if rows[1][0] != "00" || rows[1][1] != "Mon" {
		t.Errorf("labeled row = %v", rows[1])
	}
	if rows[3][0] != "9" || rows[3][1] != "9" {
		t.Errorf("out-of-range coordinates fall back to indices, got %v", rows[3])
	}
}

func TestTabulateRadarIndicators(t *testing.T) {
	s := &spec.Specification{
		Indicators: []string{"Sales", "Tech"},
		Series: []spec.Series{{
			Kind: "radar",
			Data: []spec.SeriesPoint{{Value: 80}, {Value: 90}},
		}},
	}
	rows := tabulate(s)
	if rows[0][0] != "indicator" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Sales" || rows[1][1] != "80" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestTabulateEmpty(t *testing.T) {
	if rows := tabulate(&spec.Specification{}); rows != nil {
		t.Errorf("no series yields nil, got %v", rows)
	}
}

func TestDataCSVRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := compile.Compile(chart.KindPie, nil, nil)
	path, err := DataCSV("Traffic Sources", s)
	if err != nil {
		t.Fatalf("DataCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(records) < 2 {
		t.Fatalf("records = %d, want header + data", len(records))
	}
	if records[0][0] != "name" {
		t.Errorf("header = %v", records[0])
	}
}

func TestDataCSVNothingToExport(t *testing.T) {
	if _, err := DataCSV("x", &spec.Specification{}); err == nil {
		t.Error("empty spec must refuse to export")
	}
}

func TestDataXLSXWrites(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := compile.Compile(chart.KindBar, nil, nil)
	path, err := DataXLSX("Weekly", s)
	if err != nil {
		t.Fatalf("DataXLSX: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("workbook file is empty")
	}
	if filepath.Ext(path) != ".xlsx" {
		t.Errorf("workbook path = %q", path)
	}
}

func TestSpecJSONWrites(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := compile.Compile(chart.KindGauge, nil, nil)
	path, err := SpecJSON("Load", s)
	if err != nil {
		t.Fatalf("SpecJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if !strings.Contains(string(data), `"gauge"`) {
		t.Errorf("kind missing from exported spec:\n%s", data)
	}
}
