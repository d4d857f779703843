// Package compile turns (chart kind, configuration, data) into a
// complete chart specification. Compile is pure and total: it never
// returns an error and never produces an empty series array, degrading
// to a sample bar chart instead of surfacing internal failures.
package compile

import (
	"fmt"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/sampledata"
	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/logger"
)

// Compile builds the renderer-ready specification for a widget. Absent
// or empty data is replaced by the deterministic sample dataset for the
// kind; unknown kinds render as a best-effort bar chart.
func Compile(kind chart.Kind, cfg chart.Config, data *chart.Dataset) (out *spec.Specification) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("chart compile panicked, using fallback", "kind", string(kind), "panic", fmt.Sprint(r))
			out = Fallback(cfg)
		}
	}()

	if cfg == nil {
		cfg = chart.Config{}
	}
	if data.IsEmpty() {
		data = sampledata.For(kind)
	}

	s := base(kind, cfg)

	switch kind {
	case chart.KindBar:
		buildCategorySeries(s, cfg, data, "bar")
	case chart.KindLine:
		buildCategorySeries(s, cfg, data, "line")
	case chart.KindArea:
		buildCategorySeries(s, cfg, data, "area")
	case chart.KindPie:
		buildNameValueSeries(s, cfg, data, "pie")
	case chart.KindFunnel:
		buildNameValueSeries(s, cfg, data, "funnel")
	case chart.KindScatter:
		buildScatterSeries(s, cfg, data)
	case chart.KindRadar:
		buildRadarSeries(s, cfg, data)
	case chart.KindGauge:
		buildGaugeSeries(s, cfg, data)
	case chart.KindHeatmap:
		buildHeatmapSeries(s, cfg, data)
	default:
		// Unknown renderer kind: best-effort X/Y extraction as bars.
		logger.Warn("unknown chart kind, rendering as bar", "kind", string(kind))
		buildCategorySeries(s, cfg, coerceToCategory(data), "bar")
	}

	if len(s.Series) == 0 {
		logger.Warn("compiler produced no series, using fallback", "kind", string(kind))
		return Fallback(cfg)
	}

	s.Recolor(s.Palette)
	deriveLegend(s)
	return s
}

// Fallback returns the sample bar specification used whenever the
// compiler cannot produce a valid result. A blank chart is worse than a
// placeholder one.
func Fallback(cfg chart.Config) *spec.Specification {
	if cfg == nil {
		cfg = chart.Config{}
	}
	s := base(chart.KindBar, cfg)
	buildCategorySeries(s, cfg, sampledata.For(chart.KindBar), "bar")
	s.Recolor(s.Palette)
	deriveLegend(s)
	return s
}

// base builds the kind-independent shell: title, legend, tooltip, grid,
// palette, animation and background resolved from configuration.
func base(kind chart.Kind, cfg chart.Config) *spec.Specification {
	title := cfg.GetString("title", "")
	return &spec.Specification{
		Title: spec.Title{
			Text:    title,
			Subtext: cfg.GetString("subtitle", ""),
			Show:    title != "",
		},
		Legend: spec.Legend{
			Show:     cfg.GetBool("legendVisible", true),
			Position: cfg.GetString("legendPosition", "bottom"),
		},
		Tooltip: spec.Tooltip{
			Show:    cfg.GetBool("tooltipVisible", true),
			Trigger: cfg.GetString("tooltipTrigger", defaultTrigger(kind)),
		},
		Grid:       spec.Grid{Top: 1, Bottom: 1, Left: 2, Right: 1},
		Palette:    spec.Palette(cfg.GetString("colorPalette", "default")),
		Animation:  cfg.GetBool("animation", true),
		Background: cfg.GetString("backgroundColor", ""),
	}
}

func defaultTrigger(kind chart.Kind) string {
	switch kind {
	case chart.KindBar, chart.KindLine, chart.KindArea:
		return "axis"
	default:
		return "item"
	}
}

func buildCategorySeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset, kind string) {
	cats := data.Categories
	if len(cats) < len(data.Values) {
		for i := len(cats); i < len(data.Values); i++ {
			cats = append(cats, fmt.Sprintf("#%d", i+1))
		}
	}
	points := make([]spec.SeriesPoint, len(data.Values))
	for i, v := range data.Values {
		points[i] = spec.SeriesPoint{Name: cats[i], Value: v}
	}
	sr := spec.Series{
		Name:   cfg.GetString("seriesField", "value"),
		Kind:   kind,
		Data:   points,
		Smooth: cfg.GetBool("smooth", false),
	}
	if kind == "area" {
		sr.Kind = "line"
		sr.AreaOpacity = 0.35
	}
	s.XAxis = spec.Axis{Show: true, Kind: "category", Categories: cats, Name: cfg.GetString("xAxisName", "")}
	s.YAxis = spec.Axis{Show: true, Kind: "value", Name: cfg.GetString("yAxisName", "")}
	s.Series = append(s.Series, sr)
}

func buildNameValueSeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset, kind string) {
	points := make([]spec.SeriesPoint, len(data.Pairs))
	for i, p := range data.Pairs {
		points[i] = spec.SeriesPoint{Name: p.Name, Value: p.Value}
	}
	s.XAxis = spec.Axis{Show: false}
	s.YAxis = spec.Axis{Show: false}
	s.Series = append(s.Series, spec.Series{
		Name: cfg.GetString("seriesField", kind),
		Kind: kind,
		Data: points,
	})
}

func buildScatterSeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset) {
	points := make([]spec.SeriesPoint, len(data.Points))
	for i, p := range data.Points {
		points[i] = spec.SeriesPoint{X: p.X, Y: p.Y, Value: p.Y}
	}
	s.XAxis = spec.Axis{Show: true, Kind: "value", Name: cfg.GetString("xAxisName", "")}
	s.YAxis = spec.Axis{Show: true, Kind: "value", Name: cfg.GetString("yAxisName", "")}
	s.Series = append(s.Series, spec.Series{
		Name: cfg.GetString("seriesField", "points"),
		Kind: "scatter",
		Data: points,
	})
}

func buildRadarSeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset) {
	n := len(data.Indicators)
	if n == 0 {
		n = len(data.IndicatorValues)
	}
	points := make([]spec.SeriesPoint, 0, n)
	maxVal := 0.0
	for i := 0; i < n && i < len(data.IndicatorValues); i++ {
		name := fmt.Sprintf("#%d", i+1)
		if i < len(data.Indicators) {
			name = data.Indicators[i].Name
			if data.Indicators[i].Max > maxVal {
				maxVal = data.Indicators[i].Max
			}
		}
		points = append(points, spec.SeriesPoint{Name: name, Value: data.IndicatorValues[i]})
		s.Indicators = append(s.Indicators, name)
	}
	s.XAxis = spec.Axis{Show: false}
	s.YAxis = spec.Axis{Show: false}
	s.Series = append(s.Series, spec.Series{
		Name: cfg.GetString("seriesField", "radar"),
		Kind: "radar",
		Data: points,
		Max:  maxVal,
	})
}

func buildGaugeSeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset) {
	v := 0.0
	if data.Scalar != nil {
		v = *data.Scalar
	}
	s.XAxis = spec.Axis{Show: false}
	s.YAxis = spec.Axis{Show: false}
	s.Series = append(s.Series, spec.Series{
		Name: cfg.GetString("seriesField", "gauge"),
		Kind: "gauge",
		Data: []spec.SeriesPoint{{Name: "value", Value: v}},
		Max:  cfg.GetFloat("gaugeMax", 100),
	})
}

func buildHeatmapSeries(s *spec.Specification, cfg chart.Config, data *chart.Dataset) {
	points := make([]spec.SeriesPoint, len(data.Cells))
	lo, hi := 0.0, 0.0
	for i, c := range data.Cells {
		points[i] = spec.SeriesPoint{X: float64(c.X), Y: float64(c.Y), Value: c.Value}
		if i == 0 || c.Value < lo {
			lo = c.Value
		}
		if c.Value > hi {
			hi = c.Value
		}
	}
	s.XAxis = spec.Axis{Show: true, Kind: "category", Categories: data.XLabels}
	s.YAxis = spec.Axis{Show: true, Kind: "category", Categories: data.YLabels}
	s.VisualMap = &spec.VisualMap{Min: lo, Max: hi, Colors: s.Palette}
	s.Series = append(s.Series, spec.Series{
		Name: cfg.GetString("seriesField", "heat"),
		Kind: "heatmap",
		Data: points,
	})
}

// coerceToCategory extracts whatever X/Y shape the dataset carries into
// category/value pairs for the unknown-kind bar fallback.
func coerceToCategory(data *chart.Dataset) *chart.Dataset {
	if len(data.Values) > 0 {
		return data
	}
	out := &chart.Dataset{}
	switch {
	case len(data.Pairs) > 0:
		for _, p := range data.Pairs {
			out.Categories = append(out.Categories, p.Name)
			out.Values = append(out.Values, p.Value)
		}
	case len(data.Points) > 0:
		for _, p := range data.Points {
			out.Categories = append(out.Categories, humanFloat(p.X))
			out.Values = append(out.Values, p.Y)
		}
	case len(data.IndicatorValues) > 0:
		for i, v := range data.IndicatorValues {
			name := fmt.Sprintf("#%d", i+1)
			if i < len(data.Indicators) {
				name = data.Indicators[i].Name
			}
			out.Categories = append(out.Categories, name)
			out.Values = append(out.Values, v)
		}
	case data.Scalar != nil:
		out.Categories = []string{"value"}
		out.Values = []float64{*data.Scalar}
	default:
		return sampledata.For(chart.KindBar)
	}
	return out
}

func humanFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

// deriveLegend fills legend entries from named series.
func deriveLegend(s *spec.Specification) {
	s.Legend.Entries = s.Legend.Entries[:0]
	for _, sr := range s.Series {
		if sr.Name != "" {
			s.Legend.Entries = append(s.Legend.Entries, sr.Name)
		}
	}
}
