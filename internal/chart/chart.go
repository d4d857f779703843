// Package chart defines the shared vocabulary of the widget rendering
// engine: chart kinds, the boundary configuration bag, and the typed
// per-kind dataset consumed by the option compiler.
package chart

import "strings"

// Kind identifies a chart renderer. The set is closed; unknown strings
// coming from external payloads are mapped through ParseKind.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindArea    Kind = "area"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindRadar   Kind = "radar"
	KindGauge   Kind = "gauge"
	KindHeatmap Kind = "heatmap"
	KindFunnel  Kind = "funnel"
)

// Kinds lists every supported chart kind in palette order.
func Kinds() []Kind {
	return []Kind{
		KindBar, KindLine, KindArea, KindPie, KindScatter,
		KindRadar, KindGauge, KindHeatmap, KindFunnel,
	}
}

// ParseKind normalizes an external chart-type string. Unknown values
// return the input kind unchanged with ok=false; the compiler renders
// those with a best-effort bar fallback rather than rejecting them.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// Config is the flat property bag a widget carries. It is written by the
// host (property panel, drop payloads) and consumed read-only here; the
// closed set of known property names lives in the impact package.
type Config map[string]any

// GetString returns a string property or the fallback.
func (c Config) GetString(key, fallback string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// GetBool returns a bool property or the fallback.
func (c Config) GetBool(key string, fallback bool) bool {
	if v, ok := c[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// GetFloat returns a numeric property or the fallback. JSON decoding
// hands us float64; direct host writes may use int.
func (c Config) GetFloat(key string, fallback float64) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

// Responsive reports whether the widget opted into resize observation.
// Only an explicit false disables it.
func (c Config) Responsive() bool {
	return c.GetBool("responsive", true)
}

// Clone returns a shallow copy. Values are shared; the engine never
// mutates them.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// XYPoint is a scatter coordinate.
type XYPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NameValue is a pie or funnel slice.
type NameValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Indicator is one radar axis with its maximum.
type Indicator struct {
	Name string  `json:"name" yaml:"name"`
	Max  float64 `json:"max" yaml:"max"`
}

// HeatCell is one (x, y, value) triple of a heatmap.
type HeatCell struct {
	X     int     `json:"x" yaml:"x"`
	Y     int     `json:"y" yaml:"y"`
	Value float64 `json:"value" yaml:"value"`
}

// Dataset is the typed data payload bound to a widget. Exactly one
// shape is populated per chart kind; the compiler picks the matching
// field and falls back to sample data when it is empty.
type Dataset struct {
	// Category charts: bar, line, area.
	Categories []string  `json:"categories,omitempty" yaml:"categories,omitempty"`
	Values     []float64 `json:"values,omitempty" yaml:"values,omitempty"`

	// Scatter.
	Points []XYPoint `json:"points,omitempty" yaml:"points,omitempty"`

	// Pie, funnel.
	Pairs []NameValue `json:"pairs,omitempty" yaml:"pairs,omitempty"`

	// Radar.
	Indicators      []Indicator `json:"indicators,omitempty" yaml:"indicators,omitempty"`
	IndicatorValues []float64   `json:"indicatorValues,omitempty" yaml:"indicatorValues,omitempty"`

	// Gauge.
	Scalar *float64 `json:"scalar,omitempty" yaml:"scalar,omitempty"`

	// Heatmap.
	XLabels []string   `json:"xLabels,omitempty" yaml:"xLabels,omitempty"`
	YLabels []string   `json:"yLabels,omitempty" yaml:"yLabels,omitempty"`
	Cells   []HeatCell `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// IsEmpty reports whether no shape carries data.
func (d *Dataset) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Values) == 0 &&
		len(d.Points) == 0 &&
		len(d.Pairs) == 0 &&
		len(d.IndicatorValues) == 0 &&
		d.Scalar == nil &&
		len(d.Cells) == 0
}
