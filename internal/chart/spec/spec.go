// Package spec defines the compiled, renderer-ready chart specification.
// A Specification is ephemeral: it is rebuilt from configuration + data
// on every full update and patched in place for cheap visual changes.
package spec

// Title describes the chart heading block.
type Title struct {
	Text    string `json:"text,omitempty"`
	Subtext string `json:"subtext,omitempty"`
	Show    bool   `json:"show"`
}

// Legend describes the series legend.
type Legend struct {
	Show     bool     `json:"show"`
	Position string   `json:"position,omitempty"` // top, bottom, left, right
	Entries  []string `json:"entries,omitempty"`
}

// Tooltip describes hover behavior. In the terminal renderer this drives
// the inline value readout of the selected widget.
type Tooltip struct {
	Show    bool   `json:"show"`
	Trigger string `json:"trigger,omitempty"` // item or axis
}

// Grid is the plotting-area inset.
type Grid struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Axis describes one cartesian axis.
type Axis struct {
	Show       bool     `json:"show"`
	Name       string   `json:"name,omitempty"`
	Kind       string   `json:"kind,omitempty"` // category or value
	Categories []string `json:"categories,omitempty"`
}

// SeriesPoint is one datum of a series. Name carries category or slice
// labels; X/Y carry scatter and heatmap coordinates.
type SeriesPoint struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// Series is one renderable series.
type Series struct {
	Name        string        `json:"name,omitempty"`
	Kind        string        `json:"kind"`
	Data        []SeriesPoint `json:"data"`
	Color       string        `json:"color,omitempty"`
	Smooth      bool          `json:"smooth,omitempty"`
	AreaOpacity float64       `json:"areaOpacity,omitempty"`
	Max         float64       `json:"max,omitempty"` // gauge / radar scale
}

// VisualMap maps heatmap values onto a color ramp.
type VisualMap struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Colors []string `json:"colors,omitempty"`
}

// Watermark is the branding overlay stamped onto free-tier charts.
type Watermark struct {
	Text    string `json:"text"`
	Opacity float64 `json:"opacity"`
}

// Specification is the complete declarative chart description consumed
// by the rendering surface. Series is never empty for a compiled spec.
type Specification struct {
	Title      Title      `json:"title"`
	Legend     Legend     `json:"legend"`
	Tooltip    Tooltip    `json:"tooltip"`
	Grid       Grid       `json:"grid"`
	XAxis      Axis       `json:"xAxis"`
	YAxis      Axis       `json:"yAxis"`
	Series     []Series   `json:"series"`
	Palette    []string   `json:"palette,omitempty"`
	Animation  bool       `json:"animation"`
	Background string     `json:"backgroundColor,omitempty"`
	VisualMap  *VisualMap `json:"visualMap,omitempty"`
	Watermark  *Watermark `json:"watermark,omitempty"`

	// Radar indicator ring, unused by cartesian kinds.
	Indicators []string `json:"indicators,omitempty"`
}

// Clone returns a deep copy. Decorators and partial patches operate on
// clones so a live specification is never shared-mutated.
func (s *Specification) Clone() *Specification {
	if s == nil {
		return nil
	}
	out := *s
	out.Series = make([]Series, len(s.Series))
	for i, sr := range s.Series {
		cp := sr
		cp.Data = append([]SeriesPoint(nil), sr.Data...)
		out.Series[i] = cp
	}
	out.Palette = append([]string(nil), s.Palette...)
	out.Indicators = append([]string(nil), s.Indicators...)
	out.Legend.Entries = append([]string(nil), s.Legend.Entries...)
	out.XAxis.Categories = append([]string(nil), s.XAxis.Categories...)
	out.YAxis.Categories = append([]string(nil), s.YAxis.Categories...)
	if s.VisualMap != nil {
		vm := *s.VisualMap
		vm.Colors = append([]string(nil), s.VisualMap.Colors...)
		out.VisualMap = &vm
	}
	if s.Watermark != nil {
		wm := *s.Watermark
		out.Watermark = &wm
	}
	return &out
}

// Recolor reapplies a palette across all series in order, preserving
// every other series attribute. Used by partial palette updates.
func (s *Specification) Recolor(palette []string) {
	if len(palette) == 0 {
		return
	}
	s.Palette = append([]string(nil), palette...)
	for i := range s.Series {
		s.Series[i].Color = palette[i%len(palette)]
	}
}
