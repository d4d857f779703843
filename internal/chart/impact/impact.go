// Package impact maps configuration properties onto the chart
// specification regions they can touch, and computes which top-level
// keys changed between two configuration snapshots. The update
// scheduler uses both to decide between a partial patch and a full
// recompile.
package impact

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
)

// Region is a top-level area of a compiled chart specification.
type Region string

const (
	RegionTitle      Region = "title"
	RegionLegend     Region = "legend"
	RegionTooltip    Region = "tooltip"
	RegionSeries     Region = "series"
	RegionXAxis      Region = "xAxis"
	RegionYAxis      Region = "yAxis"
	RegionAnimation  Region = "animation"
	RegionGrid       Region = "grid"
	RegionLayout     Region = "layout"
	RegionBackground Region = "backgroundColor"
)

// Property is a known configuration key. The set is closed; properties
// arriving from external payloads that are not listed here still flow
// through the resolver and conservatively map to the series region.
type Property string

const (
	PropTitle          Property = "title"
	PropSubtitle       Property = "subtitle"
	PropChartType      Property = "chartType"
	PropColorPalette   Property = "colorPalette"
	PropTheme          Property = "theme"
	PropLegendVisible  Property = "legendVisible"
	PropLegendPosition Property = "legendPosition"
	PropTooltipVisible Property = "tooltipVisible"
	PropTooltipTrigger Property = "tooltipTrigger"
	PropXAxisField     Property = "xAxisField"
	PropYAxisField     Property = "yAxisField"
	PropXAxisName      Property = "xAxisName"
	PropYAxisName      Property = "yAxisName"
	PropSeriesField    Property = "seriesField"
	PropSmooth         Property = "smooth"
	PropStacked        Property = "stacked"
	PropAnimation      Property = "animation"
	PropBackground     Property = "backgroundColor"
	PropResponsive     Property = "responsive"
	PropShowGrid       Property = "showGrid"
)

// regionsByProperty is the static property -> affected regions table.
// A missing entry means the property conservatively refreshes series:
// a possibly-unnecessary series rebuild beats a silently dropped update.
var regionsByProperty = map[Property][]Region{
	PropTitle:          {RegionTitle},
	PropSubtitle:       {RegionTitle},
	PropChartType:      {RegionSeries, RegionXAxis, RegionYAxis, RegionLegend},
	PropColorPalette:   {RegionSeries},
	PropTheme:          {RegionSeries, RegionBackground},
	PropLegendVisible:  {RegionLegend},
	PropLegendPosition: {RegionLegend, RegionGrid},
	PropTooltipVisible: {RegionTooltip},
	PropTooltipTrigger: {RegionTooltip},
	PropXAxisField:     {RegionXAxis, RegionSeries},
	PropYAxisField:     {RegionYAxis, RegionSeries},
	PropXAxisName:      {RegionXAxis},
	PropYAxisName:      {RegionYAxis},
	PropSeriesField:    {RegionSeries, RegionLegend},
	PropSmooth:         {RegionSeries},
	PropStacked:        {RegionSeries},
	PropAnimation:      {RegionAnimation},
	PropBackground:     {RegionBackground},
	PropResponsive:     {RegionLayout},
	PropShowGrid:       {RegionGrid},
}

// immediateProperties are visual-only changes applied as a partial
// patch onto the live specification. Everything else forces a full
// recompile through the option compiler.
var immediateProperties = map[Property]bool{
	PropTitle:          true,
	PropSubtitle:       true,
	PropColorPalette:   true,
	PropTheme:          true,
	PropLegendVisible:  true,
	PropLegendPosition: true,
	PropTooltipVisible: true,
	PropTooltipTrigger: true,
	PropBackground:     true,
	PropAnimation:      true,
}

// Regions returns the specification regions a property can affect.
func Regions(p Property) []Region {
	if rs, ok := regionsByProperty[p]; ok {
		return append([]Region(nil), rs...)
	}
	return []Region{RegionSeries}
}

// IsImmediate reports whether a changed property can be applied as a
// cheap partial patch without recompiling the specification.
func IsImmediate(p Property) bool {
	return immediateProperties[p]
}

// Diff returns the sorted set of top-level keys whose deep value
// differs between prev and next, including keys removed in next.
// Equality is deep value equality over the serialized form, never
// reference equality.
func Diff(prev, next map[string]any) []Property {
	changed := make(map[Property]bool)
	for k, nv := range next {
		pv, ok := prev[k]
		if !ok || !deepEqual(pv, nv) {
			changed[Property(k)] = true
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			changed[Property(k)] = true
		}
	}
	out := make([]Property, 0, len(changed))
	for k := range changed {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports deep value equality between two snapshots using the
// same serialized comparison Diff does.
func Equal(a, b any) bool {
	return deepEqual(a, b)
}

// deepEqual compares two values by canonical JSON so that numerically
// equal values of different Go types (int vs float64 across the host
// boundary) compare equal. Unserializable values fall back to
// reflect.DeepEqual.
func deepEqual(a, b any) bool {
	ab, aerr := json.Marshal(a)
	bb, berr := json.Marshal(b)
	if aerr != nil || berr != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ab, bb)
}

// Classify splits changed properties into immediate and structural
// groups, preserving input order.
func Classify(changed []Property) (immediate, structural []Property) {
	for _, p := range changed {
		if IsImmediate(p) {
			immediate = append(immediate, p)
		} else {
			structural = append(structural, p)
		}
	}
	return immediate, structural
}
