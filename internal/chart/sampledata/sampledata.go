// Package sampledata supplies deterministic placeholder datasets per
// chart kind. Widgets with no bound data render these so a freshly
// dropped widget is never blank.
package sampledata

import (
	"math/rand"

	"github.com/VividCortex/ewma"

	"github.com/mosaicboard/mosaic/internal/chart"
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug"}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var hours = []string{"00", "04", "08", "12", "16", "20"}

// For returns the sample dataset for a chart kind. The same kind always
// yields the same dataset: generators run off fixed seeds.
func For(kind chart.Kind) *chart.Dataset {
	switch kind {
	case chart.KindLine, chart.KindArea:
		return &chart.Dataset{
			Categories: months,
			Values:     smoothWalk(7, len(months), 40, 120),
		}
	case chart.KindScatter:
		return scatter()
	case chart.KindPie:
		return &chart.Dataset{
			Pairs: []chart.NameValue{
				{Name: "Search", Value: 1048},
				{Name: "Direct", Value: 735},
				{Name: "Email", Value: 580},
				{Name: "Ads", Value: 484},
				{Name: "Video", Value: 300},
			},
		}
	case chart.KindFunnel:
		return &chart.Dataset{
			Pairs: []chart.NameValue{
				{Name: "Visit", Value: 100},
				{Name: "Signup", Value: 80},
				{Name: "Activate", Value: 60},
				{Name: "Order", Value: 40},
				{Name: "Repeat", Value: 20},
			},
		}
	case chart.KindRadar:
		return &chart.Dataset{
			Indicators: []chart.Indicator{
				{Name: "Sales", Max: 100},
				{Name: "Admin", Max: 100},
				{Name: "Tech", Max: 100},
				{Name: "Support", Max: 100},
				{Name: "Dev", Max: 100},
				{Name: "Marketing", Max: 100},
			},
			IndicatorValues: []float64{80, 50, 90, 70, 85, 60},
		}
	case chart.KindGauge:
		v := 72.4
		return &chart.Dataset{Scalar: &v}
	case chart.KindHeatmap:
		return heatmap()
	default:
		// Bar, and the fallback shape for unknown kinds.
		return &chart.Dataset{
			Categories: weekdays,
			Values:     smoothWalk(3, len(weekdays), 20, 90),
		}
	}
}

// smoothWalk generates a bounded random walk and passes it through an
// exponentially weighted moving average so the sample series looks like
// a measured metric rather than noise. Fixed seed keeps it stable.
func smoothWalk(seed int64, n int, lo, hi float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	avg := ewma.NewMovingAverage(4)
	out := make([]float64, n)
	v := (lo + hi) / 2
	for i := 0; i < n; i++ {
		v += (rng.Float64() - 0.5) * (hi - lo) / 3
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		avg.Add(v)
		smoothed := avg.Value()
		if smoothed == 0 {
			// ewma warms up over the first few samples.
			smoothed = v
		}
		out[i] = float64(int(smoothed*10)) / 10
	}
	return out
}

func scatter() *chart.Dataset {
	rng := rand.New(rand.NewSource(11))
	pts := make([]chart.XYPoint, 24)
	for i := range pts {
		x := float64(i) * 4
		pts[i] = chart.XYPoint{
			X: x,
			Y: 20 + x*0.6 + rng.Float64()*25,
		}
	}
	return &chart.Dataset{Points: pts}
}

func heatmap() *chart.Dataset {
	rng := rand.New(rand.NewSource(23))
	cells := make([]chart.HeatCell, 0, len(hours)*len(weekdays))
	for y := range weekdays {
		for x := range hours {
			cells = append(cells, chart.HeatCell{
				X:     x,
				Y:     y,
				Value: float64(int(rng.Float64() * 10)),
			})
		}
	}
	return &chart.Dataset{
		XLabels: hours,
		YLabels: weekdays,
		Cells:   cells,
	}
}
