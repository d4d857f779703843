// Package render draws compiled chart specifications as styled
// terminal text. It is the concrete rendering engine behind the
// surface.Renderer interface: one stateless renderer shared by every
// widget, sized per call from the owning cell.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// Terminal renders specifications with asciigraph, pterm and lipgloss.
type Terminal struct{}

// New creates the shared terminal renderer.
func New() *Terminal {
	return &Terminal{}
}

// Render draws a specification into a width×height cell budget. It
// always returns something printable, even for degenerate sizes.
func (r *Terminal) Render(s *spec.Specification, width, height int) string {
	if s == nil || len(s.Series) == 0 {
		return styles.InfoStyle.Render("no chart")
	}
	if width < 8 || height < 2 {
		return runewidth.Truncate("…", maxInt(width, 1), "")
	}

	var parts []string
	bodyHeight := height

	if s.Title.Show {
		parts = append(parts, r.renderTitle(s, width))
		bodyHeight--
		if s.Title.Subtext != "" {
			bodyHeight--
		}
	}

	legend := ""
	if s.Legend.Show && len(s.Legend.Entries) > 0 {
		legend = r.renderLegend(s, width)
		bodyHeight--
	}

	watermark := ""
	if s.Watermark != nil {
		watermark = styles.FaintStyle.Render(
			lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(s.Watermark.Text))
		bodyHeight--
	}

	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := r.renderBody(s, width, bodyHeight)
	parts = append(parts, body)

	if legend != "" {
		if s.Legend.Position == "top" {
			// Legend slot precedes the body.
			parts = append(parts[:len(parts)-1], legend, body)
		} else {
			parts = append(parts, legend)
		}
	}
	if watermark != "" {
		parts = append(parts, watermark)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r *Terminal) renderBody(s *spec.Specification, width, height int) string {
	switch s.Series[0].Kind {
	case "bar":
		return r.renderBar(s, width, height)
	case "line":
		return r.renderLine(s, width, height)
	case "scatter":
		return r.renderScatter(s, width, height)
	case "pie":
		return r.renderPie(s, width, height)
	case "funnel":
		return r.renderFunnel(s, width, height)
	case "gauge":
		return r.renderGauge(s, width, height)
	case "radar":
		return r.renderRadar(s, width, height)
	case "heatmap":
		return r.renderHeatmap(s, width, height)
	default:
		return r.renderBar(s, width, height)
	}
}

func (r *Terminal) renderTitle(s *spec.Specification, width int) string {
	title := styles.CellTitleStyle.Render(runewidth.Truncate(s.Title.Text, width, "…"))
	if s.Title.Subtext == "" {
		return title
	}
	sub := styles.CellSubtitleStyle.Render(runewidth.Truncate(s.Title.Subtext, width, "…"))
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

func (r *Terminal) renderLegend(s *spec.Specification, width int) string {
	var sb strings.Builder
	for i, name := range s.Legend.Entries {
		if i > 0 {
			sb.WriteString("  ")
		}
		color := seriesColor(s, i)
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render("■ "))
		sb.WriteString(name)
	}
	line := runewidth.Truncate(sb.String(), width, "…")
	switch s.Legend.Position {
	case "left":
		return line
	case "right":
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(line)
	default:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line)
	}
}

// renderLine plots line and area series with asciigraph, downsampling
// to the available width.
func (r *Terminal) renderLine(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	data := make([]float64, len(sr.Data))
	for i, p := range sr.Data {
		data[i] = p.Value
	}
	if len(data) < 2 {
		return styles.InfoStyle.Render("not enough points")
	}

	graphWidth := width - 10
	if graphWidth < 10 {
		graphWidth = 10
	}
	graphHeight := height - 1
	if graphHeight < 2 {
		graphHeight = 2
	}

	graph := asciigraph.Plot(resample(data, graphWidth),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
	)
	graph = strings.TrimRight(graph, "\n")

	style := lipgloss.NewStyle().Foreground(seriesColor(s, 0))
	if sr.AreaOpacity > 0 {
		// Area charts render the same plot, faint-filled below by the
		// terminal's interpretation; mark the fill via bold baseline.
		style = style.Bold(true)
	}
	return style.Render(graph)
}

// renderScatter plots points ordered by X as a dotted series.
func (r *Terminal) renderScatter(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(sr.Data) < 2 {
		return styles.InfoStyle.Render("not enough points")
	}
	pts := append([]spec.SeriesPoint(nil), sr.Data...)
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j].X < pts[j-1].X; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	data := make([]float64, len(pts))
	for i, p := range pts {
		data[i] = p.Y
	}

	graphWidth := width - 10
	if graphWidth < 10 {
		graphWidth = 10
	}
	graphHeight := height - 1
	if graphHeight < 2 {
		graphHeight = 2
	}
	graph := asciigraph.Plot(resample(data, graphWidth),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
	)
	return lipgloss.NewStyle().
		Foreground(seriesColor(s, 0)).
		Render(strings.TrimRight(graph, "\n"))
}

// resample averages data down to fit the plot width.
func resample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	bucket := float64(len(data)) / float64(width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}
		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// seriesColor resolves the display color for a series index, falling
// back through the palette.
func seriesColor(s *spec.Specification, i int) lipgloss.Color {
	if i < len(s.Series) && s.Series[i].Color != "" {
		return lipgloss.Color(s.Series[i].Color)
	}
	if len(s.Palette) > 0 {
		return lipgloss.Color(s.Palette[i%len(s.Palette)])
	}
	return lipgloss.Color("6")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
