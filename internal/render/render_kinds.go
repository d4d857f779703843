package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// renderBar draws a horizontal bar chart with pterm, then colors each
// bar from the palette. pterm's own coloring is disabled so lipgloss
// controls the output end to end.
func (r *Terminal) renderBar(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(sr.Data) == 0 {
		return styles.InfoStyle.Render("no data")
	}

	rows := sr.Data
	if len(rows) > height {
		rows = rows[:height]
	}

	bars := make(pterm.Bars, 0, len(rows))
	for _, p := range rows {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("%v", p.X)
		}
		bars = append(bars, pterm.Bar{
			Label: runewidth.Truncate(label, 12, "…"),
			Value: int(math.Round(p.Value)),
		})
	}

	pterm.DisableColor()
	out, err := pterm.DefaultBarChart.
		WithHorizontal(true).
		WithShowValue(true).
		WithWidth(width - 16).
		WithBars(bars).
		Srender()
	pterm.EnableColor()
	if err != nil {
		return styles.ErrorStyle.Render("chart render failed")
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	colored := make([]string, 0, len(lines))
	barIdx := 0
	for _, line := range lines {
		if strings.ContainsRune(line, '█') {
			style := lipgloss.NewStyle().Foreground(seriesColor(s, barIdx))
			colored = append(colored, colorizeBarRun(line, style))
			barIdx++
		} else {
			colored = append(colored, line)
		}
	}
	return strings.Join(colored, "\n")
}

// colorizeBarRun styles only the block-character run of a bar line,
// leaving the label and value untouched.
func colorizeBarRun(line string, style lipgloss.Style) string {
	start := strings.IndexRune(line, '█')
	if start < 0 {
		return line
	}
	end := strings.LastIndex(line, "█") + len("█")
	return line[:start] + style.Render(line[start:end]) + line[end:]
}

// renderPie draws proportional labeled bars with percentages. A true
// circular pie wastes most of a terminal cell, so slices become rows.
func (r *Terminal) renderPie(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	total := 0.0
	for _, p := range sr.Data {
		total += p.Value
	}
	if total <= 0 {
		return styles.InfoStyle.Render("no data")
	}

	rows := sr.Data
	if len(rows) > height {
		rows = rows[:height]
	}

	labelW := 0
	for _, p := range rows {
		if w := runewidth.StringWidth(p.Name); w > labelW {
			labelW = w
		}
	}
	if labelW > 14 {
		labelW = 14
	}
	barW := width - labelW - 10
	if barW < 4 {
		barW = 4
	}

	var lines []string
	for i, p := range rows {
		frac := p.Value / total
		filled := int(math.Round(frac * float64(barW)))
		if filled < 1 && p.Value > 0 {
			filled = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(seriesColor(s, i)).
			Render(strings.Repeat("█", filled))
		label := runewidth.FillRight(runewidth.Truncate(p.Name, labelW, "…"), labelW)
		lines = append(lines, fmt.Sprintf("%s %s %5.1f%%", label, bar, frac*100))
	}
	return strings.Join(lines, "\n")
}

// renderFunnel draws centered bars shrinking from the widest stage.
func (r *Terminal) renderFunnel(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(sr.Data) == 0 {
		return styles.InfoStyle.Render("no data")
	}
	top := 0.0
	for _, p := range sr.Data {
		if p.Value > top {
			top = p.Value
		}
	}
	if top <= 0 {
		return styles.InfoStyle.Render("no data")
	}

	rows := sr.Data
	if len(rows) > height {
		rows = rows[:height]
	}

	maxBar := width - 4
	if maxBar < 6 {
		maxBar = 6
	}
	var lines []string
	for i, p := range rows {
		barW := int(math.Round(p.Value / top * float64(maxBar)))
		if barW < 2 {
			barW = 2
		}
		bar := lipgloss.NewStyle().
			Foreground(seriesColor(s, i)).
			Render(strings.Repeat("█", barW))
		caption := fmt.Sprintf("%s %s", p.Name, humanize.CommafWithDigits(p.Value, 1))
		stage := lipgloss.JoinVertical(lipgloss.Center, bar,
			styles.FaintStyle.Render(runewidth.Truncate(caption, maxBar, "…")))
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, stage))
	}
	return strings.Join(lines, "\n")
}

// renderGauge draws the current value over a filled progress track.
func (r *Terminal) renderGauge(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(sr.Data) == 0 {
		return styles.InfoStyle.Render("no data")
	}
	value := sr.Data[0].Value
	max := sr.Max
	if max <= 0 {
		max = 100
	}
	frac := value / max
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	trackW := width - 8
	if trackW < 8 {
		trackW = 8
	}
	filled := int(math.Round(frac * float64(trackW)))

	color := seriesColor(s, 0)
	readout := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(humanize.CommafWithDigits(value, 1))
	pct := styles.FaintStyle.Render(fmt.Sprintf(" / %s (%.0f%%)",
		humanize.CommafWithDigits(max, 0), frac*100))
	track := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		styles.FaintStyle.Render(strings.Repeat("░", trackW-filled))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, readout+pct, track))
}

// renderRadar draws each indicator as a mini bar on the shared series
// scale, the readable terminal stand-in for a polar plot.
func (r *Terminal) renderRadar(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(s.Indicators) == 0 || len(sr.Data) == 0 {
		return styles.InfoStyle.Render("no data")
	}

	labelW := 0
	for _, name := range s.Indicators {
		if w := runewidth.StringWidth(name); w > labelW {
			labelW = w
		}
	}
	if labelW > 12 {
		labelW = 12
	}
	barW := width - labelW - 10
	if barW < 4 {
		barW = 4
	}

	max := sr.Max
	if max <= 0 {
		max = 100
	}
	var lines []string
	for i, name := range s.Indicators {
		if i >= len(sr.Data) || i >= height {
			break
		}
		v := sr.Data[i].Value
		filled := int(math.Round(v / max * float64(barW)))
		if filled < 0 {
			filled = 0
		}
		if filled > barW {
			filled = barW
		}
		bar := lipgloss.NewStyle().Foreground(seriesColor(s, 0)).
			Render(strings.Repeat("█", filled)) +
			styles.FaintStyle.Render(strings.Repeat("░", barW-filled))
		label := runewidth.FillRight(runewidth.Truncate(name, labelW, "…"), labelW)
		lines = append(lines, fmt.Sprintf("%s %s %s", label, bar,
			humanize.CommafWithDigits(v, 0)))
	}
	return strings.Join(lines, "\n")
}

// heatRamp shades a cell by where its value falls between the visual
// map bounds, mapping onto the configured color stops.
func heatRamp(v, min, max float64, colors []string) lipgloss.Color {
	if len(colors) == 0 {
		return lipgloss.Color("6")
	}
	if max <= min {
		return lipgloss.Color(colors[0])
	}
	frac := (v - min) / (max - min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	idx := int(frac * float64(len(colors)-1))
	return lipgloss.Color(colors[idx])
}

// renderHeatmap draws the cell grid as two-column shaded blocks with
// axis labels on the left edge.
func (r *Terminal) renderHeatmap(s *spec.Specification, width, height int) string {
	sr := s.Series[0]
	if len(sr.Data) == 0 {
		return styles.InfoStyle.Render("no data")
	}

	xLabels := s.XAxis.Categories
	yLabels := s.YAxis.Categories
	grid := make(map[[2]int]float64, len(sr.Data))
	for _, p := range sr.Data {
		grid[[2]int{int(p.X), int(p.Y)}] = p.Value
	}

	var vmMin, vmMax float64
	var vmColors []string
	if s.VisualMap != nil {
		vmMin, vmMax = s.VisualMap.Min, s.VisualMap.Max
		vmColors = s.VisualMap.Colors
	} else {
		vmMin, vmMax = math.Inf(1), math.Inf(-1)
		for _, p := range sr.Data {
			vmMin = math.Min(vmMin, p.Value)
			vmMax = math.Max(vmMax, p.Value)
		}
	}

	labelW := 0
	for _, l := range yLabels {
		if w := runewidth.StringWidth(l); w > labelW {
			labelW = w
		}
	}
	if labelW > 10 {
		labelW = 10
	}
	maxCols := (width - labelW - 1) / 2
	cols := len(xLabels)
	if cols > maxCols {
		cols = maxCols
	}

	var lines []string
	for y, yl := range yLabels {
		if y >= height-1 {
			break
		}
		var sb strings.Builder
		sb.WriteString(runewidth.FillRight(runewidth.Truncate(yl, labelW, "…"), labelW))
		sb.WriteString(" ")
		for x := 0; x < cols; x++ {
			v, ok := grid[[2]int{x, y}]
			if !ok {
				sb.WriteString(styles.FaintStyle.Render("··"))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(heatRamp(v, vmMin, vmMax, vmColors)).
				Render("██"))
		}
		lines = append(lines, sb.String())
	}

	// Bottom axis marks the first and last visible column.
	if cols > 0 && len(xLabels) > 0 {
		first := xLabels[0]
		last := xLabels[cols-1]
		axisW := cols * 2
		gap := axisW - runewidth.StringWidth(first) - runewidth.StringWidth(last)
		if gap < 1 {
			gap = 1
		}
		axis := strings.Repeat(" ", labelW+1) + first + strings.Repeat(" ", gap) + last
		lines = append(lines, styles.FaintStyle.Render(runewidth.Truncate(axis, width, "")))
	}
	return strings.Join(lines, "\n")
}
