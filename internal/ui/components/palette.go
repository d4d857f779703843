package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// WidgetPalette is the add-widget picker listing the available chart
// kinds. Selecting one drops a new widget onto the canvas with sample
// data.
type WidgetPalette struct {
	width   int
	height  int
	kinds   []chart.Kind
	cursor  int
	visible bool
}

// NewWidgetPalette creates a hidden palette over all chart kinds.
func NewWidgetPalette() *WidgetPalette {
	return &WidgetPalette{kinds: chart.Kinds()}
}

// Show opens the palette with the cursor reset.
func (p *WidgetPalette) Show() {
	p.cursor = 0
	p.visible = true
}

// Hide closes the palette.
func (p *WidgetPalette) Hide() {
	p.visible = false
}

// IsVisible returns whether the palette is open.
func (p *WidgetPalette) IsVisible() bool {
	return p.visible
}

// SetSize sets the overlay dimensions.
func (p *WidgetPalette) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// MoveCursor shifts the highlighted kind by delta, wrapping.
func (p *WidgetPalette) MoveCursor(delta int) {
	n := len(p.kinds)
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Selected returns the highlighted chart kind.
func (p *WidgetPalette) Selected() chart.Kind {
	return p.kinds[p.cursor]
}

// Select moves the cursor onto a kind. Unknown kinds leave the cursor
// where it is.
func (p *WidgetPalette) Select(kind chart.Kind) {
	for i, k := range p.kinds {
		if k == kind {
			p.cursor = i
			return
		}
	}
}

// View renders the palette overlay.
func (p *WidgetPalette) View() string {
	if !p.visible {
		return ""
	}

	title := styles.DialogTitleStyle.Render("Add Widget")
	lines := make([]string, 0, len(p.kinds)+2)
	lines = append(lines, title, "")
	for i, k := range p.kinds {
		style := styles.MenuItemStyle
		if i == p.cursor {
			style = styles.MenuSelectedStyle
		}
		lines = append(lines, style.Render(string(k)))
	}
	lines = append(lines, "", styles.FaintStyle.Render("enter to add, esc to cancel"))

	box := styles.DialogStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
