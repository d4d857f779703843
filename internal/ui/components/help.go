package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// HelpOverlay renders the keyboard reference over the canvas.
type HelpOverlay struct {
	width   int
	height  int
	visible bool
}

// NewHelpOverlay creates a hidden help overlay.
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{}
}

// Toggle flips visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// Hide closes the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// IsVisible returns whether the overlay is open.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

type helpEntry struct {
	keys string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Canvas", []helpEntry{
		{"tab / shift+tab", "cycle widget selection"},
		{"click", "select widget"},
		{"drag", "move widget"},
		{"drag corner", "resize widget"},
		{"right-click", "widget menu"},
		{"esc", "deselect / close"},
	}},
	{"Widget", []helpEntry{
		{"arrows", "move selected widget"},
		{"shift+arrows", "resize selected widget"},
		{"d", "duplicate"},
		{"l", "lock / unlock"},
		{"v", "show / hide"},
		{"del / x", "delete (confirms)"},
	}},
	{"Dashboard", []helpEntry{
		{"p", "add widget"},
		{"ctrl+s", "save dashboard"},
		{"ctrl+z / ctrl+y", "undo / redo"},
		{"+ / - / 0", "zoom in / out / reset"},
	}},
	{"Export", []helpEntry{
		{"c", "copy spec to clipboard"},
		{"s / S", "snapshot (plain / ansi)"},
		{"e / E", "export data (csv / xlsx)"},
		{"J", "export spec json"},
	}},
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.ColorAccent).Width(18)
	var lines []string
	lines = append(lines, styles.DialogTitleStyle.Render("Keyboard Reference"), "")
	for _, section := range helpSections {
		lines = append(lines, styles.CellTitleStyle.Render(section.title))
		for _, e := range section.entries {
			lines = append(lines, "  "+keyStyle.Render(e.keys)+e.desc)
		}
		lines = append(lines, "")
	}
	lines = append(lines, styles.FaintStyle.Render("? or esc to close"))

	box := styles.DialogStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}
