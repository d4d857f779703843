package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// MenuAction identifies a context menu entry.
type MenuAction int

const (
	MenuEdit MenuAction = iota
	MenuDuplicate
	MenuToggleVisibility
	MenuToggleLock
	MenuCopySpec
	MenuExportData
	MenuDelete
)

type menuItem struct {
	action MenuAction
	label  string
	danger bool
}

// ContextMenu is the right-click menu anchored to a widget. It tracks
// its own anchor position so the canvas can hit-test outside clicks.
type ContextMenu struct {
	widgetID string
	locked   bool
	hidden   bool
	x, y     int
	cursor   int
	visible  bool
}

// NewContextMenu creates a hidden context menu.
func NewContextMenu() *ContextMenu {
	return &ContextMenu{}
}

// Show opens the menu for a widget at an anchor position.
func (m *ContextMenu) Show(widgetID string, locked, hidden bool, x, y int) {
	m.widgetID = widgetID
	m.locked = locked
	m.hidden = hidden
	m.x = x
	m.y = y
	m.cursor = 0
	m.visible = true
}

// Hide closes the menu.
func (m *ContextMenu) Hide() {
	m.visible = false
}

// IsVisible returns whether the menu is open.
func (m *ContextMenu) IsVisible() bool {
	return m.visible
}

// GetWidgetID returns the widget the menu targets.
func (m *ContextMenu) GetWidgetID() string {
	return m.widgetID
}

// Anchor returns the menu's anchor position.
func (m *ContextMenu) Anchor() (int, int) {
	return m.x, m.y
}

func (m *ContextMenu) items() []menuItem {
	visLabel := "Hide"
	if m.hidden {
		visLabel = "Show"
	}
	lockLabel := "Lock"
	if m.locked {
		lockLabel = "Unlock"
	}
	return []menuItem{
		{MenuEdit, "Edit Title", false},
		{MenuDuplicate, "Duplicate", false},
		{MenuToggleVisibility, visLabel, false},
		{MenuToggleLock, lockLabel, false},
		{MenuCopySpec, "Copy Spec", false},
		{MenuExportData, "Export Data", false},
		{MenuDelete, "Delete", true},
	}
}

// MoveCursor shifts the highlighted entry by delta, clamped.
func (m *ContextMenu) MoveCursor(delta int) {
	n := len(m.items())
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

// SetCursor jumps the highlight to an entry index, reporting whether
// the index was valid.
func (m *ContextMenu) SetCursor(i int) bool {
	if i < 0 || i >= len(m.items()) {
		return false
	}
	m.cursor = i
	return true
}

// Selected returns the highlighted action.
func (m *ContextMenu) Selected() MenuAction {
	return m.items()[m.cursor].action
}

// Contains reports whether a screen position falls inside the menu's
// rendered box. Clicks outside dismiss the menu.
func (m *ContextMenu) Contains(x, y int) bool {
	if !m.visible {
		return false
	}
	w, h := m.size()
	return x >= m.x && x < m.x+w && y >= m.y && y < m.y+h
}

func (m *ContextMenu) size() (int, int) {
	items := m.items()
	w := 0
	for _, it := range items {
		if lw := runewidth.StringWidth(it.label); lw > w {
			w = lw
		}
	}
	// Padding and border from MenuStyle.
	return w + 6, len(items) + 2
}

// View renders the open menu.
func (m *ContextMenu) View() string {
	if !m.visible {
		return ""
	}
	items := m.items()
	lines := make([]string, 0, len(items))
	for i, it := range items {
		style := styles.MenuItemStyle
		if i == m.cursor {
			style = styles.MenuSelectedStyle
		} else if it.danger {
			style = style.Foreground(styles.ColorDanger)
		}
		lines = append(lines, style.Render(it.label))
	}
	return styles.MenuStyle.Render(strings.Join(lines, "\n"))
}

// Overlay places the rendered menu on top of a base view at the
// anchor, clamped to the base's bounds.
func (m *ContextMenu) Overlay(base string, baseWidth, baseHeight int) string {
	if !m.visible {
		return base
	}
	menu := m.View()
	w, h := m.size()
	x, y := m.x, m.y
	if x+w > baseWidth {
		x = baseWidth - w
	}
	if y+h > baseHeight {
		y = baseHeight - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	m.x, m.y = x, y

	baseLines := strings.Split(base, "\n")
	menuLines := strings.Split(menu, "\n")
	for i, ml := range menuLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = SpliceLine(baseLines[row], ml, x, baseWidth)
	}
	return strings.Join(baseLines, "\n")
}

// SpliceLine overlays an ANSI-styled fragment into a base line at a
// column, preserving the visible width of the untouched portions.
func SpliceLine(base, overlay string, col, width int) string {
	left := lipgloss.NewStyle().MaxWidth(col).Render(base)
	leftW := lipgloss.Width(left)
	if leftW < col {
		left += strings.Repeat(" ", col-leftW)
	}
	overlayW := lipgloss.Width(overlay)
	right := ""
	if rem := width - col - overlayW; rem > 0 {
		baseW := lipgloss.Width(base)
		if baseW > col+overlayW {
			// Keep trailing base content by re-rendering past the menu.
			plain := []rune(stripToWidth(base))
			if col+overlayW < len(plain) {
				right = string(plain[col+overlayW:])
			}
		}
	}
	return left + overlay + right
}

func stripToWidth(s string) string {
	// lipgloss.Width ignores escapes; for the trailing slice a plain
	// approximation is enough since canvas rows are space padded.
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
