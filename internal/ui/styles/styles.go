package styles

import "github.com/charmbracelet/lipgloss"

// Cell styles
var (
	// CellStyle frames an unselected widget cell.
	CellStyle lipgloss.Style

	// CellSelectedStyle frames the selected widget cell.
	CellSelectedStyle lipgloss.Style

	// CellLockedStyle frames a locked widget cell.
	CellLockedStyle lipgloss.Style

	// CellHiddenStyle frames a hidden widget cell; content renders faint.
	CellHiddenStyle lipgloss.Style

	// CellTitleStyle is for the widget title bar.
	CellTitleStyle lipgloss.Style

	// CellSubtitleStyle is for the widget subtitle.
	CellSubtitleStyle lipgloss.Style

	// FaintStyle dims hidden widget content.
	FaintStyle lipgloss.Style
)

// Chrome styles
var (
	// StatusBarStyle wraps the status bar.
	StatusBarStyle lipgloss.Style

	// StatusTitleStyle is for the dashboard name.
	StatusTitleStyle lipgloss.Style

	// StatusInfoStyle is for counts and zoom.
	StatusInfoStyle lipgloss.Style

	// FooterHintStyle is for keyboard hints.
	FooterHintStyle lipgloss.Style

	// ToastStyle is for transient notifications.
	ToastStyle lipgloss.Style

	// ToastErrorStyle is for transient error notifications.
	ToastErrorStyle lipgloss.Style

	// ErrorStyle is for fatal error text.
	ErrorStyle lipgloss.Style

	// InfoStyle is for informational placeholder text.
	InfoStyle lipgloss.Style
)

// Menu styles
var (
	// MenuStyle frames the context menu.
	MenuStyle lipgloss.Style

	// MenuItemStyle is an unselected menu row.
	MenuItemStyle lipgloss.Style

	// MenuSelectedStyle is the highlighted menu row.
	MenuSelectedStyle lipgloss.Style

	// DialogStyle frames confirmation dialogs.
	DialogStyle lipgloss.Style

	// DialogTitleStyle is the dialog heading.
	DialogTitleStyle lipgloss.Style
)

// rebuildStyles derives every style from the current color palette.
// Called by SetTheme after the colors are rebound.
func rebuildStyles() {
	CellStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	CellSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorSelected)

	CellLockedStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorLocked)

	CellHiddenStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorHidden)

	CellTitleStyle = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	CellSubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	FaintStyle = lipgloss.NewStyle().Faint(true)

	StatusBarStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder)

	StatusTitleStyle = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	FooterHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToastStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	ToastErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	InfoStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1)

	MenuItemStyle = lipgloss.NewStyle()

	MenuSelectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(ColorSelected)

	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDanger).
		Padding(1, 2).
		Width(56)

	DialogTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorDanger)
}
