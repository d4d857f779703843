// Package styles provides centralized Lipgloss styling for the Mosaic UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette for the Mosaic UI chrome, bound by SetTheme.
var (
	// UI element colors
	ColorBorder  lipgloss.Color // panel borders
	ColorAccent  lipgloss.Color // titles, highlights
	ColorMuted   lipgloss.Color // secondary text
	ColorSuccess lipgloss.Color // success toasts
	ColorError   lipgloss.Color // error toasts

	// Selection and affordances
	ColorSelected lipgloss.Color // selected cell border
	ColorLocked   lipgloss.Color // locked cell border
	ColorHidden   lipgloss.Color // hidden cell border

	// Dialog colors
	ColorDanger    lipgloss.Color
	ColorWarningFg lipgloss.Color
)

func init() {
	SetTheme("dark")
}

// SetTheme rebinds the chrome palette for the named theme and rebuilds
// every derived style. Unknown names fall back to dark.
func SetTheme(name string) {
	switch name {
	case "light":
		ColorBorder = lipgloss.Color("250")
		ColorAccent = lipgloss.Color("25")
		ColorMuted = lipgloss.Color("245")
		ColorSuccess = lipgloss.Color("28")
		ColorError = lipgloss.Color("124")
		ColorSelected = lipgloss.Color("93")
		ColorLocked = lipgloss.Color("130")
		ColorHidden = lipgloss.Color("252")
		ColorDanger = lipgloss.Color("124")
		ColorWarningFg = lipgloss.Color("94")
	default:
		ColorBorder = lipgloss.Color("240")
		ColorAccent = lipgloss.Color("6")
		ColorMuted = lipgloss.Color("8")
		ColorSuccess = lipgloss.Color("10")
		ColorError = lipgloss.Color("9")
		ColorSelected = lipgloss.Color("57")
		ColorLocked = lipgloss.Color("208")
		ColorHidden = lipgloss.Color("238")
		ColorDanger = lipgloss.Color("9")
		ColorWarningFg = lipgloss.Color("11")
	}
	rebuildStyles()
}
