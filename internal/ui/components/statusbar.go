package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mosaicboard/mosaic/internal/logger"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// StatusBar represents the status bar component
type StatusBar struct {
	width int

	// Status data
	dashboardName string
	widgetCount   int
	selectedTitle string
	zoom          float64
	plan          string
	dirty         bool
	readOnly      bool

	// Transient toast
	toast      string
	toastError bool
	toastUntil time.Time
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{zoom: 1.0}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetDashboard sets the dashboard name and widget count
func (s *StatusBar) SetDashboard(name string, count int) {
	s.dashboardName = name
	s.widgetCount = count
}

// SetSelected sets the selected widget title ("" clears it)
func (s *StatusBar) SetSelected(title string) {
	s.selectedTitle = title
}

// SetZoom sets the displayed zoom factor
func (s *StatusBar) SetZoom(zoom float64) {
	s.zoom = zoom
}

// SetPlan sets the displayed plan tier
func (s *StatusBar) SetPlan(plan string) {
	s.plan = plan
}

// SetDirty marks unsaved changes
func (s *StatusBar) SetDirty(dirty bool) {
	s.dirty = dirty
}

// SetReadOnly marks the read-only session flag
func (s *StatusBar) SetReadOnly(readOnly bool) {
	s.readOnly = readOnly
}

// ShowToast displays a transient message until the deadline
func (s *StatusBar) ShowToast(text string, isError bool, until time.Time) {
	s.toast = text
	s.toastError = isError
	s.toastUntil = until
}

// ClearToast removes an expired toast
func (s *StatusBar) ClearToast(now time.Time) {
	if !now.Before(s.toastUntil) {
		s.toast = ""
	}
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.width == 0 {
		return ""
	}

	name := s.dashboardName
	if name == "" {
		name = "untitled"
	}
	if s.dirty {
		name += " *"
	}
	left := styles.StatusTitleStyle.Render(" " + name + " ")

	var parts []string
	parts = append(parts, fmt.Sprintf("%d widgets", s.widgetCount))
	if s.selectedTitle != "" {
		parts = append(parts, "sel: "+s.selectedTitle)
	}
	parts = append(parts, fmt.Sprintf("zoom %.0f%%", s.zoom*100))
	if s.plan != "" {
		parts = append(parts, s.plan)
	}
	if s.readOnly {
		parts = append(parts, "read-only")
	}
	if warns, errs := logger.Counts(); warns > 0 || errs > 0 {
		badge := fmt.Sprintf("⚠ %dW/%dE", warns, errs)
		parts = append(parts, styles.ToastErrorStyle.Render(badge))
	}
	mid := styles.StatusInfoStyle.Render(" " + strings.Join(parts, " │ ") + " ")

	right := ""
	if s.toast != "" {
		style := styles.ToastStyle
		if s.toastError {
			style = styles.ToastErrorStyle
		}
		right = style.Render(" " + s.toast + " ")
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + mid + strings.Repeat(" ", gap) + right
	return styles.StatusBarStyle.Width(s.width).Render(bar)
}
