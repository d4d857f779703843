// Package ui provides the Bubbletea message vocabulary, key bindings,
// and shared plumbing for the dashboard terminal interface.
package ui

import (
	"time"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/dashboard"
)

// Canvas messages

// AddWidgetMsg carries a decoded drop payload onto the canvas.
type AddWidgetMsg struct {
	Payload dashboard.DropPayload
}

// ConfigUpdatedMsg carries a chart configuration change for a widget.
type ConfigUpdatedMsg struct {
	ID     string
	Config chart.Config
}

// DataUpdatedMsg carries a dataset change for a widget.
type DataUpdatedMsg struct {
	ID   string
	Data chart.Dataset
}

// Update pipeline messages

// FlushUpdateMsg fires when a widget's debounce window closes.
type FlushUpdateMsg struct {
	WidgetID   string
	Generation uint64
}

// FrameTickMsg fires at the frame boundary to run a deferred full
// recompile.
type FrameTickMsg struct {
	WidgetID   string
	Generation uint64
}

// Surface messages

// SurfaceRetryMsg fires after the readiness retry delay.
type SurfaceRetryMsg struct {
	WidgetID   string
	Generation uint64
}

// SurfaceResizeMsg fires when a widget's resize debounce closes.
type SurfaceResizeMsg struct {
	WidgetID   string
	Generation uint64
}

// Shell messages

// ToastMsg shows a transient status line message.
type ToastMsg struct {
	Text    string
	IsError bool
}

// ToastExpiredMsg clears a toast after its display window.
type ToastExpiredMsg struct {
	ShownAt time.Time
}

// DashboardSavedMsg reports the outcome of a save action.
type DashboardSavedMsg struct {
	Path string
	Err  error
}

// ExportDoneMsg reports the outcome of an export action.
type ExportDoneMsg struct {
	Path string
	Kind string
	Err  error
}

// ClipboardResultMsg reports the outcome of a copy action.
type ClipboardResultMsg struct {
	Err error
}
