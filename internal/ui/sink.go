package ui

import (
	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/dashboard"
)

// EventSink receives the canvas's outward notifications. The host model
// implements it; tests substitute a recorder.
type EventSink interface {
	// LayoutChanged delivers the complete placement set after any
	// committed move, resize, add, or removal.
	LayoutChanged(entries []dashboard.LayoutEntry)

	// WidgetSelected reports selection changes; empty id means cleared.
	WidgetSelected(id string)

	// WidgetUpdated delivers a metadata patch for one widget.
	WidgetUpdated(id string, patch dashboard.Patch)

	// WidgetDeleted reports a confirmed removal.
	WidgetDeleted(id string)

	// WidgetDuplicated delivers the clone and its placement.
	WidgetDuplicated(sourceID string, w dashboard.Widget, entry dashboard.LayoutEntry)

	// ConfigUpdated delivers a chart configuration change.
	ConfigUpdated(id string, cfg chart.Config)

	// WidgetAdded delivers a widget materialized from a drop payload.
	WidgetAdded(w dashboard.Widget, entry dashboard.LayoutEntry)
}
