// Package dashboard holds the host-owned dashboard model: widgets,
// their grid layout entries, and the drop payload accepted from an
// external widget palette.
package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mosaicboard/mosaic/internal/chart"
)

// Widget is one visual unit placed on the canvas. The host application
// owns it; the rendering engine reads it and requests mutations through
// callbacks, never directly.
type Widget struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     chart.Kind     `json:"type" yaml:"type"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Visible  bool           `json:"isVisible" yaml:"isVisible"`
	Locked   bool           `json:"isLocked" yaml:"isLocked"`
	Style    chart.Config   `json:"style,omitempty" yaml:"style,omitempty"`
}

// NewWidget creates a widget with a fresh identity.
func NewWidget(kind chart.Kind, title string) Widget {
	return Widget{
		ID:      uuid.NewString(),
		Kind:    kind,
		Title:   title,
		Visible: true,
	}
}

// Patch carries partial attribute updates requested through the
// OnWidgetUpdate callback. Nil fields are untouched.
type Patch struct {
	Title    *string
	Subtitle *string
	Visible  *bool
	Locked   *bool
}

// Apply returns a copy of w with the patch applied.
func (p Patch) Apply(w Widget) Widget {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Subtitle != nil {
		w.Subtitle = *p.Subtitle
	}
	if p.Visible != nil {
		w.Visible = *p.Visible
	}
	if p.Locked != nil {
		w.Locked = *p.Locked
	}
	return w
}

// DropPayload is the structured description of a new widget handed over
// by the palette or an external drag source.
type DropPayload struct {
	Type   string         `json:"type"`
	Title  string         `json:"title,omitempty"`
	Config chart.Config   `json:"config,omitempty"`
	Data   *chart.Dataset `json:"data,omitempty"`
}

// ParseDropPayload decodes a raw drop payload. Malformed input yields
// an error for the caller to swallow with a warning; it must never
// propagate as a crash.
func ParseDropPayload(raw string) (*DropPayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty drop payload")
	}
	var p DropPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode drop payload: %w", err)
	}
	p.Type = strings.TrimSpace(p.Type)
	if p.Type == "" {
		return nil, fmt.Errorf("drop payload missing widget type")
	}
	return &p, nil
}

// Widget materializes the payload into a new host widget.
func (p *DropPayload) Widget() Widget {
	kind, _ := chart.ParseKind(p.Type)
	title := p.Title
	if title == "" {
		title = strings.ToUpper(string(kind)[:1]) + string(kind)[1:] + " chart"
	}
	w := NewWidget(kind, title)
	w.Style = p.Config
	return w
}
