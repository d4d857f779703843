package canvas

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/ui"
	"github.com/mosaicboard/mosaic/internal/ui/widget"
)

// Update routes messages into the canvas. Key and mouse input feed the
// interaction modes; pipeline messages feed the widget instances.
func (c *Canvas) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.handleKeyMsg(msg)
	case tea.MouseMsg:
		return c.handleMouseMsg(msg)

	case ui.AddWidgetMsg:
		return c.addFromPayload(msg.Payload)

	case ui.ConfigUpdatedMsg:
		return c.submitConfig(msg.ID, msg.Config)
	case ui.DataUpdatedMsg:
		if inst := c.instances[msg.ID]; inst != nil {
			return inst.SubmitData(&msg.Data)
		}

	case ui.FlushUpdateMsg:
		if inst := c.instances[msg.WidgetID]; inst != nil {
			return inst.HandleFlush(msg.Generation)
		}
	case ui.FrameTickMsg:
		if inst := c.instances[msg.WidgetID]; inst != nil {
			inst.HandleFrame(msg.Generation)
		}
	case ui.SurfaceRetryMsg:
		if inst := c.instances[msg.WidgetID]; inst != nil {
			if e := c.entryByID(msg.WidgetID); e != nil {
				bw, bh := c.bodySize(*e)
				return inst.HandleRetry(msg.Generation, bw, bh)
			}
		}
	case ui.SurfaceResizeMsg:
		if inst := c.instances[msg.WidgetID]; inst != nil {
			inst.HandleResize(msg.Generation)
		}
	}
	return nil
}

// submitConfig pushes a configuration edit into a widget's debounce
// window and persists it on the widget record.
func (c *Canvas) submitConfig(id string, cfg chart.Config) tea.Cmd {
	inst := c.instances[id]
	w := c.widgetByID(id)
	if inst == nil || w == nil {
		return nil
	}
	w.Style = cfg
	if c.sink != nil {
		c.sink.ConfigUpdated(id, cfg)
	}
	return inst.SubmitConfig(cfg)
}

// AddFromJSON decodes a drop payload and adds the widget, surfacing a
// warning instead of failing on malformed input.
func (c *Canvas) AddFromJSON(raw string) tea.Cmd {
	payload, err := dashboard.ParseDropPayload(raw)
	if err != nil {
		logUnknownDrop(err)
		return func() tea.Msg {
			return ui.ToastMsg{Text: "ignored malformed widget payload", IsError: true}
		}
	}
	return c.addFromPayload(*payload)
}

func (c *Canvas) addFromPayload(payload dashboard.DropPayload) tea.Cmd {
	if c.readOnly {
		return toastCmd("read-only session", true)
	}
	w := payload.Widget()
	entry := dashboard.DefaultPlacement(w.ID)
	c.widgets = append(c.widgets, w)
	c.layout = append(c.layout, entry)
	c.commitLayout(w.ID)

	data := sampleFor(w.Kind)
	if payload.Data != nil {
		data = payload.Data
	}
	inst := c.newInstance(w, data)
	c.instances[w.ID] = inst
	c.setSelected(w.ID)

	if c.sink != nil {
		if e := c.entryByID(w.ID); e != nil {
			c.sink.WidgetAdded(w, *e)
		}
	}

	if e := c.entryByID(w.ID); e != nil && c.width > 0 {
		bw, bh := c.bodySize(*e)
		return inst.Observe(bw, bh)
	}
	return nil
}

// deleteWidget removes a widget, its placement, and its runtime.
func (c *Canvas) deleteWidget(id string) {
	if inst := c.instances[id]; inst != nil {
		inst.Dispose()
		delete(c.instances, id)
	}
	for i := range c.widgets {
		if c.widgets[i].ID == id {
			c.widgets = append(c.widgets[:i], c.widgets[i+1:]...)
			break
		}
	}
	for i := range c.layout {
		if c.layout[i].I == id {
			c.layout = append(c.layout[:i], c.layout[i+1:]...)
			break
		}
	}
	if c.selected == id {
		c.setSelected("")
	}
	c.commitLayout("")
	if c.sink != nil {
		c.sink.WidgetDeleted(id)
	}
}

// duplicateWidget clones a widget next to its source.
func (c *Canvas) duplicateWidget(id string) tea.Cmd {
	src := c.widgetByID(id)
	srcEntry := c.entryByID(id)
	if src == nil || srcEntry == nil {
		return nil
	}
	clone := dashboard.NewWidget(src.Kind, src.Title+" (copy)")
	clone.Subtitle = src.Subtitle
	clone.Style = src.Style.Clone()

	entry := *srcEntry
	entry.I = clone.ID
	entry.Y = srcEntry.Y + srcEntry.H

	c.widgets = append(c.widgets, clone)
	c.layout = append(c.layout, entry)
	c.commitLayout(clone.ID)

	inst := c.newInstance(clone, sampleFor(clone.Kind))
	c.instances[clone.ID] = inst
	c.setSelected(clone.ID)

	if c.sink != nil {
		if e := c.entryByID(clone.ID); e != nil {
			c.sink.WidgetDuplicated(id, clone, *e)
		}
	}
	if e := c.entryByID(clone.ID); e != nil && c.width > 0 {
		bw, bh := c.bodySize(*e)
		return inst.Observe(bw, bh)
	}
	return nil
}

// patchWidget applies a metadata patch and notifies the sink.
func (c *Canvas) patchWidget(id string, patch dashboard.Patch) {
	w := c.widgetByID(id)
	if w == nil {
		return
	}
	*w = patch.Apply(*w)
	if c.sink != nil {
		c.sink.WidgetUpdated(id, patch)
	}
}

// moveSelected nudges the selected widget by grid units.
func (c *Canvas) moveSelected(dx, dy int) {
	if c.readOnly || c.selected == "" {
		return
	}
	if w := c.widgetByID(c.selected); w == nil || w.Locked {
		return
	}
	c.layout = dashboard.Move(c.layout, c.selected, dx, dy)
	c.announceLayout()
}

// resizeSelected grows or shrinks the selected widget by grid units.
func (c *Canvas) resizeSelected(dw, dh int) tea.Cmd {
	if c.readOnly || c.selected == "" {
		return nil
	}
	if w := c.widgetByID(c.selected); w == nil || w.Locked {
		return nil
	}
	c.layout = dashboard.Resize(c.layout, c.selected, dw, dh)
	c.announceLayout()
	if e := c.entryByID(c.selected); e != nil {
		if inst := c.instances[c.selected]; inst != nil {
			bw, bh := c.bodySize(*e)
			return inst.Observe(bw, bh)
		}
	}
	return nil
}

func (c *Canvas) newInstance(w dashboard.Widget, data *chart.Dataset) *widget.Instance {
	inst := widget.NewInstance(w.ID, w.Kind, w.Style, data, c.renderer, c.tier)
	inst.SetIntervals(c.updateDebounce, c.resizeDebounce)
	return inst
}

func toastCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return ui.ToastMsg{Text: text, IsError: isErr}
	}
}

// expireToastCmd schedules the toast clear.
func expireToastCmd(d time.Duration) tea.Cmd {
	shown := time.Now()
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ui.ToastExpiredMsg{ShownAt: shown}
	})
}
