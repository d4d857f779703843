package canvas

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/ui/components"
)

// handleKeyMsg processes keyboard input by interaction mode.
func (c *Canvas) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch c.mode {
	case ModeMenu:
		return c.keyMenu(msg)
	case ModePalette:
		return c.keyPalette(msg)
	case ModeConfirm:
		return c.keyConfirm(msg)
	case ModeHelp:
		return c.keyHelp(msg)
	case ModeEditTitle:
		return c.keyEditTitle(msg)
	default:
		return c.keyNormal(msg)
	}
}

func (c *Canvas) keyNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Help):
		c.help.Toggle()
		c.mode = ModeHelp

	case key.Matches(msg, c.keys.Palette):
		if c.readOnly {
			return toastCmd("read-only session", true)
		}
		c.palette.Show()
		if c.defaultKind != "" {
			c.palette.Select(c.defaultKind)
		}
		c.mode = ModePalette

	case key.Matches(msg, c.keys.NextWidget):
		c.cycleSelection(1)
	case key.Matches(msg, c.keys.PrevWidget):
		c.cycleSelection(-1)
	case key.Matches(msg, c.keys.Deselect):
		c.setSelected("")

	case key.Matches(msg, c.keys.Menu):
		if c.selected == "" {
			return nil
		}
		w := c.widgetByID(c.selected)
		e := c.entryByID(c.selected)
		if w == nil || e == nil {
			return nil
		}
		ex, ey, _, _ := c.cellRect(*e)
		c.menu.Show(w.ID, w.Locked, !w.Visible, ex+2, ey+1)
		c.mode = ModeMenu

	case key.Matches(msg, c.keys.Delete):
		if c.selected == "" || c.readOnly {
			return nil
		}
		w := c.widgetByID(c.selected)
		if w == nil || w.Locked {
			return nil
		}
		c.dialog.Show(components.DialogDeleteWidget, w.ID, w.Title)
		c.mode = ModeConfirm

	case key.Matches(msg, c.keys.Duplicate):
		if c.selected != "" && !c.readOnly {
			return c.duplicateWidget(c.selected)
		}
	case key.Matches(msg, c.keys.ToggleLock):
		if c.selected != "" && !c.readOnly {
			c.toggleLock(c.selected)
		}
	case key.Matches(msg, c.keys.ToggleHide):
		if c.selected != "" && !c.readOnly {
			c.toggleVisibility(c.selected)
		}

	case key.Matches(msg, c.keys.MoveUp):
		c.moveSelected(0, -1)
	case key.Matches(msg, c.keys.MoveDown):
		c.moveSelected(0, 1)
	case key.Matches(msg, c.keys.MoveLeft):
		c.moveSelected(-1, 0)
	case key.Matches(msg, c.keys.MoveRight):
		c.moveSelected(1, 0)
	case key.Matches(msg, c.keys.GrowWidth):
		return c.resizeSelected(1, 0)
	case key.Matches(msg, c.keys.ShrinkWidth):
		return c.resizeSelected(-1, 0)
	case key.Matches(msg, c.keys.GrowHeight):
		return c.resizeSelected(0, 1)
	case key.Matches(msg, c.keys.ShrinkHeight):
		return c.resizeSelected(0, -1)

	case key.Matches(msg, c.keys.ZoomIn):
		return c.setZoom(c.zoom + c.zoomStep)
	case key.Matches(msg, c.keys.ZoomOut):
		return c.setZoom(c.zoom - c.zoomStep)
	case key.Matches(msg, c.keys.ZoomReset):
		return c.setZoom(1.0)
	}
	return nil
}

// setZoom changes the presentation scale. Layout units are untouched;
// only cell geometry moves, so every surface re-observes.
func (c *Canvas) setZoom(z float64) tea.Cmd {
	if z < 0.5 {
		z = 0.5
	}
	if z > 2.0 {
		z = 2.0
	}
	if z == c.zoom {
		return nil
	}
	c.zoom = z
	return c.observeAll()
}

func (c *Canvas) cycleSelection(delta int) {
	if len(c.layout) == 0 {
		return
	}
	idx := -1
	for i, e := range c.layout {
		if e.I == c.selected {
			idx = i
			break
		}
	}
	n := len(c.layout)
	idx = ((idx+delta)%n + n) % n
	c.setSelected(c.layout[idx].I)
}

func (c *Canvas) toggleLock(id string) {
	w := c.widgetByID(id)
	if w == nil {
		return
	}
	locked := !w.Locked
	c.patchWidget(id, dashboard.Patch{Locked: &locked})
}

func (c *Canvas) toggleVisibility(id string) {
	w := c.widgetByID(id)
	if w == nil {
		return
	}
	visible := !w.Visible
	c.patchWidget(id, dashboard.Patch{Visible: &visible})
}

func (c *Canvas) keyMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		c.menu.MoveCursor(-1)
	case "down", "j":
		c.menu.MoveCursor(1)
	case "enter":
		return c.applyMenuSelection()
	case "esc", "m":
		c.menu.Hide()
		c.mode = ModeNormal
	}
	return nil
}

// applyMenuSelection dispatches the highlighted menu action and closes
// the menu.
func (c *Canvas) applyMenuSelection() tea.Cmd {
	id := c.menu.GetWidgetID()
	action := c.menu.Selected()
	c.menu.Hide()
	c.mode = ModeNormal

	w := c.widgetByID(id)
	if w == nil {
		return nil
	}
	switch action {
	case components.MenuEdit:
		if c.readOnly {
			return toastCmd("read-only session", true)
		}
		c.titleInput.SetValue(w.Title)
		c.titleInput.Focus()
		c.mode = ModeEditTitle
	case components.MenuDuplicate:
		if !c.readOnly {
			return c.duplicateWidget(id)
		}
	case components.MenuToggleVisibility:
		if !c.readOnly {
			c.toggleVisibility(id)
		}
	case components.MenuToggleLock:
		if !c.readOnly {
			c.toggleLock(id)
		}
	case components.MenuCopySpec:
		return c.copySpecCmd(id)
	case components.MenuExportData:
		return c.exportDataCmd(id, false)
	case components.MenuDelete:
		if c.readOnly || w.Locked {
			return toastCmd("widget is locked", true)
		}
		c.dialog.Show(components.DialogDeleteWidget, id, w.Title)
		c.mode = ModeConfirm
	}
	return nil
}

func (c *Canvas) keyPalette(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		c.palette.MoveCursor(-1)
	case "down", "j":
		c.palette.MoveCursor(1)
	case "enter":
		kind := c.palette.Selected()
		c.palette.Hide()
		c.mode = ModeNormal
		payload := dashboard.DropPayload{Type: string(kind)}
		return c.addFromPayload(payload)
	case "esc", "p":
		c.palette.Hide()
		c.mode = ModeNormal
	}
	return nil
}

func (c *Canvas) keyConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		id := c.dialog.GetWidgetID()
		c.dialog.Hide()
		c.mode = ModeNormal
		c.deleteWidget(id)
		return toastCmd("widget deleted", false)
	case "n", "N", "esc":
		c.dialog.Hide()
		c.mode = ModeNormal
	}
	return nil
}

func (c *Canvas) keyHelp(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "?", "q":
		c.help.Hide()
		c.mode = ModeNormal
	}
	return nil
}

func (c *Canvas) keyEditTitle(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		id := c.selected
		title := c.titleInput.Value()
		c.titleInput.Blur()
		c.mode = ModeNormal
		if id != "" && title != "" {
			c.patchWidget(id, dashboard.Patch{Title: &title})
		}
		return nil
	case "esc":
		c.titleInput.Blur()
		c.mode = ModeNormal
		return nil
	}
	var cmd tea.Cmd
	c.titleInput, cmd = c.titleInput.Update(msg)
	return cmd
}
