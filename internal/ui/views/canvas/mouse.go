package canvas

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosaicboard/mosaic/internal/dashboard"
)

// handleMouseMsg processes mouse input.
func (c *Canvas) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	switch c.mode {
	case ModeMenu:
		return c.mouseMenu(msg)
	case ModeDragging, ModeResizing:
		return c.mouseDrag(msg)
	case ModeNormal:
		return c.mouseNormal(msg)
	default:
		// Modal overlays are keyboard driven.
		return nil
	}
}

func (c *Canvas) mouseNormal(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		id, corner := c.widgetAt(msg.X, msg.Y)
		if id == "" {
			c.setSelected("")
			return nil
		}
		c.setSelected(id)
		w := c.widgetByID(id)
		if c.readOnly || w == nil || w.Locked {
			return nil
		}
		entry := c.entryByID(id)
		if entry == nil {
			return nil
		}
		c.dragID = id
		c.dragOrig = *entry
		c.dragMouseX = msg.X
		c.dragMouseY = msg.Y
		if corner {
			c.mode = ModeResizing
		} else {
			c.mode = ModeDragging
		}

	case tea.MouseButtonRight:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		id, _ := c.widgetAt(msg.X, msg.Y)
		if id == "" {
			return nil
		}
		c.setSelected(id)
		w := c.widgetByID(id)
		if w == nil {
			return nil
		}
		c.menu.Show(id, w.Locked, !w.Visible, msg.X, msg.Y)
		c.mode = ModeMenu
	}
	return nil
}

// mouseDrag tracks an in-flight move or resize. Intermediate motion
// updates the tentative placement; release reflows and commits.
func (c *Canvas) mouseDrag(msg tea.MouseMsg) tea.Cmd {
	entry := c.entryByID(c.dragID)
	if entry == nil {
		c.mode = ModeNormal
		return nil
	}
	uw, uh := c.unit()

	switch msg.Action {
	case tea.MouseActionMotion:
		dx := (msg.X - c.dragMouseX) / uw
		dy := (msg.Y - c.dragMouseY) / uh
		if c.mode == ModeDragging {
			entry.X = c.dragOrig.X + dx
			entry.Y = c.dragOrig.Y + dy
		} else {
			entry.W = c.dragOrig.W + dx
			entry.H = c.dragOrig.H + dy
		}
		clampTentative(entry)

	case tea.MouseActionRelease:
		clampTentative(entry)
		id := c.dragID
		c.mode = ModeNormal
		c.dragID = ""
		c.commitLayout(id)
		if c.mode == ModeNormal {
			if inst := c.instances[id]; inst != nil {
				if e := c.entryByID(id); e != nil {
					bw, bh := c.bodySize(*e)
					return inst.Observe(bw, bh)
				}
			}
		}
	}
	return nil
}

// clampTentative keeps an in-flight placement inside the grid.
func clampTentative(e *dashboard.LayoutEntry) {
	minW := e.MinW
	if minW < 1 {
		minW = 1
	}
	minH := e.MinH
	if minH < 1 {
		minH = 1
	}
	if e.W < minW {
		e.W = minW
	}
	if e.H < minH {
		e.H = minH
	}
	if e.W > dashboard.GridColumns {
		e.W = dashboard.GridColumns
	}
	if e.X < 0 {
		e.X = 0
	}
	if e.Y < 0 {
		e.Y = 0
	}
	if e.X+e.W > dashboard.GridColumns {
		e.X = dashboard.GridColumns - e.W
	}
}

func (c *Canvas) mouseMenu(msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return nil
	}
	if !c.menu.Contains(msg.X, msg.Y) {
		// Outside click dismisses without acting.
		c.menu.Hide()
		c.mode = ModeNormal
		return nil
	}
	_, my := c.menu.Anchor()
	// One border row precedes the first entry.
	row := msg.Y - my - 1
	if row >= 0 && c.menu.SetCursor(row) {
		return c.applyMenuSelection()
	}
	return nil
}
