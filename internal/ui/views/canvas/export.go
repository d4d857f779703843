package canvas

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosaicboard/mosaic/internal/export"
	"github.com/mosaicboard/mosaic/internal/ui"
)

// copySpecCmd serializes a widget's compiled specification to the
// clipboard.
func (c *Canvas) copySpecCmd(id string) tea.Cmd {
	inst := c.instances[id]
	if inst == nil {
		return nil
	}
	s := inst.Spec()
	if s == nil {
		return toastCmd("widget not initialized yet", true)
	}
	return func() tea.Msg {
		encoded, err := export.EncodeSpec(s)
		if err != nil {
			return ui.ClipboardResultMsg{Err: err}
		}
		cw := ui.NewClipboardWriter()
		return ui.ClipboardResultMsg{Err: cw.Write(encoded)}
	}
}

// exportDataCmd writes a widget's dataset as CSV or XLSX.
func (c *Canvas) exportDataCmd(id string, asXLSX bool) tea.Cmd {
	inst := c.instances[id]
	w := c.widgetByID(id)
	if inst == nil || w == nil {
		return nil
	}
	s := inst.Spec()
	if s == nil {
		return toastCmd("widget not initialized yet", true)
	}
	title := w.Title
	return func() tea.Msg {
		if asXLSX {
			path, err := export.DataXLSX(title, s)
			return ui.ExportDoneMsg{Path: path, Kind: "xlsx", Err: err}
		}
		path, err := export.DataCSV(title, s)
		return ui.ExportDoneMsg{Path: path, Kind: "csv", Err: err}
	}
}

// exportSpecCmd writes a widget's compiled specification as JSON.
func (c *Canvas) exportSpecCmd(id string) tea.Cmd {
	inst := c.instances[id]
	w := c.widgetByID(id)
	if inst == nil || w == nil {
		return nil
	}
	s := inst.Spec()
	if s == nil {
		return toastCmd("widget not initialized yet", true)
	}
	title := w.Title
	return func() tea.Msg {
		path, err := export.SpecJSON(title, s)
		return ui.ExportDoneMsg{Path: path, Kind: "json", Err: err}
	}
}

// SnapshotCmd captures the selected widget's rendered frame.
func (c *Canvas) SnapshotCmd(format export.Format) tea.Cmd {
	id := c.selected
	inst := c.instances[id]
	w := c.widgetByID(id)
	if inst == nil || w == nil {
		return toastCmd("select a widget first", true)
	}
	frame := inst.Render()
	title := w.Title
	return func() tea.Msg {
		path, err := export.Snapshot(title, frame, format)
		return ui.ExportDoneMsg{Path: path, Kind: format.String(), Err: err}
	}
}

// CopySelectedSpecCmd copies the selected widget's specification.
func (c *Canvas) CopySelectedSpecCmd() tea.Cmd {
	if c.selected == "" {
		return toastCmd("select a widget first", true)
	}
	return c.copySpecCmd(c.selected)
}

// ExportSelectedDataCmd exports the selected widget's dataset.
func (c *Canvas) ExportSelectedDataCmd(asXLSX bool) tea.Cmd {
	if c.selected == "" {
		return toastCmd("select a widget first", true)
	}
	return c.exportDataCmd(c.selected, asXLSX)
}

// ExportSelectedSpecCmd writes the selected widget's specification to
// the export directory as JSON.
func (c *Canvas) ExportSelectedSpecCmd() tea.Cmd {
	if c.selected == "" {
		return toastCmd("select a widget first", true)
	}
	return c.exportSpecCmd(c.selected)
}
