// Package app wires the dashboard shell together: the canvas, the
// status bar, persistence, and undo history, all behind one Bubbletea
// model. It is the host side of the engine's callback contract.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/compile"
	"github.com/mosaicboard/mosaic/internal/config"
	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/export"
	"github.com/mosaicboard/mosaic/internal/logger"
	"github.com/mosaicboard/mosaic/internal/render"
	"github.com/mosaicboard/mosaic/internal/ui"
	"github.com/mosaicboard/mosaic/internal/ui/components"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
	"github.com/mosaicboard/mosaic/internal/ui/views/canvas"
)

// Model is the root Bubbletea model.
type Model struct {
	config *config.Config
	keys   ui.KeyMap

	canvas    *canvas.Canvas
	statusBar *components.StatusBar

	width  int
	height int

	path     string
	doc      *DashboardFile
	dirty    bool
	readOnly bool

	history history
}

// New creates the application model around a dashboard file.
func New(cfg *config.Config, path string, readOnly bool) (*Model, error) {
	doc, err := LoadDashboard(path)
	if err != nil {
		return nil, err
	}

	keys := ui.DefaultKeyMap()
	m := &Model{
		config:    cfg,
		keys:      keys,
		statusBar: components.NewStatusBar(),
		path:      path,
		doc:       doc,
		readOnly:  readOnly,
	}

	geo := canvas.Geometry{
		CellWidth: cfg.Grid.CellWidth,
		RowHeight: cfg.Grid.RowHeight,
	}
	tier := compile.ParseTier(cfg.Plan)
	styles.SetTheme(cfg.UI.Theme)
	m.canvas = canvas.New(geo, cfg.UI.ZoomStep, keys, m, render.New(), tier, readOnly)
	m.canvas.SetIntervals(cfg.UI.UpdateDebounce, cfg.UI.ResizeDebounce)
	if k, ok := chart.ParseKind(cfg.UI.DefaultChart); ok {
		m.canvas.SetDefaultKind(k)
	}

	m.statusBar.SetPlan(cfg.Plan)
	m.statusBar.SetReadOnly(readOnly)
	return m, nil
}

// Init loads the persisted widgets into the canvas.
func (m *Model) Init() tea.Cmd {
	return m.canvas.Load(m.doc.Widgets, m.doc.Layout)
}

// Update is the root message dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetSize(msg.Width)
		// Status bar and hint line take the bottom two rows.
		return m, m.canvas.SetSize(msg.Width, msg.Height-2)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		return m, m.canvas.Update(msg)

	case ui.ToastMsg:
		m.showToast(msg.Text, msg.IsError)
		return m, expireToast(m.config.UI.ToastDuration)
	case ui.ToastExpiredMsg:
		m.statusBar.ClearToast(time.Now())
		return m, nil

	case ui.DashboardSavedMsg:
		if msg.Err != nil {
			logger.Error("dashboard save failed", "error", msg.Err)
			m.showToast("save failed: "+msg.Err.Error(), true)
		} else {
			m.dirty = false
			m.showToast("saved "+msg.Path, false)
		}
		return m, expireToast(m.config.UI.ToastDuration)
	case ui.ExportDoneMsg:
		if msg.Err != nil {
			m.showToast("export failed: "+msg.Err.Error(), true)
		} else {
			m.showToast("exported "+msg.Path, false)
		}
		return m, expireToast(m.config.UI.ToastDuration)
	case ui.ClipboardResultMsg:
		if msg.Err != nil {
			m.showToast("copy failed: "+msg.Err.Error(), true)
		} else {
			m.showToast("spec copied to clipboard", false)
		}
		return m, expireToast(m.config.UI.ToastDuration)
	}

	return m, m.canvas.Update(msg)
}

// handleGlobalKey intercepts shell-level bindings before the canvas
// sees them. Modal canvas states keep priority.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.canvas.Mode() != canvas.ModeNormal {
		// Ctrl+C always exits.
		if msg.String() == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Save):
		return m.saveCmd(), true
	case key.Matches(msg, m.keys.Undo):
		return m.applyUndo(), true
	case key.Matches(msg, m.keys.Redo):
		return m.applyRedo(), true
	case key.Matches(msg, m.keys.CopySpec):
		return m.canvas.CopySelectedSpecCmd(), true
	case key.Matches(msg, m.keys.SnapshotANSI):
		return m.canvas.SnapshotCmd(export.FormatANSI), true
	case key.Matches(msg, m.keys.Snapshot):
		return m.canvas.SnapshotCmd(export.FormatPlain), true
	case key.Matches(msg, m.keys.ExportXLSX):
		return m.canvas.ExportSelectedDataCmd(true), true
	case key.Matches(msg, m.keys.ExportData):
		return m.canvas.ExportSelectedDataCmd(false), true
	case key.Matches(msg, m.keys.ExportSpec):
		return m.canvas.ExportSelectedSpecCmd(), true
	}
	return nil, false
}

func (m *Model) saveCmd() tea.Cmd {
	if m.readOnly {
		m.showToast("read-only session", true)
		return expireToast(m.config.UI.ToastDuration)
	}
	m.doc.Widgets = m.canvas.Widgets()
	m.doc.Layout = m.canvas.Layout()
	// The marshal runs on a command goroutine; hand it a deep copy so
	// edits landing mid-save cannot tear the written document.
	doc := DashboardFile{
		Name:    m.doc.Name,
		Widgets: cloneWidgets(m.doc.Widgets),
		Layout:  dashboard.CloneLayout(m.doc.Layout),
	}
	path := m.path
	return func() tea.Msg {
		err := SaveDashboard(path, &doc)
		return ui.DashboardSavedMsg{Path: path, Err: err}
	}
}

func (m *Model) applyUndo() tea.Cmd {
	current := takeSnapshot(m.canvas.Widgets(), m.canvas.Layout())
	prev, ok := m.history.undo(current)
	if !ok {
		m.showToast("nothing to undo", false)
		return nil
	}
	return m.restore(prev)
}

func (m *Model) applyRedo() tea.Cmd {
	current := takeSnapshot(m.canvas.Widgets(), m.canvas.Layout())
	next, ok := m.history.redo(current)
	if !ok {
		m.showToast("nothing to redo", false)
		return nil
	}
	return m.restore(next)
}

// restore reloads the canvas from a snapshot. The reload rebuilds the
// widget instances, so their surface bootstrap commands must flow back
// into the event loop.
func (m *Model) restore(s snapshot) tea.Cmd {
	m.doc.Widgets = s.widgets
	m.doc.Layout = s.layout
	m.dirty = true
	return tea.Batch(
		m.canvas.Load(s.widgets, s.layout),
		m.canvas.SetSize(m.width, m.height-2),
	)
}

// View renders canvas, hint line, and status bar.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	m.statusBar.SetDashboard(m.doc.Name, len(m.canvas.Widgets()))
	m.statusBar.SetZoom(m.canvas.Zoom())
	m.statusBar.SetDirty(m.dirty)
	if w := m.canvas.SelectedWidget(); w != nil {
		m.statusBar.SetSelected(w.Title)
	} else {
		m.statusBar.SetSelected("")
	}

	hint := styles.FooterHintStyle.Render(" " + m.canvas.HintLine())
	hint = lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(hint)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.canvas.View(),
		hint,
		m.statusBar.View(),
	)
}

// Cleanup disposes every widget surface before exit.
func (m *Model) Cleanup() {
	for _, w := range m.canvas.Widgets() {
		if inst := m.canvas.Instance(w.ID); inst != nil {
			inst.Dispose()
		}
	}
	logger.Close()
}

func (m *Model) showToast(text string, isError bool) {
	m.statusBar.ShowToast(text, isError, time.Now().Add(m.config.UI.ToastDuration))
}

func expireToast(d time.Duration) tea.Cmd {
	shown := time.Now()
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ui.ToastExpiredMsg{ShownAt: shown}
	})
}

// markDirty records an undo point before the first mutation of a batch.
func (m *Model) markDirty() {
	if !m.dirty {
		m.history.push(takeSnapshot(m.doc.Widgets, m.doc.Layout))
	}
	m.dirty = true
}

// EventSink implementation. The canvas reports committed mutations
// here; the model mirrors them into the persisted document.

// LayoutChanged stores the new placement set.
func (m *Model) LayoutChanged(entries []dashboard.LayoutEntry) {
	m.markDirty()
	m.doc.Layout = entries
}

// WidgetSelected is presentation-only state; nothing persists.
func (m *Model) WidgetSelected(id string) {}

// WidgetUpdated mirrors a metadata patch into the document.
func (m *Model) WidgetUpdated(id string, patch dashboard.Patch) {
	m.markDirty()
	for i := range m.doc.Widgets {
		if m.doc.Widgets[i].ID == id {
			m.doc.Widgets[i] = patch.Apply(m.doc.Widgets[i])
			return
		}
	}
}

// WidgetDeleted removes the widget from the document.
func (m *Model) WidgetDeleted(id string) {
	m.markDirty()
	for i := range m.doc.Widgets {
		if m.doc.Widgets[i].ID == id {
			m.doc.Widgets = append(m.doc.Widgets[:i], m.doc.Widgets[i+1:]...)
			return
		}
	}
}

// WidgetDuplicated appends the clone to the document.
func (m *Model) WidgetDuplicated(sourceID string, w dashboard.Widget, entry dashboard.LayoutEntry) {
	m.markDirty()
	m.doc.Widgets = append(m.doc.Widgets, w)
}

// ConfigUpdated mirrors a style change into the document.
func (m *Model) ConfigUpdated(id string, cfg chart.Config) {
	m.markDirty()
	for i := range m.doc.Widgets {
		if m.doc.Widgets[i].ID == id {
			m.doc.Widgets[i].Style = cfg
			return
		}
	}
}

// WidgetAdded appends a dropped widget to the document.
func (m *Model) WidgetAdded(w dashboard.Widget, entry dashboard.LayoutEntry) {
	m.markDirty()
	m.doc.Widgets = append(m.doc.Widgets, w)
}
