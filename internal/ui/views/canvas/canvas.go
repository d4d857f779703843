// Package canvas implements the dashboard grid: widget placement,
// selection, drag and resize, the context menu, and the overlays that
// ride on top of it. It owns the widget instances and notifies the
// host of every committed mutation through the event sink.
package canvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/compile"
	"github.com/mosaicboard/mosaic/internal/chart/sampledata"
	"github.com/mosaicboard/mosaic/internal/chart/surface"
	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/logger"
	"github.com/mosaicboard/mosaic/internal/ui"
	"github.com/mosaicboard/mosaic/internal/ui/components"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
	"github.com/mosaicboard/mosaic/internal/ui/widget"
)

// Mode is the canvas interaction state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDragging
	ModeResizing
	ModeMenu
	ModePalette
	ModeConfirm
	ModeHelp
	ModeEditTitle
)

// Geometry maps layout units to terminal cells.
type Geometry struct {
	CellWidth int
	RowHeight int
}

// Canvas is the grid view.
type Canvas struct {
	width  int
	height int
	zoom   float64

	geo      Geometry
	zoomStep float64

	// Debounce windows handed to every widget instance; zero values
	// keep the package defaults.
	updateDebounce time.Duration
	resizeDebounce time.Duration

	// defaultKind preselects a chart kind in the add palette.
	defaultKind chart.Kind

	widgets   []dashboard.Widget
	layout    []dashboard.LayoutEntry
	instances map[string]*widget.Instance

	selected string
	mode     Mode

	// Drag/resize state.
	dragID     string
	dragOrig   dashboard.LayoutEntry
	dragMouseX int
	dragMouseY int

	menu       *components.ContextMenu
	dialog     *components.ConfirmDialog
	palette    *components.WidgetPalette
	help       *components.HelpOverlay
	titleInput textinput.Model

	keys     ui.KeyMap
	sink     ui.EventSink
	renderer surface.Renderer
	tier     compile.PlanTier
	readOnly bool
}

// New creates an empty canvas.
func New(geo Geometry, zoomStep float64, keys ui.KeyMap, sink ui.EventSink, r surface.Renderer, tier compile.PlanTier, readOnly bool) *Canvas {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 40
	return &Canvas{
		zoom:       1.0,
		geo:        geo,
		zoomStep:   zoomStep,
		instances:  make(map[string]*widget.Instance),
		menu:       components.NewContextMenu(),
		dialog:     components.NewConfirmDialog(),
		palette:    components.NewWidgetPalette(),
		help:       components.NewHelpOverlay(),
		titleInput: ti,
		keys:       keys,
		sink:       sink,
		renderer:   r,
		tier:       tier,
		readOnly:   readOnly,
	}
}

// SetIntervals passes the configured debounce windows to every widget
// instance the canvas creates.
func (c *Canvas) SetIntervals(update, resize time.Duration) {
	c.updateDebounce = update
	c.resizeDebounce = resize
	for _, inst := range c.instances {
		inst.SetIntervals(update, resize)
	}
}

// SetDefaultKind preselects a chart kind when the add palette opens.
func (c *Canvas) SetDefaultKind(kind chart.Kind) {
	c.defaultKind = kind
}

// Load replaces the canvas contents with a normalized widget set and
// returns the surface bootstrap commands.
func (c *Canvas) Load(widgets []dashboard.Widget, entries []dashboard.LayoutEntry) tea.Cmd {
	entries = dashboard.Normalize(widgets, entries)
	for _, inst := range c.instances {
		inst.Dispose()
	}
	c.instances = make(map[string]*widget.Instance)
	c.widgets = widgets
	c.layout = entries
	c.selected = ""
	for _, w := range c.widgets {
		c.instances[w.ID] = c.newInstance(w, sampleFor(w.Kind))
	}
	return c.observeAll()
}

// observeAll feeds every instance its current cell measurement.
func (c *Canvas) observeAll() tea.Cmd {
	if c.width == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, e := range c.layout {
		inst := c.instances[e.I]
		if inst == nil {
			continue
		}
		bw, bh := c.bodySize(e)
		if cmd := inst.Observe(bw, bh); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func sampleFor(kind chart.Kind) *chart.Dataset {
	return sampledata.For(kind)
}

// Widgets returns the current widget set.
func (c *Canvas) Widgets() []dashboard.Widget {
	return c.widgets
}

// Layout returns the current placement set.
func (c *Canvas) Layout() []dashboard.LayoutEntry {
	return c.layout
}

// Selected returns the selected widget id, empty when none.
func (c *Canvas) Selected() string {
	return c.selected
}

// SelectedWidget returns the selected widget, nil when none.
func (c *Canvas) SelectedWidget() *dashboard.Widget {
	return c.widgetByID(c.selected)
}

// Instance returns the runtime for a widget id, nil when unknown.
func (c *Canvas) Instance(id string) *widget.Instance {
	return c.instances[id]
}

// Mode returns the interaction state, for the host's hint line.
func (c *Canvas) Mode() Mode {
	return c.mode
}

// Zoom returns the presentation scale factor.
func (c *Canvas) Zoom() float64 {
	return c.zoom
}

// SetSize resizes the canvas viewport and feeds every instance its new
// cell measurement.
func (c *Canvas) SetSize(width, height int) tea.Cmd {
	c.width = width
	c.height = height
	c.dialog.SetSize(width, height)
	c.palette.SetSize(width, height)
	c.help.SetSize(width, height)
	return c.observeAll()
}

// unit returns the terminal size of one layout unit at the current
// zoom, floored so cells never collapse entirely.
func (c *Canvas) unit() (int, int) {
	uw := int(float64(c.geo.CellWidth) * c.zoom)
	uh := int(float64(c.geo.RowHeight) * c.zoom)
	if uw < 4 {
		uw = 4
	}
	if uh < 2 {
		uh = 2
	}
	return uw, uh
}

// cellRect returns the screen rectangle of a placement.
func (c *Canvas) cellRect(e dashboard.LayoutEntry) (x, y, w, h int) {
	uw, uh := c.unit()
	return e.X * uw, e.Y * uh, e.W * uw, e.H * uh
}

// bodySize returns the interior measurement of a placement, the value
// observed by the widget's surface.
func (c *Canvas) bodySize(e dashboard.LayoutEntry) (int, int) {
	_, _, w, h := c.cellRect(e)
	// Border consumes one cell on each edge.
	return w - 2, h - 2
}

func (c *Canvas) widgetByID(id string) *dashboard.Widget {
	for i := range c.widgets {
		if c.widgets[i].ID == id {
			return &c.widgets[i]
		}
	}
	return nil
}

func (c *Canvas) entryByID(id string) *dashboard.LayoutEntry {
	for i := range c.layout {
		if c.layout[i].I == id {
			return &c.layout[i]
		}
	}
	return nil
}

// widgetAt hit-tests a screen position: the widget id (if any) and
// whether the position falls on its resize corner.
func (c *Canvas) widgetAt(x, y int) (string, bool) {
	for _, e := range c.layout {
		ex, ey, ew, eh := c.cellRect(e)
		if x >= ex && x < ex+ew && y >= ey && y < ey+eh {
			corner := x >= ex+ew-2 && y >= ey+eh-1
			return e.I, corner
		}
	}
	return "", false
}

// commitLayout reflows, stores, and announces a layout mutation. The
// sink always receives a full clone, never the live slice.
func (c *Canvas) commitLayout(priorityID string) {
	c.layout = dashboard.Reflow(c.layout, priorityID)
	c.announceLayout()
}

// announceLayout hands the sink a full clone, never the live slice.
func (c *Canvas) announceLayout() {
	if c.sink != nil {
		c.sink.LayoutChanged(dashboard.CloneLayout(c.layout))
	}
}

func (c *Canvas) setSelected(id string) {
	if c.selected == id {
		return
	}
	c.selected = id
	if c.sink != nil {
		c.sink.WidgetSelected(id)
	}
}

// View renders the grid with all overlays applied.
func (c *Canvas) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}

	rows := make([]string, c.height)
	blank := strings.Repeat(" ", c.width)
	for i := range rows {
		rows[i] = blank
	}

	// Paint cells left to right so row splices never overlap styled
	// content.
	ordered := append([]dashboard.LayoutEntry(nil), c.layout...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].X < ordered[j-1].X; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	for _, e := range ordered {
		w := c.widgetByID(e.I)
		if w == nil {
			continue
		}
		box := c.renderCell(*w, e)
		ex, ey, _, _ := c.cellRect(e)
		for i, line := range strings.Split(box, "\n") {
			row := ey + i
			if row < 0 || row >= len(rows) {
				continue
			}
			rows[row] = components.SpliceLine(rows[row], line, ex, c.width)
		}
	}

	view := strings.Join(rows, "\n")

	if c.menu.IsVisible() {
		view = c.menu.Overlay(view, c.width, c.height)
	}
	switch c.mode {
	case ModeConfirm:
		return c.dialog.View()
	case ModePalette:
		return c.palette.View()
	case ModeHelp:
		return c.help.View()
	case ModeEditTitle:
		return c.renderTitleEditor()
	}
	return view
}

// renderCell draws one widget box: border by state, header, body.
func (c *Canvas) renderCell(w dashboard.Widget, e dashboard.LayoutEntry) string {
	_, _, cw, ch := c.cellRect(e)
	bodyW, bodyH := cw-2, ch-2
	if bodyW < 1 || bodyH < 1 {
		return ""
	}

	style := styles.CellStyle
	switch {
	case w.ID == c.selected:
		style = styles.CellSelectedStyle
	case w.Locked:
		style = styles.CellLockedStyle
	case !w.Visible:
		style = styles.CellHiddenStyle
	}

	var body string
	if !w.Visible {
		body = lipgloss.Place(bodyW, bodyH, lipgloss.Center, lipgloss.Center,
			styles.FaintStyle.Render("hidden"))
	} else {
		inst := c.instances[w.ID]
		if inst == nil {
			body = styles.ErrorStyle.Render("no instance")
		} else {
			body = inst.Render()
		}
		body = clampBlock(body, bodyW, bodyH)
	}

	header := runewidth.Truncate(w.Title, bodyW, "…")
	if w.Locked {
		header = "🔒 " + runewidth.Truncate(w.Title, maxInt(bodyW-3, 1), "…")
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CellTitleStyle.Render(header),
		body,
	)
	return style.Width(bodyW).Height(bodyH).Render(clampBlock(content, bodyW, bodyH))
}

// clampBlock trims a rendered block to fit a box.
func clampBlock(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) renderTitleEditor() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.DialogTitleStyle.Render("Edit Title"),
		"",
		c.titleInput.View(),
		"",
		styles.FaintStyle.Render("enter to apply, esc to cancel"),
	)
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center,
		styles.DialogStyle.Render(content))
}

// HintLine summarizes the active mode for the footer.
func (c *Canvas) HintLine() string {
	switch c.mode {
	case ModeDragging:
		return "dragging: release to place"
	case ModeResizing:
		return "resizing: release to commit"
	case ModeMenu:
		return "menu: ↑/↓ select, enter apply, esc close"
	case ModePalette:
		return "add: ↑/↓ select kind, enter add, esc cancel"
	case ModeConfirm:
		return "confirm: y delete, n cancel"
	case ModeEditTitle:
		return "editing title"
	default:
		if c.selected != "" {
			return fmt.Sprintf("selected %s: arrows move, shift+arrows resize, m menu", c.selectedTitle())
		}
		return "tab select, p add widget, ? help"
	}
}

func (c *Canvas) selectedTitle() string {
	if w := c.widgetByID(c.selected); w != nil {
		return w.Title
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// logUnknownDrop records a rejected payload once at warn level.
func logUnknownDrop(err error) {
	logger.Warn("drop payload rejected", "error", err)
}
