package canvas

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/compile"
	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/dashboard"
	"github.com/mosaicboard/mosaic/internal/ui"
)

type stubRenderer struct{}

func (stubRenderer) Render(s *spec.Specification, width, height int) string {
	return fmt.Sprintf("chart %dx%d", width, height)
}

// recorderSink captures canvas notifications for assertions.
type recorderSink struct {
	layouts    [][]dashboard.LayoutEntry
	selections []string
	patches    map[string][]dashboard.Patch
	deleted    []string
	duplicated []string
	configs    map[string][]chart.Config
	added      []dashboard.Widget
}

func newRecorderSink() *recorderSink {
	return &recorderSink{
		patches: make(map[string][]dashboard.Patch),
		configs: make(map[string][]chart.Config),
	}
}

func (r *recorderSink) LayoutChanged(entries []dashboard.LayoutEntry) {
	r.layouts = append(r.layouts, entries)
}
func (r *recorderSink) WidgetSelected(id string) { r.selections = append(r.selections, id) }
func (r *recorderSink) WidgetUpdated(id string, patch dashboard.Patch) {
	r.patches[id] = append(r.patches[id], patch)
}
func (r *recorderSink) WidgetDeleted(id string) { r.deleted = append(r.deleted, id) }
func (r *recorderSink) WidgetDuplicated(sourceID string, w dashboard.Widget, entry dashboard.LayoutEntry) {
	r.duplicated = append(r.duplicated, sourceID)
}
func (r *recorderSink) ConfigUpdated(id string, cfg chart.Config) {
	r.configs[id] = append(r.configs[id], cfg)
}
func (r *recorderSink) WidgetAdded(w dashboard.Widget, entry dashboard.LayoutEntry) {
	r.added = append(r.added, w)
}

func (r *recorderSink) lastLayout() []dashboard.LayoutEntry {
	if len(r.layouts) == 0 {
		return nil
	}
	return r.layouts[len(r.layouts)-1]
}

func newTestCanvas(t *testing.T, sink ui.EventSink) *Canvas {
	t.Helper()
	c := New(Geometry{CellWidth: 10, RowHeight: 3}, 0.1, ui.DefaultKeyMap(), sink, stubRenderer{}, compile.TierPro, false)
	c.SetSize(120, 40)
	return c
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadOne(t *testing.T, c *Canvas) dashboard.Widget {
	t.Helper()
	w := dashboard.NewWidget(chart.KindBar, "Revenue")
	c.Load([]dashboard.Widget{w}, []dashboard.LayoutEntry{dashboard.DefaultPlacement(w.ID)})
	return w
}

func TestAddFromJSON(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)

	cmd := c.AddFromJSON(`{"type":"line","title":"CPU"}`)
	require.Len(t, c.Widgets(), 1)
	assert.Equal(t, "CPU", c.Widgets()[0].Title)
	assert.Equal(t, c.Widgets()[0].ID, c.Selected(), "new widgets are selected")
	require.Len(t, sink.added, 1)
	assert.NotEmpty(t, sink.layouts, "adds announce the layout")
	assert.Nil(t, cmd, "a ready-sized cell initializes without timers")
	assert.NotNil(t, c.Instance(c.Widgets()[0].ID).Spec())
}

func TestAddFromJSONMalformed(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)

	cmd := c.AddFromJSON(`{"type":`)
	require.NotNil(t, cmd, "malformed payloads surface a toast")
	msg, ok := cmd().(ui.ToastMsg)
	require.True(t, ok)
	assert.True(t, msg.IsError)
	assert.Empty(t, c.Widgets(), "nothing is added")
	assert.Empty(t, sink.added)
}

func TestAddRejectedWhenReadOnly(t *testing.T) {
	sink := newRecorderSink()
	c := New(Geometry{CellWidth: 10, RowHeight: 3}, 0.1, ui.DefaultKeyMap(), sink, stubRenderer{}, compile.TierPro, true)
	c.SetSize(120, 40)

	cmd := c.AddFromJSON(`{"type":"bar"}`)
	require.NotNil(t, cmd)
	msg := cmd().(ui.ToastMsg)
	assert.True(t, msg.IsError)
	assert.Empty(t, c.Widgets())
}

func TestLoadNormalizesOrphans(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)

	w := dashboard.NewWidget(chart.KindBar, "A")
	entries := []dashboard.LayoutEntry{
		dashboard.DefaultPlacement(w.ID),
		dashboard.DefaultPlacement("ghost"),
	}
	c.Load([]dashboard.Widget{w}, entries)
	require.Len(t, c.Layout(), 1, "entries without widgets are dropped")
	assert.Equal(t, w.ID, c.Layout()[0].I)
}

func TestTabCyclesSelection(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	c.AddFromJSON(`{"type":"bar","title":"A"}`)
	c.AddFromJSON(`{"type":"line","title":"B"}`)

	first := c.Selected()
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.NotEqual(t, first, c.Selected())
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, first, c.Selected(), "cycling wraps around")

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, c.Selected(), "esc deselects")
	assert.Equal(t, "", sink.selections[len(sink.selections)-1])
}

func TestDeleteConfirmFlow(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, w.ID, c.Selected())

	c.Update(keyRune('x'))
	assert.Equal(t, ModeConfirm, c.Mode(), "delete asks for confirmation")

	cmd := c.Update(keyRune('y'))
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Empty(t, c.Widgets())
	assert.Equal(t, []string{w.ID}, sink.deleted)
	assert.Nil(t, c.Instance(w.ID), "the runtime is disposed")
	require.NotNil(t, cmd)
	assert.IsType(t, ui.ToastMsg{}, cmd())
}

func TestDeleteCancelled(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('x'))
	c.Update(keyRune('n'))
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Len(t, c.Widgets(), 1, "cancel keeps the widget")
	assert.Empty(t, sink.deleted)
}

func TestLockedWidgetRefusesDelete(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('l'))
	require.True(t, c.Widgets()[0].Locked)
	require.NotEmpty(t, sink.patches[w.ID])

	c.Update(keyRune('x'))
	assert.Equal(t, ModeNormal, c.Mode(), "locked widgets never reach the confirm dialog")
	assert.Len(t, c.Widgets(), 1)
}

func TestDuplicateWidget(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('d'))
	require.Len(t, c.Widgets(), 2)
	clone := c.Widgets()[1]
	assert.Equal(t, "Revenue (copy)", clone.Title)
	assert.NotEqual(t, w.ID, clone.ID)
	assert.Equal(t, clone.ID, c.Selected(), "the clone takes selection")
	assert.Equal(t, []string{w.ID}, sink.duplicated)
	assert.NotNil(t, c.Instance(clone.ID))
}

func TestToggleVisibility(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('v'))
	assert.False(t, c.Widgets()[0].Visible)
	c.Update(keyRune('v'))
	assert.True(t, c.Widgets()[0].Visible)
}

func TestMoveSelected(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	before := len(sink.layouts)
	c.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, c.Layout()[0].X)
	assert.Greater(t, len(sink.layouts), before, "moves announce the layout")

	// Clamped at the right edge.
	for i := 0; i < 20; i++ {
		c.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	e := c.Layout()[0]
	assert.LessOrEqual(t, e.X+e.W, dashboard.GridColumns)
}

func TestResizeSelected(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	w0 := c.Layout()[0].W
	c.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, w0+1, c.Layout()[0].W)

	for i := 0; i < 20; i++ {
		c.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	}
	assert.GreaterOrEqual(t, c.Layout()[0].W, dashboard.DefaultMinW, "widths clamp at the minimum")
}

func TestLockedWidgetIgnoresMoves(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	c.Update(keyRune('l'))

	x0 := c.Layout()[0].X
	c.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, x0, c.Layout()[0].X)
}

func TestZoomBounds(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)

	for i := 0; i < 30; i++ {
		c.Update(keyRune('+'))
	}
	assert.Equal(t, 2.0, c.Zoom(), "zoom clamps at 200%")

	for i := 0; i < 30; i++ {
		c.Update(keyRune('-'))
	}
	assert.Equal(t, 0.5, c.Zoom(), "zoom clamps at 50%")

	c.Update(keyRune('0'))
	assert.Equal(t, 1.0, c.Zoom())
}

func TestPaletteAddFlow(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)

	c.Update(keyRune('p'))
	require.Equal(t, ModePalette, c.Mode())

	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, c.Mode())
	require.Len(t, c.Widgets(), 1)
	assert.Equal(t, chart.Kinds()[1], c.Widgets()[0].Kind)
}

func TestPaletteOpensOnDefaultKind(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	kinds := chart.Kinds()
	c.SetDefaultKind(kinds[len(kinds)-1])

	c.Update(keyRune('p'))
	require.Equal(t, ModePalette, c.Mode())
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, c.Widgets(), 1)
	assert.Equal(t, kinds[len(kinds)-1], c.Widgets()[0].Kind)
}

func TestMenuFlowTogglesLock(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('m'))
	require.Equal(t, ModeMenu, c.Mode())

	// Edit, Duplicate, Hide, Lock.
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, c.Mode())
	assert.True(t, c.Widgets()[0].Locked)
}

func TestEditTitleFlow(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})

	c.Update(keyRune('m'))
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeEditTitle, c.Mode())

	c.Update(keyRune('!'))
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Equal(t, "Revenue!", c.Widgets()[0].Title)
}

func TestConfigUpdateReachesInstance(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)

	cmd := c.Update(ui.ConfigUpdatedMsg{ID: w.ID, Config: chart.Config{"title": "Fresh"}})
	require.NotNil(t, cmd, "config edits arm the debounce window")
	assert.NotEmpty(t, sink.configs[w.ID])
	assert.Equal(t, "Fresh", c.Widgets()[0].Style.GetString("title", ""))

	msg, ok := cmd().(ui.FlushUpdateMsg)
	require.True(t, ok)
	c.Update(msg)
	assert.Equal(t, "Fresh", c.Instance(w.ID).Spec().Title.Text)
}

func TestDataUpdateReachesInstance(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)

	cmd := c.Update(ui.DataUpdatedMsg{ID: w.ID, Data: chart.Dataset{
		Categories: []string{"a", "b", "c"},
		Values:     []float64{1, 2, 3},
	}})
	require.NotNil(t, cmd, "data edits arm the debounce window")

	flushMsg := cmd().(ui.FlushUpdateMsg)
	frameCmd := c.Update(flushMsg)
	require.NotNil(t, frameCmd, "data changes recompile at the frame boundary")
	frameMsg := frameCmd().(ui.FrameTickMsg)
	c.Update(frameMsg)
	assert.Len(t, c.Instance(w.ID).Spec().Series[0].Data, 3)
}

func TestLayoutAnnouncementIsAClone(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	c.Update(tea.KeyMsg{Type: tea.KeyRight})

	announced := sink.lastLayout()
	require.NotEmpty(t, announced)
	announced[0].X = 99
	assert.NotEqual(t, 99, c.Layout()[0].X, "the sink must not alias the live slice")
}

func TestViewContainsWidgets(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)

	view := c.View()
	assert.Contains(t, view, "Revenue")
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 40, "the view fills the viewport height")
}

func TestHintLineByMode(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	assert.Contains(t, c.HintLine(), "tab")

	loadOne(t, c)
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, c.HintLine(), "Revenue")

	c.Update(keyRune('p'))
	assert.Contains(t, c.HintLine(), "add")
}

func TestMouseSelectAndMenu(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	w := loadOne(t, c)

	// Left press inside the widget selects it.
	c.Update(tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, w.ID, c.Selected())

	// Right press opens the context menu.
	c.Update(tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	assert.Equal(t, ModeMenu, c.Mode())

	// A click far outside dismisses it.
	c.Update(tea.MouseMsg{X: 110, Y: 35, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, ModeNormal, c.Mode())
}

func TestMouseDragMovesWidget(t *testing.T) {
	sink := newRecorderSink()
	c := newTestCanvas(t, sink)
	loadOne(t, c)

	c.Update(tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.Equal(t, ModeDragging, c.Mode())

	// One grid unit is 10 columns wide at zoom 1.
	c.Update(tea.MouseMsg{X: 23, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	c.Update(tea.MouseMsg{X: 23, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Equal(t, 2, c.Layout()[0].X, "the drop lands two units over")
}
