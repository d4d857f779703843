package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicboard/mosaic/internal/config"
	"github.com/mosaicboard/mosaic/internal/ui"
)

func testConfig() *config.Config {
	return &config.Config{
		Grid: config.GridConfig{CellWidth: 10, RowHeight: 3},
		UI: config.UIConfig{
			Theme:          "dark",
			UpdateDebounce: 50 * time.Millisecond,
			ResizeDebounce: 50 * time.Millisecond,
			ZoomStep:       0.1,
			DefaultChart:   "bar",
			ToastDuration:  3 * time.Second,
		},
		Plan: "pro",
		Log:  config.LogConfig{Level: "info"},
	}
}

func newTestModel(t *testing.T, readOnly bool) (*Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	m, err := New(testConfig(), path, readOnly)
	require.NoError(t, err)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 42})
	return m, path
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// addWidget drives the palette flow end to end.
func addWidget(t *testing.T, m *Model) {
	t.Helper()
	pressRune(m, 'p')
	press(m, tea.KeyEnter)
	require.NotEmpty(t, m.canvas.Widgets())
}

func TestAddMirrorsIntoDocument(t *testing.T) {
	m, _ := newTestModel(t, false)

	addWidget(t, m)
	assert.Len(t, m.doc.Widgets, 1, "the sink mirrors adds into the document")
	assert.Len(t, m.doc.Layout, 1)
	assert.True(t, m.dirty)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m, _ := newTestModel(t, false)
	addWidget(t, m)

	press(m, tea.KeyCtrlZ)
	assert.Empty(t, m.canvas.Widgets(), "undo removes the added widget")
	assert.Empty(t, m.doc.Widgets)

	press(m, tea.KeyCtrlY)
	assert.Len(t, m.canvas.Widgets(), 1, "redo restores it")
	assert.Len(t, m.doc.Widgets, 1)
}

// findSurfaceRetry walks a possibly batched command tree looking for a
// readiness retry message.
func findSurfaceRetry(c tea.Cmd) bool {
	if c == nil {
		return false
	}
	switch msg := c().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			if findSurfaceRetry(sub) {
				return true
			}
		}
	case ui.SurfaceRetryMsg:
		return true
	}
	return false
}

func TestRedoRearmsSurfaceBootstrap(t *testing.T) {
	m, _ := newTestModel(t, false)
	addWidget(t, m)

	// Shrink the widget below the surface ready size so the rebuilt
	// instance needs a readiness retry after restore.
	for i := 0; i < 4; i++ {
		press(m, tea.KeyShiftLeft)
	}

	press(m, tea.KeyCtrlZ)
	cmd := press(m, tea.KeyCtrlY)
	require.NotNil(t, cmd, "redo must return the canvas reload commands")
	assert.True(t, findSurfaceRetry(cmd),
		"the restored undersized widget schedules a readiness retry")
}

func TestUndoWithEmptyHistoryToasts(t *testing.T) {
	m, _ := newTestModel(t, false)
	press(m, tea.KeyCtrlZ)
	assert.Contains(t, m.View(), "nothing to undo")
}

func TestSaveWritesFileAndClearsDirty(t *testing.T) {
	m, path := newTestModel(t, false)
	addWidget(t, m)

	cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	msg, ok := cmd().(ui.DashboardSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	_, err := os.Stat(path)
	assert.NoError(t, err, "the dashboard file exists after save")

	m.Update(msg)
	assert.False(t, m.dirty)
	assert.Contains(t, m.View(), "saved")
}

func TestSaveSnapshotIsolatedFromLaterEdits(t *testing.T) {
	m, path := newTestModel(t, false)
	addWidget(t, m)

	cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)

	// An edit lands while the save command is still in flight.
	m.doc.Widgets[0].Title = "changed meanwhile"

	msg, ok := cmd().(ui.DashboardSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	saved, err := LoadDashboard(path)
	require.NoError(t, err)
	require.Len(t, saved.Widgets, 1)
	assert.NotEqual(t, "changed meanwhile", saved.Widgets[0].Title,
		"the save writes the state at the moment the command was built")
}

func TestReadOnlySessionRefusesSave(t *testing.T) {
	m, path := newTestModel(t, true)

	press(m, tea.KeyCtrlS)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "read-only sessions never write")
	assert.Contains(t, m.View(), "read-only")
}

func TestQuitBinding(t *testing.T) {
	m, _ := newTestModel(t, false)
	cmd := pressRune(m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestCtrlCQuitsInModalMode(t *testing.T) {
	m, _ := newTestModel(t, false)
	pressRune(m, '?') // help overlay takes over key routing
	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestToastLifecycle(t *testing.T) {
	m, _ := newTestModel(t, false)

	_, cmd := m.Update(ui.ToastMsg{Text: "hello there", IsError: false})
	require.NotNil(t, cmd, "toasts schedule their expiry")
	assert.Contains(t, m.View(), "hello there")

	m.statusBar.ClearToast(time.Now().Add(5 * time.Second))
	assert.NotContains(t, m.View(), "hello there")
}

func TestViewComposition(t *testing.T) {
	m, _ := newTestModel(t, false)
	addWidget(t, m)

	view := m.View()
	assert.Contains(t, view, "board", "status bar shows the dashboard name")
	assert.Contains(t, view, "1 widgets")
}

func TestCleanupDisposesInstances(t *testing.T) {
	m, _ := newTestModel(t, false)
	addWidget(t, m)
	id := m.canvas.Widgets()[0].ID

	m.Cleanup()
	assert.Contains(t, m.canvas.Instance(id).Render(), "measuring",
		"disposed surfaces stop rendering frames")
}
