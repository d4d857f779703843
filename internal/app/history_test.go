package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/dashboard"
)

func namedSnapshot(title string) snapshot {
	w := dashboard.NewWidget(chart.KindBar, title)
	return takeSnapshot([]dashboard.Widget{w}, []dashboard.LayoutEntry{dashboard.DefaultPlacement(w.ID)})
}

func TestHistoryUndoRedo(t *testing.T) {
	var h history
	a := namedSnapshot("A")
	b := namedSnapshot("B")

	h.push(a)
	got, ok := h.undo(b)
	require.True(t, ok)
	assert.Equal(t, "A", got.widgets[0].Title)

	got, ok = h.redo(got)
	require.True(t, ok)
	assert.Equal(t, "B", got.widgets[0].Title)
}

func TestHistoryEmptyStacks(t *testing.T) {
	var h history
	cur := namedSnapshot("X")

	_, ok := h.undo(cur)
	assert.False(t, ok, "nothing to undo")
	_, ok = h.redo(cur)
	assert.False(t, ok, "nothing to redo")
}

func TestHistoryPushClearsRedo(t *testing.T) {
	var h history
	h.push(namedSnapshot("A"))
	_, ok := h.undo(namedSnapshot("B"))
	require.True(t, ok)
	require.NotEmpty(t, h.future)

	h.push(namedSnapshot("C"))
	_, ok = h.redo(namedSnapshot("C"))
	assert.False(t, ok, "a new mutation invalidates the redo branch")
}

func TestHistoryBounded(t *testing.T) {
	var h history
	for i := 0; i < historyLimit+10; i++ {
		h.push(namedSnapshot(fmt.Sprintf("s%d", i)))
	}
	assert.Len(t, h.past, historyLimit)
	assert.Equal(t, "s10", h.past[0].widgets[0].Title, "the oldest states fall off")
}

func TestSnapshotIsolation(t *testing.T) {
	w := dashboard.NewWidget(chart.KindBar, "A")
	w.Style = chart.Config{"title": "A"}
	layout := []dashboard.LayoutEntry{dashboard.DefaultPlacement(w.ID)}

	snap := takeSnapshot([]dashboard.Widget{w}, layout)

	w.Style["title"] = "mutated"
	layout[0].X = 9
	assert.Equal(t, "A", snap.widgets[0].Style.GetString("title", ""))
	assert.Equal(t, 0, snap.layout[0].X)
}
