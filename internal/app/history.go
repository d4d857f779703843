package app

import (
	"github.com/mosaicboard/mosaic/internal/dashboard"
)

const historyLimit = 50

// snapshot is one undoable dashboard state.
type snapshot struct {
	widgets []dashboard.Widget
	layout  []dashboard.LayoutEntry
}

func cloneWidgets(ws []dashboard.Widget) []dashboard.Widget {
	out := make([]dashboard.Widget, len(ws))
	for i, w := range ws {
		w.Style = w.Style.Clone()
		out[i] = w
	}
	return out
}

func takeSnapshot(ws []dashboard.Widget, layout []dashboard.LayoutEntry) snapshot {
	return snapshot{
		widgets: cloneWidgets(ws),
		layout:  dashboard.CloneLayout(layout),
	}
}

// history is a bounded undo/redo stack of dashboard states.
type history struct {
	past   []snapshot
	future []snapshot
}

// push records the current state as an undo point and clears redo.
func (h *history) push(s snapshot) {
	h.past = append(h.past, s)
	if len(h.past) > historyLimit {
		h.past = h.past[1:]
	}
	h.future = nil
}

// undo exchanges the current state for the previous one.
func (h *history) undo(current snapshot) (snapshot, bool) {
	if len(h.past) == 0 {
		return snapshot{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, true
}

// redo exchanges the current state for the next one.
func (h *history) redo(current snapshot) (snapshot, bool) {
	if len(h.future) == 0 {
		return snapshot{}, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}
