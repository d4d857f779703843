package dashboard

import "sort"

// GridColumns is the fixed column count of the canvas grid.
const GridColumns = 12

// Default placement for widgets that arrive without a layout entry.
const (
	DefaultW    = 6
	DefaultH    = 4
	DefaultMinW = 2
	DefaultMinH = 2
)

// LayoutEntry is the geometric placement record for one widget. The
// layout slice is the single source of geometric truth; widgets carry
// no position state.
type LayoutEntry struct {
	I    string `json:"i" yaml:"i"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	W    int    `json:"w" yaml:"w"`
	H    int    `json:"h" yaml:"h"`
	MinW int    `json:"minW,omitempty" yaml:"minW,omitempty"`
	MinH int    `json:"minH,omitempty" yaml:"minH,omitempty"`
}

// DefaultPlacement returns the fallback entry for a widget id.
func DefaultPlacement(id string) LayoutEntry {
	return LayoutEntry{I: id, X: 0, Y: 0, W: DefaultW, H: DefaultH, MinW: DefaultMinW, MinH: DefaultMinH}
}

func collides(a, b LayoutEntry) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func collidesAny(placed []LayoutEntry, e LayoutEntry) bool {
	for _, p := range placed {
		if p.I != e.I && collides(p, e) {
			return true
		}
	}
	return false
}

// CloneLayout returns a copy of the layout slice. The canvas controller
// hands clones to the host so callback receivers can retain them.
func CloneLayout(entries []LayoutEntry) []LayoutEntry {
	return append([]LayoutEntry(nil), entries...)
}

// Reflow applies the vertical-compaction policy: entries are placed in
// reading order (priority id first, if given), overlaps are resolved by
// pushing the later entry down, then every entry floats up until it
// rests against another entry or the top edge. Overlapping input is
// therefore resolved, never rejected.
func Reflow(entries []LayoutEntry, priorityID string) []LayoutEntry {
	order := CloneLayout(entries)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].I == priorityID {
			return true
		}
		if order[j].I == priorityID {
			return false
		}
		if order[i].Y != order[j].Y {
			return order[i].Y < order[j].Y
		}
		return order[i].X < order[j].X
	})

	placed := make([]LayoutEntry, 0, len(order))
	for _, e := range order {
		for collidesAny(placed, e) {
			e.Y++
		}
		for e.Y > 0 {
			up := e
			up.Y--
			if collidesAny(placed, up) {
				break
			}
			e = up
		}
		placed = append(placed, e)
	}
	return placed
}

// Compact removes vertical gaps without any priority entry.
func Compact(entries []LayoutEntry) []LayoutEntry {
	return Reflow(entries, "")
}

// Normalize reconciles a layout slice against the live widget list:
// entries without a matching widget are dropped, duplicate ids keep
// their first entry, and widgets without an entry get the default
// placement. The result is compacted.
func Normalize(widgets []Widget, entries []LayoutEntry) []LayoutEntry {
	known := make(map[string]bool, len(widgets))
	for _, w := range widgets {
		known[w.ID] = true
	}

	seen := make(map[string]bool, len(entries))
	out := make([]LayoutEntry, 0, len(widgets))
	for _, e := range entries {
		if !known[e.I] || seen[e.I] {
			continue
		}
		seen[e.I] = true
		out = append(out, clampEntry(e))
	}
	for _, w := range widgets {
		if !seen[w.ID] {
			out = append(out, DefaultPlacement(w.ID))
		}
	}
	return Compact(out)
}

// Move shifts an entry by (dx, dy) grid units and reflows. Returns the
// input unchanged when the id is unknown.
func Move(entries []LayoutEntry, id string, dx, dy int) []LayoutEntry {
	out := CloneLayout(entries)
	for i := range out {
		if out[i].I == id {
			out[i].X += dx
			out[i].Y += dy
			out[i] = clampEntry(out[i])
			return Reflow(out, id)
		}
	}
	return out
}

// Resize grows or shrinks an entry by (dw, dh) grid units, honoring
// MinW/MinH and the grid width, then reflows.
func Resize(entries []LayoutEntry, id string, dw, dh int) []LayoutEntry {
	out := CloneLayout(entries)
	for i := range out {
		if out[i].I == id {
			out[i].W += dw
			out[i].H += dh
			out[i] = clampEntry(out[i])
			return Reflow(out, id)
		}
	}
	return out
}

// clampEntry keeps an entry inside the grid and above its minimums.
func clampEntry(e LayoutEntry) LayoutEntry {
	if e.MinW <= 0 {
		e.MinW = DefaultMinW
	}
	if e.MinH <= 0 {
		e.MinH = DefaultMinH
	}
	if e.W < e.MinW {
		e.W = e.MinW
	}
	if e.W > GridColumns {
		e.W = GridColumns
	}
	if e.H < e.MinH {
		e.H = e.MinH
	}
	if e.X < 0 {
		e.X = 0
	}
	if e.X+e.W > GridColumns {
		e.X = GridColumns - e.W
	}
	if e.Y < 0 {
		e.Y = 0
	}
	return e
}
