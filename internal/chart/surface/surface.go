// Package surface owns the rendering-surface lifecycle of one chart
// widget: creation once the host cell has a usable size, bounded
// readiness polling so initialization never blocks forever, debounced
// resize observation, and ordered defensive teardown.
package surface

import (
	"fmt"
	"time"

	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/logger"
)

// Renderer turns a compiled specification into terminal cells.
type Renderer interface {
	Render(s *spec.Specification, width, height int) string
}

// State is the lifecycle phase of a widget's surface.
type State int

const (
	Uninitialized State = iota
	AwaitingReadySize
	Initialized
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AwaitingReadySize:
		return "awaiting-ready-size"
	case Initialized:
		return "initialized"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

const (
	// MinReadyWidth and MinReadyHeight are the smallest cell size worth
	// creating a surface for; below this the viewport is degenerate and
	// we poll for a better measurement first.
	MinReadyWidth  = 20
	MinReadyHeight = 6

	// RetryDelay × MaxReadyAttempts bounds the readiness poll to about
	// two seconds, after which initialization proceeds with whatever
	// size is available.
	RetryDelay       = 200 * time.Millisecond
	MaxReadyAttempts = 10

	// ResizeDebounce coalesces the resize storm of a continuous drag.
	ResizeDebounce = 50 * time.Millisecond
)

// Decision tells the widget instance what to do after a measurement.
type Decision int

const (
	// DecisionNone: nothing to schedule.
	DecisionNone Decision = iota
	// DecisionRetry: size not ready, poll again after RetryDelay.
	DecisionRetry
	// DecisionInitialized: the handle was just created.
	DecisionInitialized
	// DecisionResizeArmed: a debounced resize window opened; apply it
	// with ApplyResize after ResizeDebounce.
	DecisionResizeArmed
)

// Handle is the live rendering surface bound 1:1 to a widget instance.
type Handle struct {
	renderer Renderer
	width    int
	height   int
	current  *spec.Specification
	disposed bool

	resizeCount int
}

// SetOption replaces the current specification.
func (h *Handle) SetOption(s *spec.Specification) {
	if h.disposed {
		return
	}
	h.current = s
}

// GetOption returns the live specification for minimal in-place
// patching. Partial updates mutate the returned value directly.
func (h *Handle) GetOption() *spec.Specification {
	return h.current
}

// Resize updates the surface viewport.
func (h *Handle) Resize(width, height int) {
	if h.disposed {
		return
	}
	h.width = width
	h.height = height
	h.resizeCount++
}

// Size returns the current viewport in cells.
func (h *Handle) Size() (int, int) {
	return h.width, h.height
}

// ResizeCount reports how many resizes were applied to the surface.
func (h *Handle) ResizeCount() int {
	return h.resizeCount
}

// Render draws the current specification at the surface size.
func (h *Handle) Render() string {
	if h.disposed || h.current == nil {
		return ""
	}
	return h.renderer.Render(h.current, h.width, h.height)
}

// Disposed reports whether the handle has been released.
func (h *Handle) Disposed() bool {
	return h.disposed
}

func (h *Handle) dispose() {
	h.disposed = true
	h.current = nil
}

// Manager drives one Handle through its lifecycle. It lives on the UI
// event loop; timers are external tea ticks tagged with a generation
// token so stale ones are ignored.
type Manager struct {
	state      State
	handle     *Handle
	renderer   Renderer
	responsive bool

	attempts   int
	lastW      int
	lastH      int
	pendingW   int
	pendingH   int
	generation int
}

// NewManager creates a lifecycle manager for one widget cell.
// responsive=false is a hard disable: after initialization no size
// observation happens at all.
func NewManager(r Renderer, responsive bool) *Manager {
	return &Manager{state: Uninitialized, renderer: r, responsive: responsive}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State { return m.state }

// Handle returns the live surface, nil before initialization.
func (m *Manager) Handle() *Handle { return m.handle }

// Attempts returns how many readiness polls have run.
func (m *Manager) Attempts() int { return m.attempts }

// Generation returns the token pending timers must carry.
func (m *Manager) Generation() int { return m.generation }

// Valid reports whether a timer generation is still live.
func (m *Manager) Valid(gen int) bool {
	return m.state != Disposed && gen == m.generation
}

// SetResponsive updates the responsive flag when a configuration edit
// toggles it after construction. Turning it off also drops any armed
// resize window.
func (m *Manager) SetResponsive(on bool) {
	m.responsive = on
	if !on && m.state == Initialized {
		m.pendingW = 0
		m.pendingH = 0
		m.generation++
	}
}

// Observe feeds a cell measurement into the state machine and returns
// the action the caller must schedule. Both the per-cell observer and
// the window-resize/focus fallback route through here, so they share
// one debounce discipline.
func (m *Manager) Observe(width, height int) Decision {
	switch m.state {
	case Uninitialized, AwaitingReadySize:
		return m.observeAwaiting(width, height)
	case Initialized:
		return m.observeInitialized(width, height)
	default:
		return DecisionNone
	}
}

func (m *Manager) observeAwaiting(width, height int) Decision {
	m.state = AwaitingReadySize
	if width >= MinReadyWidth && height >= MinReadyHeight {
		m.initialize(width, height)
		return DecisionInitialized
	}
	m.attempts++
	if m.attempts >= MaxReadyAttempts {
		// Initialization must never block indefinitely: proceed with
		// whatever size is available.
		logger.Warn("surface never reached ready size, initializing anyway",
			"width", width, "height", height, "attempts", m.attempts)
		m.initialize(width, height)
		return DecisionInitialized
	}
	m.generation++
	return DecisionRetry
}

func (m *Manager) observeInitialized(width, height int) Decision {
	if !m.responsive {
		return DecisionNone
	}
	dw := width - m.lastW
	dh := height - m.lastH
	if dw < 0 {
		dw = -dw
	}
	if dh < 0 {
		dh = -dh
	}
	wasZero := m.lastW == 0 || m.lastH == 0
	if dw < 1 && dh < 1 && !wasZero {
		return DecisionNone
	}
	m.pendingW = width
	m.pendingH = height
	m.generation++
	return DecisionResizeArmed
}

// initialize creates the handle exactly once; re-invocation while a
// handle exists is a no-op.
func (m *Manager) initialize(width, height int) {
	if m.handle != nil {
		m.state = Initialized
		return
	}
	m.handle = &Handle{renderer: m.renderer, width: width, height: height}
	m.lastW = width
	m.lastH = height
	m.state = Initialized
	logger.Debug("surface initialized", "width", width, "height", height, "attempts", m.attempts)
}

// ApplyResize fires the debounced resize armed by Observe. Stale
// generations (a newer measurement re-armed the window, or the manager
// was disposed) are dropped.
func (m *Manager) ApplyResize(gen int) bool {
	if !m.Valid(gen) || m.state != Initialized || m.handle == nil {
		return false
	}
	m.handle.Resize(m.pendingW, m.pendingH)
	m.lastW = m.pendingW
	m.lastH = m.pendingH
	return true
}

// Dispose tears the surface down in a fixed order: handle first, then
// observation, then timers. Each step is guarded so a failure cannot
// prevent the next. Safe to call repeatedly.
func (m *Manager) Dispose() {
	if m.state == Disposed {
		return
	}
	runGuarded("dispose handle", func() {
		if m.handle != nil {
			m.handle.dispose()
		}
	})
	runGuarded("detach observer", func() {
		m.responsive = false
	})
	runGuarded("cancel timers", func() {
		m.generation++
	})
	m.state = Disposed
}

func runGuarded(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("surface teardown step failed", "step", step, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
