// Package schedule decides how a widget's configuration and data
// changes reach its rendering surface: coalesced through a short
// debounce window, applied as cheap partial patches when every changed
// property is visual-only, or as a full recompile on the next frame
// boundary when anything structural moved.
package schedule

import (
	"time"

	deepcopy "github.com/tiendc/go-deepcopy"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/impact"
	"github.com/mosaicboard/mosaic/internal/logger"
)

const (
	// DebounceWindow coalesces rapid successive edits (a color-picker
	// drag) into one applied update.
	DebounceWindow = 50 * time.Millisecond

	// FrameInterval is the boundary full recompiles wait for, so a
	// burst of structural edits causes one rebuild, not layout thrash.
	FrameInterval = 16 * time.Millisecond
)

// Plan is the outcome of one flushed debounce window.
type Plan struct {
	// Skip means the diff was empty: reapplying an identical
	// configuration/data pair is a no-op.
	Skip bool

	// Immediate properties are applied as a partial patch onto the
	// live specification without teardown.
	Immediate []impact.Property

	// Full means a structural property or the data changed and a
	// recompile-and-replace must run at the next frame boundary.
	Full bool

	// DataChanged distinguishes a data-driven full update.
	DataChanged bool

	// Config and Data are the snapshots this plan was computed from;
	// the frame-boundary recompile reads these, not live host state.
	Config chart.Config
	Data   *chart.Dataset
}

// Scheduler tracks the last-applied snapshot for one widget instance.
// Not safe for concurrent use; it lives on the UI event loop.
type Scheduler struct {
	prevCfg  chart.Config
	prevData *chart.Dataset

	pendingCfg  chart.Config
	pendingData *chart.Dataset
	hasPending  bool
	armed       bool

	generation int
	disposed   bool
}

// New creates a scheduler whose first submitted snapshot diffs against
// the initial configuration/data the widget was compiled with.
func New(initialCfg chart.Config, initialData *chart.Dataset) *Scheduler {
	s := &Scheduler{}
	s.commit(initialCfg, initialData)
	return s
}

// Submit records a pending configuration/data change. It returns the
// generation to tag the debounce timer with, and whether a new timer
// must be armed; while a window is already open further submissions
// coalesce into it.
func (s *Scheduler) Submit(cfg chart.Config, data *chart.Dataset) (gen int, arm bool) {
	if s.disposed {
		return s.generation, false
	}
	s.pendingCfg = cfg
	s.pendingData = data
	s.hasPending = true
	if s.armed {
		return s.generation, false
	}
	s.armed = true
	s.generation++
	return s.generation, true
}

// Flush closes the debounce window identified by gen and computes the
// update plan. Stale generations (superseded or disposed) and empty
// diffs both produce a Skip plan.
func (s *Scheduler) Flush(gen int) Plan {
	if s.disposed || gen != s.generation || !s.hasPending {
		return Plan{Skip: true}
	}
	s.armed = false
	s.hasPending = false

	changed := impact.Diff(s.prevCfg, s.pendingCfg)
	dataChanged := !impact.Equal(s.prevData, s.pendingData)
	if len(changed) == 0 && !dataChanged {
		return Plan{Skip: true}
	}

	immediate, structural := impact.Classify(changed)
	plan := Plan{
		Immediate:   immediate,
		Full:        len(structural) > 0 || dataChanged,
		DataChanged: dataChanged,
		Config:      s.pendingCfg,
		Data:        s.pendingData,
	}

	s.commit(s.pendingCfg, s.pendingData)
	s.pendingCfg = nil
	s.pendingData = nil
	return plan
}

// Generation returns the current timer generation. Frame-boundary
// recompiles are tagged with it so a disposal in between invalidates
// them.
func (s *Scheduler) Generation() int {
	return s.generation
}

// Valid reports whether a previously issued generation is still live.
func (s *Scheduler) Valid(gen int) bool {
	return !s.disposed && gen == s.generation
}

// Invalidate cancels any pending window. A flush tagged with an older
// generation becomes a no-op; nothing is applied after disposal.
func (s *Scheduler) Invalidate() {
	s.disposed = true
	s.generation++
	s.hasPending = false
	s.armed = false
	s.pendingCfg = nil
	s.pendingData = nil
}

// commit atomically replaces the previous-snapshot references with
// copies of the just-applied configuration and data, so later host-side
// mutation of either cannot corrupt the diff baseline.
func (s *Scheduler) commit(cfg chart.Config, data *chart.Dataset) {
	var cfgCopy chart.Config
	if err := deepcopy.Copy(&cfgCopy, &cfg); err != nil {
		logger.Warn("snapshot copy of config failed, keeping shallow clone", "err", err.Error())
		cfgCopy = cfg.Clone()
	}
	var dataCopy *chart.Dataset
	if data != nil {
		dataCopy = &chart.Dataset{}
		if err := deepcopy.Copy(dataCopy, data); err != nil {
			logger.Warn("snapshot copy of dataset failed, keeping reference", "err", err.Error())
			dataCopy = data
		}
	}
	s.prevCfg = cfgCopy
	s.prevData = dataCopy
}
