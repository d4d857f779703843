// Package widget binds one dashboard widget to its rendering surface
// and update scheduler: it owns the cell's lifecycle, routes
// configuration and data edits through the debounced pipeline, and
// renders the current frame for the canvas.
package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/compile"
	"github.com/mosaicboard/mosaic/internal/chart/impact"
	"github.com/mosaicboard/mosaic/internal/chart/schedule"
	"github.com/mosaicboard/mosaic/internal/chart/spec"
	"github.com/mosaicboard/mosaic/internal/chart/surface"
	"github.com/mosaicboard/mosaic/internal/logger"
	"github.com/mosaicboard/mosaic/internal/ui"
	"github.com/mosaicboard/mosaic/internal/ui/styles"
)

// Instance is the live runtime behind one widget cell.
type Instance struct {
	ID   string
	Kind chart.Kind
	Tier compile.PlanTier

	cfg  chart.Config
	data *chart.Dataset

	sched *schedule.Scheduler
	mgr   *surface.Manager

	// Timer intervals, configurable through SetIntervals.
	debounce    time.Duration
	resizeDelay time.Duration

	// Frame-boundary recompile state. The armed plan carries the
	// snapshots the recompile reads; the generation invalidates stale
	// frame ticks when a newer flush supersedes them.
	framePlan *schedule.Plan
	frameGen  int
}

// NewInstance creates an uninitialized instance. Nothing renders until
// the canvas feeds the first cell measurement through Observe.
func NewInstance(id string, kind chart.Kind, cfg chart.Config, data *chart.Dataset, r surface.Renderer, tier compile.PlanTier) *Instance {
	if cfg == nil {
		cfg = chart.Config{}
	}
	return &Instance{
		ID:          id,
		Kind:        kind,
		Tier:        tier,
		cfg:         cfg,
		data:        data,
		sched:       schedule.New(cfg, data),
		mgr:         surface.NewManager(r, cfg.Responsive()),
		debounce:    schedule.DebounceWindow,
		resizeDelay: surface.ResizeDebounce,
	}
}

// SetIntervals overrides the debounce windows with configured values.
// Non-positive durations keep the defaults.
func (in *Instance) SetIntervals(update, resize time.Duration) {
	if update > 0 {
		in.debounce = update
	}
	if resize > 0 {
		in.resizeDelay = resize
	}
}

// Manager exposes the lifecycle state machine, used by the canvas for
// affordances and by tests.
func (in *Instance) Manager() *surface.Manager {
	return in.mgr
}

// Config returns the current configuration snapshot.
func (in *Instance) Config() chart.Config {
	return in.cfg
}

// Data returns the current dataset.
func (in *Instance) Data() *chart.Dataset {
	return in.data
}

// Spec returns the live compiled specification, nil before
// initialization.
func (in *Instance) Spec() *spec.Specification {
	if h := in.mgr.Handle(); h != nil {
		return h.GetOption()
	}
	return nil
}

// Observe feeds a cell measurement into the surface lifecycle and
// returns the timer command the decision requires, if any.
func (in *Instance) Observe(width, height int) tea.Cmd {
	switch in.mgr.Observe(width, height) {
	case surface.DecisionRetry:
		gen := in.mgr.Generation()
		id := in.ID
		return tea.Tick(surface.RetryDelay, func(time.Time) tea.Msg {
			return ui.SurfaceRetryMsg{WidgetID: id, Generation: uint64(gen)}
		})
	case surface.DecisionInitialized:
		in.compileAndSet(in.cfg, in.data)
		return nil
	case surface.DecisionResizeArmed:
		gen := in.mgr.Generation()
		id := in.ID
		return tea.Tick(in.resizeDelay, func(time.Time) tea.Msg {
			return ui.SurfaceResizeMsg{WidgetID: id, Generation: uint64(gen)}
		})
	default:
		return nil
	}
}

// HandleRetry re-polls the cell size after the readiness delay. The
// canvas passes the current measurement; stale generations are dropped.
func (in *Instance) HandleRetry(gen uint64, width, height int) tea.Cmd {
	if !in.mgr.Valid(int(gen)) {
		return nil
	}
	return in.Observe(width, height)
}

// HandleResize fires the debounced surface resize.
func (in *Instance) HandleResize(gen uint64) {
	in.mgr.ApplyResize(int(gen))
}

// SubmitConfig routes a configuration edit into the debounce window.
// The responsive flag takes effect right away so a disabling edit
// suppresses resizes from this point on.
func (in *Instance) SubmitConfig(cfg chart.Config) tea.Cmd {
	in.cfg = cfg
	in.mgr.SetResponsive(cfg.Responsive())
	return in.submit()
}

// SubmitData routes a dataset change into the debounce window.
func (in *Instance) SubmitData(data *chart.Dataset) tea.Cmd {
	in.data = data
	return in.submit()
}

func (in *Instance) submit() tea.Cmd {
	gen, arm := in.sched.Submit(in.cfg, in.data)
	if !arm {
		return nil
	}
	id := in.ID
	return tea.Tick(in.debounce, func(time.Time) tea.Msg {
		return ui.FlushUpdateMsg{WidgetID: id, Generation: uint64(gen)}
	})
}

// HandleFlush closes a debounce window: immediate properties patch the
// live specification in place, structural changes arm a full recompile
// at the next frame boundary.
func (in *Instance) HandleFlush(gen uint64) tea.Cmd {
	plan := in.sched.Flush(int(gen))
	if plan.Skip {
		return nil
	}

	if len(plan.Immediate) > 0 {
		in.applyPatch(plan.Immediate, plan.Config)
	}

	if !plan.Full {
		return nil
	}
	in.framePlan = &plan
	in.frameGen++
	frameGen := in.frameGen
	id := in.ID
	return tea.Tick(schedule.FrameInterval, func(time.Time) tea.Msg {
		return ui.FrameTickMsg{WidgetID: id, Generation: uint64(frameGen)}
	})
}

// HandleFrame runs the deferred full recompile armed by HandleFlush.
func (in *Instance) HandleFrame(gen uint64) {
	if in.framePlan == nil || int(gen) != in.frameGen {
		return
	}
	plan := in.framePlan
	in.framePlan = nil
	in.compileAndSet(plan.Config, plan.Data)
}

// compileAndSet rebuilds the specification from a snapshot and swaps
// it onto the surface atomically.
func (in *Instance) compileAndSet(cfg chart.Config, data *chart.Dataset) {
	h := in.mgr.Handle()
	if h == nil || h.Disposed() {
		return
	}
	kind := in.Kind
	if raw := cfg.GetString("chartType", ""); raw != "" {
		if k, ok := chart.ParseKind(raw); ok {
			kind = k
		}
	}
	s := compile.Compile(kind, cfg, data)
	h.SetOption(compile.ApplyBranding(s, in.Tier))
}

// applyPatch mutates only the regions the changed immediate properties
// touch, leaving series and axes untouched.
func (in *Instance) applyPatch(props []impact.Property, cfg chart.Config) {
	h := in.mgr.Handle()
	if h == nil || h.Disposed() {
		return
	}
	s := h.GetOption()
	if s == nil {
		return
	}

	for _, p := range props {
		switch p {
		case impact.PropTitle:
			s.Title.Text = cfg.GetString("title", "")
			s.Title.Show = s.Title.Text != ""
		case impact.PropSubtitle:
			s.Title.Subtext = cfg.GetString("subtitle", "")
		case impact.PropColorPalette, impact.PropTheme:
			s.Palette = spec.Palette(cfg.GetString("colorPalette", cfg.GetString("theme", "default")))
			s.Recolor(s.Palette)
		case impact.PropLegendVisible:
			s.Legend.Show = cfg.GetBool("legendVisible", true)
		case impact.PropLegendPosition:
			s.Legend.Position = cfg.GetString("legendPosition", "bottom")
		case impact.PropTooltipVisible:
			s.Tooltip.Show = cfg.GetBool("tooltipVisible", true)
		case impact.PropTooltipTrigger:
			s.Tooltip.Trigger = cfg.GetString("tooltipTrigger", s.Tooltip.Trigger)
		case impact.PropBackground:
			s.Background = cfg.GetString("backgroundColor", "")
		case impact.PropAnimation:
			s.Animation = cfg.GetBool("animation", true)
		default:
			logger.Warn("property classified immediate but has no patch", "property", string(p))
		}
	}
	h.SetOption(s)
}

// Render draws the current frame at the surface's own size; the canvas
// keeps that size current through Observe.
func (in *Instance) Render() string {
	h := in.mgr.Handle()
	if h == nil || h.Disposed() {
		return styles.FaintStyle.Render("measuring...")
	}
	return h.Render()
}

// Dispose tears down the surface and invalidates pending timers.
func (in *Instance) Dispose() {
	in.sched.Invalidate()
	in.framePlan = nil
	in.mgr.Dispose()
}
