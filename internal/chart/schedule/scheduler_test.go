package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicboard/mosaic/internal/chart"
	"github.com/mosaicboard/mosaic/internal/chart/impact"
)

func baseConfig() chart.Config {
	return chart.Config{"title": "CPU", "smooth": true}
}

func baseData() *chart.Dataset {
	return &chart.Dataset{
		Categories: []string{"a", "b"},
		Values:     []float64{1, 2},
	}
}

func TestSubmitArmsOnce(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["title"] = "Memory"
	gen1, arm1 := s.Submit(cfg, baseData())
	require.True(t, arm1, "first submit must arm the debounce timer")

	cfg2 := baseConfig()
	cfg2["title"] = "Disk"
	gen2, arm2 := s.Submit(cfg2, baseData())
	assert.False(t, arm2, "second submit inside the window must coalesce")
	assert.Equal(t, gen1, gen2)
}

func TestFlushCoalescesToLastSubmission(t *testing.T) {
	s := New(baseConfig(), baseData())

	first := baseConfig()
	first["title"] = "Intermediate"
	gen, _ := s.Submit(first, baseData())

	last := baseConfig()
	last["title"] = "Final"
	s.Submit(last, baseData())

	plan := s.Flush(gen)
	require.False(t, plan.Skip)
	assert.Equal(t, "Final", plan.Config["title"])
	assert.Contains(t, plan.Immediate, impact.PropTitle)
	assert.False(t, plan.Full)
}

func TestFlushIdenticalSnapshotSkips(t *testing.T) {
	s := New(baseConfig(), baseData())

	gen, arm := s.Submit(baseConfig(), baseData())
	require.True(t, arm)

	plan := s.Flush(gen)
	assert.True(t, plan.Skip, "identical config and data must be a no-op")
}

func TestFlushStaleGenerationSkips(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["title"] = "One"
	gen, _ := s.Submit(cfg, baseData())

	plan := s.Flush(gen + 1)
	assert.True(t, plan.Skip)

	// The real generation still flushes.
	plan = s.Flush(gen)
	assert.False(t, plan.Skip)
}

func TestStructuralChangeRequestsFullRecompile(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["chartType"] = "line"
	gen, _ := s.Submit(cfg, baseData())

	plan := s.Flush(gen)
	require.False(t, plan.Skip)
	assert.True(t, plan.Full)
	assert.False(t, plan.DataChanged)
}

func TestDataChangeRequestsFullRecompile(t *testing.T) {
	s := New(baseConfig(), baseData())

	data := baseData()
	data.Values = []float64{9, 9}
	gen, _ := s.Submit(baseConfig(), data)

	plan := s.Flush(gen)
	require.False(t, plan.Skip)
	assert.True(t, plan.Full)
	assert.True(t, plan.DataChanged)
	assert.Empty(t, plan.Immediate)
}

func TestMixedChangePatchesAndRecompiles(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["title"] = "New"
	cfg["stacked"] = true
	gen, _ := s.Submit(cfg, baseData())

	plan := s.Flush(gen)
	require.False(t, plan.Skip)
	assert.True(t, plan.Full)
	assert.Contains(t, plan.Immediate, impact.PropTitle)
}

func TestCommittedSnapshotIsolatedFromCallerMutation(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["title"] = "Applied"
	data := baseData()
	gen, _ := s.Submit(cfg, data)
	plan := s.Flush(gen)
	require.False(t, plan.Skip)

	// Mutating the caller's objects after the flush must not alter
	// what the next diff compares against.
	cfg["title"] = "Mutated"
	data.Values[0] = 999

	next := chart.Config{"title": "Applied", "smooth": true}
	gen, arm := s.Submit(next, baseData())
	require.True(t, arm)
	plan = s.Flush(gen)
	assert.True(t, plan.Skip, "resubmitting the applied snapshot must diff empty")
}

func TestInvalidateStopsFutureFlushes(t *testing.T) {
	s := New(baseConfig(), baseData())

	cfg := baseConfig()
	cfg["title"] = "Pending"
	gen, _ := s.Submit(cfg, baseData())

	s.Invalidate()
	plan := s.Flush(gen)
	assert.True(t, plan.Skip)

	_, arm := s.Submit(cfg, baseData())
	assert.False(t, arm, "disposed scheduler must not arm timers")
}
