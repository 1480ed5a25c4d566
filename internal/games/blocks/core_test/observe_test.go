package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestObservationMetricsFlatI(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()
	before := c.Snapshot()

	m, ok := c.ObservationMetrics(0, 0)
	if !ok {
		t.Fatal("placement at the spawn column should be reachable")
	}
	want := core.Metrics{ClearableLines: 0, Holes: 0, Bumpiness: 2, AggregateHeight: 4}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("metrics (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("observing changed the controller (-before +after):\n%s", diff)
	}
}

func TestObservationMetricsCountsClearableLines(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	fillRow(c.Board(), -10, 1, 2, 3, 4)
	_ = c.Start()

	m, ok := c.ObservationMetrics(2, 0)
	if !ok {
		t.Fatal("placement should be reachable")
	}
	if m.ClearableLines != 1 {
		t.Errorf("expected 1 clearable line, got %d", m.ClearableLines)
	}
	if c.BoardSnapshot().ClearableLines() != 0 {
		t.Error("probe leaked onto the live board")
	}
}

func TestObservationMetricsUnreachable(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	if _, ok := c.ObservationMetrics(4, 0); ok {
		t.Error("a flat I cannot sit with its anchor in the last column")
	}
	if _, ok := c.ObservationMetrics(0, 0); !ok {
		t.Error("a failed probe should not affect later probes")
	}
}

func TestObserveAll(t *testing.T) {
	c := newController(t, core.DefaultConfig(), core.PieceO)
	_ = c.Start()

	placements := c.ObserveAll()
	// O spans two columns and looks the same in every orientation.
	if len(placements) != 4*9 {
		t.Fatalf("expected 36 placements, got %d", len(placements))
	}
	for _, pl := range placements {
		if pl.Landed.Lowest() != -10 {
			t.Errorf("column %d rotation %d landed at row %d", pl.Column, pl.Rotations, pl.Landed.Lowest())
		}
	}
}

func TestObservationVector(t *testing.T) {
	c := newController(t, core.DefaultConfig(), core.PieceT)
	if v := c.ObservationVector(); len(v) != 1+10*16 {
		t.Fatalf("expected length 161 before start, got %d", len(v))
	}
	_ = c.Start()

	v := c.ObservationVector()
	if got, want := v[0], float64(core.PieceT)/core.PieceCount; got != want {
		t.Errorf("piece feature: expected %v, got %v", want, got)
	}
	for i, f := range v {
		if f < 0 || f > 1 {
			t.Errorf("feature %d out of range: %v", i, f)
		}
	}
}
