package bot

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// Planner picks placements with an evaluator.
type Planner struct {
	eval Evaluator
}

// NewPlanner returns a planner. A nil evaluator means DefaultEvaluator.
func NewPlanner(eval Evaluator) *Planner {
	if eval == nil {
		eval = DefaultEvaluator()
	}
	return &Planner{eval: eval}
}

// Best returns the highest scoring placement of the active piece.
// Ties go to the first placement in ObserveAll order.
func (p *Planner) Best(c *core.Controller) (core.Placement, bool) {
	var best core.Placement
	bestScore := 0.0
	found := false
	for _, pl := range c.ObserveAll() {
		score := p.eval.Evaluate(pl.Metrics)
		if !found || score > bestScore {
			best, bestScore, found = pl, score, true
		}
	}
	return best, found
}

// Apply performs a placement on the live controller: the rotations, the
// column shift and a hard drop.
func Apply(c *core.Controller, pl core.Placement) (core.LockEvent, error) {
	for i := 0; i < pl.Rotations; i++ {
		if !c.Rotate(core.CW) {
			return core.LockEvent{}, fmt.Errorf("bot: rotation %d of %d rejected", i+1, pl.Rotations)
		}
	}
	if !c.TrySetColumn(pl.Column) {
		return core.LockEvent{}, fmt.Errorf("bot: column %d rejected", pl.Column)
	}
	return c.RequestHardDrop()
}

// Driver plays one input per step toward the planned placement, so a
// watcher can follow the piece. It is used by the demo mode.
type Driver struct {
	planner *Planner
	every   int
	wait    int

	planned bool
	piece   int // Stats().Pieces when the plan was made
	target  core.Placement
	turns   int
}

// NewDriver acts on every n-th call to Step.
func NewDriver(p *Planner, every int) *Driver {
	if every < 1 {
		every = 1
	}
	return &Driver{planner: p, every: every}
}

// Reset forgets the current plan. Call it after resetting the controller.
func (d *Driver) Reset() {
	d.planned = false
	d.wait = 0
}

// Step performs at most one action and reports whether it did.
func (d *Driver) Step(c *core.Controller) bool {
	if !c.Active() {
		return false
	}
	d.wait++
	if d.wait < d.every {
		return false
	}
	d.wait = 0

	if n := c.Stats().Pieces; !d.planned || n != d.piece {
		pl, ok := d.planner.Best(c)
		if !ok {
			_, _ = c.RequestHardDrop()
			return true
		}
		d.planned, d.piece, d.target, d.turns = true, n, pl, pl.Rotations
	}

	if d.turns > 0 {
		d.turns--
		if c.Rotate(core.CW) {
			return true
		}
	}

	p, _ := c.Piece()
	switch dx := d.target.Column - p.Anchor.X; {
	case dx < 0 && c.TryMove(core.Left):
		return true
	case dx > 0 && c.TryMove(core.Right):
		return true
	}
	_, _ = c.RequestHardDrop()
	return true
}
