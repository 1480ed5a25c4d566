package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// orderedSource never swaps during a shuffle, so every bag comes out in
// table order: I J L O S T Z.
type orderedSource struct{}

func (orderedSource) Intn(n int) int { return n - 1 }

// newController builds a controller on cfg whose queue starts with pieces
// and then continues in table order.
func newController(t *testing.T, cfg core.Config, pieces ...core.PieceType) *core.Controller {
	t.Helper()
	c, err := core.NewController(cfg, core.NewSequence(orderedSource{}, pieces...))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c
}

// fillRow fills row y except the listed columns.
func fillRow(b *core.Board, y int, except ...int) {
	minX, maxX, _, _ := b.Bounds()
	for x := minX; x < maxX; x++ {
		skip := false
		for _, e := range except {
			if e == x {
				skip = true
			}
		}
		if !skip {
			b.Set(core.C(x, y), core.PieceO)
		}
	}
}

// dropToFloor moves the active piece down until it rests on something.
func dropToFloor(c *core.Controller) {
	for c.TryMove(core.Down) {
	}
}
