package core_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Config)
		code   string
	}{
		{"zero width", func(c *core.Config) { c.Width = 0 }, core.CodeBadDimensions},
		{"negative height", func(c *core.Config) { c.Height = -3 }, core.CodeBadDimensions},
		{"zero step", func(c *core.Config) { c.StepInterval = 0 }, core.CodeBadTiming},
		{"zero lock delay", func(c *core.Config) { c.LockDelay = 0 }, core.CodeBadTiming},
		{"negative move delay", func(c *core.Config) { c.MoveDelay = -time.Millisecond }, core.CodeBadTiming},
		{"level zero", func(c *core.Config) { c.Level = 0 }, core.CodeBadLevel},
		{"spawn above the board", func(c *core.Config) { c.Spawn = core.C(0, 10) }, core.CodeBadSpawn},
		{"spawn past the wall", func(c *core.Config) { c.Spawn = core.C(4, 0) }, core.CodeBadSpawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			tt.mutate(&cfg)
			_, err := core.NewController(cfg, core.NewBag(orderedSource{}))
			if !core.IsConfigError(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			var cerr core.ConfigError
			if !errors.As(err, &cerr) || cerr.Message == "" {
				t.Errorf("expected a ConfigError with a message, got %#v", err)
			}
		})
	}

	if err := core.DefaultConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestStartSpawnsFromQueue(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	if c.Phase() != core.PhaseIdle {
		t.Fatalf("expected idle before start, got %s", c.Phase())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	p, ok := c.Piece()
	if !ok || p.Type != core.PieceI || p.Anchor != core.C(0, 8) {
		t.Errorf("expected I at (0,8), got %s at %v (ok=%v)", p.Type, p.Anchor, ok)
	}
	if c.Phase() != core.PhaseFalling {
		t.Errorf("expected falling, got %s", c.Phase())
	}
	if diff := cmp.Diff([]core.PieceType{core.PieceJ, core.PieceL, core.PieceO}, c.Next(3)); diff != "" {
		t.Errorf("next queue (-want +got):\n%s", diff)
	}
}

func TestSpawnBlockedEndsGame(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	c.Board().Set(core.C(0, 8), core.PieceZ)
	before := c.BoardSnapshot()

	overs := 0
	c.OnGameOver(func() { overs++ })

	if err := c.Start(); !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if c.Phase() != core.PhaseGameOver {
		t.Errorf("expected game over phase, got %s", c.Phase())
	}
	if overs != 1 {
		t.Errorf("expected one game-over event, got %d", overs)
	}
	if !c.BoardSnapshot().Equal(before) {
		t.Error("blocked spawn changed the board")
	}
	if _, ok := c.Piece(); ok {
		t.Error("no piece should be active after game over")
	}

	if c.RequestMove(1) || c.RequestRotate(core.CW) || c.RequestSoftDrop() {
		t.Error("requests should be rejected after game over")
	}
	if _, err := c.RequestHardDrop(); !errors.Is(err, core.ErrNotActive) {
		t.Errorf("expected ErrNotActive from hard drop, got %v", err)
	}
	if err := c.Spawn(core.PieceO); !errors.Is(err, core.ErrGameOver) {
		t.Errorf("spawn after game over: expected ErrGameOver, got %v", err)
	}
}

func TestRequestsBeforeStart(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	if c.RequestMove(-1) {
		t.Error("move accepted while idle")
	}
	if _, err := c.RequestHardDrop(); !errors.Is(err, core.ErrNotActive) {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
}

func TestGravity(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	c.Tick(999 * time.Millisecond)
	if p, _ := c.Piece(); p.Anchor.Y != 8 {
		t.Fatalf("moved before the step interval: y=%d", p.Anchor.Y)
	}
	c.Tick(time.Millisecond)
	if p, _ := c.Piece(); p.Anchor.Y != 7 {
		t.Errorf("expected one step down, y=%d", p.Anchor.Y)
	}
}

func TestMoveRateLimit(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	if !c.RequestMove(-1) {
		t.Fatal("first move after spawn should be accepted")
	}
	if c.RequestMove(-1) {
		t.Error("repeat inside the move delay should be rejected")
	}
	c.Tick(100 * time.Millisecond)
	if !c.RequestMove(-1) {
		t.Error("move after the delay should be accepted")
	}
	if p, _ := c.Piece(); p.Anchor.X != -2 {
		t.Errorf("expected anchor x=-2, got %d", p.Anchor.X)
	}
}

func TestMoveStopsAtWall(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	moves := 0
	for c.RequestMove(-1) {
		moves++
		c.Tick(100 * time.Millisecond)
	}
	if moves != 4 {
		t.Errorf("expected 4 moves to the wall, got %d", moves)
	}
	if p, _ := c.Piece(); p.Anchor.X != -4 {
		t.Errorf("expected anchor x=-4, got %d", p.Anchor.X)
	}
}

func TestHardDropLocksImmediately(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	var events []core.LockEvent
	c.OnLock(func(ev core.LockEvent) { events = append(events, ev) })

	ev, err := c.RequestHardDrop()
	if err != nil {
		t.Fatalf("hard drop failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one lock event, got %d", len(events))
	}
	if ev.Result.LinesCleared != 0 || ev.Delta != 0 {
		t.Errorf("unexpected result %+v delta %d", ev.Result, ev.Delta)
	}

	b := c.BoardSnapshot()
	for x := -1; x <= 2; x++ {
		if !b.IsOccupied(core.C(x, -10)) {
			t.Errorf("expected (%d,-10) filled", x)
		}
	}
	if b.FilledCount() != 4 {
		t.Errorf("expected 4 filled cells, got %d", b.FilledCount())
	}
	if p, _ := c.Piece(); p.Type != core.PieceJ {
		t.Errorf("expected J to spawn next, got %s", p.Type)
	}
	if c.Stats().Pieces != 1 {
		t.Errorf("expected 1 piece in stats, got %d", c.Stats().Pieces)
	}
}

func TestLockDelay(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()
	dropToFloor(c)

	if c.Phase() != core.PhaseLocking {
		t.Fatalf("expected locking phase on the floor, got %s", c.Phase())
	}
	c.Tick(400 * time.Millisecond)
	if p, _ := c.Piece(); p.Type != core.PieceI {
		t.Fatal("locked before the lock delay ran out")
	}
	c.Tick(100 * time.Millisecond)
	if p, _ := c.Piece(); p.Type != core.PieceJ {
		t.Errorf("expected I to lock and J to spawn, got %s", p.Type)
	}
	if c.BoardSnapshot().FilledCount() != 4 {
		t.Error("expected the I piece on the board")
	}
}

func TestMoveResetsLockTimer(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()
	dropToFloor(c)

	c.Tick(400 * time.Millisecond)
	if !c.RequestMove(1) {
		t.Fatal("move on the floor rejected")
	}
	c.Tick(400 * time.Millisecond)
	if p, _ := c.Piece(); p.Type != core.PieceI {
		t.Fatal("lock timer was not reset by the move")
	}
	c.Tick(100 * time.Millisecond)
	if p, _ := c.Piece(); p.Type != core.PieceJ {
		t.Errorf("expected lock after a full delay, got %s", p.Type)
	}
}

func TestLockResetsAreCapped(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.MaxLockResets = 2
	c := newController(t, cfg)
	_ = c.Start()
	dropToFloor(c) // the last step down used one reset

	c.Tick(400 * time.Millisecond)
	if !c.RequestMove(1) {
		t.Fatal("first move rejected")
	}
	c.Tick(400 * time.Millisecond)
	if !c.RequestMove(-1) {
		t.Fatal("second move rejected")
	}
	c.Tick(100 * time.Millisecond)
	if p, _ := c.Piece(); p.Type != core.PieceJ {
		t.Errorf("expected the piece to lock once resets ran out, got %s", p.Type)
	}
}

func TestSoftDropRestartsGravity(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	c.Tick(900 * time.Millisecond)
	if !c.RequestSoftDrop() {
		t.Fatal("soft drop rejected")
	}
	c.Tick(900 * time.Millisecond)
	if p, _ := c.Piece(); p.Anchor.Y != 7 {
		t.Errorf("gravity fired too early after a soft drop: y=%d", p.Anchor.Y)
	}
}

func TestRotateUsesFirstFittingKick(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	// Upright at spawn the I pokes above the ceiling, so the first three
	// trials fail and (-2,-1) is taken.
	if !c.RequestRotate(core.CW) {
		t.Fatal("rotation rejected")
	}
	p, _ := c.Piece()
	if p.Anchor != core.C(-2, 7) || p.Rotation != 1 {
		t.Errorf("expected anchor (-2,7) rotation 1, got %v rotation %d", p.Anchor, p.Rotation)
	}
}

func TestRotateRejectedLeavesState(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	c.Board().Set(core.C(-1, 6), core.PieceZ)
	_ = c.Start()
	before := c.Snapshot()

	if c.RequestRotate(core.CW) {
		t.Fatal("rotation should fail when every kick is blocked")
	}
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("rejected rotation changed state (-before +after):\n%s", diff)
	}
}

func TestRotateKicksOffWall(t *testing.T) {
	c := newController(t, core.DefaultConfig(), core.PieceT)
	_ = c.Start()

	if !c.RequestRotate(core.CW) || !c.TrySetColumn(-5) {
		t.Fatal("setup failed")
	}
	if !c.RequestRotate(core.CCW) {
		t.Fatal("rotation against the wall rejected")
	}
	p, _ := c.Piece()
	if p.Anchor != core.C(-4, 8) || p.Rotation != 0 {
		t.Errorf("expected kick to (-4,8) rotation 0, got %v rotation %d", p.Anchor, p.Rotation)
	}
}

// tSlot lays out a two-row slot for a T: the floor row is missing only
// column 0, the next row is missing the given columns, and (-1,-8)
// overhangs the slot.
func tSlot(b *core.Board, open ...int) {
	fillRow(b, -10, 0)
	fillRow(b, -9, open...)
	b.Set(core.C(-1, -8), core.PieceO)
}

func TestTSpinByRotation(t *testing.T) {
	c := newController(t, core.DefaultConfig(), core.PieceT)
	tSlot(c.Board(), -1, 0, 1)
	_ = c.Start()

	if !c.RequestRotate(core.CW) {
		t.Fatal("first rotation rejected")
	}
	dropToFloor(c)
	if !c.RequestRotate(core.CW) {
		t.Fatal("rotation into the slot rejected")
	}

	ev, err := c.RequestHardDrop()
	if err != nil {
		t.Fatalf("hard drop failed: %v", err)
	}
	if !ev.Result.IsTSpin || ev.Result.LinesCleared != 2 {
		t.Errorf("expected a T-spin double, got %+v", ev.Result)
	}
	if ev.Delta != 12 {
		t.Errorf("expected 12 points, got %d", ev.Delta)
	}
	if c.Stats().TSpinDoubles != 1 {
		t.Errorf("stats did not record the T-spin double: %+v", c.Stats())
	}
}

func TestTranslationClearsSpin(t *testing.T) {
	c := newController(t, core.DefaultConfig(), core.PieceT)
	tSlot(c.Board(), 0, 1)
	_ = c.Start()

	if !c.RequestRotate(core.CW) {
		t.Fatal("rotation rejected")
	}
	dropToFloor(c)

	ev, err := c.RequestHardDrop()
	if err != nil {
		t.Fatalf("hard drop failed: %v", err)
	}
	if ev.Result.IsTSpin {
		t.Error("a piece that fell into place is not a T-spin")
	}
	if ev.Result.LinesCleared != 2 || ev.Delta != 3 {
		t.Errorf("expected a plain double for 3 points, got %+v delta %d", ev.Result, ev.Delta)
	}
}

func TestPerfectClear(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	fillRow(c.Board(), -10, -1, 0, 1, 2)
	_ = c.Start()

	ev, err := c.RequestHardDrop()
	if err != nil {
		t.Fatalf("hard drop failed: %v", err)
	}
	if !ev.Result.IsPerfectClear || ev.Result.LinesCleared != 1 {
		t.Errorf("expected a single perfect clear, got %+v", ev.Result)
	}
	if ev.Delta != 8 {
		t.Errorf("expected 8 points, got %d", ev.Delta)
	}
	if !c.BoardSnapshot().IsEmpty() {
		t.Error("board should be empty")
	}
	if diff := cmp.Diff([]int{-10}, ev.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestTetrisReportsEveryClearedRow(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	// Upright the I occupies a single column; leave exactly that column
	// open in the bottom four rows.
	if !c.RequestRotate(core.CW) {
		t.Fatal("rotation rejected")
	}
	p, _ := c.Piece()
	cells := p.Absolute()
	for _, cell := range cells[1:] {
		if cell.X != cells[0].X {
			t.Fatalf("expected an upright I, got cells %v", cells)
		}
	}
	for y := -10; y <= -7; y++ {
		fillRow(c.Board(), y, cells[0].X)
	}

	ev, err := c.RequestHardDrop()
	if err != nil {
		t.Fatalf("hard drop failed: %v", err)
	}
	if ev.Result.LinesCleared != 4 {
		t.Fatalf("expected a tetris, got %+v", ev.Result)
	}
	if diff := cmp.Diff([]int{-10, -9, -8, -7}, ev.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if c.Stats().Tetrises != 1 {
		t.Errorf("expected 1 tetris in stats, got %d", c.Stats().Tetrises)
	}
}

func TestRotateThereAndBack(t *testing.T) {
	for _, pt := range core.AllPieces() {
		t.Run(pt.String(), func(t *testing.T) {
			c := newController(t, core.DefaultConfig(), pt)
			_ = c.Start()
			// Clear of the ceiling every rotation fits without a kick.
			for i := 0; i < 6; i++ {
				c.TryMove(core.Down)
			}
			before, _ := c.Piece()

			if !c.RequestRotate(core.CW) {
				t.Fatal("clockwise rotation rejected")
			}
			turned, _ := c.Piece()
			if turned.Anchor != before.Anchor || turned.Rotation != 1 {
				t.Errorf("free rotation kicked: anchor %v rotation %d", turned.Anchor, turned.Rotation)
			}
			if !c.RequestRotate(core.CCW) {
				t.Fatal("counter-clockwise rotation rejected")
			}
			after, _ := c.Piece()
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("CW then CCW changed the piece (-before +after):\n%s", diff)
			}
		})
	}
}

func TestNextWithNonPositiveCount(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()
	for _, n := range []int{0, -1, -5} {
		if got := c.Next(n); got != nil {
			t.Errorf("Next(%d) = %v, want nil", n, got)
		}
	}
	if got := c.Next(3); len(got) != 3 {
		t.Errorf("Next(3) returned %d pieces", len(got))
	}
}

func TestGhost(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()

	g, ok := c.Ghost()
	if !ok {
		t.Fatal("no ghost for an active piece")
	}
	if g.Lowest() != -10 {
		t.Errorf("ghost should rest on the floor, lowest row %d", g.Lowest())
	}
	if p, _ := c.Piece(); p.Anchor.Y != 8 {
		t.Error("computing the ghost moved the piece")
	}
}

func TestReset(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	_ = c.Start()
	_, _ = c.RequestHardDrop()

	c.Reset()
	if c.Phase() != core.PhaseIdle {
		t.Errorf("expected idle after reset, got %s", c.Phase())
	}
	if !c.BoardSnapshot().IsEmpty() {
		t.Error("board not cleared by reset")
	}
	if c.Session() != core.NewSession() || c.Stats() != (core.Stats{}) {
		t.Errorf("session not cleared: %+v %+v", c.Session(), c.Stats())
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() core.Snapshot {
		c, err := core.NewController(core.DefaultConfig(), core.NewBag(rand.New(rand.NewSource(2024))))
		if err != nil {
			t.Fatalf("NewController failed: %v", err)
		}
		_ = c.Start()
		for i := 0; i < 40 && c.Active(); i++ {
			switch i % 5 {
			case 0:
				c.RequestMove(-1)
			case 1:
				c.RequestRotate(core.CW)
			case 2:
				c.RequestMove(1)
			case 3:
				c.RequestSoftDrop()
			default:
				_, _ = c.RequestHardDrop()
			}
			c.Tick(150 * time.Millisecond)
		}
		return c.Snapshot()
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed and inputs diverged (-first +second):\n%s", diff)
	}
}
