package core

import (
	"fmt"
	"time"
)

// Config holds the controller parameters.
type Config struct {
	Width  int
	Height int
	Spawn  Coord // anchor of a freshly spawned piece
	Level  int   // scoring multiplier

	StepInterval  time.Duration // gravity period
	MoveDelay     time.Duration // minimum time between lateral or soft-drop repeats
	LockDelay     time.Duration // time a grounded piece may rest before it locks
	MaxLockResets int           // lock timer resets allowed per piece before resets stop
}

// DefaultConfig returns the standard 10x20 setup.
func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        20,
		Spawn:         C(0, 20/2-2),
		Level:         1,
		StepInterval:  time.Second,
		MoveDelay:     100 * time.Millisecond,
		LockDelay:     500 * time.Millisecond,
		MaxLockResets: 15,
	}
}

// Validate checks the configuration before any session starts.
func (cfg Config) Validate() error {
	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	if cfg.StepInterval <= 0 || cfg.LockDelay <= 0 || cfg.MoveDelay < 0 {
		return ConfigError{
			Code: CodeBadTiming,
			Message: fmt.Sprintf("step %v and lock delay %v must be positive, move delay %v non-negative",
				cfg.StepInterval, cfg.LockDelay, cfg.MoveDelay),
		}
	}
	if cfg.MaxLockResets < 0 {
		return ConfigError{Code: CodeBadTiming, Message: "max lock resets must not be negative"}
	}
	if cfg.Level < 1 {
		return ConfigError{Code: CodeBadLevel, Message: fmt.Sprintf("level must be at least 1, got %d", cfg.Level)}
	}
	for _, t := range AllPieces() {
		if !NewActivePiece(t, cfg.Spawn).fits(board) {
			return ConfigError{
				Code:    CodeBadSpawn,
				Message: fmt.Sprintf("piece %s does not fit at spawn %v on a %dx%d board", t, cfg.Spawn, cfg.Width, cfg.Height),
			}
		}
	}
	return validateTables()
}

// LockEvent is delivered to lock subscribers after every lock.
type LockEvent struct {
	Result  LockResult
	Piece   ActivePiece // the piece as it was committed
	Rows    []int       // rows removed, in removal order
	Delta   int         // points earned
	Session Session     // session after scoring
}

// Controller is the central state machine: it spawns pieces, applies
// gravity and lock delay, validates movement and rotation against the
// board, locks pieces and feeds lock results to scoring.
//
// A Controller is not safe for concurrent use; the host drives it from a
// single goroutine.
type Controller struct {
	cfg   Config
	board *Board
	rnd   Randomizer

	piece    ActivePiece
	hasPiece bool
	phase    Phase

	session Session
	stats   Stats

	stepTimer  time.Duration
	sinceMove  time.Duration
	lockTimer  time.Duration
	lockResets int
	lowestRow  int
	spun       bool // last successful action on the piece was a rotation

	lockSubs []func(LockEvent)
	overSubs []func()
}

// NewController validates cfg and returns an idle controller.
func NewController(cfg Config, rnd Randomizer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, _ := NewBoard(cfg.Width, cfg.Height)
	return &Controller{
		cfg:     cfg,
		board:   board,
		rnd:     rnd,
		phase:   PhaseIdle,
		session: NewSession(),
	}, nil
}

// Reset clears the board and the session and returns to idle.
// The randomizer carries on from where it was.
func (c *Controller) Reset() {
	c.board, _ = NewBoard(c.cfg.Width, c.cfg.Height)
	c.piece = ActivePiece{}
	c.hasPiece = false
	c.phase = PhaseIdle
	c.session = NewSession()
	c.stats = Stats{}
	c.stepTimer, c.sinceMove, c.lockTimer = 0, 0, 0
	c.lockResets = 0
	c.spun = false
}

// Board gives direct access to the live board. Hosts use it to lay out
// preset boards before Start; during play use BoardSnapshot.
func (c *Controller) Board() *Board { return c.board }

// Config returns the controller configuration.
func (c *Controller) Config() Config { return c.cfg }

// OnLock registers a subscriber for lock events.
func (c *Controller) OnLock(fn func(LockEvent)) {
	c.lockSubs = append(c.lockSubs, fn)
}

// OnGameOver registers a subscriber for the game-over transition.
func (c *Controller) OnGameOver(fn func()) {
	c.overSubs = append(c.overSubs, fn)
}

// Start spawns the first piece from the randomizer.
func (c *Controller) Start() error {
	return c.Spawn(c.rnd.Next())
}

// Spawn places a new piece of type t at the spawn anchor. If it does not fit
// the session ends: the board is left untouched, the phase becomes
// PhaseGameOver and ErrGameOver is returned.
func (c *Controller) Spawn(t PieceType) error {
	if c.phase == PhaseGameOver {
		return ErrGameOver
	}
	p := NewActivePiece(t, c.cfg.Spawn)
	if !p.fits(c.board) {
		c.piece = ActivePiece{}
		c.hasPiece = false
		c.phase = PhaseGameOver
		for _, fn := range c.overSubs {
			fn()
		}
		return ErrGameOver
	}

	c.piece = p
	c.hasPiece = true
	c.stepTimer = 0
	c.lockTimer = 0
	c.sinceMove = c.cfg.MoveDelay
	c.lockResets = 0
	c.lowestRow = p.Lowest()
	c.spun = false
	c.updatePhase()
	return nil
}

// Active reports whether a piece is in play.
func (c *Controller) Active() bool {
	return c.phase == PhaseFalling || c.phase == PhaseLocking
}

// Phase returns the controller state.
func (c *Controller) Phase() Phase { return c.phase }

// Piece returns the active piece, if any.
func (c *Controller) Piece() (ActivePiece, bool) { return c.piece, c.hasPiece }

// Session returns the scoring session.
func (c *Controller) Session() Session { return c.session }

// Stats returns the session tallies.
func (c *Controller) Stats() Stats { return c.stats }

// Next returns the upcoming n pieces without consuming them.
func (c *Controller) Next(n int) []PieceType { return c.rnd.Peek(n) }

// BoardSnapshot returns a copy of the board for rendering.
func (c *Controller) BoardSnapshot() *Board { return c.board.Clone() }

// Ghost returns where the active piece would land if dropped now.
func (c *Controller) Ghost() (ActivePiece, bool) {
	if !c.Active() {
		return ActivePiece{}, false
	}
	return c.piece.dropped(c.board), true
}

// Tick advances the timers by elapsed, applies a gravity step when one is
// due and locks the piece once the lock delay has run out while it rests
// on something.
func (c *Controller) Tick(elapsed time.Duration) {
	if !c.Active() {
		return
	}
	c.stepTimer += elapsed
	c.sinceMove += elapsed
	c.lockTimer += elapsed

	if c.stepTimer >= c.cfg.StepInterval {
		c.stepTimer = 0
		c.tryMove(Down)
	}

	// A failed spawn after the lock surfaces through Phase and OnGameOver.
	if c.lockTimer >= c.cfg.LockDelay && c.grounded() {
		_, _ = c.lock()
	}
}

// RequestMove shifts the piece one column; dx picks the side by its sign.
// Repeats faster than MoveDelay are rejected.
func (c *Controller) RequestMove(dx int) bool {
	if !c.Active() || dx == 0 || c.sinceMove < c.cfg.MoveDelay {
		return false
	}
	delta := Right
	if dx < 0 {
		delta = Left
	}
	if !c.tryMove(delta) {
		return false
	}
	c.sinceMove = 0
	return true
}

// RequestSoftDrop moves the piece down one row and restarts the gravity timer.
// Repeats faster than MoveDelay are rejected.
func (c *Controller) RequestSoftDrop() bool {
	if !c.Active() || c.sinceMove < c.cfg.MoveDelay {
		return false
	}
	if !c.tryMove(Down) {
		return false
	}
	c.sinceMove = 0
	c.stepTimer = 0
	return true
}

// RequestRotate turns the piece, trying the wall kicks in table order.
// The first position that fits wins. When none fits nothing changes.
func (c *Controller) RequestRotate(dir Direction) bool {
	if !c.Active() {
		return false
	}
	return c.Rotate(dir)
}

// RequestHardDrop drops the piece as far as it goes and locks it at once,
// without waiting for the lock delay.
func (c *Controller) RequestHardDrop() (LockEvent, error) {
	if !c.Active() {
		return LockEvent{}, ErrNotActive
	}
	for c.tryMove(Down) {
	}
	return c.lock()
}

// TryMove moves the piece by delta if the destination fits.
func (c *Controller) TryMove(delta Coord) bool {
	if !c.Active() {
		return false
	}
	return c.tryMove(delta)
}

// TrySetColumn moves the piece's anchor to an absolute column if it fits there.
func (c *Controller) TrySetColumn(column int) bool {
	if !c.Active() {
		return false
	}
	return c.tryMove(C(column-c.piece.Anchor.X, 0))
}

// Rotate turns the active piece with wall kicks. It bypasses no timers;
// RequestRotate is the host-facing entry point.
func (c *Controller) Rotate(dir Direction) bool {
	if !c.Active() {
		return false
	}
	next, ok := rotateWithKicks(c.board, c.piece, dir)
	if !ok {
		return false
	}
	c.piece = next
	c.spun = true
	c.moved()
	return true
}

// tryMove is the movement primitive: on success the anchor moves, the
// rotation flag clears and the lock timer resets.
func (c *Controller) tryMove(delta Coord) bool {
	next := c.piece.Translated(delta)
	if !next.fits(c.board) {
		return false
	}
	c.piece = next
	c.spun = false
	c.moved()
	return true
}

// moved applies the lock-delay bookkeeping after a successful move.
// Reaching a new lowest row restores the reset allowance.
func (c *Controller) moved() {
	if low := c.piece.Lowest(); low < c.lowestRow {
		c.lowestRow = low
		c.lockResets = 0
	}
	if c.lockResets < c.cfg.MaxLockResets {
		c.lockTimer = 0
		c.lockResets++
	}
	c.updatePhase()
}

func (c *Controller) grounded() bool {
	return !c.piece.Translated(Down).fits(c.board)
}

func (c *Controller) updatePhase() {
	if !c.hasPiece {
		return
	}
	if c.grounded() {
		c.phase = PhaseLocking
	} else {
		c.phase = PhaseFalling
	}
}

// isTSpin applies the corner rule at the piece's anchor: both lower
// diagonals and at least one upper diagonal must be occupied.
func (c *Controller) isTSpin(p ActivePiece) bool {
	if p.Type != PieceT || !c.spun {
		return false
	}
	occ := c.board.IsOccupied
	a := p.Anchor
	lower := occ(a.Add(C(-1, -1))) && occ(a.Add(C(1, -1)))
	upper := occ(a.Add(C(-1, 1))) || occ(a.Add(C(1, 1)))
	return lower && upper
}

// lock commits the piece, clears lines, scores the result, notifies
// subscribers and spawns the next piece.
func (c *Controller) lock() (LockEvent, error) {
	p := c.piece
	c.board.Commit(p.Cells[:], p.Anchor, p.Type)
	tspin := c.isTSpin(p)
	lines, rows := c.board.ClearFullLines()

	res := LockResult{
		LinesCleared:   lines,
		IsPerfectClear: c.board.IsEmpty(),
		IsTSpin:        tspin,
	}
	delta, session := Score(res, c.cfg.Level, c.session)
	c.session = session
	c.stats.Record(res, session)

	ev := LockEvent{
		Result:  res,
		Piece:   p,
		Rows:    rows,
		Delta:   delta,
		Session: session,
	}
	c.hasPiece = false
	for _, fn := range c.lockSubs {
		fn(ev)
	}

	return ev, c.Spawn(c.rnd.Next())
}

// rotateWithKicks returns p rotated in dir at the first kick offset that fits.
func rotateWithKicks(b *Board, p ActivePiece, dir Direction) (ActivePiece, bool) {
	turned := p.Rotated(dir)
	for _, kick := range WallKickOffsets(p.Type, p.Rotation, dir) {
		candidate := turned.Translated(kick)
		if candidate.fits(b) {
			return candidate, true
		}
	}
	return p, false
}
