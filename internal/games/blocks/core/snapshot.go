package core

// Snapshot is a comparable capture of the controller state, used to check
// that two runs fed the same seed and inputs stay in lockstep.
type Snapshot struct {
	Phase    Phase
	Piece    ActivePiece
	HasPiece bool
	Session  Session
	Stats    Stats
	Board    string
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:    c.phase,
		Piece:    c.piece,
		HasPiece: c.hasPiece,
		Session:  c.session,
		Stats:    c.stats,
		Board:    c.board.String(),
	}
}
