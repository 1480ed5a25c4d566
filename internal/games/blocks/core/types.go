// Package core implements the rules engine of the falling-block puzzle game:
// geometry tables, the board, the active piece, the bag randomizer, the
// piece controller and scoring.
//
// This package is UI-agnostic and deterministic. Time is injected through
// Controller.Tick and randomness through a Source.
package core

import "fmt"

// PieceType identifies one of the seven tetromino shapes.
// The order matters: it indexes the geometry tables and the observation vector.
type PieceType uint8

const (
	PieceI PieceType = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceCount is the number of distinct piece types.
const PieceCount = 7

// String returns the single-letter name of the piece.
func (p PieceType) String() string {
	switch p {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the seven known types.
func (p PieceType) Valid() bool {
	return p < PieceCount
}

// ParsePieceType converts a single-letter name back to a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	for _, p := range AllPieces() {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown piece type %q", s)
}

// AllPieces returns every piece type in table order.
func AllPieces() []PieceType {
	return []PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}
}

// Direction is a rotation direction.
type Direction int

const (
	CCW Direction = -1 // counter-clockwise
	CW  Direction = 1  // clockwise
)

// String returns "CW" or "CCW".
func (d Direction) String() string {
	if d < 0 {
		return "CCW"
	}
	return "CW"
}

// Phase is the controller state.
type Phase uint8

const (
	PhaseIdle     Phase = iota // no session started
	PhaseFalling               // active piece can still move down
	PhaseLocking               // active piece is resting on something
	PhaseGameOver              // terminal until Reset
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseFalling:
		return "Falling"
	case PhaseLocking:
		return "Locking"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// wrap maps input into [min, max) the way a modulo on a ring would,
// including for negative inputs.
func wrap(input, min, max int) int {
	span := max - min
	r := (input - min) % span
	if r < 0 {
		r += span
	}
	return min + r
}
