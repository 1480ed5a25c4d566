package core

import (
	"fmt"
	"math"
)

// KickRows and KickTrials are the dimensions every kick table must have:
// one row per (rotation index, direction) pair and five trial offsets per row.
const (
	KickRows   = 8
	KickTrials = 5
)

// KickTable holds wall-kick trial offsets indexed by [row][trial].
type KickTable [][]Coord

// baseCells holds the spawn-orientation offsets of each piece around its pivot.
var baseCells = [PieceCount][4]Coord{
	PieceI: {C(-1, 1), C(0, 1), C(1, 1), C(2, 1)},
	PieceJ: {C(-1, 1), C(-1, 0), C(0, 0), C(1, 0)},
	PieceL: {C(1, 1), C(-1, 0), C(0, 0), C(1, 0)},
	PieceO: {C(0, 1), C(1, 1), C(0, 0), C(1, 0)},
	PieceS: {C(0, 1), C(1, 1), C(-1, 0), C(0, 0)},
	PieceT: {C(0, 1), C(-1, 0), C(0, 0), C(1, 0)},
	PieceZ: {C(-1, 1), C(0, 1), C(0, 0), C(1, 0)},
}

// rotationMatrix is {cos, sin, -sin, cos} for a quarter turn.
var rotationMatrix = [4]float64{0, 1, -1, 0}

var kicksJLOSTZ = KickTable{
	{C(0, 0), C(-1, 0), C(-1, 1), C(0, -2), C(-1, -2)},
	{C(0, 0), C(1, 0), C(1, -1), C(0, 2), C(1, 2)},
	{C(0, 0), C(1, 0), C(1, -1), C(0, 2), C(1, 2)},
	{C(0, 0), C(-1, 0), C(-1, 1), C(0, -2), C(-1, -2)},
	{C(0, 0), C(1, 0), C(1, 1), C(0, -2), C(1, -2)},
	{C(0, 0), C(-1, 0), C(-1, -1), C(0, 2), C(-1, 2)},
	{C(0, 0), C(-1, 0), C(-1, -1), C(0, 2), C(-1, 2)},
	{C(0, 0), C(1, 0), C(1, 1), C(0, -2), C(1, -2)},
}

var kicksI = KickTable{
	{C(0, 0), C(-2, 0), C(1, 0), C(-2, -1), C(1, 2)},
	{C(0, 0), C(2, 0), C(-1, 0), C(2, 1), C(-1, -2)},
	{C(0, 0), C(-1, 0), C(2, 0), C(-1, 2), C(2, -1)},
	{C(0, 0), C(1, 0), C(-2, 0), C(1, -2), C(-2, 1)},
	{C(0, 0), C(2, 0), C(-1, 0), C(2, 1), C(-1, -2)},
	{C(0, 0), C(-2, 0), C(1, 0), C(-2, -1), C(1, 2)},
	{C(0, 0), C(1, 0), C(-2, 0), C(1, -2), C(-2, 1)},
	{C(0, 0), C(-1, 0), C(2, 0), C(-1, 2), C(2, -1)},
}

// BaseCells returns the spawn-orientation cell offsets for a piece type.
func BaseCells(t PieceType) [4]Coord {
	return baseCells[t]
}

// halfPivot reports whether the piece rotates around a cell corner
// rather than a cell center.
func halfPivot(t PieceType) bool {
	return t == PieceI || t == PieceO
}

// RotateOffset turns a single cell offset a quarter turn in the given direction.
// I and O pivot on a cell corner, so their offsets are shifted by half a cell
// and rounded up; the rest round half away from zero.
func RotateOffset(t PieceType, c Coord, dir Direction) Coord {
	x, y := float64(c.X), float64(c.Y)
	d := float64(dir)
	if halfPivot(t) {
		x -= 0.5
		y -= 0.5
		return Coord{
			X: int(math.Ceil(x*rotationMatrix[0]*d + y*rotationMatrix[1]*d)),
			Y: int(math.Ceil(x*rotationMatrix[2]*d + y*rotationMatrix[3]*d)),
		}
	}
	return Coord{
		X: int(math.Round(x*rotationMatrix[0]*d + y*rotationMatrix[1]*d)),
		Y: int(math.Round(x*rotationMatrix[2]*d + y*rotationMatrix[3]*d)),
	}
}

// KickTableFor returns the canonical kick table used by a piece type.
// O shares the generic table; in practice its zero offset always passes.
func KickTableFor(t PieceType) KickTable {
	if t == PieceI {
		return kicksI
	}
	return kicksJLOSTZ
}

// kickRow selects the table row for a rotation out of rotationIndexBefore.
func kickRow(rotationIndexBefore int, dir Direction) int {
	row := rotationIndexBefore * 2
	if dir < 0 {
		row--
	}
	return wrap(row, 0, KickRows)
}

// WallKickOffsets returns the ordered trial offsets for a rotation.
// The first entry is always the zero offset.
func WallKickOffsets(t PieceType, rotationIndexBefore int, dir Direction) [KickTrials]Coord {
	var out [KickTrials]Coord
	copy(out[:], KickTableFor(t)[kickRow(rotationIndexBefore, dir)])
	return out
}

// ValidateKickTable checks that a table has KickRows rows of KickTrials
// offsets each and that every row starts with the zero offset.
func ValidateKickTable(kt KickTable) error {
	if len(kt) != KickRows {
		return ConfigError{
			Code:    CodeBadKickTable,
			Message: fmt.Sprintf("kick table has %d rows, want %d", len(kt), KickRows),
		}
	}
	for i, row := range kt {
		if len(row) != KickTrials {
			return ConfigError{
				Code:    CodeBadKickTable,
				Message: fmt.Sprintf("kick table row %d has %d trials, want %d", i, len(row), KickTrials),
			}
		}
		if row[0] != (Coord{}) {
			return ConfigError{
				Code:    CodeBadKickTable,
				Message: fmt.Sprintf("kick table row %d starts with %v, want (0,0)", i, row[0]),
			}
		}
	}
	return nil
}

// validateTables runs ValidateKickTable over both canonical tables.
func validateTables() error {
	if err := ValidateKickTable(kicksJLOSTZ); err != nil {
		return err
	}
	return ValidateKickTable(kicksI)
}
