package core

import "fmt"

// Coord is a cell position or offset on the board.
// X increases to the right, Y increases upward; the origin is the board center.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns c minus other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Unit offsets used by the controller.
var (
	Left  = C(-1, 0)
	Right = C(1, 0)
	Down  = C(0, -1)
	Up    = C(0, 1)
)
