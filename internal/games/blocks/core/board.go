package core

import "fmt"

// Cell is one board square. Kind is an appearance tag only; the rules
// look at Filled.
type Cell struct {
	Filled bool
	Kind   PieceType
}

// Board is a fixed-size grid of cells with a centered coordinate system:
// columns span [-w/2, w/2) and rows span [-h/2, h/2), row -h/2 being the floor.
// Cells are stored row-major from the floor up.
type Board struct {
	w, h  int
	minX  int
	minY  int
	cells []Cell
}

// NewBoard creates an empty board. Both dimensions must be positive.
func NewBoard(w, h int) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, ConfigError{
			Code:    CodeBadDimensions,
			Message: fmt.Sprintf("board must be at least 1x1, got %dx%d", w, h),
		}
	}
	return &Board{
		w:     w,
		h:     h,
		minX:  -(w / 2),
		minY:  -(h / 2),
		cells: make([]Cell, w*h),
	}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// Bounds returns the half-open column and row ranges.
func (b *Board) Bounds() (minX, maxX, minY, maxY int) {
	return b.minX, b.minX + b.w, b.minY, b.minY + b.h
}

func (b *Board) index(c Coord) int {
	return (c.Y-b.minY)*b.w + (c.X - b.minX)
}

// IsInBounds reports whether c lies inside the board.
func (b *Board) IsInBounds(c Coord) bool {
	return c.X >= b.minX && c.X < b.minX+b.w && c.Y >= b.minY && c.Y < b.minY+b.h
}

// IsOccupied reports whether c holds a filled cell. Out of bounds is not occupied.
func (b *Board) IsOccupied(c Coord) bool {
	if !b.IsInBounds(c) {
		return false
	}
	return b.cells[b.index(c)].Filled
}

// Cell returns the cell at c, or an empty cell when out of bounds.
func (b *Board) Cell(c Coord) Cell {
	if !b.IsInBounds(c) {
		return Cell{}
	}
	return b.cells[b.index(c)]
}

// CanPlace reports whether every cell, translated by anchor, is in bounds and empty.
// Every movement, rotation and spawn check goes through this predicate.
func (b *Board) CanPlace(cells []Coord, anchor Coord) bool {
	for _, c := range cells {
		p := c.Add(anchor)
		if !b.IsInBounds(p) || b.cells[b.index(p)].Filled {
			return false
		}
	}
	return true
}

// Commit fills the given cells translated by anchor. The caller validates
// with CanPlace first; out-of-bounds cells are skipped.
func (b *Board) Commit(cells []Coord, anchor Coord, kind PieceType) {
	for _, c := range cells {
		b.Set(c.Add(anchor), kind)
	}
}

// Set fills a single cell.
func (b *Board) Set(c Coord, kind PieceType) {
	if b.IsInBounds(c) {
		b.cells[b.index(c)] = Cell{Filled: true, Kind: kind}
	}
}

// ClearCell empties a single cell.
func (b *Board) ClearCell(c Coord) {
	if b.IsInBounds(c) {
		b.cells[b.index(c)] = Cell{}
	}
}

// rowFull reports whether every column of row y is filled.
func (b *Board) rowFull(y int) bool {
	start := (y - b.minY) * b.w
	for _, cell := range b.cells[start : start+b.w] {
		if !cell.Filled {
			return false
		}
	}
	return true
}

// removeRow drops row y and shifts every row above it down by one.
// The top row becomes empty.
func (b *Board) removeRow(y int) {
	start := (y - b.minY) * b.w
	copy(b.cells[start:], b.cells[start+b.w:])
	top := b.cells[len(b.cells)-b.w:]
	for i := range top {
		top[i] = Cell{}
	}
}

// ClearFullLines removes every full row, scanning from the floor up.
// After a removal the same row index is checked again since the row above
// has moved into it. rows lists, in removal order, where each removed row
// was before any shifting.
func (b *Board) ClearFullLines() (count int, rows []int) {
	y := b.minY
	for y < b.minY+b.h {
		if b.rowFull(y) {
			b.removeRow(y)
			// Every earlier removal sat below y and pulled this row down once.
			rows = append(rows, y+count)
			count++
			continue
		}
		y++
	}
	return count, rows
}

// ClearableLines counts full rows without removing them.
func (b *Board) ClearableLines() int {
	n := 0
	for y := b.minY; y < b.minY+b.h; y++ {
		if b.rowFull(y) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is filled.
func (b *Board) IsEmpty() bool {
	for _, cell := range b.cells {
		if cell.Filled {
			return false
		}
	}
	return true
}

// ColumnHeights returns, per column from left to right, the height of the
// topmost filled cell measured from the floor (1 for the floor row),
// or 0 when the column is empty.
func (b *Board) ColumnHeights() []int {
	heights := make([]int, b.w)
	for x := 0; x < b.w; x++ {
		for y := b.h - 1; y >= 0; y-- {
			if b.cells[y*b.w+x].Filled {
				heights[x] = y + 1
				break
			}
		}
	}
	return heights
}

// CountHoles counts empty cells that have a filled cell somewhere above
// them in the same column.
func (b *Board) CountHoles() int {
	holes := 0
	for x := 0; x < b.w; x++ {
		covered := false
		for y := b.h - 1; y >= 0; y-- {
			filled := b.cells[y*b.w+x].Filled
			if filled {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// Bumpiness sums the absolute height differences of adjacent columns.
func (b *Board) Bumpiness() int {
	heights := b.ColumnHeights()
	bump := 0
	for i := 1; i < len(heights); i++ {
		d := heights[i] - heights[i-1]
		if d < 0 {
			d = -d
		}
		bump += d
	}
	return bump
}

// AggregateHeight sums all column heights.
func (b *Board) AggregateHeight() int {
	total := 0
	for _, h := range b.ColumnHeights() {
		total += h
	}
	return total
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, cell := range b.cells {
		if cell.Filled {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{w: b.w, h: b.h, minX: b.minX, minY: b.minY, cells: cells}
}

// Equal reports whether two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.w != other.w || b.h != other.h {
		return false
	}
	for i, cell := range b.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid with the top row first, for rendering.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.h)
	for i := range rows {
		y := b.h - 1 - i
		row := make([]Cell, b.w)
		copy(row, b.cells[y*b.w:(y+1)*b.w])
		rows[i] = row
	}
	return rows
}

// String renders the board as text, top row first: '#' filled, '.' empty.
func (b *Board) String() string {
	buf := make([]byte, 0, (b.w+1)*b.h)
	for _, row := range b.Rows() {
		for _, cell := range row {
			if cell.Filled {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
