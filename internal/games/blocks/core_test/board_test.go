package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 20}, {10, 0}, {-1, 5}} {
		if _, err := core.NewBoard(dims[0], dims[1]); !core.IsConfigError(err, core.CodeBadDimensions) {
			t.Errorf("%dx%d: expected BAD_DIMENSIONS, got %v", dims[0], dims[1], err)
		}
	}
}

func TestBoardBounds(t *testing.T) {
	b, _ := core.NewBoard(10, 20)
	minX, maxX, minY, maxY := b.Bounds()
	if minX != -5 || maxX != 5 || minY != -10 || maxY != 10 {
		t.Errorf("bounds: got x[%d,%d) y[%d,%d)", minX, maxX, minY, maxY)
	}
	if !b.IsInBounds(core.C(-5, -10)) || b.IsInBounds(core.C(5, 0)) || b.IsInBounds(core.C(0, 10)) {
		t.Error("IsInBounds disagrees with Bounds")
	}
}

func TestCanPlace(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	b.Set(core.C(0, 0), core.PieceT)
	cells := []core.Coord{core.C(0, 0), core.C(1, 0)}

	if b.CanPlace(cells, core.C(0, 0)) {
		t.Error("overlapping a filled cell should not be placeable")
	}
	if !b.CanPlace(cells, core.C(0, 1)) {
		t.Error("empty in-bounds cells should be placeable")
	}
	if b.CanPlace(cells, core.C(1, 1)) {
		t.Error("cells past the right wall should not be placeable")
	}
	if b.IsOccupied(core.C(9, 9)) {
		t.Error("out of bounds should not read as occupied")
	}
}

func TestClearFullLinesRechecksShiftedRow(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	fillRow(b, -2)
	fillRow(b, -1)
	b.Set(core.C(-2, 0), core.PieceZ)

	count, rows := b.ClearFullLines()
	if count != 2 {
		t.Fatalf("expected 2 lines, got %d", count)
	}
	if diff := cmp.Diff([]int{-2, -1}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if !b.IsOccupied(core.C(-2, -2)) || b.FilledCount() != 1 {
		t.Errorf("expected the lone cell to fall to the floor, board:\n%s", b)
	}
}

func TestClearFullLinesKeepsPartialRows(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	fillRow(b, -2)
	fillRow(b, -1, 1)
	fillRow(b, 0)
	b.Set(core.C(-2, 1), core.PieceZ)

	count, rows := b.ClearFullLines()
	if count != 2 {
		t.Fatalf("expected 2 lines, got %d", count)
	}
	if diff := cmp.Diff([]int{-2, 0}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}

	want := "....\n" +
		"....\n" +
		"#...\n" +
		"###.\n"
	if got := b.String(); got != want {
		t.Errorf("board after clear:\n%s\nwant:\n%s", got, want)
	}
}

func TestClearFullLinesNoop(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	fillRow(b, -2, 0)
	before := b.Clone()

	count, rows := b.ClearFullLines()
	if count != 0 || len(rows) != 0 {
		t.Errorf("expected no clears, got %d %v", count, rows)
	}
	if !b.Equal(before) {
		t.Error("board changed without a full row")
	}
}

func TestIsEmpty(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	if !b.IsEmpty() {
		t.Error("new board should be empty")
	}
	fillRow(b, -2)
	if b.IsEmpty() {
		t.Error("board with a row should not be empty")
	}
	b.ClearFullLines()
	if !b.IsEmpty() {
		t.Error("board should be empty after clearing its only row")
	}
}

func TestSurfaceMetrics(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	b.Set(core.C(-2, -2), core.PieceJ)
	b.Set(core.C(-2, 0), core.PieceJ)
	b.Set(core.C(0, -2), core.PieceJ)

	if diff := cmp.Diff([]int{3, 0, 1, 0}, b.ColumnHeights()); diff != "" {
		t.Errorf("heights (-want +got):\n%s", diff)
	}
	if got := b.CountHoles(); got != 1 {
		t.Errorf("holes: expected 1, got %d", got)
	}
	if got := b.Bumpiness(); got != 5 {
		t.Errorf("bumpiness: expected 5, got %d", got)
	}
	if got := b.AggregateHeight(); got != 4 {
		t.Errorf("aggregate height: expected 4, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := core.NewBoard(4, 4)
	c := b.Clone()
	c.Set(core.C(0, 0), core.PieceL)
	if !b.IsEmpty() {
		t.Error("writing to a clone changed the original")
	}
	if b.Equal(c) {
		t.Error("boards with different contents compare equal")
	}
}
