package core

// Metrics describes the board that would result from one placement,
// measured before any line is cleared.
type Metrics struct {
	ClearableLines  int
	Holes           int
	Bumpiness       int
	AggregateHeight int
}

// Placement is one candidate landing spot for the active piece.
type Placement struct {
	Column    int
	Rotations int // clockwise quarter turns from the current orientation
	Landed    ActivePiece
	Metrics   Metrics
}

// Normalisers for the observation vector.
const (
	obsLines  = 4
	obsHoles  = 200
	obsBump   = 200
	obsHeight = 200
)

// Probe evaluates dropping p after rotating it clockwise rotations times
// (with kicks) and moving its anchor to column. The board is not touched.
// ok is false when a rotation or the column shift does not fit.
func Probe(b *Board, p ActivePiece, column, rotations int) (Placement, bool) {
	rotations = wrap(rotations, 0, 4)
	for i := 0; i < rotations; i++ {
		next, ok := rotateWithKicks(b, p, CW)
		if !ok {
			return Placement{}, false
		}
		p = next
	}

	p = p.Translated(C(column-p.Anchor.X, 0))
	if !p.fits(b) {
		return Placement{}, false
	}
	landed := p.dropped(b)

	scratch := b.Clone()
	scratch.Commit(landed.Cells[:], landed.Anchor, landed.Type)
	return Placement{
		Column:    column,
		Rotations: rotations,
		Landed:    landed,
		Metrics: Metrics{
			ClearableLines:  scratch.ClearableLines(),
			Holes:           scratch.CountHoles(),
			Bumpiness:       scratch.Bumpiness(),
			AggregateHeight: scratch.AggregateHeight(),
		},
	}, true
}

// ObservationMetrics measures a hypothetical placement of the active piece.
// The live piece, board and timers are left as they were.
func (c *Controller) ObservationMetrics(column, rotations int) (Metrics, bool) {
	if !c.Active() {
		return Metrics{}, false
	}
	pl, ok := Probe(c.board, c.piece, column, rotations)
	return pl.Metrics, ok
}

// ObserveAll returns every reachable placement of the active piece,
// ordered by rotation count and then by column.
func (c *Controller) ObserveAll() []Placement {
	if !c.Active() {
		return nil
	}
	minX, maxX, _, _ := c.board.Bounds()
	out := make([]Placement, 0, 4*c.board.Width())
	for r := 0; r < 4; r++ {
		for x := minX; x < maxX; x++ {
			if pl, ok := Probe(c.board, c.piece, x, r); ok {
				out = append(out, pl)
			}
		}
	}
	return out
}

// ObservationVector flattens the current position into a fixed-length
// vector: the piece type scaled by PieceCount, then four normalised metrics
// for every (column, rotation) pair. Unreachable placements read as zeros.
func (c *Controller) ObservationVector() []float64 {
	w := c.board.Width()
	vec := make([]float64, 1+w*4*4)
	if !c.Active() {
		return vec
	}
	vec[0] = float64(c.piece.Type) / PieceCount

	minX, _, _, _ := c.board.Bounds()
	for col := 0; col < w; col++ {
		for r := 0; r < 4; r++ {
			pl, ok := Probe(c.board, c.piece, minX+col, r)
			if !ok {
				continue
			}
			i := 1 + (col*4+r)*4
			vec[i] = float64(pl.Metrics.ClearableLines) / obsLines
			vec[i+1] = float64(pl.Metrics.Holes) / obsHoles
			vec[i+2] = float64(pl.Metrics.Bumpiness) / obsBump
			vec[i+3] = float64(pl.Metrics.AggregateHeight) / obsHeight
		}
	}
	return vec
}
