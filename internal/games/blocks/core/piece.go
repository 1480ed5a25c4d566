package core

// ActivePiece is the falling piece: its type, anchor on the board,
// rotation index in [0,4) and four cell offsets relative to the anchor.
// It is a plain value; the controller replaces it wholesale on every
// accepted move so a rejected request never leaves partial state behind.
type ActivePiece struct {
	Type     PieceType
	Anchor   Coord
	Rotation int
	Cells    [4]Coord
}

// NewActivePiece places a piece of type t at anchor in spawn orientation.
func NewActivePiece(t PieceType, anchor Coord) ActivePiece {
	return ActivePiece{
		Type:   t,
		Anchor: anchor,
		Cells:  BaseCells(t),
	}
}

// Translated returns the piece moved by delta.
func (p ActivePiece) Translated(delta Coord) ActivePiece {
	p.Anchor = p.Anchor.Add(delta)
	return p
}

// Rotated returns the piece turned a quarter in dir around its anchor,
// with the rotation index advanced and wrapped. No kick is applied.
func (p ActivePiece) Rotated(dir Direction) ActivePiece {
	for i, c := range p.Cells {
		p.Cells[i] = RotateOffset(p.Type, c, dir)
	}
	p.Rotation = wrap(p.Rotation+int(dir), 0, 4)
	return p
}

// Absolute returns the board positions of the four cells.
func (p ActivePiece) Absolute() [4]Coord {
	var out [4]Coord
	for i, c := range p.Cells {
		out[i] = c.Add(p.Anchor)
	}
	return out
}

// Lowest returns the smallest row the piece occupies.
func (p ActivePiece) Lowest() int {
	low := p.Cells[0].Y
	for _, c := range p.Cells[1:] {
		if c.Y < low {
			low = c.Y
		}
	}
	return low + p.Anchor.Y
}

// fits reports whether the piece can sit on the board where it is.
func (p ActivePiece) fits(b *Board) bool {
	return b.CanPlace(p.Cells[:], p.Anchor)
}

// dropped returns the piece moved straight down as far as it fits.
func (p ActivePiece) dropped(b *Board) ActivePiece {
	for {
		next := p.Translated(Down)
		if !next.fits(b) {
			return p
		}
		p = next
	}
}
