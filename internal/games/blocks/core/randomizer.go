package core

// Source provides the random numbers the randomizer consumes.
// *math/rand.Rand satisfies it; tests substitute a scripted source.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Randomizer hands out piece types to the controller.
type Randomizer interface {
	Next() PieceType
	// Peek returns the next n pieces without consuming them.
	Peek(n int) []PieceType
}

// Bag is the 7-bag randomizer: each run of PieceCount draws between two
// reshuffles contains every piece type exactly once.
type Bag struct {
	src   Source
	queue []PieceType
	bags  int
}

// NewBag creates a bag randomizer drawing from src. The first bag is
// shuffled on the first draw.
func NewBag(src Source) *Bag {
	return &Bag{src: src}
}

// shuffle appends a fresh uniformly random permutation of all piece types.
func (b *Bag) shuffle() {
	bag := AllPieces()
	for i := len(bag) - 1; i > 0; i-- {
		j := b.src.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	b.queue = append(b.queue, bag...)
	b.bags++
}

// Next returns the next piece, reshuffling when the current bag is used up.
func (b *Bag) Next() PieceType {
	if len(b.queue) == 0 {
		b.shuffle()
	}
	p := b.queue[0]
	b.queue = b.queue[1:]
	return p
}

// Peek returns the next n pieces. Bags needed to satisfy the request are
// shuffled now, in the same order Next would have shuffled them, so peeking
// never changes the sequence. n <= 0 yields nil.
func (b *Bag) Peek(n int) []PieceType {
	if n <= 0 {
		return nil
	}
	for len(b.queue) < n {
		b.shuffle()
	}
	out := make([]PieceType, n)
	copy(out, b.queue)
	return out
}

// BagsShuffled returns how many bags have been generated so far.
func (b *Bag) BagsShuffled() int {
	return b.bags
}

// Sequence replays a fixed list of pieces and then continues from a bag.
// Drills use it to script the opening queue.
type Sequence struct {
	fixed []PieceType
	rest  *Bag
}

// NewSequence creates a randomizer that yields pieces in order, then
// falls back to a bag fed by src.
func NewSequence(src Source, pieces ...PieceType) *Sequence {
	fixed := make([]PieceType, len(pieces))
	copy(fixed, pieces)
	return &Sequence{fixed: fixed, rest: NewBag(src)}
}

// Next returns the next scripted piece, or a bag piece once the script is done.
func (s *Sequence) Next() PieceType {
	if len(s.fixed) > 0 {
		p := s.fixed[0]
		s.fixed = s.fixed[1:]
		return p
	}
	return s.rest.Next()
}

// Peek returns the next n pieces without consuming them. n <= 0 yields nil.
func (s *Sequence) Peek(n int) []PieceType {
	if n <= 0 {
		return nil
	}
	out := make([]PieceType, 0, n)
	for _, p := range s.fixed {
		if len(out) == n {
			return out
		}
		out = append(out, p)
	}
	return append(out, s.rest.Peek(n-len(out))...)
}
