package core_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestBagWindowsHoldEveryPiece(t *testing.T) {
	bag := core.NewBag(rand.New(rand.NewSource(1)))

	for window := 0; window < 50; window++ {
		seen := make(map[core.PieceType]int)
		for i := 0; i < core.PieceCount; i++ {
			seen[bag.Next()]++
		}
		for _, pt := range core.AllPieces() {
			if seen[pt] != 1 {
				t.Fatalf("window %d: piece %s drawn %d times", window, pt, seen[pt])
			}
		}
	}
	if got := bag.BagsShuffled(); got != 50 {
		t.Errorf("expected 50 bags, got %d", got)
	}
}

func TestBagFisherYates(t *testing.T) {
	bag := core.NewBag(orderedSource{})
	var got []core.PieceType
	for i := 0; i < 2*core.PieceCount; i++ {
		got = append(got, bag.Next())
	}
	want := append(core.AllPieces(), core.AllPieces()...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sequence (-want +got):\n%s", diff)
	}
}

func TestBagPeekDoesNotChangeSequence(t *testing.T) {
	plain := core.NewBag(rand.New(rand.NewSource(99)))
	peeked := core.NewBag(rand.New(rand.NewSource(99)))

	for i := 0; i < 30; i++ {
		if i%4 == 0 {
			preview := peeked.Peek(10)
			if len(preview) != 10 {
				t.Fatalf("peek returned %d pieces", len(preview))
			}
		}
		a, b := plain.Next(), peeked.Next()
		if a != b {
			t.Fatalf("draw %d: %s without peeking, %s with peeking", i, a, b)
		}
	}
}

func TestBagPeekMatchesNext(t *testing.T) {
	bag := core.NewBag(rand.New(rand.NewSource(5)))
	preview := bag.Peek(9)
	for i, want := range preview {
		if got := bag.Next(); got != want {
			t.Errorf("draw %d: peeked %s, drew %s", i, want, got)
		}
	}
}

func TestPeekNonPositive(t *testing.T) {
	bag := core.NewBag(rand.New(rand.NewSource(1)))
	seq := core.NewSequence(orderedSource{}, core.PieceT)
	for _, n := range []int{0, -3} {
		if got := bag.Peek(n); got != nil {
			t.Errorf("Bag.Peek(%d) = %v, want nil", n, got)
		}
		if got := seq.Peek(n); got != nil {
			t.Errorf("Sequence.Peek(%d) = %v, want nil", n, got)
		}
	}
	if bag.BagsShuffled() != 0 {
		t.Error("an empty peek should not shuffle a bag")
	}
	if got := seq.Next(); got != core.PieceT {
		t.Errorf("sequence start moved: got %s", got)
	}
}

func TestSequenceReplaysThenFallsBack(t *testing.T) {
	seq := core.NewSequence(orderedSource{}, core.PieceT, core.PieceT, core.PieceO)

	want := []core.PieceType{core.PieceT, core.PieceT, core.PieceO, core.PieceI, core.PieceJ}
	if diff := cmp.Diff(want, seq.Peek(5)); diff != "" {
		t.Errorf("peek (-want +got):\n%s", diff)
	}

	var got []core.PieceType
	for range want {
		got = append(got, seq.Next())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draws (-want +got):\n%s", diff)
	}
}
