package bot

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// AutoPlayConfig configures a headless bot game.
type AutoPlayConfig struct {
	Engine    core.Config
	MaxPieces int // 0 plays until game over
	Evaluator Evaluator
	Verbose   bool
}

// DefaultAutoPlayConfig plays up to 500 pieces on the default engine.
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		Engine:    core.DefaultConfig(),
		MaxPieces: 500,
	}
}

// Outcome summarises a finished bot game.
type Outcome struct {
	Score    int
	Stats    core.Stats
	GameOver bool
}

// AutoPlay runs one game with the planner placing every piece. With Verbose
// set the board is printed after each lock; the summary is always printed.
func AutoPlay(w io.Writer, rng *rand.Rand, cfg AutoPlayConfig) (Outcome, error) {
	c, err := core.NewController(cfg.Engine, core.NewBag(rng))
	if err != nil {
		return Outcome{}, err
	}
	planner := NewPlanner(cfg.Evaluator)

	if cfg.Verbose {
		fmt.Fprintln(w, "=== blocks autoplay ===")
	}

	err = c.Start()
	for err == nil && (cfg.MaxPieces <= 0 || c.Stats().Pieces < cfg.MaxPieces) {
		pl, ok := planner.Best(c)
		if !ok {
			// Nothing fits anywhere: drop where it stands.
			_, err = c.RequestHardDrop()
			continue
		}
		var ev core.LockEvent
		ev, err = Apply(c, pl)
		if cfg.Verbose {
			fmt.Fprint(w, c.Board())
			fmt.Fprintf(w, "Piece %s col %d rot %d  +%d  Score: %d\n\n",
				ev.Piece.Type, pl.Column, pl.Rotations, ev.Delta, c.Session().Total)
		}
	}
	if err != nil && !errors.Is(err, core.ErrGameOver) {
		return Outcome{}, err
	}

	out := Outcome{
		Score:    c.Session().Total,
		Stats:    c.Stats(),
		GameOver: c.Phase() == core.PhaseGameOver,
	}
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Final Score: %d\n", out.Score)
	fmt.Fprintf(w, "Pieces: %d  Lines: %d  Tetrises: %d  Max combo: %d\n",
		out.Stats.Pieces, out.Stats.Lines, out.Stats.Tetrises, out.Stats.MaxCombo)
	return out, nil
}
