package blocks

import (
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Snapshot captures the game for determinism testing.
type Snapshot struct {
	Tick   uint64
	Mode   string
	Drill  string
	Paused bool
	Won    bool
	Engine core.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Paused: g.paused,
		Won:    g.won,
	}
	if g.mode == ModeDrill && len(g.drills) > 0 {
		s.Drill = g.drills[g.drillIndex].ID
	}
	if g.ctrl != nil {
		s.Engine = g.ctrl.Snapshot()
	}
	return s
}

// Result summarises the session for the score store. The host fills in
// the session id and player.
func (g *Game) Result() storage.Result {
	st := g.Stats()
	r := storage.Result{
		Mode:          g.ID(),
		Lines:         st.Lines,
		Pieces:        st.Pieces,
		Tetrises:      st.Tetrises,
		TSpins:        st.TSpinSingles + st.TSpinDoubles + st.TSpinTriples,
		PerfectClears: st.PerfectClears,
		MaxCombo:      st.MaxCombo,
		Duration:      g.Elapsed(),
		TimeRanked:    g.mode == ModeSprint,
	}
	if g.ctrl != nil {
		r.Score = g.ctrl.Session().Total
		r.Level = g.ctrl.Config().Level
	}
	return r
}

// Ranked reports whether results of this mode belong on the leaderboard.
// Demo games are played by the bot and are never submitted.
func (g *Game) Ranked() bool {
	return g.mode != ModeDemo
}
