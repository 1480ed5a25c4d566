package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestScoreSequences(t *testing.T) {
	single := core.LockResult{LinesCleared: 1}
	tetris := core.LockResult{LinesCleared: 4}
	none := core.LockResult{}

	tests := []struct {
		name   string
		level  int
		locks  []core.LockResult
		deltas []int
		final  core.Session
	}{
		{
			name:   "first single",
			level:  1,
			locks:  []core.LockResult{single},
			deltas: []int{1},
			final:  core.Session{Combo: 0, BackToBack: -1, Total: 1},
		},
		{
			name:   "back-to-back tetrises",
			level:  1,
			locks:  []core.LockResult{tetris, tetris},
			deltas: []int{8, 12},
			final:  core.Session{Combo: 1, BackToBack: 1, Total: 20},
		},
		{
			name:   "combo bonus truncates",
			level:  1,
			locks:  []core.LockResult{single, single, single},
			deltas: []int{1, 1, 2},
			final:  core.Session{Combo: 2, BackToBack: -1, Total: 4},
		},
		{
			name:   "empty lock breaks the combo but not back-to-back",
			level:  1,
			locks:  []core.LockResult{tetris, none, tetris},
			deltas: []int{8, 0, 12},
			final:  core.Session{Combo: 0, BackToBack: 1, Total: 20},
		},
		{
			name:   "easy clear breaks back-to-back",
			level:  1,
			locks:  []core.LockResult{tetris, single, tetris},
			deltas: []int{8, 1, 9},
			final:  core.Session{Combo: 2, BackToBack: 0, Total: 18},
		},
		{
			name:   "level scales the table",
			level:  3,
			locks:  []core.LockResult{single},
			deltas: []int{3},
			final:  core.Session{Combo: 0, BackToBack: -1, Total: 3},
		},
		{
			name:   "T-spin double",
			level:  2,
			locks:  []core.LockResult{{LinesCleared: 2, IsTSpin: true}},
			deltas: []int{24},
			final:  core.Session{Combo: 0, BackToBack: 0, Total: 24},
		},
		{
			name:   "T-spin without lines scores nothing",
			level:  1,
			locks:  []core.LockResult{{IsTSpin: true}},
			deltas: []int{0},
			final:  core.Session{Combo: -1, BackToBack: -1, Total: 0},
		},
		{
			name:  "perfect clears",
			level: 1,
			locks: []core.LockResult{
				{LinesCleared: 4, IsPerfectClear: true},
				{LinesCleared: 1, IsPerfectClear: true},
			},
			deltas: []int{20, 32},
			final:  core.Session{Combo: 1, BackToBack: 1, Total: 52},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewSession()
			for i, res := range tt.locks {
				var delta int
				delta, s = core.Score(res, tt.level, s)
				if delta != tt.deltas[i] {
					t.Errorf("lock %d: expected %d points, got %d", i, tt.deltas[i], delta)
				}
			}
			if s != tt.final {
				t.Errorf("final session: expected %+v, got %+v", tt.final, s)
			}
		})
	}
}

func TestScoreClampsLines(t *testing.T) {
	delta, _ := core.Score(core.LockResult{LinesCleared: 6}, 1, core.NewSession())
	if delta != 8 {
		t.Errorf("expected lines above 4 to score as 4, got %d", delta)
	}
}

func TestStatsRecord(t *testing.T) {
	var st core.Stats
	s := core.NewSession()
	for _, res := range []core.LockResult{
		{LinesCleared: 4},
		{LinesCleared: 4},
		{LinesCleared: 2, IsTSpin: true},
		{},
		{LinesCleared: 1},
	} {
		_, s = core.Score(res, 1, s)
		st.Record(res, s)
	}

	want := core.Stats{
		Pieces:       5,
		Lines:        11,
		Singles:      1,
		Tetrises:     2,
		TSpinDoubles: 1,
		BackToBacks:  2,
		MaxCombo:     2,
	}
	if st != want {
		t.Errorf("stats: expected %+v, got %+v", want, st)
	}
}
