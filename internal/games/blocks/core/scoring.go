package core

// LockResult describes one lock event.
type LockResult struct {
	LinesCleared   int
	IsPerfectClear bool
	IsTSpin        bool
}

// Difficult reports whether the lock extends a back-to-back chain:
// a line clear that is a T-spin, a four-line clear or a perfect clear.
func (r LockResult) Difficult() bool {
	return r.LinesCleared > 0 && (r.IsTSpin || r.LinesCleared == 4 || r.IsPerfectClear)
}

// Session carries the streak counters and total score of one game.
// -1 in a counter means no streak is running.
type Session struct {
	Combo      int
	BackToBack int
	Total      int
}

// NewSession returns the state at the start of a game.
func NewSession() Session {
	return Session{Combo: -1, BackToBack: -1}
}

var (
	lineClearTable    = [5]float64{0, 1, 3, 5, 8}
	perfectClearTable = [5]float64{0, 8, 12, 18, 20}
)

// perfectClearB2B is the multiplier of a perfect clear inside a back-to-back chain.
const perfectClearB2B = 32

// Score applies a lock result to the session and returns the points earned.
//
// Counters are advanced first: combo restarts at -1 on a lock with no lines
// and grows otherwise; back-to-back only moves on locks that clear lines.
// The fractional combo and back-to-back bonuses are truncated away when the
// delta is converted to points.
func Score(res LockResult, level int, s Session) (int, Session) {
	lines := res.LinesCleared
	if lines < 0 {
		lines = 0
	}
	if lines > 4 {
		lines = 4
	}

	if lines == 0 {
		s.Combo = -1
	} else {
		s.Combo++
		if res.Difficult() {
			s.BackToBack++
		} else {
			s.BackToBack = -1
		}
	}
	backToBack := s.BackToBack > 0
	lvl := float64(level)

	var score float64
	switch {
	case res.IsTSpin && lines > 0:
		score = lvl * 4 * float64(lines+1)
	case res.IsPerfectClear && lines > 0:
		if backToBack {
			score = lvl * perfectClearB2B
		} else {
			score = lvl * perfectClearTable[lines]
		}
	default:
		score = lvl * lineClearTable[lines]
	}

	if s.Combo > 0 {
		score += float64(s.Combo) * 0.5
	}
	if backToBack && !res.IsPerfectClear {
		score *= 1.5
	}

	delta := int(score)
	s.Total += delta
	return delta, s
}

// Stats tallies what happened over a session.
type Stats struct {
	Pieces        int
	Lines         int
	Singles       int
	Doubles       int
	Triples       int
	Tetrises      int
	TSpins        int // T-spins with no lines
	TSpinSingles  int
	TSpinDoubles  int
	TSpinTriples  int
	PerfectClears int
	BackToBacks   int
	MaxCombo      int
}

// Record adds one lock to the tally. s is the session after scoring the lock.
func (st *Stats) Record(res LockResult, s Session) {
	st.Pieces++
	st.Lines += res.LinesCleared

	if res.IsTSpin {
		switch res.LinesCleared {
		case 0:
			st.TSpins++
		case 1:
			st.TSpinSingles++
		case 2:
			st.TSpinDoubles++
		default:
			st.TSpinTriples++
		}
	} else {
		switch res.LinesCleared {
		case 1:
			st.Singles++
		case 2:
			st.Doubles++
		case 3:
			st.Triples++
		case 4:
			st.Tetrises++
		}
	}

	if res.IsPerfectClear && res.LinesCleared > 0 {
		st.PerfectClears++
	}
	if res.LinesCleared > 0 && s.BackToBack > 0 {
		st.BackToBacks++
	}
	if s.Combo > st.MaxCombo {
		st.MaxCombo = s.Combo
	}
}
