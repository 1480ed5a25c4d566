// Package storage persists finished games. Store keeps local history in
// SQLite; RedisLeaderboard shares rankings between the processes of an SSH
// deployment. Both satisfy Leaderboard.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("storage: not found")

// Result is one finished game.
type Result struct {
	ID        int64  // row id in SQLite; 0 elsewhere
	SessionID string // unique per game, assigned by the host
	Mode      string
	Player    string

	Score         int
	Lines         int
	Level         int
	Pieces        int
	Tetrises      int
	TSpins        int // T-spins that cleared lines
	PerfectClears int
	MaxCombo      int
	Duration      time.Duration

	// TimeRanked results are races: the shorter Duration ranks higher and
	// Score is informational.
	TimeRanked bool

	CreatedAt time.Time
}

// RankKey orders results within a mode; higher is better. Time-ranked
// results use the negated duration in milliseconds.
func (r Result) RankKey() int64 {
	if r.TimeRanked {
		return -r.Duration.Milliseconds()
	}
	return int64(r.Score)
}

// Leaderboard records results and ranks them per mode.
type Leaderboard interface {
	Submit(ctx context.Context, r Result) error
	// Top returns the best results for mode, best RankKey first.
	Top(ctx context.Context, mode string, limit int) ([]Result, error)
}

// Ranker is implemented by leaderboards that can place one session.
type Ranker interface {
	// Rank returns the 1-based position of sessionID in mode, or ErrNotFound.
	Rank(ctx context.Context, mode, sessionID string) (int, error)
}

// Fanout submits to every leaderboard and reads from the first one.
type Fanout struct {
	boards []Leaderboard
}

// NewFanout combines leaderboards. Nil entries are skipped.
func NewFanout(boards ...Leaderboard) *Fanout {
	f := &Fanout{}
	for _, b := range boards {
		if b != nil {
			f.boards = append(f.boards, b)
		}
	}
	return f
}

// Submit records r everywhere and returns the joined errors.
func (f *Fanout) Submit(ctx context.Context, r Result) error {
	var errs []error
	for _, b := range f.boards {
		if err := b.Submit(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Top reads from the first leaderboard.
func (f *Fanout) Top(ctx context.Context, mode string, limit int) ([]Result, error) {
	if len(f.boards) == 0 {
		return nil, nil
	}
	return f.boards[0].Top(ctx, mode, limit)
}

// Rank asks the first leaderboard that can rank.
func (f *Fanout) Rank(ctx context.Context, mode, sessionID string) (int, error) {
	for _, b := range f.boards {
		if r, ok := b.(Ranker); ok {
			return r.Rank(ctx, mode, sessionID)
		}
	}
	return 0, ErrNotFound
}

const defaultLimit = 10

func normLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
