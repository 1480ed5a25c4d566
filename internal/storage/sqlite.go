package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no cgo
)

const sqliteTime = "2006-01-02 15:04:05"

// Store is the local SQLite score history.
type Store struct {
	db *sql.DB
}

var (
	_ Leaderboard = (*Store)(nil)
	_ Ranker      = (*Store)(nil)
)

// busyTimeout lets the SSH host and a local player write at the same time.
const busyTimeout = "?_pragma=busy_timeout(5000)"

// Open opens the database at dbPath, creating it and its directory when
// missing, and brings the schema up to date. A leading ~ is the home
// directory.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	db, err := sql.Open("sqlite", path+busyTimeout)
	if err == nil {
		err = db.Ping()
	}
	if err == nil {
		s := &Store{db: db}
		if err = s.migrate(); err == nil {
			return s, nil
		}
		err = fmt.Errorf("migrate: %w", err)
	}
	if db != nil {
		db.Close()
	}
	return nil, fmt.Errorf("storage: open %s: %w", path, err)
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand ~: %w", err)
	}
	return filepath.Join(home, rest), nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			pieces INTEGER NOT NULL DEFAULT 0,
			tetrises INTEGER NOT NULL DEFAULT 0,
			tspins INTEGER NOT NULL DEFAULT 0,
			perfect_clears INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			time_ranked INTEGER NOT NULL DEFAULT 0,
			rank_key INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
	`); err != nil {
		return err
	}

	// Databases from before time-ranked modes lack the ranking columns;
	// their rows were all ranked by score.
	added, err := s.addColumn("time_ranked", "INTEGER NOT NULL DEFAULT 0")
	if err != nil {
		return err
	}
	if _, err := s.addColumn("rank_key", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if added {
		if _, err := s.db.Exec(`UPDATE results SET rank_key = score`); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(`
		DROP INDEX IF EXISTS idx_results_top;
		CREATE INDEX IF NOT EXISTS idx_results_rank ON results(mode, rank_key DESC);
	`)
	return err
}

// addColumn adds a column to results unless it already exists.
func (s *Store) addColumn(name, decl string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('results') WHERE name = ?`, name).Scan(&n)
	if err != nil || n > 0 {
		return false, err
	}
	_, err = s.db.Exec(`ALTER TABLE results ADD COLUMN ` + name + ` ` + decl)
	return err == nil, err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult inserts a finished game and returns its row id.
func (s *Store) SaveResult(r Result) (int64, error) {
	return s.saveResult(context.Background(), r)
}

func (s *Store) saveResult(ctx context.Context, r Result) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results
		 (session_id, mode, player, score, lines, level, pieces, tetrises, tspins, perfect_clears,
		  max_combo, duration_ms, time_ranked, rank_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Mode, r.Player, r.Score, r.Lines, r.Level, r.Pieces,
		r.Tetrises, r.TSpins, r.PerfectClears, r.MaxCombo, r.Duration.Milliseconds(),
		r.TimeRanked, r.RankKey(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Submit implements Leaderboard.
func (s *Store) Submit(ctx context.Context, r Result) error {
	_, err := s.saveResult(ctx, r)
	return err
}

// Top implements Leaderboard.
func (s *Store) Top(ctx context.Context, mode string, limit int) ([]Result, error) {
	return s.topScores(ctx, mode, limit)
}

const resultColumns = `id, session_id, mode, player, score, lines, level, pieces,
	tetrises, tspins, perfect_clears, max_combo, duration_ms, time_ranked, created_at`

// TopScores returns the best results for mode, best first.
// A non-positive limit means 10.
func (s *Store) TopScores(mode string, limit int) ([]Result, error) {
	return s.topScores(context.Background(), mode, limit)
}

func (s *Store) topScores(ctx context.Context, mode string, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+` FROM results WHERE mode = ? ORDER BY rank_key DESC, id ASC LIMIT ?`,
		mode, normLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return collect(rows)
}

// AllScores returns every result for mode, best first.
func (s *Store) AllScores(mode string) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+` FROM results WHERE mode = ? ORDER BY rank_key DESC, id ASC`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return collect(rows)
}

// ResultBySession looks up one game.
func (s *Store) ResultBySession(sessionID string) (Result, error) {
	rows, err := s.db.Query(`SELECT `+resultColumns+` FROM results WHERE session_id = ?`, sessionID)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot query result: %w", err)
	}
	results, err := collect(rows)
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, ErrNotFound
	}
	return results[0], nil
}

// Rank implements Ranker. Ties keep insertion order, as in Top.
func (s *Store) Rank(ctx context.Context, mode, sessionID string) (int, error) {
	var id int64
	var key int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, rank_key FROM results WHERE session_id = ? AND mode = ?`,
		sessionID, mode,
	).Scan(&id, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query result: %w", err)
	}

	var ahead int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results WHERE mode = ? AND (rank_key > ? OR (rank_key = ? AND id < ?))`,
		mode, key, key, id,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count results: %w", err)
	}
	return ahead + 1, nil
}

func collect(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Mode, &r.Player, &r.Score, &r.Lines, &r.Level, &r.Pieces,
			&r.Tetrises, &r.TSpins, &r.PerfectClears, &r.MaxCombo, &durationMs, &r.TimeRanked, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime accepts what the driver hands back for a DATETIME column.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the best score for mode, or 0 without results.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM results WHERE mode = ?", mode).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every result for mode.
func (s *Store) ClearScores(mode string) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats aggregates the results of one mode.
type ModeStats struct {
	Mode       string
	Games      int
	HighScore  int
	AvgScore   float64
	TotalLines int
	BestLines  int
	LastPlayed time.Time
}

// GetModeStats aggregates one mode. A mode without results yields zero stats.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), COALESCE(MAX(lines), 0), MAX(created_at)
		 FROM results WHERE mode = ?`,
		mode,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &stats.BestLines, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllModesStats aggregates every mode that has results.
func (s *Store) GetAllModesStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(lines), MAX(lines), MAX(created_at)
		 FROM results GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all modes stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Games, &st.HighScore, &st.AvgScore, &st.TotalLines, &st.BestLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		out[st.Mode] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
