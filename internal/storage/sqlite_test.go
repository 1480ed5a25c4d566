package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "blocks.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func result(mode string, score int) Result {
	return Result{
		SessionID: fmt.Sprintf("%s-%d-%d", mode, score, time.Now().UnixNano()),
		Mode:      mode,
		Score:     score,
		Level:     1,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "blocks.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := Result{
		SessionID:     "s-1",
		Mode:          "marathon",
		Player:        "alice",
		Score:         1234,
		Lines:         52,
		Level:         2,
		Pieces:        140,
		Tetrises:      6,
		TSpins:        2,
		PerfectClears: 1,
		MaxCombo:      4,
		Duration:      95 * time.Second,
	}
	id, err := store.SaveResult(want)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	got, err := store.ResultBySession("s-1")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %d, expected %d", got.ID, id)
	}
	got.ID, got.CreatedAt = 0, time.Time{}
	if got != want {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}

	if _, err := store.ResultBySession("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRejectsDuplicateSession(t *testing.T) {
	store := openTestStore(t)
	r := result("sprint", 10)
	if _, err := store.SaveResult(r); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveResult(r); err == nil {
		t.Error("a session should only be saved once")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []int{100, 500, 300, 200, 400} {
		if _, err := store.SaveResult(result("marathon", s)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveResult(result("sprint", 900)); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("marathon", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 || scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("unexpected top scores: %+v", scores)
	}

	all, err := store.AllScores("marathon")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 marathon results, got %d", len(all))
	}

	viaBoard, err := store.Top(context.Background(), "sprint", 0)
	if err != nil || len(viaBoard) != 1 {
		t.Errorf("Top() = %v, %v", viaBoard, err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("marathon")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for an empty mode, got %d", high)
	}

	for _, s := range []int{100, 300, 200} {
		_ = store.Submit(context.Background(), result("marathon", s))
	}
	if high, _ = store.HighScore("marathon"); high != 300 {
		t.Errorf("expected 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	_, _ = store.SaveResult(result("marathon", 100))
	_, _ = store.SaveResult(result("sprint", 300))

	if err := store.ClearScores("marathon"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("marathon", 10); len(scores) != 0 {
		t.Errorf("expected no marathon results, got %d", len(scores))
	}
	if scores, _ := store.TopScores("sprint", 10); len(scores) != 1 {
		t.Error("clearing marathon touched sprint")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats("drill")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.Games != 0 || empty.HighScore != 0 {
		t.Errorf("expected zero stats, got %+v", empty)
	}

	for i, s := range []int{100, 300} {
		r := result("marathon", s)
		r.Lines = 10 * (i + 1)
		_, _ = store.SaveResult(r)
	}
	_, _ = store.SaveResult(result("sprint", 50))

	st, err := store.GetModeStats("marathon")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if st.Games != 2 || st.HighScore != 300 || st.AvgScore != 200 || st.TotalLines != 30 || st.BestLines != 20 {
		t.Errorf("unexpected stats %+v", st)
	}

	all, err := store.GetAllModesStats()
	if err != nil {
		t.Fatalf("GetAllModesStats() failed: %v", err)
	}
	if len(all) != 2 || all["sprint"].Games != 1 {
		t.Errorf("unexpected per-mode stats %+v", all)
	}
}

type failingBoard struct{ err error }

func (f failingBoard) Submit(context.Context, Result) error { return f.err }
func (f failingBoard) Top(context.Context, string, int) ([]Result, error) {
	return nil, f.err
}

func TestFanout(t *testing.T) {
	store := openTestStore(t)
	boom := errors.New("boom")
	f := NewFanout(store, nil, failingBoard{err: boom})

	err := f.Submit(context.Background(), result("marathon", 70))
	if !errors.Is(err, boom) {
		t.Errorf("expected the failing board's error, got %v", err)
	}
	top, err := f.Top(context.Background(), "marathon", 5)
	if err != nil || len(top) != 1 {
		t.Errorf("fanout should read from the store: %v %v", top, err)
	}

	if top, err := NewFanout().Top(context.Background(), "marathon", 5); top != nil || err != nil {
		t.Error("empty fanout should return nothing")
	}
}

func TestStoreRank(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	low, first, tied, other := result("sprint", 10), result("sprint", 50), result("sprint", 50), result("marathon", 999)
	first.SessionID, tied.SessionID = "first", "tied"
	for _, r := range []Result{low, first, tied, other} {
		if err := store.Submit(ctx, r); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	tests := []struct {
		session string
		want    int
	}{
		{"first", 1},
		{"tied", 2},
		{low.SessionID, 3},
	}
	for _, tt := range tests {
		got, err := store.Rank(ctx, "sprint", tt.session)
		if err != nil || got != tt.want {
			t.Errorf("Rank(%s) = %d, %v; want %d", tt.session, got, err, tt.want)
		}
	}

	if _, err := store.Rank(ctx, "marathon", "first"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rank in the wrong mode should be ErrNotFound, got %v", err)
	}

	f := NewFanout(failingBoard{}, store)
	if got, err := f.Rank(ctx, "sprint", "tied"); err != nil || got != 2 {
		t.Errorf("fanout should rank through the store: %d %v", got, err)
	}
	if _, err := NewFanout(failingBoard{}).Rank(ctx, "sprint", "tied"); !errors.Is(err, ErrNotFound) {
		t.Errorf("fanout without a ranker should be ErrNotFound, got %v", err)
	}
}

func race(id string, score int, d time.Duration) Result {
	return Result{SessionID: id, Mode: "sprint", Score: score, Duration: d, TimeRanked: true}
}

func TestStoreRanksRacesByTime(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, r := range []Result{
		race("slow", 900, 90*time.Second),
		race("fast", 100, 45*time.Second),
		race("mid", 500, 60*time.Second),
	} {
		if err := store.Submit(ctx, r); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	top, err := store.Top(ctx, "sprint", 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	var order []string
	for _, r := range top {
		order = append(order, r.SessionID)
		if !r.TimeRanked {
			t.Errorf("%s lost its time ranking", r.SessionID)
		}
	}
	if fmt.Sprint(order) != "[fast mid slow]" {
		t.Errorf("order = %v, want fastest first", order)
	}

	if rank, err := store.Rank(ctx, "sprint", "mid"); err != nil || rank != 2 {
		t.Errorf("Rank(mid) = %d, %v; want 2", rank, err)
	}
}

func TestStoreMigratesScoreOnlySchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE results (
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
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_results_top ON results(mode, score DESC);
		INSERT INTO results (session_id, mode, score) VALUES ('low', 'marathon', 10), ('high', 'marathon', 70);
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seeding old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	top, err := store.TopScores("marathon", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 || top[0].SessionID != "high" {
		t.Errorf("migrated rows lost score order: %+v", top)
	}
}
