package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresAll     bool
	flagScoresClear   bool
	flagScoresSession string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded results",
	Long: `Without a mode, summarize every mode that has results.
With a mode, list its best results.

Examples:
  blocks scores
  blocks scores marathon
  blocks scores sprint --limit 25
  blocks scores sprint --all
  blocks scores --session 5f0c...
  blocks scores marathon --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every result of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every result of the mode")
	scoresCmd.Flags().StringVar(&flagScoresSession, "session", "", "Show one game by session ID")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresSession != "":
		err = showSession(store, flagScoresSession)
	case len(args) == 0:
		err = showSummary(store)
	default:
		err = showMode(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showSummary(store *storage.Store) error {
	all, err := store.GetAllModesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet. Run 'blocks list' to pick a mode.")
		return nil
	}

	modes := make([]string, 0, len(all))
	for mode := range all {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Printf("  %-10s  %6s  %8s  %8s  %6s  %s\n", "Mode", "Games", "Best", "Average", "Lines", "Last played")
	for _, mode := range modes {
		st := all[mode]
		fmt.Printf("  %-10s  %6d  %8d  %8.0f  %6d  %s\n",
			mode, st.Games, st.HighScore, st.AvgScore, st.TotalLines, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func showMode(store *storage.Store, modeID string) error {
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (run 'blocks list')", modeID)
	}
	game, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	if flagScoresClear {
		if err := store.ClearScores(modeID); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s scores.\n", game.Title())
		return nil
	}

	var results []storage.Result
	if flagScoresAll {
		results, err = store.AllScores(modeID)
	} else {
		results, err = store.TopScores(modeID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", game.Title())
	if len(results) == 0 {
		fmt.Printf("No scores recorded yet. Play 'blocks play %s' to set one.\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-8s  %s\n", "Rank", "Player", "Score", "Lines", "Time", "Date")
	for i, r := range results {
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-8s  %s\n",
			i+1, r.Player, r.Score, r.Lines,
			r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.GetModeStats(modeID); err == nil {
		fmt.Printf("\nGames: %d  Best: %d  Average: %.0f  Total lines: %d\n",
			st.Games, st.HighScore, st.AvgScore, st.TotalLines)
	}
	return nil
}

func showSession(store *storage.Store, sessionID string) error {
	r, err := store.ResultBySession(sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no game with session %q", sessionID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Session   %s\n", r.SessionID)
	fmt.Printf("Mode      %s\n", r.Mode)
	fmt.Printf("Player    %s\n", r.Player)
	fmt.Printf("Score     %d (level %d)\n", r.Score, r.Level)
	fmt.Printf("Lines     %d in %s\n", r.Lines, r.Duration.Round(100*time.Millisecond))
	fmt.Printf("Pieces    %d\n", r.Pieces)
	fmt.Printf("Tetrises  %d  T-spins %d  Perfect clears %d  Max combo %d\n",
		r.Tetrises, r.TSpins, r.PerfectClears, r.MaxCombo)
	if rank, err := store.Rank(context.Background(), r.Mode, r.SessionID); err == nil {
		fmt.Printf("Rank      #%d\n", rank)
	}
	return nil
}
