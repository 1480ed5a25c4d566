package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// submitTimeout bounds one leaderboard write.
const submitTimeout = 3 * time.Second

// Reporter is implemented by games whose sessions can be recorded.
type Reporter interface {
	Result() storage.Result
	// Ranked is false for modes whose results stay off the leaderboard.
	Ranked() bool
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	board      storage.Leaderboard
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	sessionID  string
	quitting   bool
	backToMenu bool
	scoreSaved bool // result for the current session has been submitted
	saveErr    error
}

// NewModel creates a model for game. board may be nil to play unrecorded.
func NewModel(game registry.Game, board storage.Leaderboard, cfg core.RuntimeConfig, player string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player == "" {
		player = "anonymous"
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		board:      board,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		player:     player,
		sessionID:  uuid.NewString(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		m.backToMenu = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize only resizes the screen. The game lays itself out from the
// screen size on every render and pauses while the window is too small.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasFinished := m.gameState.GameOver || m.gameState.Won

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	finished := m.gameState.GameOver || m.gameState.Won
	if wasFinished && !finished {
		// Restart or next drill: a fresh session.
		m.sessionID = uuid.NewString()
		m.scoreSaved = false
		m.saveErr = nil
	}

	if finished && !m.scoreSaved {
		m.saveErr = m.submit()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// submit records the finished session once. Unranked games and empty
// sessions are skipped, as are time-ranked races that were not won: they
// never reached the finish line, so their time means nothing.
func (m Model) submit() error {
	if m.board == nil {
		return nil
	}
	rep, ok := m.game.(Reporter)
	if !ok || !rep.Ranked() {
		return nil
	}

	r := rep.Result()
	if r.Pieces == 0 || (r.TimeRanked && !m.gameState.Won) {
		return nil
	}
	r.SessionID = m.sessionID
	r.Player = m.player

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	return m.board.Submit(ctx, r)
}

// saveScreenshot writes the current screen as plain text under ~/.blocks.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// SessionID identifies the current session's result.
func (m Model) SessionID() string { return m.sessionID }

// SaveErr is the error of the last leaderboard write, if any.
func (m Model) SaveErr() error { return m.saveErr }

// State is the game state as of the last tick.
func (m Model) State() core.GameState { return m.gameState }

// Run plays game in the alternate screen until the player quits or goes
// back to the menu.
func Run(game registry.Game, board storage.Leaderboard, cfg core.RuntimeConfig, player string) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, board, cfg, player),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		if m.SaveErr() != nil {
			return m.BackToMenu(), fmt.Errorf("save result: %w", m.SaveErr())
		}
		return m.BackToMenu(), nil
	}
	return false, nil
}
