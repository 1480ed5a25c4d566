// Package blocks adapts the rules engine to the host: it registers the game
// modes, maps input frames onto controller requests and draws the board.
package blocks

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/bot"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/drills"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Mode selects the win condition and who plays.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeSprint   Mode = "sprint"
	ModeDemo     Mode = "demo"
	ModeDrill    Mode = "drill"
)

// Package-level settings, set by the CLI before a game is created.
var (
	settingsMu    sync.RWMutex
	activeConfig  = config.DefaultBlocksConfig()
	selectedDrill string
	drillDir      string
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.BlocksConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	activeConfig = cfg
}

// ActiveConfig returns the configuration new games will use.
func ActiveConfig() config.BlocksConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return activeConfig
}

// SetDrill picks the drill the drill mode starts with. Empty means the first one.
func SetDrill(id string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedDrill = id
}

// SetDrillDir loads drills from dir instead of the bundled set. Empty
// restores the bundled set.
func SetDrillDir(dir string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	drillDir = dir
}

func init() {
	for _, m := range []Mode{ModeMarathon, ModeSprint, ModeDemo, ModeDrill} {
		mode := m
		registry.Register(string(mode), func() registry.Game {
			return New(mode)
		})
	}
}

// flashTicks is how long a clear label stays on the HUD, in host ticks.
const flashTicks = 90

// Game implements registry.Game on top of a core.Controller.
type Game struct {
	mode Mode
	cfg  config.BlocksConfig
	rng  *rand.Rand

	ctrl   *core.Controller
	err    error // configuration error; the game shows it instead of playing
	driver *bot.Driver

	drills     []drills.Drill
	drillIndex int

	tickRate int
	tickDur  time.Duration
	tick     uint64
	playTick uint64 // ticks spent playing, for the sprint clock

	cleared  int    // lines cleared during the current step
	flash    string // label of the last notable clear
	flashFor int

	paused   bool
	won      bool
	tooSmall bool
}

// New creates a game in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the mode key.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeSprint:
		return "Sprint"
	case ModeDemo:
		return "Demo"
	case ModeDrill:
		return "Drills"
	default:
		return "Marathon"
	}
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	switch g.mode {
	case ModeSprint:
		return "Clear the target number of lines as fast as you can"
	case ModeDemo:
		return "Watch the bot play"
	case ModeDrill:
		return "Practice set-ups on preset boards"
	default:
		return "Endless play until the stack reaches the top"
	}
}

// Reset starts a new session.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = platformcore.DefaultConfig().TickRate
	}
	g.cfg = ActiveConfig()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	g.tickDur = time.Second / time.Duration(cfg.TickRate)
	g.tick = 0
	g.playTick = 0
	g.cleared = 0
	g.flash = ""
	g.flashFor = 0
	g.paused = false
	g.won = false
	g.tooSmall = false
	g.err = nil

	if g.mode == ModeDrill && g.drills == nil {
		g.loadDrills()
	}
	g.startSession()
}

func (g *Game) loadDrills() {
	settingsMu.RLock()
	want, dir := selectedDrill, drillDir
	settingsMu.RUnlock()

	loader := drills.Builtin()
	if dir != "" {
		loader = drills.NewLoader(dir)
	}
	all, err := loader.LoadAll()
	if err != nil {
		g.err = err
		return
	}
	if len(all) == 0 {
		g.err = fmt.Errorf("drills: no drills found in %s", dir)
		return
	}
	g.drills = all
	g.drillIndex = 0
	for i, d := range all {
		if d.ID == want {
			g.drillIndex = i
		}
	}
}

// startSession builds a fresh controller for the current mode and starts it.
func (g *Game) startSession() {
	if g.err != nil {
		return
	}
	engine := g.cfg.EngineConfig()

	var ctrl *core.Controller
	var err error
	switch {
	case g.mode == ModeDrill && len(g.drills) > 0:
		d := g.drills[g.drillIndex]
		ctrl, err = d.NewController(engine, g.rng)
	default:
		ctrl, err = core.NewController(engine, core.NewBag(g.rng))
	}
	if err != nil {
		g.err = err
		g.ctrl = nil
		return
	}

	ctrl.OnLock(g.onLock)
	g.ctrl = ctrl
	if g.mode == ModeDemo {
		g.driver = bot.NewDriver(bot.NewPlanner(nil), g.cfg.Modes.DemoMoveTicks)
	}
	// A blocked first spawn shows up as game over.
	_ = ctrl.Start()
}

func (g *Game) onLock(ev core.LockEvent) {
	g.cleared += ev.Result.LinesCleared
	if label := clearLabel(ev); label != "" {
		g.flash = label
		g.flashFor = flashTicks
	}
}

// Step advances one host tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.cleared = 0

	if in.Has(platformcore.ActionRestart) && (g.over() || g.won) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionConfirm) && g.won && g.mode == ModeDrill {
		g.nextDrill()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) && !g.over() && !g.won {
		g.paused = !g.paused
	}
	if g.ctrl == nil || g.over() || g.won || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if g.mode == ModeDemo {
		g.driver.Step(g.ctrl)
	} else {
		g.applyInput(in)
	}
	if g.ctrl.Active() {
		g.ctrl.Tick(g.tickDur)
	}
	g.playTick++
	if g.flashFor > 0 {
		g.flashFor--
	}
	g.checkGoal()

	return platformcore.StepResult{State: g.State(), Cleared: g.cleared}
}

// applyInput maps actions onto controller requests. Rejected requests are
// simply dropped.
func (g *Game) applyInput(in platformcore.InputFrame) {
	if in.Empty() {
		return
	}
	c := g.ctrl
	if in.Has(platformcore.ActionLeft) {
		c.RequestMove(-1)
	}
	if in.Has(platformcore.ActionRight) {
		c.RequestMove(1)
	}
	if in.Has(platformcore.ActionRotateCW) {
		c.RequestRotate(core.CW)
	}
	if in.Has(platformcore.ActionRotateCCW) {
		c.RequestRotate(core.CCW)
	}
	if in.Has(platformcore.ActionSoftDrop) {
		c.RequestSoftDrop()
	}
	if in.Has(platformcore.ActionHardDrop) {
		_, _ = c.RequestHardDrop()
	}
}

func (g *Game) checkGoal() {
	lines := g.ctrl.Stats().Lines
	switch g.mode {
	case ModeSprint:
		if target := g.cfg.Modes.SprintLines; target > 0 && lines >= target {
			g.won = true
		}
	case ModeDrill:
		if len(g.drills) == 0 {
			return
		}
		if target := g.drills[g.drillIndex].TargetLines; target > 0 && lines >= target {
			g.won = true
		}
	}
}

func (g *Game) restart() {
	g.Reset(platformcore.RuntimeConfig{
		Seed:     g.rng.Int63(),
		TickRate: g.tickRate,
	})
}

func (g *Game) nextDrill() {
	if len(g.drills) == 0 {
		return
	}
	g.drillIndex = (g.drillIndex + 1) % len(g.drills)
	g.restart()
}

func (g *Game) over() bool {
	return g.err != nil || (g.ctrl != nil && g.ctrl.Phase() == core.PhaseGameOver)
}

// State returns the summary the host reads.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		GameOver: g.over(),
		Paused:   g.paused,
		Won:      g.won,
	}
	if g.ctrl != nil {
		st.Score = g.ctrl.Session().Total
		st.Lines = g.ctrl.Stats().Lines
		st.Level = g.ctrl.Config().Level
	}
	return st
}

// Stats returns the engine tallies of the current session.
func (g *Game) Stats() core.Stats {
	if g.ctrl == nil {
		return core.Stats{}
	}
	return g.ctrl.Stats()
}

// Elapsed returns the time spent playing, measured in host ticks.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.playTick) * g.tickDur
}

// Err returns the configuration error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// clearLabel names a lock worth announcing.
func clearLabel(ev core.LockEvent) string {
	res := ev.Result
	var label string
	switch {
	case res.IsTSpin:
		label = [...]string{"T-SPIN", "T-SPIN SINGLE", "T-SPIN DOUBLE", "T-SPIN TRIPLE", "T-SPIN TRIPLE"}[res.LinesCleared]
	case res.LinesCleared == 4:
		label = "TETRIS"
	}
	if res.IsPerfectClear && res.LinesCleared > 0 {
		label = "PERFECT CLEAR"
	}
	if label != "" && res.Difficult() && ev.Session.BackToBack > 0 {
		label = "B2B " + label
	}
	return label
}
