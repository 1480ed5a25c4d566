// Package registry keeps the game modes the host can launch. Modes register
// themselves from init() so the CLI and menus discover them without
// importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Game is what a host drives: a fixed-step simulation that draws into a
// Screen. Implementations hold no terminal state.
type Game interface {
	// ID is the mode key used by the CLI and score storage.
	ID() string
	Title() string

	// Reset starts a new session. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one host tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Describer is implemented by games that carry a one-line description for menus.
type Describer interface {
	Description() string
}

// Factory creates a fresh game instance.
type Factory func() Game

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

// Registry maps mode IDs to factories. It is safe for concurrent use; SSH
// sessions create games from it in parallel.
type Registry struct {
	mu    sync.RWMutex
	modes map[string]Factory
	infos map[string]ModeInfo
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		modes: make(map[string]Factory),
		infos: make(map[string]ModeInfo),
	}
}

// Register adds a mode. It panics on a duplicate ID: that is a wiring bug.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	g := f()
	info := ModeInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	r.modes[id] = f
	r.infos[id] = info
}

// List returns every mode sorted by ID.
func (r *Registry) List() []ModeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ModeInfo, 0, len(r.infos))
	for _, info := range r.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a new game for the mode.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.modes[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether the mode is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modes[id]
	return ok
}

var global = New()

// Register adds a mode to the process-wide registry.
func Register(id string, f Factory) { global.Register(id, f) }

// List returns the modes in the process-wide registry.
func List() []ModeInfo { return global.List() }

// Create builds a game from the process-wide registry.
func Create(id string) (Game, error) { return global.Create(id) }

// Exists reports whether the process-wide registry has the mode.
func Exists(id string) bool { return global.Exists(id) }
