// Package drills loads practice positions: a preset board plus a scripted
// piece queue. This package depends on core but core does not depend on it.
package drills

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/drills/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Drill is a complete drill definition.
type Drill struct {
	ID          string
	Name        string
	Goal        string
	Width       int
	Height      int
	Level       int
	TargetLines int // lines to clear to finish; 0 never finishes
	Queue       []core.PieceType
	Cells       map[core.Coord]core.PieceType
	Metadata    map[string]string
	FilePath    string
}

// EngineConfig returns base resized and leveled for the drill. The spawn
// row keeps its distance from the top.
func (d *Drill) EngineConfig(base core.Config) core.Config {
	cfg := base
	cfg.Spawn.Y = d.Height/2 - (base.Height/2 - base.Spawn.Y)
	cfg.Width = d.Width
	cfg.Height = d.Height
	cfg.Level = d.Level
	return cfg
}

// Apply paints the drill's cells onto b, bottom-left first.
func (d *Drill) Apply(b *core.Board) {
	minX, _, minY, _ := b.Bounds()
	for c, kind := range d.Cells {
		b.Set(core.C(minX+c.X, minY+c.Y), kind)
	}
}

// NewController builds an idle controller with the drill board in place.
// Once the scripted queue runs out pieces come from a bag fed by src.
func (d *Drill) NewController(base core.Config, src core.Source) (*core.Controller, error) {
	c, err := core.NewController(d.EngineConfig(base), core.NewSequence(src, d.Queue...))
	if err != nil {
		return nil, fmt.Errorf("drills: %s: %w", d.ID, err)
	}
	d.Apply(c.Board())
	return c, nil
}

// Loader loads drills from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the drills compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all drill files.
// Invalid files are skipped. Drills are sorted by ID.
func (l *Loader) LoadAll() ([]Drill, error) {
	var drills []Drill

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		drill, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		drills = append(drills, drill)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drills: walking %s: %w", l.Root, err)
	}

	sort.Slice(drills, func(i, j int) bool {
		return drills[i].ID < drills[j].ID
	})
	return drills, nil
}

// LoadFile loads a single drill file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Drill, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Drill{}, fmt.Errorf("drills: reading %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Drill{}, fmt.Errorf("drills: parsing %s: %w", p, err)
	}

	return Drill{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Goal:        parsed.Goal,
		Width:       parsed.Width,
		Height:      parsed.Height,
		Level:       parsed.Level,
		TargetLines: parsed.TargetLines,
		Queue:       parsed.Queue,
		Cells:       parsed.Cells,
		Metadata:    parsed.Metadata,
		FilePath:    path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific drill by ID.
func (l *Loader) LoadByID(id string) (Drill, error) {
	drills, err := l.LoadAll()
	if err != nil {
		return Drill{}, err
	}
	for _, d := range drills {
		if d.ID == id {
			return d, nil
		}
	}
	return Drill{}, fmt.Errorf("drills: not found: %s", id)
}

// ListIDs returns all drill IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	drills, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(drills))
	for i, d := range drills {
		ids[i] = d.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Drill, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Drill{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
