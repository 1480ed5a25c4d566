// Package formats parses drill files.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// YAMLDrill is the on-disk shape of a drill.
type YAMLDrill struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Goal        string            `yaml:"goal,omitempty"`
	Size        YAMLSize          `yaml:"size,omitempty"`
	Level       int               `yaml:"level,omitempty"`
	TargetLines int               `yaml:"target_lines,omitempty"`
	Queue       []string          `yaml:"queue"`
	Board       string            `yaml:"board"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize is the board size. Zero values fall back to 10x20.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Drill is a parsed drill. Cells are indexed from the bottom-left corner:
// x counts columns from the left wall and y rows from the floor.
type Drill struct {
	ID          string
	Name        string
	Goal        string
	Width       int
	Height      int
	Level       int
	TargetLines int
	Queue       []core.PieceType
	Cells       map[core.Coord]core.PieceType
	Metadata    map[string]string
}

// GarbageKind is the appearance given to '#' cells.
const GarbageKind = core.PieceO

// ParseYAML parses a drill file. The board block lists rows top first;
// '.' is empty, '#' is filled and a piece letter fills with that piece's look.
func ParseYAML(data []byte) (Drill, error) {
	var yd YAMLDrill
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return Drill{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yd.ID == "" {
		return Drill{}, fmt.Errorf("drill has no id")
	}

	d := Drill{
		ID:          yd.ID,
		Name:        yd.Name,
		Goal:        yd.Goal,
		Width:       yd.Size.W,
		Height:      yd.Size.H,
		Level:       yd.Level,
		TargetLines: yd.TargetLines,
		Cells:       make(map[core.Coord]core.PieceType),
		Metadata:    yd.Metadata,
	}
	if d.Width <= 0 {
		d.Width = 10
	}
	if d.Height <= 0 {
		d.Height = 20
	}
	if d.Level <= 0 {
		d.Level = 1
	}
	if d.Name == "" {
		d.Name = d.ID
	}

	for _, name := range yd.Queue {
		p, err := core.ParsePieceType(strings.ToUpper(strings.TrimSpace(name)))
		if err != nil {
			return Drill{}, fmt.Errorf("queue: %w", err)
		}
		d.Queue = append(d.Queue, p)
	}

	rows := strings.Split(strings.TrimRight(yd.Board, "\n"), "\n")
	if len(rows) == 1 && strings.TrimSpace(rows[0]) == "" {
		rows = nil
	}
	if len(rows) > d.Height {
		return Drill{}, fmt.Errorf("board has %d rows, height is %d", len(rows), d.Height)
	}
	for i, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != d.Width {
			return Drill{}, fmt.Errorf("board row %d is %d wide, want %d", i+1, len(row), d.Width)
		}
		y := len(rows) - 1 - i
		for x, ch := range row {
			switch ch {
			case '.':
			case '#':
				d.Cells[core.C(x, y)] = GarbageKind
			default:
				p, err := core.ParsePieceType(string(ch))
				if err != nil {
					return Drill{}, fmt.Errorf("board row %d: %w", i+1, err)
				}
				d.Cells[core.C(x, y)] = p
			}
		}
	}
	return d, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
