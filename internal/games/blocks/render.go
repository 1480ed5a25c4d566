package blocks

import (
	"fmt"
	"time"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

const (
	hudHeight  = 2
	panelWidth = 18
	cellWidth  = 2
)

var pieceColors = [core.PieceCount]platformcore.Color{
	core.PieceI: platformcore.ColorCyan,
	core.PieceJ: platformcore.ColorBlue,
	core.PieceL: platformcore.ColorOrange,
	core.PieceO: platformcore.ColorYellow,
	core.PieceS: platformcore.ColorGreen,
	core.PieceT: platformcore.ColorMagenta,
	core.PieceZ: platformcore.ColorRed,
}

// PieceColor returns the display color of a piece type.
func PieceColor(t core.PieceType) platformcore.Color {
	if !t.Valid() {
		return platformcore.ColorDefault
	}
	return pieceColors[t]
}

// Render draws the HUD, the board and the side panel.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.err != nil {
		g.renderOverlay(dst, "Bad configuration", g.err.Error())
		return
	}
	if g.ctrl == nil {
		return
	}

	b := g.ctrl.Board()
	boxW := b.Width()*cellWidth + 2
	boxH := b.Height() + 2
	needW := boxW + 1 + panelWidth
	g.tooSmall = dst.Width() < needW || dst.Height() < hudHeight+boxH
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, hudHeight+boxH))
		return
	}

	box := platformcore.NewRect((dst.Width()-needW)/2, hudHeight, boxW, boxH)
	dst.DrawBox(box, platformcore.ColorGray)
	g.renderBoard(dst, box.Inset(1))
	g.renderPanel(dst, platformcore.NewRect(box.Right()+1, hudHeight, panelWidth, boxH))

	switch {
	case g.won:
		g.renderOverlay(dst, g.wonTitle(), fmt.Sprintf("Score %d  [R] again", g.ctrl.Session().Total))
	case g.over():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" Blocks - %s  Score: %d  Lines: %d  Level: %d", g.Title(), st.Score, st.Lines, st.Level)
	switch g.mode {
	case ModeSprint:
		left := platformcore.Max(g.cfg.Modes.SprintLines-st.Lines, 0)
		hud += fmt.Sprintf("  Left: %d  Time: %s", left, formatClock(g.Elapsed()))
	case ModeDrill:
		if len(g.drills) > 0 {
			hud += "  " + g.drills[g.drillIndex].Name
		}
	}
	dst.DrawText(0, 0, hud)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', platformcore.ColorGray)
	}
}

// renderBoard draws locked cells, the ghost and the active piece into area.
func (g *Game) renderBoard(dst *platformcore.Screen, area platformcore.Rect) {
	b := g.ctrl.Board()
	minX, _, _, maxY := b.Bounds()

	toScreen := func(c core.Coord) (int, int) {
		return area.X + (c.X-minX)*cellWidth, area.Y + (maxY - 1 - c.Y)
	}
	paint := func(c core.Coord, ch rune, col platformcore.Color) {
		x, y := toScreen(c)
		for i := 0; i < cellWidth; i++ {
			dst.SetColored(x+i, y, ch, col)
		}
	}

	for i, row := range b.Rows() {
		for j, cell := range row {
			x, y := area.X+j*cellWidth, area.Y+i
			if cell.Filled {
				dst.SetColored(x, y, '█', PieceColor(cell.Kind))
				dst.SetColored(x+1, y, '█', PieceColor(cell.Kind))
			} else {
				dst.SetColored(x+1, y, '·', platformcore.ColorDim)
			}
		}
	}

	if g.cfg.HUD.Ghost {
		if ghost, ok := g.ctrl.Ghost(); ok {
			for _, c := range ghost.Absolute() {
				paint(c, '░', platformcore.ColorDim)
			}
		}
	}
	if p, ok := g.ctrl.Piece(); ok && g.ctrl.Active() {
		for _, c := range p.Absolute() {
			paint(c, '█', PieceColor(p.Type))
		}
	}
}

// renderPanel draws the next queue, the session stats and the last clear.
func (g *Game) renderPanel(dst *platformcore.Screen, area platformcore.Rect) {
	y := area.Y
	dst.DrawTextColored(area.X, y, "NEXT", platformcore.ColorWhite)
	y++
	for _, t := range g.ctrl.Next(g.cfg.HUD.NextCount) {
		drawMiniPiece(dst, area.X+1, y, t)
		y += 3
	}

	st := g.ctrl.Stats()
	sess := g.ctrl.Session()
	lines := []string{
		fmt.Sprintf("Pieces  %d", st.Pieces),
		fmt.Sprintf("Tetris  %d", st.Tetrises),
		fmt.Sprintf("T-spin  %d", st.TSpinSingles+st.TSpinDoubles+st.TSpinTriples),
		fmt.Sprintf("PC      %d", st.PerfectClears),
		fmt.Sprintf("Combo   %d", platformcore.Max(sess.Combo, 0)),
		fmt.Sprintf("B2B     %d", platformcore.Max(sess.BackToBack, 0)),
	}
	y++
	for _, l := range lines {
		if y >= area.Bottom() {
			return
		}
		dst.DrawText(area.X, y, l)
		y++
	}

	if g.flashFor > 0 && y+1 < area.Bottom() {
		dst.DrawTextColored(area.X, y+1, g.flash, platformcore.ColorYellow)
	}
	if g.mode == ModeDrill && len(g.drills) > 0 {
		goal := g.drills[g.drillIndex].Goal
		for i, l := range wrapText(goal, area.W) {
			if y+3+i >= area.Bottom() {
				break
			}
			dst.DrawTextColored(area.X, y+3+i, l, platformcore.ColorGray)
		}
	}
}

// drawMiniPiece draws a piece in spawn orientation, two rows tall.
func drawMiniPiece(dst *platformcore.Screen, x, y int, t core.PieceType) {
	for _, c := range core.BaseCells(t) {
		px := x + (c.X+1)*cellWidth
		py := y + 1 - c.Y
		dst.SetColored(px, py, '█', PieceColor(t))
		dst.SetColored(px+1, py, '█', PieceColor(t))
	}
}

func (g *Game) wonTitle() string {
	switch g.mode {
	case ModeSprint:
		return "Sprint done in " + formatClock(g.Elapsed())
	case ModeDrill:
		return "Drill complete! [Enter] next"
	default:
		return "You Win!"
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := platformcore.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	full := platformcore.NewRect(0, 0, dst.Width(), dst.Height())
	box := platformcore.CenteredIn(full, maxLen+4, 5)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func formatClock(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)
	m := int(d / time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	cs := int(d%time.Second) / int(10*time.Millisecond)
	return fmt.Sprintf("%d:%02d.%02d", m, s, cs)
}

// wrapText breaks s into lines of at most width runes on spaces.
func wrapText(s string, width int) []string {
	var out []string
	line := ""
	word := ""
	flush := func() {
		switch {
		case word == "":
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
		word = ""
	}
	for _, r := range s {
		if r == ' ' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	if line != "" {
		out = append(out, line)
	}
	return out
}
