// Package term draws a monitor and its windows as box art for terminals.
//
//	out := term.Render(canvas, monitor, 80, 24)
//
// Every window is scaled into a character grid and outlined with box
// drawing runes. Later windows overwrite earlier ones, so floating windows
// end up on top when the canvas lists them last.
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hyprtile/pkg/render/frames"
)

var palette = []lipgloss.Color{"36", "75", "35", "220", "167", "141", "214", "81"}

var styleEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type cell struct {
	r     rune
	owner int
}

type grid struct {
	cols, rows int
	cells      [][]cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]cell, cols)
		for x := range g.cells[y] {
			g.cells[y][x] = cell{r: '·', owner: -1}
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, owner int) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y][x] = cell{r: r, owner: owner}
}

// Render draws the windows shown on m into a cols x rows grid.
func Render(c frames.Canvas, m frames.Monitor, cols, rows int) string {
	if cols < 2 || rows < 2 || m.Frame.Width <= 0 || m.Frame.Height <= 0 {
		return ""
	}
	g := newGrid(cols, rows)
	sx := float64(cols) / m.Frame.Width
	sy := float64(rows) / m.Frame.Height

	for i, w := range c.WindowsOn(m) {
		r := w.Rect
		x0 := int(math.Round((r.X - m.Frame.X) * sx))
		y0 := int(math.Round((r.Y - m.Frame.Y) * sy))
		x1 := int(math.Round((r.Right()-m.Frame.X)*sx)) - 1
		y1 := int(math.Round((r.Bottom()-m.Frame.Y)*sy)) - 1
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		drawBox(g, x0, y0, x1, y1, i)

		label := fmt.Sprintf("#%d %s", w.ID, w.Title)
		if w.Floating {
			label += " (float)"
		}
		label = truncate(strings.TrimSpace(label), x1-x0-1)
		for j, ch := range []rune(label) {
			g.set(x0+1+j, y0+1, ch, i)
		}
	}
	return g.String()
}

func drawBox(g *grid, x0, y0, x1, y1, owner int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var r rune
			switch {
			case y == y0 && x == x0:
				r = '┌'
			case y == y0 && x == x1:
				r = '┐'
			case y == y1 && x == x0:
				r = '└'
			case y == y1 && x == x1:
				r = '┘'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			default:
				r = ' '
			}
			g.set(x, y, r, owner)
		}
	}
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(rs) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}

// String renders the grid, coloring each run of cells by owner.
func (g *grid) String() string {
	var sb strings.Builder
	for y, row := range g.cells {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].owner == row[start].owner {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			sb.WriteString(styleFor(row[start].owner).Render(run.String()))
			start = x
		}
		if y < len(g.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func styleFor(owner int) lipgloss.Style {
	if owner < 0 {
		return styleEmpty
	}
	return lipgloss.NewStyle().Foreground(palette[owner%len(palette)])
}
