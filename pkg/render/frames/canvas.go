// Package frames draws window frames on their monitors.
//
// A [Canvas] is the flat result of a layout run: the monitors of the scene
// and the frame every window ended up with. [RenderSVG] draws it to scale;
// the term package draws the same canvas in a terminal.
package frames

import (
	"cmp"
	"slices"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

// Monitor is one display of the canvas.
type Monitor struct {
	Name            string
	Frame           geom.Rect
	Visible         geom.Rect
	ActiveWorkspace string
}

// Window is one placed window.
type Window struct {
	ID         uint32
	Title      string
	Workspace  string
	Rect       geom.Rect
	Floating   bool
	Fullscreen bool
}

// Canvas is what gets drawn.
type Canvas struct {
	Monitors []Monitor
	Windows  []Window
}

// NewCanvas combines the monitors of sc, the titles and flags from report
// and the final frames. Windows without a frame are left out. Tiled windows
// come first so floating ones are drawn on top.
func NewCanvas(sc *scene.Scene, report scene.Report, frames map[uint32]geom.Rect) Canvas {
	var c Canvas
	active := make(map[string]string)
	for _, ws := range report.Workspaces {
		if ws.Active {
			active[ws.Monitor] = ws.Name
		}
	}
	for _, m := range sc.Monitors {
		visible := m.Frame
		if m.Visible != nil {
			visible = *m.Visible
		}
		c.Monitors = append(c.Monitors, Monitor{
			Name:            m.Name,
			Frame:           m.Frame,
			Visible:         visible,
			ActiveWorkspace: active[m.Name],
		})
	}

	for _, ws := range report.Workspaces {
		for _, n := range ws.Nodes {
			if n.WindowID == 0 || n.Kind != "window" {
				continue
			}
			r, ok := frames[n.WindowID]
			if !ok {
				continue
			}
			c.Windows = append(c.Windows, Window{
				ID:         n.WindowID,
				Title:      n.Title,
				Workspace:  ws.Name,
				Rect:       r,
				Floating:   n.Floating,
				Fullscreen: n.Fullscreen,
			})
		}
	}
	slices.SortStableFunc(c.Windows, func(a, b Window) int {
		if a.Floating != b.Floating {
			if a.Floating {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return c
}

// Bounds returns the union of all monitor frames.
func (c Canvas) Bounds() geom.Rect {
	if len(c.Monitors) == 0 {
		return geom.Rect{}
	}
	b := c.Monitors[0].Frame
	for _, m := range c.Monitors[1:] {
		b = union(b, m.Frame)
	}
	return b
}

// Monitor looks a monitor up by name.
func (c Canvas) Monitor(name string) (Monitor, bool) {
	for _, m := range c.Monitors {
		if m.Name == name {
			return m, true
		}
	}
	return Monitor{}, false
}

// WindowsOn returns the windows whose workspace is shown on m, in drawing
// order.
func (c Canvas) WindowsOn(m Monitor) []Window {
	var out []Window
	for _, w := range c.Windows {
		if w.Workspace == m.ActiveWorkspace {
			out = append(out, w)
		}
	}
	return out
}

func union(a, b geom.Rect) geom.Rect {
	x := min(a.X, b.X)
	y := min(a.Y, b.Y)
	return geom.Rect{
		X:      x,
		Y:      y,
		Width:  max(a.Right(), b.Right()) - x,
		Height: max(a.Bottom(), b.Bottom()) - y,
	}
}
