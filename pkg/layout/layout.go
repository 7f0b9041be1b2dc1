// Package layout computes window frames for a workspace.
//
// A pass starts at the workspace, walks the container tree depth first and
// pre-order, and issues one geometry call at a time:
//
//	lc := layout.NewContext(ws, cfg, monitors, backend, logger)
//	stats, err := layout.LayoutWorkspace(ctx, lc)
//
// Tiling containers delegate to the [Strategy] of their layout mode
// ([Tiles], [Accordion] or [Hyprland]). Windows get their tiled frame, or
// the monitor rect when they are the fullscreen most recent window of the
// workspace. Floating windows are handled after the tiled tree: they keep
// their size and follow their workspace to a new monitor proportionally.
//
// Every node visited records the physical and virtual rect it was given
// (see [tree.Node.LastAppliedLayoutPhysicalRect]). The virtual track is
// split by weights and ratios only, never by gaps, so it stays meaningful
// when the workspace moves to a monitor of a different size.
//
// A failing geometry call aborts the pass. Frames already applied stay as
// they are; the next pass corrects them.
package layout

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/geometry"
	"github.com/matzehuels/hyprtile/pkg/observability"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Stats counts what a pass did.
type Stats struct {
	Containers int           `json:"containers"`
	Tiled      int           `json:"tiled"`
	Fullscreen int           `json:"fullscreen"`
	Floating   int           `json:"floating"`
	Skipped    int           `json:"skipped"`
	Moved      int           `json:"moved"`
	Duration   time.Duration `json:"duration"`
}

type pass struct {
	lc    *Context
	stats Stats
}

// LayoutWorkspace runs one layout pass over lc's workspace. A workspace
// without windows is left untouched.
func LayoutWorkspace(ctx context.Context, lc *Context) (Stats, error) {
	ws := lc.Workspace()
	if ws.IsEffectivelyEmpty() {
		return Stats{}, nil
	}
	if ws.Monitor == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "%v has no monitor", ws)
	}

	start := time.Now()
	observability.Layout().OnPassStart(ctx, ws.Name, len(tree.AllWindows(ws)))

	p := &pass{lc: lc}
	rect := ws.Monitor.VisibleRectPaddedByOuterGaps(lc.Gaps().Outer)
	// One point shorter: some window servers refuse a window the full
	// height when a narrower monitor sits directly below.
	err := p.layoutRecursive(ctx, ws, rect.TopLeft(), rect.Width, rect.Height-1, rect)

	p.stats.Duration = time.Since(start)
	observability.Layout().OnPassComplete(ctx, ws.Name, p.stats.Duration, err)
	if err != nil {
		lc.Logger().Debug("layout pass aborted", "workspace", ws.Name, "err", err)
		return p.stats, err
	}
	lc.Logger().Debug("layout pass", "workspace", ws.Name, "tiled", p.stats.Tiled, "floating", p.stats.Floating, "duration", p.stats.Duration)
	return p.stats, nil
}

func (p *pass) layoutRecursive(ctx context.Context, n tree.Node, at geom.Point, width, height float64, virtual geom.Rect) error {
	// Gaps wider than the extent leave nothing to hand out.
	width, height = math.Max(0, width), math.Max(0, height)
	physical := geom.Rect{X: at.X, Y: at.Y, Width: width, Height: height}
	virtual = virtual.Clamp()
	log := p.lc.Logger()

	switch n := n.(type) {
	case *tree.Workspace:
		n.SetLastAppliedLayoutRects(&physical, &virtual)
		if err := p.layoutRecursive(ctx, n.RootTilingContainer(), at, width, height, virtual); err != nil {
			return err
		}
		for _, w := range n.FloatingWindows() {
			w.SetLastAppliedLayoutRects(nil, nil)
			if err := p.layoutFloating(ctx, w); err != nil {
				return err
			}
		}
		return nil

	case *tree.Window:
		if n.Manipulated {
			log.Debug("skip manipulated window", "window", n.WindowID)
			p.stats.Skipped++
			return nil
		}
		if n.Fullscreen && n == tree.MostRecentWindowRecursive(p.lc.Workspace().RootTilingContainer()) {
			n.SetLastAppliedLayoutRects(nil, &virtual)
			p.stats.Fullscreen++
			return p.layoutFullscreen(ctx, n)
		}
		n.SetLastAppliedLayoutRects(&physical, &virtual)
		n.Fullscreen = false
		p.stats.Tiled++
		return p.setFrame(ctx, n, physical)

	case *tree.TilingContainer:
		n.SetLastAppliedLayoutRects(&physical, &virtual)
		p.stats.Containers++
		log.Debug("layout container", "layout", n.Layout, "orientation", n.Orientation, "children", len(n.Children()), "rect", physical)
		return StrategyFor(n.Layout).Layout(ctx, p.lc, n, at, width, height, virtual, p.layoutRecursive)

	case *tree.SystemContainer:
		return nil
	}
	return errors.New(errors.ErrCodeInternal, "unexpected node %T", n)
}

// layoutFloating keeps a floating window at the same relative position when
// its workspace is shown on a different monitor than the one it sits on,
// then applies a pending fullscreen request once.
func (p *pass) layoutFloating(ctx context.Context, w *tree.Window) error {
	if w.Manipulated {
		p.stats.Skipped++
		return nil
	}
	p.stats.Floating++
	ws := p.lc.Workspace()
	backend := p.lc.backend

	center, err := backend.CenterApproximation(ctx, w)
	if err != nil {
		return geometryError(ctx, err, geometry.OpCenter, w)
	}
	if center != nil && p.lc.monitors != nil {
		// Not idempotent: the center can drift between reads, so a window
		// straddling two monitors may resolve differently on the next pass.
		current := p.lc.monitors.ApproximateMonitor(*center)
		if current != nil {
			topLeft, err := backend.TopLeftCorner(ctx, w)
			if err != nil {
				return geometryError(ctx, err, geometry.OpTopLeft, w)
			}
			// A hidden workspace laid out on its own monitor stays put.
			if current.Name != ws.Monitor.Name && p.lc.monitors.ActiveWorkspace(current) != ws.Name {
				to := remap(topLeft, current.VisibleRect(), ws.Monitor.VisibleRect())
				p.lc.Logger().Debug("move floating window", "window", w.WindowID, "from", current.Name, "to", ws.Monitor.Name)
				if err := backend.SetTopLeftCorner(ctx, w, to); err != nil {
					return geometryError(ctx, err, geometry.OpSetTopLeft, w)
				}
				p.stats.Moved++
			}
		}
	}

	if w.Fullscreen {
		if err := p.layoutFullscreen(ctx, w); err != nil {
			return err
		}
		w.Fullscreen = false
	}
	return nil
}

// remap moves p from its relative position inside from to the same
// relative position inside to.
func remap(p geom.Point, from, to geom.Rect) geom.Point {
	var xp, yp float64
	if from.Width > 0 {
		xp = (p.X - from.X) / from.Width
	}
	if from.Height > 0 {
		yp = (p.Y - from.Y) / from.Height
	}
	return geom.Point{X: to.X + xp*to.Width, Y: to.Y + yp*to.Height}
}

func (p *pass) layoutFullscreen(ctx context.Context, w *tree.Window) error {
	m := p.lc.Workspace().Monitor
	rect := m.VisibleRectPaddedByOuterGaps(p.lc.Gaps().Outer)
	if p.lc.Config().NoOuterGapsInFullscreen {
		rect = m.VisibleRect()
	}
	return p.setFrame(ctx, w, rect)
}

func (p *pass) setFrame(ctx context.Context, w *tree.Window, r geom.Rect) error {
	size := geom.Size{Width: math.Max(0, r.Width), Height: math.Max(0, r.Height)}
	if err := p.lc.backend.SetFrame(ctx, w, r.TopLeft(), size); err != nil {
		return geometryError(ctx, err, geometry.OpSetFrame, w)
	}
	return nil
}

// geometryError tags a backend failure as GEOMETRY_FAILED unless it already
// carries a geometry code. Context cancellation passes through untouched.
func geometryError(ctx context.Context, err error, op geometry.Op, w *tree.Window) error {
	if ctx.Err() != nil || errors.IsGeometry(err) {
		return err
	}
	return errors.Wrap(errors.ErrCodeGeometry, err, "%s %v", op, w)
}
