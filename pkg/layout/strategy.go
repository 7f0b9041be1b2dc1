package layout

import (
	"context"
	"math"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Hyprland split ratio bounds.
const (
	MinHyprlandRatio = 0.1
	MaxHyprlandRatio = 0.9
)

// Recurse lays out one child inside the given physical and virtual rects.
type Recurse func(ctx context.Context, child tree.Node, at geom.Point, width, height float64, virtual geom.Rect) error

// Strategy distributes a container's rect among its children.
type Strategy interface {
	Layout(ctx context.Context, lc *Context, c *tree.TilingContainer, at geom.Point, width, height float64, virtual geom.Rect, recurse Recurse) error
}

// StrategyFor returns the strategy of a layout mode.
func StrategyFor(l tree.Layout) Strategy {
	switch l {
	case tree.LayoutAccordion:
		return Accordion{}
	case tree.LayoutHyprland:
		return Hyprland{}
	default:
		return Tiles{}
	}
}

// Tiles splits the main axis proportionally to child weights. Every child
// spans the full cross axis.
type Tiles struct{}

// Layout first rescales the weights so they sum to the available extent,
// adding the same delta to each, then hands out consecutive slices with
// half an inner gap trimmed off every internal edge.
func (Tiles) Layout(ctx context.Context, lc *Context, c *tree.TilingContainer, at geom.Point, width, height float64, virtual geom.Rect, recurse Recurse) error {
	children := c.Children()
	if len(children) == 0 {
		return nil
	}
	o := c.Orientation

	extent := width
	if o == geom.V {
		extent = height
	}
	var sum float64
	for _, child := range children {
		sum += child.Weight(o)
	}
	delta := (extent - sum) / float64(len(children))

	rawGap := lc.Gaps().Inner.Get(o)
	last := len(children) - 1
	point := at
	virtualPoint := virtual.TopLeft()

	for i, child := range children {
		weight := child.Weight(o) + delta
		child.SetWeight(o, weight)

		gap := rawGap
		if i == 0 {
			gap -= rawGap / 2
		}
		if i == last {
			gap -= rawGap / 2
		}
		start := point
		if i != 0 {
			start = point.AddOffset(o, rawGap/2)
		}

		w, h := width, height
		vw, vh := width, height
		if o == geom.H {
			w, vw = weight-gap, weight
		} else {
			h, vh = weight-gap, weight
		}
		v := geom.Rect{X: virtualPoint.X, Y: virtualPoint.Y, Width: vw, Height: vh}
		if err := recurse(ctx, child, start, w, h, v); err != nil {
			return err
		}

		point = point.AddOffset(o, weight)
		virtualPoint = virtualPoint.AddOffset(o, weight)
	}
	return nil
}

// Accordion stacks every child on the same rect and offsets each along the
// main axis so the most recently used child is fully revealed and the
// others peek out as tabs.
type Accordion struct{}

// Layout is a no-op for a container without children.
func (Accordion) Layout(ctx context.Context, lc *Context, c *tree.TilingContainer, at geom.Point, width, height float64, virtual geom.Rect, recurse Recurse) error {
	mru := tree.MostRecentChild(c)
	if mru == nil {
		return nil
	}
	mruIndex := tree.OwnIndex(mru)
	children := c.Children()
	padding := lc.Config().AccordionPadding

	for i, child := range children {
		l, r := AccordionPadding(i, len(children), mruIndex, padding)
		var err error
		if c.Orientation == geom.H {
			err = recurse(ctx, child, at.AddX(l), width-l-r, height, virtual)
		} else {
			err = recurse(ctx, child, at.AddY(l), width, height-l-r, virtual)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// AccordionPadding returns the leading and trailing padding of the child at
// index in an accordion of count children whose most recent child is at
// mruIndex. The first matching rule wins:
//
//	sole child          0, 0
//	first child         0, p
//	last child          p, 0
//	just before the MRU 0, 2p
//	just after the MRU  2p, 0
//	otherwise           p, p
func AccordionPadding(index, count, mruIndex int, p float64) (leading, trailing float64) {
	switch {
	case index == 0 && count == 1:
		return 0, 0
	case index == 0:
		return 0, p
	case index == count-1:
		return p, 0
	case index == mruIndex-1:
		return 0, 2 * p
	case index == mruIndex+1:
		return 2 * p, 0
	default:
		return p, p
	}
}

// Hyprland peels off the first child at a fixed ratio of the extent and
// recursively splits the rest along the opposite orientation.
type Hyprland struct{}

// Layout uses the container's own split ratio when set, else the
// configured one. Either way the ratio is clamped to
// [MinHyprlandRatio, MaxHyprlandRatio].
func (Hyprland) Layout(ctx context.Context, lc *Context, c *tree.TilingContainer, at geom.Point, width, height float64, virtual geom.Rect, recurse Recurse) error {
	ratio := lc.Config().HyprlandRatio
	if c.SplitRatio > 0 {
		ratio = c.SplitRatio
	}
	rect := geom.Rect{X: at.X, Y: at.Y, Width: width, Height: height}
	return hyprlandSplit(ctx, lc, c.Children(), rect, virtual, c.Orientation, ClampRatio(ratio), recurse)
}

func hyprlandSplit(ctx context.Context, lc *Context, children []tree.Node, rect, virtual geom.Rect, o geom.Orientation, ratio float64, recurse Recurse) error {
	if len(children) == 0 {
		return nil
	}
	first := children[0]
	if len(children) == 1 {
		return recurse(ctx, first, rect.TopLeft(), rect.Width, rect.Height, virtual)
	}

	gap := lc.Gaps().Inner.Get(o)
	extent := rect.Extent(o)
	if extent <= gap {
		gap = 0
	}
	available := math.Max(0, extent-gap)
	firstExtent := available * ratio
	restExtent := math.Max(0, available-firstExtent)

	firstRect := rect.WithExtent(o, firstExtent)
	restRect := geom.NewRect(rect.TopLeft().AddOffset(o, firstExtent+gap), rect.WithExtent(o, restExtent).Size())

	// Virtual rects split by ratio alone, without gaps.
	firstVirtualExtent := virtual.Extent(o) * ratio
	restVirtualExtent := math.Max(0, virtual.Extent(o)-firstVirtualExtent)
	firstVirtual := virtual.WithExtent(o, firstVirtualExtent)
	restVirtual := geom.NewRect(virtual.TopLeft().AddOffset(o, firstVirtualExtent), virtual.WithExtent(o, restVirtualExtent).Size())

	if err := recurse(ctx, first, firstRect.TopLeft(), firstRect.Width, firstRect.Height, firstVirtual); err != nil {
		return err
	}
	return hyprlandSplit(ctx, lc, children[1:], restRect, restVirtual, o.Opposite(), ratio, recurse)
}

// ClampRatio limits a hyprland split ratio to [MinHyprlandRatio, MaxHyprlandRatio].
func ClampRatio(r float64) float64 {
	return math.Min(math.Max(r, MinHyprlandRatio), MaxHyprlandRatio)
}
