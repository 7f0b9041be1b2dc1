package layout

import (
	"math"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/monitor"
)

// InnerGaps are the gaps between siblings, per container orientation.
type InnerGaps struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

// Get returns the inner gap used between children of a container laid out
// along o.
func (g InnerGaps) Get(o geom.Orientation) float64 {
	if o == geom.H {
		return g.Horizontal
	}
	return g.Vertical
}

// ResolvedGaps are the concrete gap magnitudes for one monitor.
type ResolvedGaps struct {
	Inner InnerGaps   `json:"inner"`
	Outer geom.Insets `json:"outer"`
}

// ResolveGaps applies the first matching per-monitor override to the
// configured gaps. Negative values are floored at zero.
func ResolveGaps(gaps config.Gaps, m *monitor.Monitor) ResolvedGaps {
	r := ResolvedGaps{
		Inner: InnerGaps{Horizontal: gaps.Inner.Horizontal, Vertical: gaps.Inner.Vertical},
		Outer: gaps.Outer.Insets(),
	}
	for _, o := range gaps.Overrides {
		if !o.Matches(m) {
			continue
		}
		if o.Inner != nil {
			set(&r.Inner.Horizontal, o.Inner.Horizontal)
			set(&r.Inner.Vertical, o.Inner.Vertical)
		}
		if o.Outer != nil {
			set(&r.Outer.Left, o.Outer.Left)
			set(&r.Outer.Right, o.Outer.Right)
			set(&r.Outer.Top, o.Outer.Top)
			set(&r.Outer.Bottom, o.Outer.Bottom)
		}
		break
	}

	r.Inner.Horizontal = math.Max(0, r.Inner.Horizontal)
	r.Inner.Vertical = math.Max(0, r.Inner.Vertical)
	r.Outer.Left = math.Max(0, r.Outer.Left)
	r.Outer.Right = math.Max(0, r.Outer.Right)
	r.Outer.Top = math.Max(0, r.Outer.Top)
	r.Outer.Bottom = math.Max(0, r.Outer.Bottom)
	return r
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
