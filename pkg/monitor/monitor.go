// Package monitor models the physical displays a workspace can be shown on.
//
// A [Monitor] has a full frame and a visible rect (the frame minus menu bar
// and dock). The layout engine only ever lays windows out inside the visible
// rect, optionally padded by outer gaps. A [Set] answers the "which monitor
// is this point on" question used when floating windows migrate between
// monitors.
package monitor

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hyprtile/pkg/geom"
)

// Monitor is a single display.
type Monitor struct {
	Name    string    `json:"name" bson:"name"`
	Frame   geom.Rect `json:"frame" bson:"frame"`
	Visible geom.Rect `json:"visible" bson:"visible"`
	Main    bool      `json:"main,omitempty" bson:"main,omitempty"`

	// ActiveWorkspace is the name of the workspace currently shown on the monitor.
	ActiveWorkspace string `json:"active_workspace,omitempty" bson:"active_workspace,omitempty"`
}

// VisibleRect returns the usable area of the monitor.
func (m *Monitor) VisibleRect() geom.Rect { return m.Visible }

// VisibleRectPaddedByOuterGaps returns the visible rect shrunk by outer gaps.
func (m *Monitor) VisibleRectPaddedByOuterGaps(outer geom.Insets) geom.Rect {
	return m.Visible.InsetBy(outer)
}

func (m *Monitor) String() string {
	return fmt.Sprintf("%s %s", m.Name, m.Frame)
}

// Set is the ordered collection of attached monitors.
type Set struct {
	monitors []*Monitor
}

// NewSet creates a set. If no monitor is flagged as main, the first one is.
func NewSet(monitors ...*Monitor) *Set {
	s := &Set{monitors: monitors}
	if len(monitors) > 0 && s.findMain() == nil {
		monitors[0].Main = true
	}
	return s
}

// All returns the monitors in attachment order.
func (s *Set) All() []*Monitor { return s.monitors }

// Len returns the number of monitors.
func (s *Set) Len() int { return len(s.monitors) }

// Main returns the main monitor, or nil for an empty set.
func (s *Set) Main() *Monitor { return s.findMain() }

func (s *Set) findMain() *Monitor {
	for _, m := range s.monitors {
		if m.Main {
			return m
		}
	}
	return nil
}

// ByName looks a monitor up by case-insensitive name.
func (s *Set) ByName(name string) (*Monitor, bool) {
	for _, m := range s.monitors {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// ApproximateMonitor returns the monitor whose frame contains p, falling
// back to the monitor closest to p. It returns nil only for an empty set.
func (s *Set) ApproximateMonitor(p geom.Point) *Monitor {
	var best *Monitor
	bestDist := 0.0
	for _, m := range s.monitors {
		if m.Frame.Contains(p) {
			return m
		}
		if d := m.Frame.Distance(p); best == nil || d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// ActiveWorkspace returns the name of the workspace visible on m.
func (s *Set) ActiveWorkspace(m *Monitor) string {
	if m == nil {
		return ""
	}
	return m.ActiveWorkspace
}
