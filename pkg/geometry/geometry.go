// Package geometry defines the window-geometry capability the layout engine
// drives, plus an in-memory backend and an instrumented decorator.
//
// Every method may block and may fail: a real backend talks to the window
// server, the window may have been destroyed, or the owning application may
// not answer. The layout engine issues calls strictly one at a time.
package geometry

import (
	"context"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Op names a geometry operation in call logs and hook events.
type Op string

const (
	OpTopLeft    Op = "top-left"
	OpCenter     Op = "center"
	OpSetFrame   Op = "set-frame"
	OpSetTopLeft Op = "set-top-left"
)

// Backend reads and writes on-screen window frames.
type Backend interface {
	// TopLeftCorner returns the current top-left corner of w.
	TopLeftCorner(ctx context.Context, w *tree.Window) (geom.Point, error)

	// CenterApproximation returns the approximate center of w, or nil when
	// the backend cannot tell. Two consecutive reads may differ slightly.
	CenterApproximation(ctx context.Context, w *tree.Window) (*geom.Point, error)

	// SetFrame moves and resizes w.
	SetFrame(ctx context.Context, w *tree.Window, topLeft geom.Point, size geom.Size) error

	// SetTopLeftCorner moves w without resizing it.
	SetTopLeftCorner(ctx context.Context, w *tree.Window, topLeft geom.Point) error
}

var (
	_ Backend = (*Simulator)(nil)
	_ Backend = (*Instrumented)(nil)
)
