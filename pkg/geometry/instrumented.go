package geometry

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/observability"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Instrumented wraps a Backend, logging every call at debug level and
// reporting it to the registered geometry hooks.
type Instrumented struct {
	Backend Backend
	Logger  *log.Logger
}

// Instrument returns b wrapped with logging and hooks. A nil logger
// discards log output.
func Instrument(b Backend, logger *log.Logger) *Instrumented {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Instrumented{Backend: b, Logger: logger}
}

func (i *Instrumented) observe(ctx context.Context, op Op, w *tree.Window, start time.Time, err error, kv ...any) {
	d := time.Since(start)
	observability.Geometry().OnGeometryCall(ctx, string(op), w.WindowID, d, err)
	args := append([]any{"op", op, "window", w.WindowID, "duration", d}, kv...)
	if err != nil {
		i.Logger.Warn("geometry call failed", append(args, "err", err)...)
		return
	}
	i.Logger.Debug("geometry", args...)
}

func (i *Instrumented) TopLeftCorner(ctx context.Context, w *tree.Window) (geom.Point, error) {
	start := time.Now()
	p, err := i.Backend.TopLeftCorner(ctx, w)
	i.observe(ctx, OpTopLeft, w, start, err)
	return p, err
}

func (i *Instrumented) CenterApproximation(ctx context.Context, w *tree.Window) (*geom.Point, error) {
	start := time.Now()
	p, err := i.Backend.CenterApproximation(ctx, w)
	i.observe(ctx, OpCenter, w, start, err)
	return p, err
}

func (i *Instrumented) SetFrame(ctx context.Context, w *tree.Window, topLeft geom.Point, size geom.Size) error {
	start := time.Now()
	err := i.Backend.SetFrame(ctx, w, topLeft, size)
	i.observe(ctx, OpSetFrame, w, start, err, "rect", geom.NewRect(topLeft, size))
	return err
}

func (i *Instrumented) SetTopLeftCorner(ctx context.Context, w *tree.Window, topLeft geom.Point) error {
	start := time.Now()
	err := i.Backend.SetTopLeftCorner(ctx, w, topLeft)
	i.observe(ctx, OpSetTopLeft, w, start, err, "x", topLeft.X, "y", topLeft.Y)
	return err
}
