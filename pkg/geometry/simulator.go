package geometry

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Call is one recorded operation against a Simulator.
type Call struct {
	Op       Op         `json:"op"`
	WindowID uint32     `json:"window_id"`
	TopLeft  geom.Point `json:"top_left,omitzero"`
	Size     geom.Size  `json:"size,omitzero"`
}

type failure struct {
	op  Op
	err error
}

// Simulator is an in-memory Backend. It keeps one frame per window id,
// records every call in order and can be told to fail specific operations.
//
// A Simulator is safe for concurrent use, but it also detects overlapping
// calls: if a second call starts while another is in flight, the second one
// fails with INTERNAL_ERROR and Overlaps is incremented.
type Simulator struct {
	mu       sync.Mutex
	frames   map[uint32]geom.Rect
	calls    []Call
	failures map[uint32]failure

	inFlight atomic.Bool
	overlaps atomic.Int64
}

// NewSimulator creates an empty simulator.
func NewSimulator() *Simulator {
	return &Simulator{
		frames:   make(map[uint32]geom.Rect),
		failures: make(map[uint32]failure),
	}
}

// Place seeds the frame of a window without recording a call.
func (s *Simulator) Place(windowID uint32, r geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[windowID] = r
}

// Remove forgets a window, so later calls on it fail with WINDOW_GONE.
func (s *Simulator) Remove(windowID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.frames, windowID)
}

// FailOn makes the next and all later op calls for windowID return err. An
// empty op matches every operation.
func (s *Simulator) FailOn(windowID uint32, op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[windowID] = failure{op: op, err: err}
}

// Frame returns the current frame of a window.
func (s *Simulator) Frame(windowID uint32) (geom.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.frames[windowID]
	return r, ok
}

// Frames returns a copy of all frames.
func (s *Simulator) Frames() map[uint32]geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.frames)
}

// Calls returns a copy of the call log.
func (s *Simulator) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// ResetCalls clears the call log.
func (s *Simulator) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Overlaps returns how many calls started while another was in flight.
func (s *Simulator) Overlaps() int64 { return s.overlaps.Load() }

func (s *Simulator) enter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.overlaps.Add(1)
		return errors.New(errors.ErrCodeInternal, "overlapping geometry call")
	}
	return nil
}

func (s *Simulator) leave() { s.inFlight.Store(false) }

// record appends the call and returns the injected failure, if any. The
// caller holds s.mu.
func (s *Simulator) record(c Call) error {
	s.calls = append(s.calls, c)
	if f, ok := s.failures[c.WindowID]; ok && (f.op == "" || f.op == c.Op) {
		return f.err
	}
	return nil
}

func gone(w *tree.Window) error {
	return errors.New(errors.ErrCodeWindowGone, "window %d does not exist", w.WindowID)
}

func (s *Simulator) TopLeftCorner(ctx context.Context, w *tree.Window) (geom.Point, error) {
	if err := s.enter(ctx); err != nil {
		return geom.Point{}, err
	}
	defer s.leave()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpTopLeft, WindowID: w.WindowID}); err != nil {
		return geom.Point{}, err
	}
	r, ok := s.frames[w.WindowID]
	if !ok {
		return geom.Point{}, gone(w)
	}
	return r.TopLeft(), nil
}

// CenterApproximation returns nil for windows the simulator has never seen.
func (s *Simulator) CenterApproximation(ctx context.Context, w *tree.Window) (*geom.Point, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	defer s.leave()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpCenter, WindowID: w.WindowID}); err != nil {
		return nil, err
	}
	r, ok := s.frames[w.WindowID]
	if !ok {
		return nil, nil
	}
	c := r.Center()
	return &c, nil
}

func (s *Simulator) SetFrame(ctx context.Context, w *tree.Window, topLeft geom.Point, size geom.Size) error {
	if err := s.enter(ctx); err != nil {
		return err
	}
	defer s.leave()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpSetFrame, WindowID: w.WindowID, TopLeft: topLeft, Size: size}); err != nil {
		return err
	}
	s.frames[w.WindowID] = geom.Rect{X: topLeft.X, Y: topLeft.Y, Width: size.Width, Height: size.Height}
	return nil
}

// SetTopLeftCorner keeps the window's size. Unknown windows get a zero size.
func (s *Simulator) SetTopLeftCorner(ctx context.Context, w *tree.Window, topLeft geom.Point) error {
	if err := s.enter(ctx); err != nil {
		return err
	}
	defer s.leave()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpSetTopLeft, WindowID: w.WindowID, TopLeft: topLeft}); err != nil {
		return err
	}
	r := s.frames[w.WindowID]
	r.X, r.Y = topLeft.X, topLeft.Y
	s.frames[w.WindowID] = r
	return nil
}
