// Package pipeline runs layout passes over a scene.
//
// The pipeline is shared by every entry point (`hyprtile layout`, the TUI
// preview and `hyprtile serve`) so they agree on defaults, caching and
// snapshot history:
//
//  1. Build: validate the scene and create its trees
//  2. Layout: run one or more passes over the selected workspaces
//  3. Report: capture the rects every node received
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	result, err := runner.Execute(ctx, sc, pipeline.Options{Passes: 2})
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Frames {
//	    fmt.Println(f.WindowID, f.Rect)
//	}
//
// Results are cached by scene hash, config hash and options. Each pass
// that actually ran is saved to the snapshot store when one is configured.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyprtile/pkg/config"
	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/geometry"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/scene"
)

const (
	// DefaultPasses is the number of passes per run. Tiles layout
	// normalizes weights during a pass, so a second pass is a fixed point.
	DefaultPasses = 1

	// MaxPasses bounds Options.Passes.
	MaxPasses = 16
)

// Options configures a run.
type Options struct {
	// Config drives gaps, padding and ratios. Nil means config.Default().
	Config *config.Config

	// Passes is how many times each workspace is laid out.
	Passes int

	// Workspace restricts the run to one workspace, which need not be
	// visible. Empty means every workspace shown on a monitor.
	Workspace string

	// Refresh bypasses the cache read; the result is still written back.
	Refresh bool

	// NoSnapshot skips saving to the snapshot store.
	NoSnapshot bool

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Passes == 0 {
		o.Passes = DefaultPasses
	}
	if o.Passes < 0 || o.Passes > MaxPasses {
		return errors.New(errors.ErrCodeInvalidInput, "passes must be between 1 and %d, got %d", MaxPasses, o.Passes)
	}
	if o.Workspace != "" {
		if err := errors.ValidateName(o.Workspace); err != nil {
			return err
		}
	}
	return nil
}

// Frame is the final frame of one window.
type Frame struct {
	WindowID uint32    `json:"window_id"`
	Rect     geom.Rect `json:"rect"`
}

// Result is the outcome of a run.
type Result struct {
	SceneHash string                  `json:"scene_hash"`
	Report    scene.Report            `json:"report"`
	Frames    []Frame                 `json:"frames"`
	Calls     []geometry.Call         `json:"calls"`
	Stats     map[string]layout.Stats `json:"stats"`
	Duration  time.Duration           `json:"duration"`
	CacheHit  bool                    `json:"cache_hit"`
}

// Frame returns the final frame of a window.
func (r *Result) Frame(windowID uint32) (geom.Rect, bool) {
	for _, f := range r.Frames {
		if f.WindowID == windowID {
			return f.Rect, true
		}
	}
	return geom.Rect{}, false
}
