package pipeline

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyprtile/pkg/cache"
	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geometry"
	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/observability"
	"github.com/matzehuels/hyprtile/pkg/scene"
	"github.com/matzehuels/hyprtile/pkg/store"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Runner executes the pipeline with caching and snapshot history.
//
// A Runner holds no per-run state; one Runner may serve concurrent runs.
// Each run builds its own trees and backend.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// Prepare, when set, sees each freshly built desktop before any pass
	// runs. Tests use it to inject geometry failures.
	Prepare func(*scene.Desktop)
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil store disables snapshots.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute builds sc and lays out the selected workspaces.
func (r *Runner) Execute(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	sceneHash, err := cache.HashJSON(sc)
	if err != nil {
		return nil, fmt.Errorf("hash scene: %w", err)
	}
	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}
	key := r.Keyer.ResultKey(sceneHash, cache.ResultKeyOpts{
		Passes:     opts.Passes,
		ConfigHash: configHash,
		Workspace:  opts.Workspace,
	})

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			opts.Logger.Debug("cache hit", "key", key)
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, key)

	res, err := r.run(ctx, sc, sceneHash, opts)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	res.CacheHit = true
	return &res, true
}

func (r *Runner) run(ctx context.Context, sc *scene.Scene, sceneHash string, opts Options) (*Result, error) {
	start := time.Now()
	d, err := scene.Build(sc, opts.Config)
	if err != nil {
		return nil, err
	}

	targets, err := selectWorkspaces(d, opts.Workspace)
	if err != nil {
		return nil, err
	}
	if r.Prepare != nil {
		r.Prepare(d)
	}

	backend := geometry.Instrument(d.Backend, opts.Logger)
	res := &Result{SceneHash: sceneHash, Stats: make(map[string]layout.Stats)}

	for pass := 1; pass <= opts.Passes; pass++ {
		for _, ws := range targets {
			lc := layout.NewContext(ws, opts.Config, d.Monitors, backend, opts.Logger)
			stats, err := layout.LayoutWorkspace(ctx, lc)
			if err != nil {
				return nil, fmt.Errorf("layout workspace %s (pass %d): %w", ws.Name, pass, err)
			}
			res.Stats[ws.Name] = stats
			opts.Logger.Info("laid out workspace",
				"workspace", ws.Name,
				"pass", pass,
				"tiled", stats.Tiled,
				"floating", stats.Floating,
				"duration", stats.Duration)
		}
	}

	res.Report = scene.NewReport(d)
	res.Calls = d.Backend.Calls()
	for id, rect := range d.Backend.Frames() {
		res.Frames = append(res.Frames, Frame{WindowID: id, Rect: rect})
	}
	slices.SortFunc(res.Frames, func(a, b Frame) int { return cmp.Compare(a.WindowID, b.WindowID) })
	res.Duration = time.Since(start)

	if r.Store != nil && !opts.NoSnapshot {
		for _, ws := range targets {
			active := d.Monitors.ActiveWorkspace(ws.Monitor) == ws.Name
			snap := store.NewSnapshot(sceneHash, scene.ReportWorkspace(ws, active), res.Stats[ws.Name])
			if err := r.Store.Save(ctx, snap); err != nil {
				return nil, fmt.Errorf("save snapshot: %w", err)
			}
		}
	}
	return res, nil
}

func selectWorkspaces(d *scene.Desktop, name string) ([]*tree.Workspace, error) {
	if name == "" {
		return d.ActiveWorkspaces(), nil
	}
	ws, ok := d.Workspace(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "workspace %q not found", name)
	}
	return []*tree.Workspace{ws}, nil
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
