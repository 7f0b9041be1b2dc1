// Package pkg provides the core libraries of hyprtile, a tiling layout engine
// for workspaces of windows spread over one or more monitors.
//
// # Overview
//
// A desktop is a set of monitors, each showing one workspace. Every workspace
// owns a container tree: tiling containers distribute their extent among
// children (tiles, accordion or hyprland-style dwindle), windows are the
// leaves, and floating windows and system containers hang off the workspace
// itself. A layout pass walks that tree and moves windows through a
// [geometry] backend.
//
// # Architecture
//
// The data flow through hyprtile:
//
//	scene file (JSON or TOML)
//	         ↓
//	    [scene] package (decode, validate, build trees)
//	         ↓
//	    [layout] package (gaps, strategies, floating and fullscreen)
//	         ↓
//	    [geometry] backend (set-frame calls, recorded frames)
//	         ↓
//	    frames table, SVG, terminal picture, DOT tree
//
// [pipeline] ties these steps together with a result [cache] and a snapshot
// [store]; the CLI and the HTTP server both run through it.
//
// # Quick Start
//
//	sc, _ := scene.ReadFile("desk.json")
//	cfg := config.Default()
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	res, _ := runner.Execute(ctx, sc, pipeline.Options{Config: cfg})
//	for _, f := range res.Frames {
//	    fmt.Println(f.WindowID, f.Rect)
//	}
//
// # Main Packages
//
// [geom], [monitor] and [tree] hold the model: rectangles and orientations,
// monitors with their visible rects, and the sealed node variants of a
// workspace tree.
//
// [config] decodes hyprtile.toml: gaps with per-monitor overrides,
// accordion padding, the hyprland ratio and root container defaults.
//
// [layout] is the engine. [layout.LayoutWorkspace] runs one pass over a
// workspace.
//
// [render/frames], [render/term] and [render/nodelink] turn a result into
// an SVG of the monitors, a box picture for the terminal, or a Graphviz
// drawing of the tree.
//
// [cache] (file, Redis, null) and [store] (file, MongoDB) back the
// pipeline. [observability] exposes hooks for metrics.
//
// [errors] carries the error codes shared by every entry point.
package pkg
