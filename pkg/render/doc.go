// Package render groups the visual outputs of a layout run.
//
// # Overview
//
// Layout runs produce frames, which are hard to judge as numbers. The
// subpackages turn them into pictures:
//
//   - [frames]: the windows drawn to scale on their monitors, as SVG
//   - [term]: the same picture as box art for a terminal
//   - [nodelink]: the container tree of a workspace as a Graphviz diagram
//
// All three read the flat [scene.Report] of a run, never the live tree, so
// they can render cached results and stored snapshots alike.
//
//	canvas := frames.NewCanvas(sc, result.Report, frameMap)
//	svg := frames.RenderSVG(canvas)
//	fmt.Println(term.Render(canvas, canvas.Monitors[0], 80, 24))
//
//	dot := nodelink.ToDOT(result.Report.Workspaces[0], nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [frames]: github.com/matzehuels/hyprtile/pkg/render/frames
// [term]: github.com/matzehuels/hyprtile/pkg/render/term
// [nodelink]: github.com/matzehuels/hyprtile/pkg/render/nodelink
// [scene.Report]: github.com/matzehuels/hyprtile/pkg/scene.Report
package render
