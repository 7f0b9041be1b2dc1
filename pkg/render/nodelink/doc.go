// Package nodelink renders a workspace's container tree as a node-link
// diagram.
//
// # Usage
//
// Convert a workspace report to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(report.Workspaces[0], nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The workspace is the top node. Containers are drawn as rounded boxes
// labeled with their layout and orientation, windows as plain boxes.
// Floating windows hang off the workspace with a dashed edge and system
// containers are greyed out.
//
// # Options
//
//   - Detailed: labels also carry each node's weight and physical rect
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package nodelink
