package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hyprtile/pkg/scene"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds weights and physical rects to node labels.
	Detailed bool
}

// ToDOT converts a workspace report to Graphviz DOT. Node ids are
// positional (n0, n1, ...) so the output is stable across runs.
func ToDOT(ws scene.WorkspaceReport, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	wsLabel := "workspace " + ws.Name + "\n" + ws.Monitor
	fmt.Fprintf(&buf, "  ws [label=%q, shape=folder, fillcolor=lightgrey];\n", wsLabel)

	// parents[d] is the DOT id of the last node seen at depth d.
	var parents []string
	var edges []string
	for i, n := range ws.Nodes {
		id := "n" + strconv.Itoa(i)
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))

		parents = append(parents[:n.Depth], id)
		parent := "ws"
		if n.Depth > 0 {
			parent = parents[n.Depth-1]
		}
		edge := fmt.Sprintf("  %s -> %s", parent, id)
		if n.Floating || n.Kind == tree.KindSystemContainer.String() {
			edge += " [style=dashed]"
		}
		edges = append(edges, edge+";")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e + "\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n scene.NodeReport, detailed bool) string {
	var label string
	switch n.Kind {
	case tree.KindTilingContainer.String():
		label = n.Layout + " " + n.Orientation
	case tree.KindWindow.String():
		label = fmt.Sprintf("#%d", n.WindowID)
		if n.Title != "" {
			label += " " + n.Title
		}
	default:
		label = n.Layout
	}
	if !detailed {
		return label
	}

	var parts []string
	if n.Weight != 0 {
		parts = append(parts, fmt.Sprintf("weight: %g", n.Weight))
	}
	if n.Physical != nil {
		parts = append(parts, n.Physical.String())
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n scene.NodeReport, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch {
	case n.Kind == tree.KindTilingContainer.String():
		attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightblue")
	case n.Kind == tree.KindSystemContainer.String():
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=gray40")
	case n.Fullscreen:
		attrs = append(attrs, "penwidth=3")
	case n.Floating:
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with one sized in
// user units, so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
