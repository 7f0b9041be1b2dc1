package frames

import (
	"bytes"
	"fmt"
	"html"
)

const frameCSS = `
    .monitor { fill: #f4f4f4; stroke: #888; stroke-width: 2; }
    .visible { fill: none; stroke: #bbb; stroke-dasharray: 6 4; }
    .window { fill: #dbeafe; stroke: #1e3a8a; stroke-width: 2; fill-opacity: 0.9; }
    .window.floating { fill: #fef3c7; stroke: #92400e; }
    .window.fullscreen { stroke-width: 4; }
    .label { font-family: sans-serif; fill: #111; }
    .monitor-label { font-family: sans-serif; fill: #666; }`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	hidden bool
}

// WithHidden also draws windows of workspaces that are not shown. They
// are drawn faded at their last frame.
func WithHidden() SVGOption { return func(r *svgRenderer) { r.hidden = true } }

// RenderSVG draws the canvas in screen coordinates.
func RenderSVG(c Canvas, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	b := c.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.X, b.Y, b.Width, b.Height, b.Width, b.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", frameCSS)

	for _, m := range c.Monitors {
		f, v := m.Frame, m.Visible
		fmt.Fprintf(&buf, `  <rect class="monitor" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", f.X, f.Y, f.Width, f.Height)
		if v != f {
			fmt.Fprintf(&buf, `  <rect class="visible" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", v.X, v.Y, v.Width, v.Height)
		}
		label := m.Name
		if m.ActiveWorkspace != "" {
			label += " [" + m.ActiveWorkspace + "]"
		}
		fmt.Fprintf(&buf, `  <text class="monitor-label" x="%.1f" y="%.1f" font-size="14">%s</text>`+"\n",
			f.X+6, f.Bottom()-8, html.EscapeString(label))
	}

	shown := make(map[string]bool)
	for _, m := range c.Monitors {
		shown[m.ActiveWorkspace] = true
	}
	for _, w := range c.Windows {
		visible := shown[w.Workspace]
		if !visible && !r.hidden {
			continue
		}
		renderWindow(&buf, w, visible)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWindow(buf *bytes.Buffer, w Window, visible bool) {
	class := "window"
	if w.Floating {
		class += " floating"
	}
	if w.Fullscreen {
		class += " fullscreen"
	}
	opacity := ""
	if !visible {
		opacity = ` opacity="0.3"`
	}
	r := w.Rect
	fmt.Fprintf(buf, `  <g id="window-%d"%s>`+"\n", w.ID, opacity)
	fmt.Fprintf(buf, `    <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		class, r.X, r.Y, r.Width, r.Height)

	label := fmt.Sprintf("#%d", w.ID)
	if w.Title != "" {
		label += " " + w.Title
	}
	size := min(16, max(8, r.Height/6))
	c := r.Center()
	fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		c.X, c.Y, size, html.EscapeString(label))
	buf.WriteString("  </g>\n")
}
