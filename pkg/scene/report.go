package scene

import (
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/tree"
)

// Report lists the rects every node was given by the last layout pass.
type Report struct {
	Workspaces []WorkspaceReport `json:"workspaces" bson:"workspaces"`
}

// WorkspaceReport is the report of one workspace.
type WorkspaceReport struct {
	Name     string       `json:"name" bson:"name"`
	Monitor  string       `json:"monitor" bson:"monitor"`
	Active   bool         `json:"active" bson:"active"`
	Physical *geom.Rect   `json:"physical,omitempty" bson:"physical,omitempty"`
	Virtual  *geom.Rect   `json:"virtual,omitempty" bson:"virtual,omitempty"`
	Nodes    []NodeReport `json:"nodes" bson:"nodes"`
}

// NodeReport is one node below the workspace, in pre-order.
type NodeReport struct {
	ID          string     `json:"id" bson:"id"`
	Kind        string     `json:"kind" bson:"kind"`
	Depth       int        `json:"depth" bson:"depth"`
	Layout      string     `json:"layout,omitempty" bson:"layout,omitempty"`
	Orientation string     `json:"orientation,omitempty" bson:"orientation,omitempty"`
	WindowID    uint32     `json:"window_id,omitempty" bson:"window_id,omitempty"`
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Floating    bool       `json:"floating,omitempty" bson:"floating,omitempty"`
	Fullscreen  bool       `json:"fullscreen,omitempty" bson:"fullscreen,omitempty"`
	Weight      float64    `json:"weight" bson:"weight"`
	Physical    *geom.Rect `json:"physical,omitempty" bson:"physical,omitempty"`
	Virtual     *geom.Rect `json:"virtual,omitempty" bson:"virtual,omitempty"`
}

// NewReport captures the cached rects of every workspace in d.
func NewReport(d *Desktop) Report {
	var r Report
	for _, ws := range d.Workspaces {
		r.Workspaces = append(r.Workspaces, ReportWorkspace(ws, d.Monitors.ActiveWorkspace(ws.Monitor) == ws.Name))
	}
	return r
}

// ReportWorkspace captures the cached rects of one workspace.
func ReportWorkspace(ws *tree.Workspace, active bool) WorkspaceReport {
	wr := WorkspaceReport{
		Name:     ws.Name,
		Monitor:  ws.Monitor.Name,
		Active:   active,
		Physical: copyRect(ws.LastAppliedLayoutPhysicalRect()),
		Virtual:  copyRect(ws.LastAppliedLayoutVirtualRect()),
	}
	var visit func(n tree.Node, depth int)
	visit = func(n tree.Node, depth int) {
		nr := NodeReport{
			ID:       n.ID(),
			Kind:     n.Kind().String(),
			Depth:    depth,
			Physical: copyRect(n.LastAppliedLayoutPhysicalRect()),
			Virtual:  copyRect(n.LastAppliedLayoutVirtualRect()),
		}
		if p, ok := n.Parent().(*tree.TilingContainer); ok {
			nr.Weight = n.Weight(p.Orientation)
		}
		switch n := n.(type) {
		case *tree.TilingContainer:
			nr.Layout = n.Layout.String()
			nr.Orientation = n.Orientation.String()
		case *tree.Window:
			nr.WindowID = n.WindowID
			nr.Title = n.Title
			nr.Floating = n.IsFloating()
			nr.Fullscreen = n.Fullscreen
		case *tree.SystemContainer:
			nr.Layout = n.Role.String()
		}
		wr.Nodes = append(wr.Nodes, nr)
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	for _, c := range ws.Children() {
		visit(c, 0)
	}
	return wr
}

// Window returns the report entry of a window.
func (r Report) Window(id uint32) (NodeReport, bool) {
	for _, ws := range r.Workspaces {
		for _, n := range ws.Nodes {
			if n.WindowID == id && n.Kind == tree.KindWindow.String() {
				return n, true
			}
		}
	}
	return NodeReport{}, false
}

func copyRect(r *geom.Rect) *geom.Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
