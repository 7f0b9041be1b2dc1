package tree

import (
	"fmt"

	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/monitor"
)

// Layout is a tiling container's layout mode.
type Layout int

const (
	LayoutTiles Layout = iota
	LayoutAccordion
	LayoutHyprland
)

func (l Layout) String() string {
	switch l {
	case LayoutTiles:
		return "tiles"
	case LayoutAccordion:
		return "accordion"
	case LayoutHyprland:
		return "hyprland"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout converts a layout name.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "tiles":
		return LayoutTiles, nil
	case "accordion":
		return LayoutAccordion, nil
	case "hyprland":
		return LayoutHyprland, nil
	}
	return LayoutTiles, fmt.Errorf("unknown layout %q", s)
}

// Workspace is the tree root.
type Workspace struct {
	nodeBase
	Name    string
	Monitor *monitor.Monitor

	root *TilingContainer
}

// NewWorkspace creates a workspace on m with an empty root container.
func NewWorkspace(name string, m *monitor.Monitor, layout Layout, orientation geom.Orientation) *Workspace {
	ws := &Workspace{Name: name, Monitor: m}
	ws.nodeBase = newBase()
	root := NewTilingContainer(orientation, layout)
	root.parent = ws
	ws.children = append(ws.children, root)
	ws.root = root
	return ws
}

func (w *Workspace) Kind() Kind { return KindWorkspace }

// RootTilingContainer returns the single root container.
func (w *Workspace) RootTilingContainer() *TilingContainer { return w.root }

// FloatingWindows returns the windows owned directly by the workspace.
func (w *Workspace) FloatingWindows() []*Window {
	var out []*Window
	for _, c := range w.children {
		if win, ok := c.(*Window); ok {
			out = append(out, win)
		}
	}
	return out
}

// IsEffectivelyEmpty reports whether the workspace holds no windows at all,
// tiled or floating. System containers do not count.
func (w *Workspace) IsEffectivelyEmpty() bool {
	empty := true
	Walk(w, func(n Node) bool {
		switch n.(type) {
		case *Window:
			empty = false
		case *SystemContainer:
			return false
		}
		return empty
	})
	return empty
}

func (w *Workspace) String() string { return "workspace " + w.Name }

// TilingContainer distributes its extent among children.
type TilingContainer struct {
	nodeBase
	Orientation geom.Orientation
	Layout      Layout

	// SplitRatio overrides the configured hyprland ratio when > 0.
	SplitRatio float64
}

// NewTilingContainer creates a detached container.
func NewTilingContainer(orientation geom.Orientation, layout Layout) *TilingContainer {
	c := &TilingContainer{Orientation: orientation, Layout: layout}
	c.nodeBase = newBase()
	c.hWeight, c.vWeight = 1, 1
	return c
}

func (c *TilingContainer) Kind() Kind { return KindTilingContainer }

// IsRoot reports whether c is a workspace's root container.
func (c *TilingContainer) IsRoot() bool {
	_, ok := c.parent.(*Workspace)
	return ok
}

func (c *TilingContainer) String() string {
	return fmt.Sprintf("%s %s container", c.Layout, c.Orientation)
}

// Window is a leaf.
type Window struct {
	nodeBase
	WindowID uint32
	Title    string
	App      string

	// Fullscreen requests the monitor rect instead of the tiled rect.
	Fullscreen bool

	// Manipulated is set by the pointer-drag subsystem while the user moves
	// or resizes the window. Layout passes leave such windows alone.
	Manipulated bool
}

// NewWindow creates a detached window.
func NewWindow(windowID uint32, title string) *Window {
	w := &Window{WindowID: windowID, Title: title}
	w.nodeBase = newBase()
	w.hWeight, w.vWeight = 1, 1
	return w
}

func (w *Window) Kind() Kind { return KindWindow }

// IsFloating reports whether w is owned directly by a workspace.
func (w *Window) IsFloating() bool {
	_, ok := w.parent.(*Workspace)
	return ok
}

func (w *Window) String() string {
	return fmt.Sprintf("window %d %q", w.WindowID, w.Title)
}

// SystemRole names the purpose of a system container.
type SystemRole int

const (
	RoleMinimized SystemRole = iota
	RoleFullscreen
	RolePopup
	RoleHiddenApps
)

func (r SystemRole) String() string {
	switch r {
	case RoleMinimized:
		return "minimized"
	case RoleFullscreen:
		return "fullscreen"
	case RolePopup:
		return "popup"
	case RoleHiddenApps:
		return "hidden-apps"
	}
	return "unknown"
}

// ParseSystemRole converts a role name.
func ParseSystemRole(s string) (SystemRole, error) {
	for r := RoleMinimized; r <= RoleHiddenApps; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return RoleMinimized, fmt.Errorf("unknown system container role %q", s)
}

// SystemContainer holds windows the OS manages on its own.
type SystemContainer struct {
	nodeBase
	Role SystemRole
}

// NewSystemContainer creates a detached system container.
func NewSystemContainer(role SystemRole) *SystemContainer {
	s := &SystemContainer{Role: role}
	s.nodeBase = newBase()
	return s
}

func (s *SystemContainer) Kind() Kind { return KindSystemContainer }

func (s *SystemContainer) String() string { return s.Role.String() + " system container" }
