package scene

import (
	"github.com/matzehuels/hyprtile/pkg/geom"
)

// Node types.
const (
	TypeContainer = "container"
	TypeWindow    = "window"
	TypeSystem    = "system"
)

// Scene is a serialized desktop.
type Scene struct {
	Monitors   []Monitor   `json:"monitors" toml:"monitors"`
	Workspaces []Workspace `json:"workspaces" toml:"workspaces"`
}

// Monitor describes one display. Visible defaults to Frame.
type Monitor struct {
	Name            string     `json:"name" toml:"name"`
	Frame           geom.Rect  `json:"frame" toml:"frame"`
	Visible         *geom.Rect `json:"visible,omitempty" toml:"visible,omitempty"`
	Main            bool       `json:"main,omitempty" toml:"main,omitempty"`
	ActiveWorkspace string     `json:"active_workspace,omitempty" toml:"active_workspace,omitempty"`
}

// Workspace is a named tree assigned to a monitor.
type Workspace struct {
	Name    string `json:"name" toml:"name"`
	Monitor string `json:"monitor" toml:"monitor"`

	// Root must be a container. Its layout and orientation default to the
	// configured root container defaults.
	Root Node `json:"root" toml:"root"`

	Floating []Node `json:"floating,omitempty" toml:"floating,omitempty"`
	System   []Node `json:"system,omitempty" toml:"system,omitempty"`

	// Focus is the window id marked most recent after the tree is built.
	Focus uint32 `json:"focus,omitempty" toml:"focus,omitempty"`
}

// Node is a container, window or system container.
type Node struct {
	Type string `json:"type" toml:"type"`

	// Container fields.
	Layout      string  `json:"layout,omitempty" toml:"layout,omitempty"`
	Orientation string  `json:"orientation,omitempty" toml:"orientation,omitempty"`
	SplitRatio  float64 `json:"split_ratio,omitempty" toml:"split_ratio,omitempty"`
	MRU         *int    `json:"mru,omitempty" toml:"mru,omitempty"`

	// Window fields.
	ID          uint32     `json:"id,omitempty" toml:"id,omitempty"`
	Title       string     `json:"title,omitempty" toml:"title,omitempty"`
	App         string     `json:"app,omitempty" toml:"app,omitempty"`
	Fullscreen  bool       `json:"fullscreen,omitempty" toml:"fullscreen,omitempty"`
	Manipulated bool       `json:"manipulated,omitempty" toml:"manipulated,omitempty"`
	Frame       *geom.Rect `json:"frame,omitempty" toml:"frame,omitempty"`

	// System container field.
	Role string `json:"role,omitempty" toml:"role,omitempty"`

	// Weight is the share of the parent container; 0 picks a default.
	Weight   float64 `json:"weight,omitempty" toml:"weight,omitempty"`
	Children []Node  `json:"children,omitempty" toml:"children,omitempty"`
}
