// Package tree models the container tree of a workspace.
//
// A tree is a closed set of node variants:
//
//   - [Workspace]: the root; owns one root [TilingContainer] and any number
//     of floating windows and system containers.
//   - [TilingContainer]: owns ordered children, an orientation, a layout
//     mode and per-child weights.
//   - [Window]: a leaf.
//   - [SystemContainer]: an opaque holder (minimized, OS fullscreen, popup,
//     hidden app) that never takes part in layout.
//
// The variant set is sealed: [Node] carries an unexported method, so a type
// switch over the four concrete types is exhaustive.
//
// Ownership is strictly tree shaped. [Attach] refuses to give a node a
// second parent or to create a cycle.
package tree

import (
	"github.com/google/uuid"

	"github.com/matzehuels/hyprtile/pkg/geom"
)

// Kind identifies a node variant.
type Kind int

const (
	KindWorkspace Kind = iota
	KindTilingContainer
	KindWindow
	KindSystemContainer
)

func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindTilingContainer:
		return "container"
	case KindWindow:
		return "window"
	case KindSystemContainer:
		return "system"
	}
	return "unknown"
}

// Node is implemented by *Workspace, *TilingContainer, *Window and
// *SystemContainer only.
type Node interface {
	ID() string
	Kind() Kind
	Parent() Node
	Children() []Node

	// Weight returns the node's share of its parent's extent along o.
	Weight(o geom.Orientation) float64
	SetWeight(o geom.Orientation, w float64)

	// LastAppliedLayoutPhysicalRect is where the node was placed by the last
	// layout pass, or nil (never laid out, fullscreen, floating, mid-drag).
	LastAppliedLayoutPhysicalRect() *geom.Rect
	// LastAppliedLayoutVirtualRect is the monitor-independent counterpart.
	LastAppliedLayoutVirtualRect() *geom.Rect
	SetLastAppliedLayoutRects(physical, virtual *geom.Rect)

	base() *nodeBase
}

type nodeBase struct {
	id       string
	parent   Node
	children []Node
	mru      Node

	hWeight float64
	vWeight float64

	lastPhysical *geom.Rect
	lastVirtual  *geom.Rect
}

func newBase() nodeBase {
	return nodeBase{id: uuid.NewString()}
}

func (b *nodeBase) base() *nodeBase { return b }

// ID returns the node's stable identifier.
func (b *nodeBase) ID() string { return b.id }

// Parent returns the owning node, or nil for a workspace or a detached node.
func (b *nodeBase) Parent() Node { return b.parent }

// Children returns the ordered children. The slice must not be modified.
func (b *nodeBase) Children() []Node { return b.children }

func (b *nodeBase) Weight(o geom.Orientation) float64 {
	if o == geom.H {
		return b.hWeight
	}
	return b.vWeight
}

func (b *nodeBase) SetWeight(o geom.Orientation, w float64) {
	if o == geom.H {
		b.hWeight = w
	} else {
		b.vWeight = w
	}
}

func (b *nodeBase) LastAppliedLayoutPhysicalRect() *geom.Rect { return b.lastPhysical }
func (b *nodeBase) LastAppliedLayoutVirtualRect() *geom.Rect  { return b.lastVirtual }

func (b *nodeBase) SetLastAppliedLayoutRects(physical, virtual *geom.Rect) {
	b.lastPhysical = physical
	b.lastVirtual = virtual
}

// OwnIndex returns the position of n within its parent, or -1.
func OwnIndex(n Node) int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	for i, c := range p.Children() {
		if c == n {
			return i
		}
	}
	return -1
}

// MostRecentChild returns the child of n that was most recently marked,
// falling back to the last child. It returns nil for a childless node.
func MostRecentChild(n Node) Node {
	b := n.base()
	if b.mru != nil && b.mru.Parent() == n {
		return b.mru
	}
	if len(b.children) == 0 {
		return nil
	}
	return b.children[len(b.children)-1]
}

// MarkAsMostRecentChild records n as the most recently used child of its
// parent, and so on up to the workspace.
func MarkAsMostRecentChild(n Node) {
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		cur.Parent().base().mru = cur
	}
}

// MostRecentWindowRecursive follows the most-recent-child chain from n
// down to a window. It returns nil when the chain ends without one.
func MostRecentWindowRecursive(n Node) *Window {
	for cur := n; cur != nil; cur = MostRecentChild(cur) {
		if w, ok := cur.(*Window); ok {
			return w
		}
	}
	return nil
}

// AllWindows returns every window in the subtree of n, depth first.
func AllWindows(n Node) []*Window {
	var out []*Window
	Walk(n, func(node Node) bool {
		if w, ok := node.(*Window); ok {
			out = append(out, w)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// WorkspaceOf returns the workspace that owns n, or nil for a detached
// subtree.
func WorkspaceOf(n Node) *Workspace {
	for cur := n; cur != nil; cur = cur.Parent() {
		if ws, ok := cur.(*Workspace); ok {
			return ws
		}
	}
	return nil
}
