package tree

import (
	"slices"

	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
)

// Attach makes child the index-th child of parent. An index of -1 (or any
// index past the end) appends. A weight <= 0 gives the child the mean
// weight of its new siblings along the parent's orientation, or 1 for an
// only child; tiles layout reconciles the total on the next pass.
//
// Windows cannot own children and system containers only hold windows. A
// workspace accepts windows and system containers; its root container is
// created by NewWorkspace. A node that already has a parent must be
// detached first.
func Attach(child, parent Node, index int, weight float64) error {
	if child.Parent() != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%v already has a parent", child)
	}
	if _, ok := child.(*Workspace); ok {
		return errors.New(errors.ErrCodeInvalidInput, "a workspace cannot be attached")
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == child {
			return errors.New(errors.ErrCodeInvalidInput, "attaching %v would create a cycle", child)
		}
	}

	switch parent.(type) {
	case *Window:
		return errors.New(errors.ErrCodeInvalidInput, "%v cannot own children", parent)
	case *SystemContainer:
		if _, ok := child.(*Window); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "%v only holds windows", parent)
		}
	case *Workspace:
		if _, ok := child.(*TilingContainer); ok {
			return errors.New(errors.ErrCodeInvalidInput, "a workspace owns exactly one tiling container")
		}
	}

	pb := parent.base()
	if weight <= 0 {
		weight = defaultWeight(parent)
	}
	child.SetWeight(geom.H, weight)
	child.SetWeight(geom.V, weight)

	if index < 0 || index > len(pb.children) {
		index = len(pb.children)
	}
	pb.children = slices.Insert(pb.children, index, child)
	child.base().parent = parent
	return nil
}

// Detach removes n from its parent. The root container of a workspace
// cannot be detached.
func Detach(n Node) error {
	p := n.Parent()
	if p == nil {
		return nil
	}
	if c, ok := n.(*TilingContainer); ok && c.IsRoot() {
		return errors.New(errors.ErrCodeInvalidInput, "the root container cannot be detached")
	}
	pb := p.base()
	idx := OwnIndex(n)
	pb.children = slices.Delete(pb.children, idx, idx+1)
	if pb.mru == n {
		pb.mru = nil
	}
	n.base().parent = nil
	return nil
}

func defaultWeight(parent Node) float64 {
	c, ok := parent.(*TilingContainer)
	if !ok || len(c.children) == 0 {
		return 1
	}
	var sum float64
	for _, s := range c.children {
		sum += s.Weight(c.Orientation)
	}
	if sum <= 0 {
		return 1
	}
	return sum / float64(len(c.children))
}
