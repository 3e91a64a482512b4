package views

import (
	"slices"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// GroupShadow owns a native group and the elements placed in it.
type GroupShadow struct {
	group    platform.Group
	children []core.AnyPod
}

func newGroupShadow(cx *core.Context) *GroupShadow {
	gp := platform.Require[platform.GroupPlatform](cx.Platform(), "views.Group")
	cx.Metrics().WidgetCreated("group")
	return &GroupShadow{group: gp.NewGroup()}
}

// Widget returns the native group.
func (s *GroupShadow) Widget() platform.Widget { return s.group }

// Len returns the number of children.
func (s *GroupShadow) Len() int { return len(s.children) }

// Elements returns a cursor over the children attached to node.
func (s *GroupShadow) Elements(node layout.NodeID) core.Elements {
	return &groupElements{shadow: s, node: node}
}

// layout sizes the group from node and positions each child.
func (s *GroupShadow) layout(cx *core.Context, node layout.NodeID) {
	l, ok := cx.ComputedLayout(node)
	if !ok {
		return
	}
	s.group.SetSize(l.Size.Width, l.Size.Height)
	for i, child := range s.children {
		if cl, ok := cx.ComputedLayout(child.Node); ok {
			s.group.SetChildPosition(i, cl.Location.X, cl.Location.Y)
		}
	}
}

func (s *GroupShadow) destroy(cx *core.Context) {
	s.group.Destroy()
	cx.Metrics().WidgetDestroyed("group")
}

type groupElements struct {
	shadow *GroupShadow
	node   layout.NodeID
	index  int
}

func (e *groupElements) Len() int { return len(e.shadow.children) }

func (e *groupElements) Next() (core.AnyMut, bool) {
	if e.index >= len(e.shadow.children) {
		return core.AnyMut{}, false
	}
	child := &e.shadow.children[e.index]
	return core.AnyMut{
		Parent: e.node,
		Node:   &child.Node,
		Shadow: &child.Shadow,
		Host:   groupSlot{shadow: e.shadow, index: e.index},
	}, true
}

func (e *groupElements) Skip() { e.index++ }

func (e *groupElements) Insert(cx *core.Context, p core.AnyPod) {
	cx.InsertLayoutChild(e.node, e.index, p.Node)
	e.shadow.group.InsertChild(e.index, p.Shadow.Widget())
	e.shadow.children = slices.Insert(e.shadow.children, e.index, p)
	e.index++
}

func (e *groupElements) Remove(cx *core.Context) (core.AnyPod, bool) {
	if e.index >= len(e.shadow.children) {
		return core.AnyPod{}, false
	}
	child := e.shadow.children[e.index]
	if removed := cx.RemoveLayoutChild(e.node, e.index); removed != child.Node && removed != layout.NoNode {
		errors.Invariant("views.Group.Remove", "layout child %v at %d, element has %v", removed, e.index, child.Node)
	}
	e.shadow.group.RemoveChild(e.index)
	e.shadow.children = slices.Delete(e.shadow.children, e.index, e.index+1)
	return child, true
}

func (e *groupElements) Swap(cx *core.Context, offset int) {
	i, j := e.index, e.index+offset
	children := e.shadow.children
	// Replacing with a sibling swaps the two layout children.
	cx.ReplaceLayoutChild(e.node, i, children[j].Node)
	e.shadow.group.SwapChildren(i, j)
	children[i], children[j] = children[j], children[i]
}

// groupSlot is the native position of one child in a group.
type groupSlot struct {
	shadow *GroupShadow
	index  int
}

func (s groupSlot) ReplaceWidget(_ *core.Context, _, new platform.Widget) {
	s.shadow.group.ReplaceChild(s.index, new)
}
