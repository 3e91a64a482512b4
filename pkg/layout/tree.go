package layout

import (
	"fmt"
	"slices"
)

// NodeID identifies a node in a Tree. Ids are never reused.
type NodeID uint64

// NoNode is the zero NodeID; it never names a node.
const NoNode NodeID = 0

func (id NodeID) String() string {
	return fmt.Sprintf("node#%d", uint64(id))
}

type node struct {
	style    Style
	children []NodeID
	parent   NodeID
	leaf     Measurer
	layout   Layout

	// dirty propagates up, so a clean node guarantees a clean subtree.
	dirty bool
}

type computed struct {
	available AvailableSize
}

// Tree is a retained flexbox layout graph.
// It is not safe for concurrent use.
type Tree struct {
	nodes map[NodeID]*node
	next  NodeID
	last  map[NodeID]computed
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes: make(map[NodeID]*node),
		last:  make(map[NodeID]computed),
	}
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Contains reports whether id names a live node.
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *Tree) alloc(style Style) (NodeID, *node) {
	t.next++
	n := &node{style: style, dirty: true}
	t.nodes[t.next] = n
	return t.next, n
}

func (t *Tree) get(op string, id NodeID) (*node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, &NodeError{Op: op, Node: id, Err: ErrNodeNotFound}
	}
	return n, nil
}

// markDirty marks id and all its ancestors as needing layout.
func (t *Tree) markDirty(id NodeID) {
	for id != NoNode {
		n, ok := t.nodes[id]
		if !ok || n.dirty {
			return
		}
		n.dirty = true
		id = n.parent
	}
}

// NewLeaf creates a childless node without a measurer.
func (t *Tree) NewLeaf(style Style) NodeID {
	id, _ := t.alloc(style)
	return id
}

// NewMeasuredLeaf creates a leaf whose content size comes from m.
func (t *Tree) NewMeasuredLeaf(style Style, m Measurer) NodeID {
	id, n := t.alloc(style)
	n.leaf = m
	return id
}

// NewContainer creates a node adopting children in order. Children that are
// attached elsewhere are moved.
func (t *Tree) NewContainer(style Style, children ...NodeID) (NodeID, error) {
	for _, child := range children {
		c, err := t.get("new container", child)
		if err != nil {
			return NoNode, err
		}
		if c.parent != NoNode {
			t.detach(child, c)
		}
	}
	id, n := t.alloc(style)
	for _, child := range children {
		t.nodes[child].parent = id
	}
	n.children = slices.Clone(children)
	return id, nil
}

// Style returns the style of id.
func (t *Tree) Style(id NodeID) (Style, error) {
	n, err := t.get("style", id)
	if err != nil {
		return Style{}, err
	}
	return n.style, nil
}

// SetStyle replaces the style of id and marks it dirty.
func (t *Tree) SetStyle(id NodeID, style Style) error {
	n, err := t.get("set style", id)
	if err != nil {
		return err
	}
	n.style = style
	t.markDirty(id)
	return nil
}

// SetLeaf attaches m to id, or clears the measurer when m is nil.
func (t *Tree) SetLeaf(id NodeID, m Measurer) error {
	n, err := t.get("set leaf", id)
	if err != nil {
		return err
	}
	if m != nil && len(n.children) > 0 {
		return &NodeError{Op: "set leaf", Node: id, Err: ErrHasChildren}
	}
	n.leaf = m
	t.markDirty(id)
	return nil
}

// Parent returns the parent of id, or NoNode for a root.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, err := t.get("parent", id)
	if err != nil {
		return NoNode, err
	}
	return n.parent, nil
}

// Children returns a copy of the children of id.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get("children", id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.children), nil
}

// IndexOf returns the position of child within parent, or -1.
func (t *Tree) IndexOf(parent, child NodeID) (int, error) {
	n, err := t.get("index of", parent)
	if err != nil {
		return -1, err
	}
	return slices.Index(n.children, child), nil
}

// InsertChildAt inserts child into parent at index. A child attached
// elsewhere is detached first.
func (t *Tree) InsertChildAt(parent NodeID, index int, child NodeID) error {
	p, err := t.get("insert child", parent)
	if err != nil {
		return err
	}
	c, err := t.get("insert child", child)
	if err != nil {
		return err
	}
	if p.leaf != nil {
		return &NodeError{Op: "insert child", Node: parent, Err: ErrIsLeaf}
	}
	limit := len(p.children)
	if c.parent == parent {
		limit--
	}
	if index < 0 || index > limit {
		return &NodeError{Op: "insert child", Node: parent, Err: ErrChildIndex}
	}
	if c.parent != NoNode {
		t.detach(child, c)
	}
	p.children = slices.Insert(p.children, index, child)
	c.parent = parent
	t.markDirty(parent)
	return nil
}

// RemoveChildAt detaches and returns the child of parent at index.
// The child stays alive as a root.
func (t *Tree) RemoveChildAt(parent NodeID, index int) (NodeID, error) {
	p, err := t.get("remove child", parent)
	if err != nil {
		return NoNode, err
	}
	if index < 0 || index >= len(p.children) {
		return NoNode, &NodeError{Op: "remove child", Node: parent, Err: ErrChildIndex}
	}
	child := p.children[index]
	p.children = slices.Delete(p.children, index, index+1)
	if c, ok := t.nodes[child]; ok {
		c.parent = NoNode
	}
	t.markDirty(parent)
	return child, nil
}

// ReplaceChildAt puts child at index of parent and returns the node it
// displaced, which is left detached.
func (t *Tree) ReplaceChildAt(parent NodeID, index int, child NodeID) (NodeID, error) {
	p, err := t.get("replace child", parent)
	if err != nil {
		return NoNode, err
	}
	c, err := t.get("replace child", child)
	if err != nil {
		return NoNode, err
	}
	if index < 0 || index >= len(p.children) {
		return NoNode, &NodeError{Op: "replace child", Node: parent, Err: ErrChildIndex}
	}
	old := p.children[index]
	if old == child {
		return old, nil
	}
	if c.parent != NoNode {
		if c.parent == parent {
			// Moving within the same parent: swap positions instead so the
			// child list never holds duplicates.
			at := slices.Index(p.children, child)
			p.children[at] = old
			p.children[index] = child
			t.markDirty(parent)
			return old, nil
		}
		t.detach(child, c)
	}
	p.children[index] = child
	c.parent = parent
	if o, ok := t.nodes[old]; ok {
		o.parent = NoNode
	}
	t.markDirty(parent)
	return old, nil
}

// Remove detaches id from its parent and deletes it. Its children become
// roots; they are not removed.
func (t *Tree) Remove(id NodeID) error {
	n, err := t.get("remove", id)
	if err != nil {
		return err
	}
	if n.parent != NoNode {
		t.detach(id, n)
	}
	for _, child := range n.children {
		if c, ok := t.nodes[child]; ok {
			c.parent = NoNode
		}
	}
	delete(t.nodes, id)
	delete(t.last, id)
	return nil
}

func (t *Tree) detach(id NodeID, n *node) {
	if p, ok := t.nodes[n.parent]; ok {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		t.markDirty(n.parent)
	}
	n.parent = NoNode
}

// IsDirty reports whether id needs layout.
func (t *Tree) IsDirty(id NodeID) bool {
	n, ok := t.nodes[id]
	return ok && n.dirty
}

// Layout returns the last computed layout of id.
func (t *Tree) Layout(id NodeID) (Layout, error) {
	n, err := t.get("layout", id)
	if err != nil {
		return Layout{}, err
	}
	return n.layout, nil
}

// ComputeLayout lays out the subtree rooted at id within available.
// The result is cached until the subtree is marked dirty or the available
// space differs from the previous call.
func (t *Tree) ComputeLayout(id NodeID, available AvailableSize) error {
	n, err := t.get("compute layout", id)
	if err != nil {
		return err
	}
	if last, ok := t.last[id]; ok && !n.dirty && last.available == available {
		return nil
	}

	pass := newPass(t)
	known := KnownSize{}
	// An auto-sized root fills definite available space.
	if n.style.Width.IsAuto() && available.Width.IsDefinite() {
		known.Width, known.HasWidth = available.Width.Value(), true
	}
	if n.style.Height.IsAuto() && available.Height.IsDefinite() {
		known.Height, known.HasHeight = available.Height.Value(), true
	}
	pass.layout(id, n, known, available)
	n.layout.Location = Point{}
	t.last[id] = computed{available: available}
	return nil
}
