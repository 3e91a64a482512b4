package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeInsertRemove(t *testing.T) {
	tree := NewTree()
	a := tree.NewLeaf(DefaultStyle())
	b := tree.NewLeaf(DefaultStyle())
	root, err := tree.NewContainer(DefaultStyle(), a)
	require.NoError(t, err)

	require.NoError(t, tree.InsertChildAt(root, 0, b))
	children, err := tree.Children(root)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{b, a}, children)

	parent, err := tree.Parent(b)
	require.NoError(t, err)
	assert.Equal(t, root, parent)

	removed, err := tree.RemoveChildAt(root, 0)
	require.NoError(t, err)
	assert.Equal(t, b, removed)
	parent, err = tree.Parent(b)
	require.NoError(t, err)
	assert.Equal(t, NoNode, parent)
	assert.True(t, tree.Contains(b), "detached node stays alive")

	idx, err := tree.IndexOf(root, a)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	idx, err = tree.IndexOf(root, b)
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestTreeInsertMovesAttachedChild(t *testing.T) {
	tree := NewTree()
	child := tree.NewLeaf(DefaultStyle())
	first, err := tree.NewContainer(DefaultStyle(), child)
	require.NoError(t, err)
	second, err := tree.NewContainer(DefaultStyle())
	require.NoError(t, err)

	require.NoError(t, tree.InsertChildAt(second, 0, child))

	children, _ := tree.Children(first)
	assert.Empty(t, children)
	children, _ = tree.Children(second)
	assert.Equal(t, []NodeID{child}, children)
}

func TestTreeInsertBadIndexKeepsChildAttached(t *testing.T) {
	tree := NewTree()
	a := tree.NewLeaf(DefaultStyle())
	b := tree.NewLeaf(DefaultStyle())
	first, err := tree.NewContainer(DefaultStyle(), a, b)
	require.NoError(t, err)
	second, err := tree.NewContainer(DefaultStyle())
	require.NoError(t, err)

	assert.ErrorIs(t, tree.InsertChildAt(second, 1, a), ErrChildIndex)
	assert.ErrorIs(t, tree.InsertChildAt(first, 2, a), ErrChildIndex, "moving within a parent does not grow it")

	children, _ := tree.Children(first)
	assert.Equal(t, []NodeID{a, b}, children)
	parent, err := tree.Parent(a)
	require.NoError(t, err)
	assert.Equal(t, first, parent)

	require.NoError(t, tree.InsertChildAt(first, 1, a))
	children, _ = tree.Children(first)
	assert.Equal(t, []NodeID{b, a}, children)
}

func TestTreeReplaceChildAt(t *testing.T) {
	tree := NewTree()
	a := tree.NewLeaf(DefaultStyle())
	b := tree.NewLeaf(DefaultStyle())
	c := tree.NewLeaf(DefaultStyle())
	root, err := tree.NewContainer(DefaultStyle(), a, b)
	require.NoError(t, err)

	old, err := tree.ReplaceChildAt(root, 1, c)
	require.NoError(t, err)
	assert.Equal(t, b, old)
	children, _ := tree.Children(root)
	assert.Equal(t, []NodeID{a, c}, children)
	parent, _ := tree.Parent(b)
	assert.Equal(t, NoNode, parent)

	// Replacing with a sibling swaps the two.
	old, err = tree.ReplaceChildAt(root, 0, c)
	require.NoError(t, err)
	assert.Equal(t, a, old)
	children, _ = tree.Children(root)
	assert.Equal(t, []NodeID{c, a}, children)
}

func TestTreeRemoveOrphansChildren(t *testing.T) {
	tree := NewTree()
	leaf := tree.NewLeaf(DefaultStyle())
	mid, _ := tree.NewContainer(DefaultStyle(), leaf)
	root, _ := tree.NewContainer(DefaultStyle(), mid)

	require.NoError(t, tree.Remove(mid))

	assert.False(t, tree.Contains(mid))
	assert.True(t, tree.Contains(leaf))
	parent, _ := tree.Parent(leaf)
	assert.Equal(t, NoNode, parent)
	children, _ := tree.Children(root)
	assert.Empty(t, children)
	assert.Equal(t, 2, tree.Len())
}

func TestTreeStaleNode(t *testing.T) {
	tree := NewTree()
	id := tree.NewLeaf(DefaultStyle())
	require.NoError(t, tree.Remove(id))

	tests := []struct {
		name string
		call func() error
	}{
		{"SetStyle", func() error { return tree.SetStyle(id, DefaultStyle()) }},
		{"Remove", func() error { return tree.Remove(id) }},
		{"Layout", func() error { _, err := tree.Layout(id); return err }},
		{"Children", func() error { _, err := tree.Children(id); return err }},
		{"ComputeLayout", func() error { return tree.ComputeLayout(id, DefiniteSize(1, 1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, IsStale(err))
			var nodeErr *NodeError
			require.ErrorAs(t, err, &nodeErr)
			assert.Equal(t, id, nodeErr.Node)
		})
	}
}

func TestTreeLeafAndContainerRules(t *testing.T) {
	tree := NewTree()
	leaf := tree.NewMeasuredLeaf(DefaultStyle(), FixedSize(Size{Width: 1, Height: 1}))
	other := tree.NewLeaf(DefaultStyle())

	err := tree.InsertChildAt(leaf, 0, other)
	assert.ErrorIs(t, err, ErrIsLeaf)

	root, _ := tree.NewContainer(DefaultStyle(), other)
	err = tree.SetLeaf(root, FixedSize(Size{}))
	assert.ErrorIs(t, err, ErrHasChildren)

	require.NoError(t, tree.SetLeaf(leaf, nil))
	assert.NoError(t, tree.InsertChildAt(leaf, 0, other))

	err = tree.InsertChildAt(leaf, 5, tree.NewLeaf(DefaultStyle()))
	assert.ErrorIs(t, err, ErrChildIndex)
}

func TestTreeDirtyPropagation(t *testing.T) {
	tree := NewTree()
	leaf := tree.NewLeaf(DefaultStyle())
	mid, _ := tree.NewContainer(DefaultStyle(), leaf)
	root, _ := tree.NewContainer(DefaultStyle(), mid)

	require.NoError(t, tree.ComputeLayout(root, DefiniteSize(100, 100)))
	assert.False(t, tree.IsDirty(root))
	assert.False(t, tree.IsDirty(mid))
	assert.False(t, tree.IsDirty(leaf))

	require.NoError(t, tree.SetStyle(leaf, DefaultStyle().Size(Length(10), Length(10))))
	assert.True(t, tree.IsDirty(leaf))
	assert.True(t, tree.IsDirty(mid))
	assert.True(t, tree.IsDirty(root))
}

func TestComputeLayoutCached(t *testing.T) {
	tree := NewTree()
	calls := 0
	leaf := tree.NewMeasuredLeaf(DefaultStyle(), MeasureFunc(func(KnownSize, AvailableSize) Size {
		calls++
		return Size{Width: 10, Height: 10}
	}))
	root, _ := tree.NewContainer(DefaultStyle(), leaf)

	require.NoError(t, tree.ComputeLayout(root, DefiniteSize(100, 100)))
	require.NotZero(t, calls)

	calls = 0
	require.NoError(t, tree.ComputeLayout(root, DefiniteSize(100, 100)))
	assert.Zero(t, calls, "clean tree with unchanged space is not measured")

	require.NoError(t, tree.ComputeLayout(root, DefiniteSize(50, 100)))
	assert.NotZero(t, calls, "new available space triggers layout")
}
