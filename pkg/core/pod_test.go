package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

func TestUpcastDowncastRoundTrip(t *testing.T) {
	pod := Pod[*fakeShadow]{Node: 7, Shadow: &fakeShadow{widget: &fakeWidget{name: "w"}}}

	got, err := Downcast[*fakeShadow](Upcast(pod))

	require.NoError(t, err)
	assert.Equal(t, pod.Node, got.Node)
	assert.Same(t, pod.Shadow, got.Shadow)
}

func TestDowncastMismatchReturnsOriginal(t *testing.T) {
	erased := Upcast(Pod[*fakeShadow]{Node: 3, Shadow: &fakeShadow{widget: &fakeWidget{}}})

	_, err := Downcast[otherShadow](erased)

	require.ErrorIs(t, err, errors.ErrTypeMismatch)
	var mismatch *MismatchError[AnyPod]
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, erased, mismatch.Original)
	assert.Contains(t, err.Error(), "otherShadow")

	// The original downcasts to its own type afterwards.
	again, err := Downcast[*fakeShadow](mismatch.Original)
	require.NoError(t, err)
	assert.Equal(t, layout.NodeID(3), again.Node)
}

func TestDowncastMut(t *testing.T) {
	node := layout.NodeID(4)
	var shadow Shadow = &fakeShadow{widget: &fakeWidget{name: "w"}}
	m := AnyMut{Parent: 1, Node: &node, Shadow: &shadow}

	mut, err := DowncastMut[*fakeShadow](m)
	require.NoError(t, err)
	assert.Equal(t, layout.NodeID(1), mut.Parent)
	assert.Equal(t, node, mut.Node)

	_, err = DowncastMut[otherShadow](m)
	var mismatch *MismatchError[AnyMut]
	require.ErrorAs(t, err, &mismatch)
	assert.Same(t, m.Node, mismatch.Original.Node)

	assert.Panics(t, func() { MustDowncastMut[otherShadow](m) })
}

func TestMustDowncastPanicsWithInvariant(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		require.True(t, ok, "panic value is %T", r)
		assert.Equal(t, errors.KindInvariant, err.Kind)
	}()
	MustDowncast[otherShadow](AnyPod{Shadow: &fakeShadow{}})
}

func TestReplaceKeepsPosition(t *testing.T) {
	cx := newTestContext(t)
	data := &journal{}
	g := newFakeGroup(t, cx)
	c := g.cursor()
	for _, name := range []string{"a", "b", "c"} {
		pod, _ := leaf{name: name}.Build(cx, data)
		c.Insert(cx, pod)
	}

	var replaced [2]platform.Widget
	next, _ := leaf{name: "x"}.Build(cx, data)
	m := AnyMut{
		Parent: g.node,
		Node:   &g.pods[1].Node,
		Shadow: &g.pods[1].Shadow,
		Host: HostFunc(func(_ *Context, old, new platform.Widget) {
			replaced = [2]platform.Widget{old, new}
		}),
	}
	before := g.pods[1]

	old := Replace(cx, m, MustDowncast[*fakeShadow](next))

	assert.Equal(t, before, old)
	assert.Equal(t, []string{"a", "x", "c"}, g.names())
	assert.Equal(t, before.Shadow.Widget(), replaced[0])
	assert.Equal(t, next.Shadow.Widget(), replaced[1])
	g.requireSynced(t, cx)

	parent, err := cx.Tree().Parent(old.Node)
	require.NoError(t, err)
	assert.Equal(t, layout.NoNode, parent, "displaced node is detached")
	assert.True(t, cx.Tree().Contains(old.Node), "displaced node is left for teardown")
}

func TestReplaceRoot(t *testing.T) {
	cx := newTestContext(t)
	node := cx.NewLayoutLeaf(layout.DefaultStyle(), nil)
	var shadow Shadow = otherShadow{}
	m := AnyMut{Node: &node, Shadow: &shadow}

	next := Pod[*fakeShadow]{Node: cx.NewLayoutLeaf(layout.DefaultStyle(), nil), Shadow: &fakeShadow{}}
	old := Replace(cx, m, next)

	assert.Equal(t, next.Node, node)
	assert.Equal(t, Shadow(next.Shadow), shadow)
	assert.Equal(t, otherShadow{}, old.Shadow)
}
