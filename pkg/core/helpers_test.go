package core

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

type fakeWidget struct {
	name string
}

func (w *fakeWidget) Handle() any { return w.name }

type fakeShadow struct {
	widget *fakeWidget
}

func (s *fakeShadow) Widget() platform.Widget { return s.widget }

type otherShadow struct{}

func (otherShadow) Widget() platform.Widget { return nil }

type fakePlatform struct {
	quits int
}

func (p *fakePlatform) Quit() { p.quits++ }

func newTestContext(t *testing.T) *Context {
	t.Helper()
	proxy := NewProxy(context.Background(), nil)
	t.Cleanup(proxy.Close)
	return NewContext(&fakePlatform{}, proxy)
}

// journal records the lifecycle calls made on leaf views.
type journal struct {
	built    []string
	rebuilt  []string
	torn     []string
	messages []string
}

// leaf is a view with a layout leaf and a fake widget.
type leaf struct {
	name string
	// take consumes targeted messages addressed to the element's id.
	take bool
}

type leafState struct {
	id   ViewID
	name string
}

func (v leaf) Build(cx *Context, data *journal) (AnyPod, State) {
	data.built = append(data.built, v.name)
	node := cx.NewLayoutLeaf(layout.DefaultStyle(), nil)
	pod := Pod[*fakeShadow]{Node: node, Shadow: &fakeShadow{widget: &fakeWidget{name: v.name}}}
	return Upcast(pod), &leafState{id: cx.NewViewID(), name: v.name}
}

func (v leaf) Rebuild(m AnyMut, state State, cx *Context, data *journal) {
	data.rebuilt = append(data.rebuilt, v.name)
	s := MustDowncastMut[*fakeShadow](m)
	s.Shadow.widget.name = v.name
	state.(*leafState).name = v.name
}

func (v leaf) Message(m AnyMut, state State, cx *Context, data *journal, msg *Message) Action {
	st := state.(*leafState)
	data.messages = append(data.messages, st.name)
	if _, ok := TakeTargeted[string](msg, st.id); ok {
		return Rebuild()
	}
	return Action{}
}

func (v leaf) Teardown(p AnyPod, state State, cx *Context) {
	data := state.(*leafState)
	cx.ReleaseViewID(data.id)
	cx.RemoveLayoutNode(p.Node)
}

// other is a second view kind for variant changes.
type other struct{}

func (other) Build(cx *Context, data *journal) (AnyPod, State) {
	data.built = append(data.built, "other")
	return AnyPod{Node: cx.NewLayoutLeaf(layout.DefaultStyle(), nil), Shadow: otherShadow{}}, nil
}

func (other) Rebuild(AnyMut, State, *Context, *journal) {}

func (other) Message(AnyMut, State, *Context, *journal, *Message) Action { return Action{} }

func (other) Teardown(p AnyPod, _ State, cx *Context) {
	cx.RemoveLayoutNode(p.Node)
}

// fakeGroup is a container of elements recording every edit.
type fakeGroup struct {
	node  layout.NodeID
	pods  []AnyPod
	edits []string
}

func newFakeGroup(t *testing.T, cx *Context) *fakeGroup {
	t.Helper()
	return &fakeGroup{node: cx.NewLayoutNode(layout.DefaultStyle())}
}

func (g *fakeGroup) cursor() *fakeCursor { return &fakeCursor{g: g} }

func (g *fakeGroup) names() []string {
	var names []string
	for _, p := range g.pods {
		if s, ok := p.Shadow.(*fakeShadow); ok {
			names = append(names, s.widget.name)
		} else {
			names = append(names, "other")
		}
	}
	return names
}

func (g *fakeGroup) requireSynced(t *testing.T, cx *Context) {
	t.Helper()
	children, err := cx.Tree().Children(g.node)
	require.NoError(t, err)
	var nodes []layout.NodeID
	for _, p := range g.pods {
		nodes = append(nodes, p.Node)
	}
	require.Equal(t, nodes, children, "layout children follow element order")
}

type fakeCursor struct {
	g *fakeGroup
	i int
}

func (c *fakeCursor) Len() int { return len(c.g.pods) }

func (c *fakeCursor) Next() (AnyMut, bool) {
	if c.i >= len(c.g.pods) {
		return AnyMut{}, false
	}
	pod := &c.g.pods[c.i]
	return AnyMut{
		Parent: c.g.node,
		Node:   &pod.Node,
		Shadow: &pod.Shadow,
		Host: HostFunc(func(*Context, platform.Widget, platform.Widget) {
			c.g.edits = append(c.g.edits, "replace")
		}),
	}, true
}

func (c *fakeCursor) Skip() { c.i++ }

func (c *fakeCursor) Insert(cx *Context, p AnyPod) {
	cx.InsertLayoutChild(c.g.node, c.i, p.Node)
	c.g.pods = slices.Insert(c.g.pods, c.i, p)
	c.g.edits = append(c.g.edits, "insert")
	c.i++
}

func (c *fakeCursor) Remove(cx *Context) (AnyPod, bool) {
	if c.i >= len(c.g.pods) {
		return AnyPod{}, false
	}
	p := c.g.pods[c.i]
	cx.RemoveLayoutChild(c.g.node, c.i)
	c.g.pods = slices.Delete(c.g.pods, c.i, c.i+1)
	c.g.edits = append(c.g.edits, "remove")
	return p, true
}

func (c *fakeCursor) Swap(cx *Context, offset int) {
	j := c.i + offset
	cx.ReplaceLayoutChild(c.g.node, c.i, c.g.pods[j].Node)
	c.g.pods[c.i], c.g.pods[j] = c.g.pods[j], c.g.pods[c.i]
	c.g.edits = append(c.g.edits, "swap")
}
