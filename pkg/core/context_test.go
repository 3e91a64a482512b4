package core

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/metrics"
)

type theme struct{ name string }

func TestResources(t *testing.T) {
	cx := newTestContext(t)

	_, ok := Resource[theme](cx)
	assert.False(t, ok)

	PushResource(cx, theme{name: "light"})
	PushResource(cx, 42)
	PushResource(cx, theme{name: "dark"})

	got, ok := Resource[theme](cx)
	require.True(t, ok)
	assert.Equal(t, "dark", got.name, "last pushed wins")

	p, ok := ResourceMut[theme](cx)
	require.True(t, ok)
	p.name = "dim"
	got, _ = Resource[theme](cx)
	assert.Equal(t, "dim", got.name)

	// Pop takes the latest theme even though an int was pushed after the
	// first one.
	popped, ok := PopResource[theme](cx)
	require.True(t, ok)
	assert.Equal(t, "dim", popped.name)
	got, _ = Resource[theme](cx)
	assert.Equal(t, "light", got.name)

	n, ok := PopResource[int](cx)
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, _ = PopResource[theme](cx)
	_, ok = PopResource[theme](cx)
	assert.False(t, ok)
}

func TestEnterControllerRestores(t *testing.T) {
	cx := newTestContext(t)

	cx.EnterController(1, func() {
		assert.Equal(t, ViewID(1), cx.LayoutController())
		cx.EnterController(2, func() {
			assert.Equal(t, ViewID(2), cx.LayoutController())
			assert.Equal(t, ViewID(2), cx.AnimationController())
		})
		assert.Equal(t, ViewID(1), cx.AnimationController())
	})
	assert.Zero(t, cx.LayoutController())

	assert.Panics(t, func() {
		cx.EnterController(3, func() { panic("boom") })
	})
	assert.Zero(t, cx.LayoutController(), "restored on panic")
}

func TestRelayoutCoalesces(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	cx := newTestContext(t)
	WithMetrics(rec)(cx)

	cx.Relayout()
	assert.Zero(t, cx.Proxy().Len(), "no controller, no request")

	cx.EnterController(5, func() {
		for range 10 {
			cx.Relayout()
		}
	})
	events := cx.Proxy().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ViewID(5), events[0].Message.Target())
	assert.IsType(t, RelayoutRequested{}, events[0].Message.Payload())
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Relayouts.WithLabelValues(metrics.RelayoutPosted)))
	assert.Equal(t, float64(9), testutil.ToFloat64(rec.Relayouts.WithLabelValues(metrics.RelayoutCoalesced)))

	cx.RelayoutHandled(5)
	cx.EnterController(5, cx.Relayout)
	assert.Equal(t, 1, cx.Proxy().Len())
}

func TestRoutedMutationsRequestRelayout(t *testing.T) {
	cx := newTestContext(t)
	var node, parent layout.NodeID
	cx.EnterController(1, func() {
		node = cx.NewLayoutLeaf(layout.DefaultStyle(), nil)
		parent = cx.NewLayoutNode(layout.DefaultStyle())
	})
	cx.Proxy().Drain()

	tests := []struct {
		name   string
		mutate func()
		want   bool
	}{
		{"unchanged style", func() { cx.SetLayoutStyle(node, layout.DefaultStyle()) }, false},
		{"changed style", func() { cx.SetLayoutStyle(node, layout.DefaultStyle().Size(layout.Length(1), layout.Auto())) }, true},
		{"insert", func() { cx.InsertLayoutChild(parent, 0, node) }, true},
		{"remove", func() { cx.RemoveLayoutChild(parent, 0) }, true},
		{"remove node", func() { cx.RemoveLayoutNode(node) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx.RelayoutHandled(1)
			cx.Proxy().Drain()
			cx.EnterController(1, tt.mutate)
			assert.Equal(t, tt.want, cx.Proxy().Len() == 1)
		})
	}
}

func TestStaleNodesAreIgnored(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	cx := newTestContext(t)
	WithMetrics(rec)(cx)
	node := cx.NewLayoutLeaf(layout.DefaultStyle(), nil)
	cx.RemoveLayoutNode(node)

	assert.NotPanics(t, func() {
		cx.RemoveLayoutNode(node)
		assert.False(t, cx.SetLayoutStyle(node, layout.DefaultStyle()))
		_, ok := cx.ComputedLayout(node)
		assert.False(t, ok)
	})
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.StaleReferences.WithLabelValues("remove node")))
}

func TestLayoutDesyncPanics(t *testing.T) {
	cx := newTestContext(t)
	leafNode := cx.NewLayoutLeaf(layout.DefaultStyle(), layout.FixedSize(layout.Size{}))
	child := cx.NewLayoutLeaf(layout.DefaultStyle(), nil)

	assert.Panics(t, func() { cx.InsertLayoutChild(leafNode, 0, child) })
}

func TestRequestQuit(t *testing.T) {
	cx := newTestContext(t)
	p := cx.Platform().(*fakePlatform)

	cx.RequestQuit()
	cx.RequestQuit()

	assert.True(t, cx.QuitRequested())
	assert.Equal(t, 1, p.quits)
}

func TestAnimationRequestsGoToController(t *testing.T) {
	cx := newTestContext(t)
	cx.StartAnimating()
	assert.Zero(t, cx.Proxy().Len())

	cx.EnterController(9, func() {
		cx.StartAnimating()
		cx.StopAnimating()
	})
	events := cx.Proxy().Drain()
	require.Len(t, events, 2)
	assert.IsType(t, StartAnimating{}, events[0].Message.Payload())
	assert.IsType(t, StopAnimating{}, events[1].Message.Payload())
	assert.Equal(t, ViewID(9), events[1].Message.Target())
}
