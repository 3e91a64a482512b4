package views

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/platform/headless"
)

func labels(names ...string) []core.View[app] {
	out := make([]core.View[app], len(names))
	for i, n := range names {
		out[i] = core.Keyed[app](n, Label[app](n))
	}
	return out
}

func groupOf(t *testing.T, s core.Shadow) *headless.Group {
	t.Helper()
	gs, ok := s.(*GroupShadow)
	require.True(t, ok, "shadow is %T", s)
	return gs.group.(*headless.Group)
}

func texts(t *testing.T, g *headless.Group) []string {
	t.Helper()
	var out []string
	for _, w := range g.Children() {
		out = append(out, w.(*headless.Text).Text())
	}
	return out
}

func TestColumnReorderKeepsWidgets(t *testing.T) {
	h := newHarness(t, &app{}, core.View[app](Column(labels("a", "b", "c")...)))
	group := groupOf(t, h.pod.Shadow)
	created := h.platform.Created(headless.KindText)

	h.rebuild(Column(labels("a", "c", "b")...))

	assert.Equal(t, []string{"a", "c", "b"}, texts(t, group))
	assert.Equal(t, created, h.platform.Created(headless.KindText))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Edits.WithLabelValues(metrics.EditSwap)))

	children, err := h.cx.Tree().Children(h.pod.Node)
	require.NoError(t, err)
	gs := h.pod.Shadow.(*GroupShadow)
	for i, child := range gs.children {
		assert.Equal(t, child.Node, children[i], "layout child %d", i)
	}
}

func TestColumnAppendAndTruncate(t *testing.T) {
	h := newHarness(t, &app{}, core.View[app](Column(labels("a", "b")...)))
	group := groupOf(t, h.pod.Shadow)

	h.rebuild(Column(labels("a", "b", "c")...))
	assert.Equal(t, []string{"a", "b", "c"}, texts(t, group))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Edits.WithLabelValues(metrics.EditInsert)))

	h.rebuild(Column(labels("a")...))
	assert.Equal(t, []string{"a"}, texts(t, group))
	assert.Equal(t, 2, h.platform.Destroyed(headless.KindText))
}

func TestColumnPositionsChildren(t *testing.T) {
	column := Column[app](
		NewImage[app](encodePNG(t, 100, 50)),
		NewImage[app](encodePNG(t, 100, 30)),
	).WithGap(10).WithPadding(5).WithFlex(1)
	h := newHarness(t, &app{}, core.View[app](NewWindow[app](column)))
	st := windowStateOf(t, h.state)
	group := groupOf(t, st.content.Shadow)

	assert.Equal(t, layout.Point{X: 5, Y: 5}, group.Position(0))
	assert.Equal(t, layout.Point{X: 5, Y: 65}, group.Position(1))
	assert.Equal(t, headless.Size{Width: 800, Height: 600}, group.Size())
}

func TestFlexStyleChangeRequestsRelayout(t *testing.T) {
	passes := 0
	ui := func(gap float32) core.View[app] {
		return NewWindow[app](probe[app]{content: Row(labels("a", "b")...).WithGap(gap), passes: &passes})
	}
	h := newHarness(t, &app{}, ui(0))

	h.rebuild(ui(0))
	assert.Equal(t, 1, passes, "unchanged style does not relayout")

	h.rebuild(ui(8))
	assert.Equal(t, 2, passes)
}

func TestFlexBorderColor(t *testing.T) {
	red := platform.RGB(255, 0, 0)
	h := newHarness(t, &app{}, core.View[app](Row(labels("a")...).WithBorder(1).WithBorderColor(red)))
	group := groupOf(t, h.pod.Shadow)
	assert.Equal(t, red, group.BorderColor())

	blue := platform.RGB(0, 0, 255)
	h.rebuild(Row(labels("a")...).WithBorder(1).WithBorderColor(blue))
	assert.Equal(t, blue, group.BorderColor())
}

func TestFlexTeardownReleasesEverything(t *testing.T) {
	items := make([]core.View[app], 0, 20)
	for i := range 20 {
		items = append(items, Row[app](Label[app](fmt.Sprint(i)), NewImage[app](encodePNG(t, 4, 4))))
	}
	h := newHarness(t, &app{}, core.View[app](NewWindow[app](VScroll[app](Column(items...)))))

	h.teardown()
	assert.Zero(t, h.platform.Live())
	assert.Zero(t, h.cx.Tree().Len())
}
