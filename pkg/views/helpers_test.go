package views

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform/headless"
)

// app is the application data used by the view tests.
type app struct {
	count   int
	presses int
	hovers  []bool
	text    string
	submits []string
}

// harness drives a root view the way the engine does, without a loop
// goroutine: tests simulate native input and then call drain.
type harness[T any] struct {
	t        *testing.T
	platform *headless.Platform
	metrics  *metrics.Recorder
	proxy    *core.Proxy
	cx       *core.Context
	data     *T

	view  core.View[T]
	pod   core.AnyPod
	state core.State
}

func newHarness[T any](t *testing.T, data *T, v core.View[T]) *harness[T] {
	t.Helper()
	p := headless.New()
	proxy := core.NewProxy(context.Background(), nil)
	t.Cleanup(proxy.Close)
	rec := metrics.New(prometheus.NewRegistry())
	cx := core.NewContext(p, proxy,
		core.WithLogger(slog.New(slog.DiscardHandler)),
		core.WithMetrics(rec),
	)

	h := &harness[T]{t: t, platform: p, metrics: rec, proxy: proxy, cx: cx, data: data, view: v}
	h.pod, h.state = v.Build(cx, data)
	return h
}

func (h *harness[T]) mut() core.AnyMut {
	return core.AnyMut{Parent: layout.NoNode, Node: &h.pod.Node, Shadow: &h.pod.Shadow}
}

func (h *harness[T]) rebuild(v core.View[T]) {
	h.t.Helper()
	require.True(h.t, core.CanRebuild(h.view, v), "root view changed type")
	v.Rebuild(h.mut(), h.state, h.cx, h.data)
	h.view = v
}

// drain dispatches every queued message to the root and returns the
// merged actions.
func (h *harness[T]) drain() core.Action {
	var action core.Action
	for {
		ev, ok := h.proxy.Pop()
		if !ok {
			return action
		}
		if ev.Rebuild {
			action = action.Merge(core.Rebuild())
		}
		if ev.Message == nil {
			continue
		}
		if id := ev.Message.Target(); id != 0 && !h.cx.IDs().Live(id) {
			continue
		}
		action = action.Merge(h.view.Message(h.mut(), h.state, h.cx, h.data, ev.Message))
	}
}

func (h *harness[T]) teardown() {
	h.view.Teardown(h.pod, h.state, h.cx)
}

func (h *harness[T]) window() *headless.Window {
	h.t.Helper()
	windows := h.platform.Windows()
	require.NotEmpty(h.t, windows)
	return windows[len(windows)-1]
}

// encodePNG returns a blank w by h PNG.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// probe passes everything through to its content and counts layout
// passes.
type probe[T any] struct {
	content core.View[T]
	passes  *int
}

func (p probe[T]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	var child core.Child[T]
	pod := child.Build(cx, data, p.content)
	return pod, &child
}

func (p probe[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	state.(*core.Child[T]).Rebuild(m, cx, data, p.content)
}

func (p probe[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	if _, ok := core.Get[core.LayoutPass](msg); ok {
		*p.passes++
	}
	return state.(*core.Child[T]).Message(m, cx, data, msg)
}

func (p probe[T]) Teardown(pod core.AnyPod, state core.State, cx *core.Context) {
	state.(*core.Child[T]).Teardown(pod, cx)
}

// textOf returns the text of the native label behind a text shadow.
func textOf(t *testing.T, s core.Shadow) string {
	t.Helper()
	ts, ok := s.(*TextShadow)
	require.True(t, ok, "shadow is %T", s)
	return ts.label.(*headless.Text).Text()
}
