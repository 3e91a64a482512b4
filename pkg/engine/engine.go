// Package engine runs the reconciliation loop: it builds the root view,
// drains the proxy one event at a time, dispatches messages top-down and
// rebuilds the tree when the application data changes.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/go-drift/native/pkg/config"
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform"
)

// running guards against a second loop in the same process.
var running atomic.Bool

// Option configures Run.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	metrics   *metrics.Recorder
	queueWarn int
	app       string
	debug     *DebugServer
	idle      func()
}

// WithLogger sets the logger used by the loop and every view.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records loop and view activity on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithQueueWarn logs a warning whenever more than n events are waiting
// after a dispatch. Zero disables the warning.
func WithQueueWarn(n int) Option {
	return func(o *options) { o.queueWarn = n }
}

// WithConfig applies the engine section of cfg and tags the loop's logs
// and debug state with the app id.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.queueWarn = cfg.Engine.QueueWarn
			o.app = cfg.App.ID
		}
	}
}

// WithDebugServer publishes loop state to s after every event.
func WithDebugServer(s *DebugServer) Option {
	return func(o *options) { o.debug = s }
}

// WithIdle calls fn on the loop goroutine after the initial build and
// whenever the queue has been drained. fn may inspect native widgets.
func WithIdle(fn func()) Option {
	return func(o *options) { o.idle = fn }
}

// Run builds ui(data) and processes events until the platform quits or ctx
// is done. It must be called from the goroutine that owns the native
// toolkit, at most once at a time, and never from a task started through
// the proxy.
//
// Run returns nil after a quit request and ctx.Err() after cancellation.
func Run[T any](ctx context.Context, p platform.Platform, data *T, ui func(*T) core.View[T], opts ...Option) error {
	if core.InTask(ctx) {
		return errors.New("engine.Run", errors.KindMisuse, fmt.Errorf("%w: called from a proxy task", errors.ErrMisuse))
	}
	if !running.CompareAndSwap(false, true) {
		return errors.New("engine.Run", errors.KindMisuse, fmt.Errorf("%w: already running", errors.ErrMisuse))
	}
	defer running.Store(false)
	defer errors.RecoverAndRepanic("engine.Run")

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.app != "" {
		o.logger = o.logger.With("app", o.app)
	}

	proxy := core.NewProxy(ctx, o.logger)
	defer proxy.Close()
	cx := core.NewContext(p, proxy, core.WithLogger(o.logger), core.WithMetrics(o.metrics))

	r := &runner[T]{cx: cx, data: data, ui: ui, opts: o}
	r.build()
	defer r.teardown()
	r.idle()

	for !cx.QuitRequested() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-proxy.Ready():
		}
		for !cx.QuitRequested() {
			ev, ok := proxy.Pop()
			if !ok {
				break
			}
			r.handle(ev)
		}
		r.idle()
	}
	o.logger.Debug("engine stopped", "events", r.events)
	return nil
}

// runner owns the root element between events.
type runner[T any] struct {
	cx   *core.Context
	data *T
	ui   func(*T) core.View[T]
	opts options

	view  core.View[T]
	pod   core.AnyPod
	state core.State

	events uint64
}

func (r *runner[T]) mut() core.AnyMut {
	return core.AnyMut{Parent: layout.NoNode, Node: &r.pod.Node, Shadow: &r.pod.Shadow}
}

func (r *runner[T]) build() {
	r.view = r.ui(r.data)
	r.pod, r.state = r.view.Build(r.cx, r.data)
	r.publish(0)
}

func (r *runner[T]) idle() {
	if r.opts.idle != nil && !r.cx.QuitRequested() {
		r.opts.idle()
	}
}

func (r *runner[T]) teardown() {
	if r.view == nil {
		return
	}
	r.view.Teardown(r.pod, r.state, r.cx)
	r.view = nil
	r.publish(0)
}

// handle processes one event to completion.
func (r *runner[T]) handle(ev core.Event) {
	start := time.Now()
	r.events++

	var action core.Action
	if ev.Rebuild {
		action = core.Rebuild()
	}
	if msg := ev.Message; msg != nil {
		action = action.Merge(r.dispatch(msg))
	}
	if action.ShouldRebuild() && !r.cx.QuitRequested() {
		r.rebuild()
	}
	for _, task := range action.Tasks() {
		r.cx.Proxy().Spawn(task)
	}

	depth := r.cx.Proxy().Len()
	r.opts.metrics.SetQueueDepth(depth)
	if r.opts.queueWarn > 0 && depth > r.opts.queueWarn {
		r.opts.logger.Warn("event queue backing up", "depth", depth)
	}
	r.publish(time.Since(start))
}

func (r *runner[T]) dispatch(msg *core.Message) core.Action {
	if id := msg.Target(); id != 0 && !r.cx.IDs().Live(id) {
		r.opts.logger.Debug("message for dead view dropped", "msg", msg)
		r.opts.metrics.Message(metrics.MessageDropped)
		return core.Action{}
	}
	action := r.view.Message(r.mut(), r.state, r.cx, r.data, msg)
	if msg.Target() != 0 && !msg.Taken() {
		r.opts.logger.Debug("message not taken", "msg", msg)
		r.opts.metrics.Message(metrics.MessageDropped)
	} else {
		r.opts.metrics.Message(metrics.MessageDelivered)
	}
	return action
}

// rebuild runs ui against the current data. A root of a different type is
// built fresh and the old tree torn down.
func (r *runner[T]) rebuild() {
	next := r.ui(r.data)
	if core.CanRebuild(r.view, next) {
		next.Rebuild(r.mut(), r.state, r.cx, r.data)
		r.view = next
		return
	}
	r.opts.logger.Debug("root view replaced",
		"old", reflect.TypeOf(r.view).String(), "new", reflect.TypeOf(next).String())
	pod, state := next.Build(r.cx, r.data)
	old := core.Replace(r.cx, r.mut(), pod)
	r.view.Teardown(old, r.state, r.cx)
	r.view, r.state = next, state
}

func (r *runner[T]) publish(took time.Duration) {
	if r.opts.debug == nil {
		return
	}
	if took > 0 {
		r.opts.debug.dispatches.Add(took)
	}
	snap := &Snapshot{
		App:        r.opts.app,
		Events:     r.events,
		QueueDepth: r.cx.Proxy().Len(),
		LiveViews:  r.cx.IDs().Len(),
		LayoutSize: r.cx.Tree().Len(),
	}
	if r.view != nil {
		snap.RootType = reflect.TypeOf(r.view).String()
		snap.Root = serializeLayout(r.cx.Tree(), r.pod.Node, 0)
	}
	r.opts.debug.publish(snap)
}
