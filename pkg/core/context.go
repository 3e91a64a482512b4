package core

import (
	"log/slog"

	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform"
)

// Context is the environment threaded through every view operation. It is
// owned by the reconciliation goroutine and must not be shared.
type Context struct {
	platform platform.Platform
	tree     *layout.Tree
	proxy    *Proxy
	ids      *IDAllocator
	logger   *slog.Logger
	metrics  *metrics.Recorder

	resources []any

	layoutController    ViewID
	animationController ViewID
	pendingRelayout     map[ViewID]bool

	quit bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cx *Context) {
		if logger != nil {
			cx.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. The default records nothing.
func WithMetrics(r *metrics.Recorder) Option {
	return func(cx *Context) {
		cx.metrics = r
	}
}

// NewContext creates a context around p. Messages produced by views are
// posted to proxy.
func NewContext(p platform.Platform, proxy *Proxy, opts ...Option) *Context {
	cx := &Context{
		platform:        p,
		tree:            layout.NewTree(),
		proxy:           proxy,
		ids:             NewIDAllocator(),
		logger:          slog.Default(),
		pendingRelayout: make(map[ViewID]bool),
	}
	for _, opt := range opts {
		opt(cx)
	}
	return cx
}

// Platform returns the native toolkit binding.
func (cx *Context) Platform() platform.Platform { return cx.platform }

// Tree returns the layout tree. Views mutate it through the routed
// methods on Context; windows use it directly to compute layout.
func (cx *Context) Tree() *layout.Tree { return cx.tree }

// Proxy returns the proxy native callbacks post through.
func (cx *Context) Proxy() *Proxy { return cx.proxy }

// IDs returns the view id allocator.
func (cx *Context) IDs() *IDAllocator { return cx.ids }

// Logger returns the logger.
func (cx *Context) Logger() *slog.Logger { return cx.logger }

// Metrics returns the metrics recorder, which may be nil.
func (cx *Context) Metrics() *metrics.Recorder { return cx.metrics }

// NewViewID mints an id for a stateful view.
func (cx *Context) NewViewID() ViewID {
	return cx.ids.Next()
}

// ReleaseViewID retires id; messages to it are dropped from now on.
func (cx *Context) ReleaseViewID(id ViewID) {
	cx.ids.Release(id)
	delete(cx.pendingRelayout, id)
}

// Post queues msg through the proxy. A closed proxy drops it.
func (cx *Context) Post(msg *Message) {
	if err := cx.proxy.Post(msg); err != nil {
		cx.logger.Debug("message dropped", "msg", msg, "err", err)
	}
}

// RequestQuit asks the platform to quit. The engine stops after the
// current event.
func (cx *Context) RequestQuit() {
	if cx.quit {
		return
	}
	cx.quit = true
	cx.platform.Quit()
}

// QuitRequested reports whether RequestQuit was called.
func (cx *Context) QuitRequested() bool { return cx.quit }

// Resources

// PushResource makes r visible to the views built after it until it is
// popped. Lookups find the most recently pushed value of a type.
func PushResource[R any](cx *Context, r R) {
	p := new(R)
	*p = r
	cx.resources = append(cx.resources, p)
}

func findResource[R any](cx *Context) int {
	for i := len(cx.resources) - 1; i >= 0; i-- {
		if _, ok := cx.resources[i].(*R); ok {
			return i
		}
	}
	return -1
}

// PopResource removes the most recently pushed R, which need not be on top
// of the stack, and returns it.
func PopResource[R any](cx *Context) (R, bool) {
	i := findResource[R](cx)
	if i < 0 {
		var zero R
		return zero, false
	}
	p := cx.resources[i].(*R)
	cx.resources = append(cx.resources[:i], cx.resources[i+1:]...)
	return *p, true
}

// Resource returns the most recently pushed R.
func Resource[R any](cx *Context) (R, bool) {
	if p, ok := ResourceMut[R](cx); ok {
		return *p, true
	}
	var zero R
	return zero, false
}

// ResourceMut returns a pointer to the most recently pushed R. Changes
// through it are seen by later lookups.
func ResourceMut[R any](cx *Context) (*R, bool) {
	i := findResource[R](cx)
	if i < 0 {
		return nil, false
	}
	return cx.resources[i].(*R), true
}

// Controllers

// LayoutController returns the view receiving relayout requests.
func (cx *Context) LayoutController() ViewID { return cx.layoutController }

// AnimationController returns the view receiving animation requests.
func (cx *Context) AnimationController() ViewID { return cx.animationController }

// EnterController runs fn with id as both the layout and the animation
// controller, restoring the previous controllers afterwards. Windows wrap
// every operation on their content in it so requests stop at the nearest
// window.
func (cx *Context) EnterController(id ViewID, fn func()) {
	prevLayout, prevAnimation := cx.layoutController, cx.animationController
	cx.layoutController, cx.animationController = id, id
	defer func() {
		cx.layoutController, cx.animationController = prevLayout, prevAnimation
	}()
	fn()
}

// Relayout asks the layout controller for a fresh layout pass. Requests
// are coalesced: while one is pending, further calls do nothing.
func (cx *Context) Relayout() {
	id := cx.layoutController
	if id == 0 {
		return
	}
	if cx.pendingRelayout[id] {
		cx.metrics.Relayout(metrics.RelayoutCoalesced)
		return
	}
	cx.pendingRelayout[id] = true
	cx.metrics.Relayout(metrics.RelayoutPosted)
	cx.Post(NewMessage(RelayoutRequested{}, id))
}

// RelayoutHandled clears the pending request of id. The controller calls
// it when it lays out, so later changes post a new request.
func (cx *Context) RelayoutHandled(id ViewID) {
	delete(cx.pendingRelayout, id)
}

// RelayoutPending reports whether a request to id is in flight.
func (cx *Context) RelayoutPending(id ViewID) bool {
	return cx.pendingRelayout[id]
}

// StartAnimating asks the animation controller to deliver frames.
func (cx *Context) StartAnimating() {
	if id := cx.animationController; id != 0 {
		cx.Post(NewMessage(StartAnimating{}, id))
	}
}

// StopAnimating releases one StartAnimating request.
func (cx *Context) StopAnimating() {
	if id := cx.animationController; id != 0 {
		cx.Post(NewMessage(StopAnimating{}, id))
	}
}

// Routed layout mutations. Each structural change requests a relayout
// first. Stale node errors are expected while subtrees are torn down and
// are ignored; any other error means the element and layout trees
// disagree, which panics.

func (cx *Context) check(op string, node layout.NodeID, err error) bool {
	if err == nil {
		return true
	}
	if layout.IsStale(err) {
		cx.logger.Debug("stale layout node", "op", op, "node", node)
		cx.metrics.Stale(op)
		return false
	}
	errors.Invariant("core."+op, "%v", err)
	return false
}

// NewLayoutNode creates a container node.
func (cx *Context) NewLayoutNode(style layout.Style, children ...layout.NodeID) layout.NodeID {
	cx.Relayout()
	id, err := cx.tree.NewContainer(style, children...)
	if !cx.check("new node", layout.NoNode, err) {
		return cx.tree.NewLeaf(style)
	}
	return id
}

// NewLayoutLeaf creates a leaf, measured by m when m is not nil.
func (cx *Context) NewLayoutLeaf(style layout.Style, m layout.Measurer) layout.NodeID {
	cx.Relayout()
	if m == nil {
		return cx.tree.NewLeaf(style)
	}
	return cx.tree.NewMeasuredLeaf(style, m)
}

// SetLayoutStyle updates the style of node and reports whether it changed.
// An unchanged style requests no relayout.
func (cx *Context) SetLayoutStyle(node layout.NodeID, style layout.Style) bool {
	current, err := cx.tree.Style(node)
	if !cx.check("set style", node, err) {
		return false
	}
	if current.Equal(style) {
		return false
	}
	cx.Relayout()
	return cx.check("set style", node, cx.tree.SetStyle(node, style))
}

// SetLayoutLeaf replaces the measurer of node.
func (cx *Context) SetLayoutLeaf(node layout.NodeID, m layout.Measurer) {
	cx.Relayout()
	cx.check("set leaf", node, cx.tree.SetLeaf(node, m))
}

// InsertLayoutChild inserts child into parent at index.
func (cx *Context) InsertLayoutChild(parent layout.NodeID, index int, child layout.NodeID) {
	cx.Relayout()
	cx.check("insert child", parent, cx.tree.InsertChildAt(parent, index, child))
}

// RemoveLayoutChild detaches the child of parent at index.
func (cx *Context) RemoveLayoutChild(parent layout.NodeID, index int) layout.NodeID {
	cx.Relayout()
	child, err := cx.tree.RemoveChildAt(parent, index)
	cx.check("remove child", parent, err)
	return child
}

// ReplaceLayoutChild puts child at index of parent and returns the node it
// displaced.
func (cx *Context) ReplaceLayoutChild(parent layout.NodeID, index int, child layout.NodeID) layout.NodeID {
	cx.Relayout()
	old, err := cx.tree.ReplaceChildAt(parent, index, child)
	cx.check("replace child", parent, err)
	return old
}

// RemoveLayoutNode detaches and deletes node.
func (cx *Context) RemoveLayoutNode(node layout.NodeID) {
	cx.Relayout()
	cx.check("remove node", node, cx.tree.Remove(node))
}

// LayoutIndex returns the position of child within parent, or -1.
func (cx *Context) LayoutIndex(parent, child layout.NodeID) int {
	i, err := cx.tree.IndexOf(parent, child)
	if !cx.check("index of", parent, err) {
		return -1
	}
	return i
}

// ComputedLayout returns the last computed layout of node.
func (cx *Context) ComputedLayout(node layout.NodeID) (layout.Layout, bool) {
	l, err := cx.tree.Layout(node)
	return l, cx.check("layout", node, err)
}
