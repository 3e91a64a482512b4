package views

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// Phase is the lifecycle phase of a window.
type Phase uint8

const (
	PhaseBuilding Phase = iota
	PhaseIdle
	PhaseAnimating
	PhaseClosing
	PhaseTornDown
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhaseIdle:
		return "idle"
	case PhaseAnimating:
		return "animating"
	case PhaseClosing:
		return "closing"
	case PhaseTornDown:
		return "torn down"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// WindowShadow owns a native window.
type WindowShadow struct {
	window platform.Window
}

// Widget returns the native window.
func (s *WindowShadow) Widget() platform.Widget { return s.window }

// ReplaceWidget swaps the window's content widget.
func (s *WindowShadow) ReplaceWidget(_ *core.Context, _, new platform.Widget) {
	s.window.SetContents(new)
}

// Window is a top-level native window. It is the layout and animation
// controller for its content: relayout and animation requests made while
// the content is built, rebuilt or handles a message stop here.
type Window[T any] struct {
	Content core.View[T]
	Title   string
}

// NewWindow returns a window showing content.
func NewWindow[T any](content core.View[T]) Window[T] {
	return Window[T]{Content: content}
}

// WithTitle sets the window title.
func (w Window[T]) WithTitle(title string) Window[T] {
	w.Title = title
	return w
}

type windowResized struct{}

type windowCloseRequested struct{}

type windowState[T any] struct {
	id      core.ViewID
	phase   Phase
	title   string
	content core.AnyPod
	child   core.Child[T]

	laidOut             bool
	width, height       uint32
	minWidth, minHeight uint32

	// animating counts outstanding StartAnimating requests.
	animating int
}

func (st *windowState[T]) contentMut(shadow *WindowShadow, root layout.NodeID) core.AnyMut {
	return core.AnyMut{
		Parent: root,
		Node:   &st.content.Node,
		Shadow: &st.content.Shadow,
		Host:   shadow,
	}
}

func (w Window[T]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	wp := platform.Require[platform.WindowPlatform](cx.Platform(), "views.Window")
	st := &windowState[T]{id: cx.NewViewID(), phase: PhaseBuilding, title: w.Title}

	cx.EnterController(st.id, func() {
		st.content = st.child.Build(cx, data, w.Content)
	})

	win := wp.NewWindow(st.content.Shadow.Widget())
	cx.Metrics().WidgetCreated("window")
	win.SetTitle(w.Title)

	proxy, id := cx.Proxy(), st.id
	post := func(payload any) {
		_ = proxy.Post(core.NewMessage(payload, id))
	}
	win.SetOnResize(func() { post(windowResized{}) })
	win.SetOnCloseRequested(func() { post(windowCloseRequested{}) })
	win.SetOnAnimationFrame(func(delta time.Duration) {
		post(core.AnimationTick{Delta: delta})
	})

	shadow := &WindowShadow{window: win}
	root := cx.NewLayoutNode(layout.DefaultStyle(), st.content.Node)
	st.layout(cx, shadow, root, data)
	st.phase = PhaseIdle

	return core.Upcast(core.Pod[*WindowShadow]{Node: root, Shadow: shadow}), st
}

func mustLayout(op string, err error) {
	if err != nil {
		errors.Invariant("views.Window."+op, "%v", err)
	}
}

// layout sizes the native window's minimum from the content's min-content
// size, lays the content out at the window's current size and tells the
// content about it. A pass with nothing changed since the previous one
// does nothing.
func (st *windowState[T]) layout(cx *core.Context, shadow *WindowShadow, root layout.NodeID, data *T) core.Action {
	cx.RelayoutHandled(st.id)
	tree := cx.Tree()
	width, height := shadow.window.Size()
	if st.laidOut && width == st.width && height == st.height && !tree.IsDirty(root) {
		return core.Action{}
	}
	start := time.Now()

	base, err := tree.Style(root)
	mustLayout("style", err)

	minStyle := base.Size(layout.Auto(), layout.Auto()).MaxSize(layout.Length(0), layout.Length(0))
	mustLayout("min style", tree.SetStyle(root, minStyle))
	mustLayout("min layout", tree.ComputeLayout(root, layout.AvailableSize{
		Width:  layout.MinContent,
		Height: layout.MinContent,
	}))
	minimum, err := tree.Layout(root)
	mustLayout("min result", err)
	minW := uint32(math.Ceil(float64(minimum.ContentSize.Width)))
	minH := uint32(math.Ceil(float64(minimum.ContentSize.Height)))
	if !st.laidOut || minW != st.minWidth || minH != st.minHeight {
		shadow.window.SetMinSize(minW, minH)
		st.minWidth, st.minHeight = minW, minH
		// The platform may have grown the window to fit.
		width, height = shadow.window.Size()
	}

	fw, fh := float32(width), float32(height)
	mustLayout("size style", tree.SetStyle(root, base.Size(layout.Length(fw), layout.Length(fh)).MaxSize(layout.Auto(), layout.Auto())))
	mustLayout("layout", tree.ComputeLayout(root, layout.DefiniteSize(fw, fh)))
	st.width, st.height, st.laidOut = width, height, true

	var action core.Action
	cx.EnterController(st.id, func() {
		action = st.child.Message(st.contentMut(shadow, root), cx, data, core.Broadcast(core.LayoutPass{}))
	})
	// Nothing the content did in response to the pass needs another one.
	cx.RelayoutHandled(st.id)

	cx.Metrics().LayoutPass(time.Since(start))
	cx.Logger().Debug("window laid out", "view", st.id, "width", width, "height", height, "minWidth", minW, "minHeight", minH)
	return action
}

func (w Window[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	el := core.MustDowncastMut[*WindowShadow](m)
	st := state.(*windowState[T])

	cx.EnterController(st.id, func() {
		st.child.Rebuild(st.contentMut(el.Shadow, el.Node), cx, data, w.Content)
	})
	if w.Title != st.title {
		el.Shadow.window.SetTitle(w.Title)
		st.title = w.Title
	}
	st.layout(cx, el.Shadow, el.Node, data)
}

func (w Window[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	el := core.MustDowncastMut[*WindowShadow](m)
	st := state.(*windowState[T])

	if st.phase == PhaseClosing || st.phase == PhaseTornDown {
		return core.Action{}
	}

	if _, ok := core.TakeTargeted[windowResized](msg, st.id); ok {
		width, height := el.Shadow.window.Size()
		if st.laidOut && width == st.width && height == st.height {
			return core.Action{}
		}
		return st.layout(cx, el.Shadow, el.Node, data)
	}
	if _, ok := core.TakeTargeted[core.RelayoutRequested](msg, st.id); ok {
		return st.layout(cx, el.Shadow, el.Node, data)
	}
	if _, ok := core.TakeTargeted[windowCloseRequested](msg, st.id); ok {
		st.phase = PhaseClosing
		cx.Logger().Debug("window closing", "view", st.id)
		cx.RequestQuit()
		return core.Action{}
	}
	if _, ok := core.TakeTargeted[core.StartAnimating](msg, st.id); ok {
		st.animating++
		if st.animating == 1 {
			el.Shadow.window.StartAnimating()
			st.phase = PhaseAnimating
		}
		return core.Action{}
	}
	if _, ok := core.TakeTargeted[core.StopAnimating](msg, st.id); ok {
		if st.animating == 0 {
			return core.Action{}
		}
		st.animating--
		if st.animating == 0 {
			el.Shadow.window.StopAnimating()
			st.phase = PhaseIdle
		}
		return core.Action{}
	}
	if tick, ok := core.TakeTargeted[core.AnimationTick](msg, st.id); ok {
		// A frame can cross a stop request on the channel.
		if st.animating == 0 {
			return core.Action{}
		}
		msg = core.Broadcast(tick)
	}

	var action core.Action
	cx.EnterController(st.id, func() {
		action = st.child.Message(st.contentMut(el.Shadow, el.Node), cx, data, msg)
	})
	return action
}

func (w Window[T]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	el := core.MustDowncast[*WindowShadow](p)
	st := state.(*windowState[T])

	cx.EnterController(st.id, func() {
		st.child.Teardown(st.content, cx)
	})
	if st.animating > 0 {
		el.Shadow.window.StopAnimating()
		st.animating = 0
	}
	el.Shadow.window.Destroy()
	cx.Metrics().WidgetDestroyed("window")
	st.phase = PhaseTornDown
	cx.ReleaseViewID(st.id)
	cx.RemoveLayoutNode(el.Node)
}
