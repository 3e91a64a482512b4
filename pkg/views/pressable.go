package views

import (
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/platform"
)

// PressState is the interaction state a pressable hands to its content.
// The flags are independent.
type PressState struct {
	Pressed bool
	Hovered bool
	Focused bool
}

// PressableShadow owns a native pressable wrapping the content's widget.
// The pressable shares the content's layout node.
type PressableShadow struct {
	pressable platform.Pressable
	contents  core.Shadow
}

// Widget returns the native pressable.
func (s *PressableShadow) Widget() platform.Widget { return s.pressable }

// ReplaceWidget swaps the wrapped content widget.
func (s *PressableShadow) ReplaceWidget(_ *core.Context, _, new platform.Widget) {
	s.pressable.SetContents(new)
}

// Pressable makes its content respond to pointer and focus input. The
// content is rebuilt from Content whenever the interaction state changes.
type Pressable[T any] struct {
	Content func(data *T, state PressState) core.View[T]

	OnPress func(data *T) core.Action
	OnHover func(data *T, hovered bool) core.Action
	OnFocus func(data *T, focused bool) core.Action
}

// Press returns a pressable around the view content produces.
func Press[T any](content func(data *T, state PressState) core.View[T]) Pressable[T] {
	return Pressable[T]{Content: content}
}

// WithOnPress sets the callback run when a press is released over the
// pressable.
func (p Pressable[T]) WithOnPress(fn func(data *T) core.Action) Pressable[T] {
	p.OnPress = fn
	return p
}

// WithOnHover sets the callback run on every hover change.
func (p Pressable[T]) WithOnHover(fn func(data *T, hovered bool) core.Action) Pressable[T] {
	p.OnHover = fn
	return p
}

// WithOnFocus sets the callback run on every focus change.
func (p Pressable[T]) WithOnFocus(fn func(data *T, focused bool) core.Action) Pressable[T] {
	p.OnFocus = fn
	return p
}

// pressableEvent is what the native callbacks post back to the pressable.
type pressableEvent struct {
	kind  pressableEventKind
	press platform.Press
	on    bool
}

type pressableEventKind uint8

const (
	eventPress pressableEventKind = iota
	eventHover
	eventFocus
)

type pressableState[T any] struct {
	id       core.ViewID
	press    PressState
	behavior Pressable[T]
	child    core.Child[T]
}

func (st *pressableState[T]) contentMut(m core.AnyMut, shadow *PressableShadow) core.AnyMut {
	return core.AnyMut{
		Parent: m.Parent,
		Node:   m.Node,
		Shadow: &shadow.contents,
		Host:   shadow,
	}
}

func (p Pressable[T]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	pp := platform.Require[platform.PressablePlatform](cx.Platform(), "views.Pressable")
	st := &pressableState[T]{id: cx.NewViewID(), behavior: p}

	content := st.child.Build(cx, data, p.Content(data, st.press))
	pressable := pp.NewPressable(content.Shadow.Widget())
	cx.Metrics().WidgetCreated("pressable")

	proxy, id := cx.Proxy(), st.id
	post := func(ev pressableEvent) {
		// A closed proxy means the loop is gone; the event has nowhere to go.
		_ = proxy.Post(core.NewMessage(ev, id))
	}
	pressable.SetOnPress(func(press platform.Press) {
		post(pressableEvent{kind: eventPress, press: press})
	})
	pressable.SetOnHover(func(hovered bool) {
		post(pressableEvent{kind: eventHover, on: hovered})
	})
	pressable.SetOnFocus(func(focused bool) {
		post(pressableEvent{kind: eventFocus, on: focused})
	})

	shadow := &PressableShadow{pressable: pressable, contents: content.Shadow}
	return core.Upcast(core.Pod[*PressableShadow]{Node: content.Node, Shadow: shadow}), st
}

func (p Pressable[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	shadow := core.MustDowncastMut[*PressableShadow](m).Shadow
	st := state.(*pressableState[T])

	st.behavior = p
	st.child.Rebuild(st.contentMut(m, shadow), cx, data, p.Content(data, st.press))
}

func (p Pressable[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	shadow := core.MustDowncastMut[*PressableShadow](m).Shadow
	st := state.(*pressableState[T])
	content := st.contentMut(m, shadow)

	if ev, ok := core.TakeTargeted[pressableEvent](msg, st.id); ok {
		action := st.handle(ev, data)
		st.child.Rebuild(content, cx, data, st.behavior.Content(data, st.press))
		return action
	}

	if _, ok := core.Get[core.LayoutPass](msg); ok {
		if l, ok := cx.ComputedLayout(*m.Node); ok {
			shadow.pressable.SetSize(l.Size.Width, l.Size.Height)
		}
	}
	return st.child.Message(content, cx, data, msg)
}

// handle applies ev to the press state and runs the matching callback.
func (st *pressableState[T]) handle(ev pressableEvent, data *T) core.Action {
	b := st.behavior
	switch ev.kind {
	case eventPress:
		switch ev.press {
		case platform.Pressed:
			st.press.Pressed = true
		case platform.Released:
			st.press.Pressed = false
			if b.OnPress != nil {
				return b.OnPress(data)
			}
		case platform.Cancelled:
			st.press.Pressed = false
		}
	case eventHover:
		st.press.Hovered = ev.on
		if b.OnHover != nil {
			return b.OnHover(data, ev.on)
		}
	case eventFocus:
		st.press.Focused = ev.on
		if b.OnFocus != nil {
			return b.OnFocus(data, ev.on)
		}
	}
	return core.Action{}
}

func (p Pressable[T]) Teardown(pod core.AnyPod, state core.State, cx *core.Context) {
	el := core.MustDowncast[*PressableShadow](pod)
	st := state.(*pressableState[T])

	st.child.Teardown(core.AnyPod{Node: pod.Node, Shadow: el.Shadow.contents}, cx)
	el.Shadow.pressable.Destroy()
	cx.Metrics().WidgetDestroyed("pressable")
	cx.ReleaseViewID(st.id)
}
