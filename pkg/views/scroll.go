package views

import (
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// ScrollShadow owns a native scroll view around the content's widget.
type ScrollShadow struct {
	scroll platform.Scroll
}

// Widget returns the native scroll view.
func (s *ScrollShadow) Widget() platform.Widget { return s.scroll }

// ReplaceWidget swaps the scrolled content widget.
func (s *ScrollShadow) ReplaceWidget(_ *core.Context, _, new platform.Widget) {
	s.scroll.SetContents(new)
}

// Scroll shows its content in a viewport that may be smaller than the
// content along Axis.
type Scroll[T any] struct {
	Content core.View[T]
	Axis    platform.Axis
	Style   layout.Style
}

// VScroll scrolls content vertically.
func VScroll[T any](content core.View[T]) Scroll[T] {
	return newScroll(content, platform.Vertical)
}

// HScroll scrolls content horizontally.
func HScroll[T any](content core.View[T]) Scroll[T] {
	return newScroll(content, platform.Horizontal)
}

func newScroll[T any](content core.View[T], axis platform.Axis) Scroll[T] {
	return Scroll[T]{Content: content, Axis: axis, Style: layout.DefaultStyle()}
}

// WithFlex sets the grow and shrink factors.
func (s Scroll[T]) WithFlex(amount float32) Scroll[T] {
	s.Style = s.Style.Flex(amount)
	return s
}

// WithSize sets the width and height of the viewport.
func (s Scroll[T]) WithSize(width, height layout.Value) Scroll[T] {
	s.Style = s.Style.Size(width, height)
	return s
}

// WithMaxHeight limits the viewport height.
func (s Scroll[T]) WithMaxHeight(px float32) Scroll[T] {
	s.Style.MaxHeight = layout.Length(px)
	return s
}

// style is the viewport style: the configured one laid out along the
// scroll axis and free to shrink below its content.
func (s Scroll[T]) style() layout.Style {
	style := s.Style
	style.Overflow = layout.OverflowScroll
	style.Direction = layout.Column
	if s.Axis == platform.Horizontal {
		style.Direction = layout.Row
	}
	return style
}

type scrollState[T any] struct {
	axis    platform.Axis
	content core.AnyPod
	child   core.Child[T]
}

func (st *scrollState[T]) contentMut(shadow *ScrollShadow, node layout.NodeID) core.AnyMut {
	return core.AnyMut{
		Parent: node,
		Node:   &st.content.Node,
		Shadow: &st.content.Shadow,
		Host:   shadow,
	}
}

func (s Scroll[T]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	sp := platform.Require[platform.ScrollPlatform](cx.Platform(), "views.Scroll")
	st := &scrollState[T]{axis: s.Axis}
	st.content = st.child.Build(cx, data, s.Content)

	scroll := sp.NewScroll(s.Axis, st.content.Shadow.Widget())
	cx.Metrics().WidgetCreated("scroll")
	node := cx.NewLayoutNode(s.style(), st.content.Node)

	return core.Upcast(core.Pod[*ScrollShadow]{Node: node, Shadow: &ScrollShadow{scroll: scroll}}), st
}

func (s Scroll[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	el := core.MustDowncastMut[*ScrollShadow](m)
	st := state.(*scrollState[T])

	if s.Axis != st.axis {
		// The native axis is fixed at construction.
		pod, next := s.Build(cx, data)
		old := core.Replace(cx, m, pod)
		s.Teardown(old, st, cx)
		*st = *next.(*scrollState[T])
		return
	}
	cx.SetLayoutStyle(el.Node, s.style())
	st.child.Rebuild(st.contentMut(el.Shadow, el.Node), cx, data, s.Content)
}

func (s Scroll[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	el := core.MustDowncastMut[*ScrollShadow](m)
	st := state.(*scrollState[T])

	if _, ok := core.Get[core.LayoutPass](msg); ok {
		if l, ok := cx.ComputedLayout(el.Node); ok {
			el.Shadow.scroll.SetSize(l.Size.Width, l.Size.Height)
			el.Shadow.scroll.SetContentSize(l.ContentSize.Width, l.ContentSize.Height)
		}
	}
	return st.child.Message(st.contentMut(el.Shadow, el.Node), cx, data, msg)
}

func (s Scroll[T]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	el := core.MustDowncast[*ScrollShadow](p)
	st := state.(*scrollState[T])

	st.child.Teardown(st.content, cx)
	el.Shadow.scroll.Destroy()
	cx.Metrics().WidgetDestroyed("scroll")
	cx.RemoveLayoutNode(el.Node)
}
