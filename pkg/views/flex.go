package views

import (
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// Flex lays its children out along one axis in a native group.
type Flex[T any] struct {
	Children    core.Seq[T]
	Style       layout.Style
	BorderColor platform.Color
}

// Row lays children out left to right.
func Row[T any](children ...core.View[T]) Flex[T] {
	return newFlex(layout.Row, children)
}

// Column lays children out top to bottom.
func Column[T any](children ...core.View[T]) Flex[T] {
	return newFlex(layout.Column, children)
}

func newFlex[T any](direction layout.Direction, children []core.View[T]) Flex[T] {
	style := layout.DefaultStyle()
	style.Direction = direction
	return Flex[T]{Children: children, Style: style}
}

// WithFlex sets the grow and shrink factors.
func (f Flex[T]) WithFlex(amount float32) Flex[T] {
	f.Style = f.Style.Flex(amount)
	return f
}

// WithSize sets the width and height.
func (f Flex[T]) WithSize(width, height layout.Value) Flex[T] {
	f.Style = f.Style.Size(width, height)
	return f
}

// WithWidth sets a fixed width.
func (f Flex[T]) WithWidth(px float32) Flex[T] {
	f.Style.Width = layout.Length(px)
	return f
}

// WithMaxHeight limits the height.
func (f Flex[T]) WithMaxHeight(px float32) Flex[T] {
	f.Style.MaxHeight = layout.Length(px)
	return f
}

// WithPadding sets the padding on all sides.
func (f Flex[T]) WithPadding(px float32) Flex[T] {
	f.Style.Padding = layout.EdgeAll(px)
	return f
}

// WithBorder sets the border width on all sides.
func (f Flex[T]) WithBorder(px float32) Flex[T] {
	f.Style.Border = layout.EdgeAll(px)
	return f
}

// WithBorderTop sets the top border width.
func (f Flex[T]) WithBorderTop(px float32) Flex[T] {
	f.Style.Border.Top = px
	return f
}

// WithBorderColor sets the border color.
func (f Flex[T]) WithBorderColor(c platform.Color) Flex[T] {
	f.BorderColor = c
	return f
}

// WithGap sets the space between children.
func (f Flex[T]) WithGap(px float32) Flex[T] {
	f.Style.Gap = px
	return f
}

// WithJustify sets how children are distributed along the main axis.
func (f Flex[T]) WithJustify(j layout.Justify) Flex[T] {
	f.Style.JustifyContent = j
	return f
}

// WithAlign sets how children are placed on the cross axis.
func (f Flex[T]) WithAlign(a layout.Align) Flex[T] {
	f.Style.AlignItems = a
	return f
}

type flexState[T any] struct {
	seq         *core.SeqState[T]
	borderColor platform.Color
}

func (f Flex[T]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	shadow := newGroupShadow(cx)
	node := cx.NewLayoutNode(f.Style)
	shadow.group.SetBorderColor(f.BorderColor)

	state := &flexState[T]{
		seq:         f.Children.Build(cx, data, shadow.Elements(node)),
		borderColor: f.BorderColor,
	}
	return core.Upcast(core.Pod[*GroupShadow]{Node: node, Shadow: shadow}), state
}

func (f Flex[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	el := core.MustDowncastMut[*GroupShadow](m)
	st := state.(*flexState[T])

	cx.SetLayoutStyle(el.Node, f.Style)
	if f.BorderColor != st.borderColor {
		el.Shadow.group.SetBorderColor(f.BorderColor)
		st.borderColor = f.BorderColor
	}
	f.Children.Rebuild(el.Shadow.Elements(el.Node), st.seq, cx, data)
}

func (f Flex[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	el := core.MustDowncastMut[*GroupShadow](m)
	st := state.(*flexState[T])

	if _, ok := core.Get[core.LayoutPass](msg); ok {
		el.Shadow.layout(cx, el.Node)
	}
	return st.seq.Message(el.Shadow.Elements(el.Node), cx, data, msg)
}

func (f Flex[T]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	el := core.MustDowncast[*GroupShadow](p)
	st := state.(*flexState[T])

	st.seq.Teardown(el.Shadow.Elements(el.Node), cx)
	el.Shadow.destroy(cx)
	cx.RemoveLayoutNode(el.Node)
}
