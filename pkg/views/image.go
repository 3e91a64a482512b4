package views

import (
	"bytes"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// ImageShadow owns a native image view.
type ImageShadow struct {
	image platform.Image
}

// Widget returns the native image view.
func (s *ImageShadow) Widget() platform.Widget { return s.image }

// Image shows encoded image data at its intrinsic size unless the style
// says otherwise. Data the platform cannot decode is reported and laid out
// as an empty leaf.
type Image[T any] struct {
	Data  []byte
	Tint  *platform.Color
	Style layout.Style
}

// NewImage returns an image view for data.
func NewImage[T any](data []byte) Image[T] {
	return Image[T]{Data: data, Style: layout.DefaultStyle()}
}

// WithTint tints the image.
func (i Image[T]) WithTint(c platform.Color) Image[T] {
	i.Tint = &c
	return i
}

// WithSize sets the width and height.
func (i Image[T]) WithSize(width, height layout.Value) Image[T] {
	i.Style = i.Style.Size(width, height)
	return i
}

type imageState struct {
	data []byte
	tint *platform.Color
}

func load(cx *core.Context, img platform.Image, data []byte) layout.Measurer {
	m, err := img.LoadData(data)
	if err != nil {
		cx.Logger().Warn("image data rejected", "bytes", len(data), "err", err)
		errors.Report(errors.New("views.Image", errors.KindNative, err))
		return nil
	}
	return m
}

func sameTint(a, b *platform.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (i Image[T]) Build(cx *core.Context, _ *T) (core.AnyPod, core.State) {
	ip := platform.Require[platform.ImagePlatform](cx.Platform(), "views.Image")
	img := ip.NewImage()
	cx.Metrics().WidgetCreated("image")
	if i.Tint != nil {
		img.SetTint(i.Tint)
	}

	node := cx.NewLayoutLeaf(i.Style, load(cx, img, i.Data))
	pod := core.Pod[*ImageShadow]{Node: node, Shadow: &ImageShadow{image: img}}
	return core.Upcast(pod), &imageState{data: i.Data, tint: i.Tint}
}

func (i Image[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, _ *T) {
	el := core.MustDowncastMut[*ImageShadow](m)
	st := state.(*imageState)

	cx.SetLayoutStyle(el.Node, i.Style)
	if !bytes.Equal(i.Data, st.data) {
		cx.SetLayoutLeaf(el.Node, load(cx, el.Shadow.image, i.Data))
		st.data = i.Data
	}
	if !sameTint(i.Tint, st.tint) {
		el.Shadow.image.SetTint(i.Tint)
		st.tint = i.Tint
	}
}

func (i Image[T]) Message(m core.AnyMut, _ core.State, cx *core.Context, _ *T, msg *core.Message) core.Action {
	if _, ok := core.Get[core.LayoutPass](msg); ok {
		el := core.MustDowncastMut[*ImageShadow](m)
		if l, ok := cx.ComputedLayout(el.Node); ok {
			el.Shadow.image.SetSize(l.Size.Width, l.Size.Height)
		}
	}
	return core.Action{}
}

func (i Image[T]) Teardown(p core.AnyPod, _ core.State, cx *core.Context) {
	el := core.MustDowncast[*ImageShadow](p)
	el.Shadow.image.Destroy()
	cx.Metrics().WidgetDestroyed("image")
	cx.RemoveLayoutNode(el.Node)
}
