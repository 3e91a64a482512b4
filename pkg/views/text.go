package views

import (
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/text"
)

// TextShadow owns a native label.
type TextShadow struct {
	label platform.Text
}

// Widget returns the native label.
func (s *TextShadow) Widget() platform.Widget { return s.label }

// Text is a run of uniformly styled text. Its attributes start from the
// nearest text.FontAttributes resource, or text.DefaultAttributes when
// there is none.
type Text[T any] struct {
	Content string
	Style   layout.Style

	// Spans, when set, replace the single span the attributes produce.
	Spans []text.Span

	mods []func(*text.FontAttributes)
}

// Label returns a text view showing s.
func Label[T any](s string) Text[T] {
	return Text[T]{Content: s, Style: layout.DefaultStyle()}
}

func (t Text[T]) with(mod func(*text.FontAttributes)) Text[T] {
	t.mods = append(t.mods[:len(t.mods):len(t.mods)], mod)
	return t
}

// WithFontSize sets the font size in pixels.
func (t Text[T]) WithFontSize(size float32) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Size = size })
}

// WithFamily sets the font family.
func (t Text[T]) WithFamily(family string) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Family = family })
}

// WithWeight sets the font weight.
func (t Text[T]) WithWeight(w text.FontWeight) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Weight = w })
}

// WithStretch sets the font stretch.
func (t Text[T]) WithStretch(s text.FontStretch) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Stretch = s })
}

// WithItalic sets whether the text is italic.
func (t Text[T]) WithItalic(italic bool) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Italic = italic })
}

// WithStrikethrough sets whether the text is struck through.
func (t Text[T]) WithStrikethrough(strike bool) Text[T] {
	return t.with(func(a *text.FontAttributes) { a.Strikethrough = strike })
}

// WithFlex sets the grow and shrink factors.
func (t Text[T]) WithFlex(amount float32) Text[T] {
	t.Style = t.Style.Flex(amount)
	return t
}

func (t Text[T]) spans(cx *core.Context) []text.Span {
	if t.Spans != nil {
		return t.Spans
	}
	attrs, ok := core.Resource[text.FontAttributes](cx)
	if !ok {
		attrs = text.DefaultAttributes()
	}
	for _, mod := range t.mods {
		mod(&attrs)
	}
	return text.Whole(attrs, t.Content)
}

type textState struct {
	content string
	spans   []text.Span
}

func (t Text[T]) Build(cx *core.Context, _ *T) (core.AnyPod, core.State) {
	tp := platform.Require[platform.TextPlatform](cx.Platform(), "views.Text")
	spans := t.spans(cx)
	label, measurer := tp.NewText(spans, t.Content)
	cx.Metrics().WidgetCreated("text")

	node := cx.NewLayoutLeaf(t.Style, measurer)
	pod := core.Pod[*TextShadow]{Node: node, Shadow: &TextShadow{label: label}}
	return core.Upcast(pod), &textState{content: t.Content, spans: spans}
}

func (t Text[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, _ *T) {
	el := core.MustDowncastMut[*TextShadow](m)
	st := state.(*textState)

	cx.SetLayoutStyle(el.Node, t.Style)
	spans := t.spans(cx)
	if t.Content == st.content && text.Equal(spans, st.spans) {
		return
	}
	cx.SetLayoutLeaf(el.Node, el.Shadow.label.SetText(spans, t.Content))
	st.content, st.spans = t.Content, spans
}

func (t Text[T]) Message(m core.AnyMut, _ core.State, cx *core.Context, _ *T, msg *core.Message) core.Action {
	if _, ok := core.Get[core.LayoutPass](msg); ok {
		el := core.MustDowncastMut[*TextShadow](m)
		if l, ok := cx.ComputedLayout(el.Node); ok {
			el.Shadow.label.SetSize(l.Size.Width, l.Size.Height)
		}
	}
	return core.Action{}
}

func (t Text[T]) Teardown(p core.AnyPod, _ core.State, cx *core.Context) {
	el := core.MustDowncast[*TextShadow](p)
	el.Shadow.label.Destroy()
	cx.Metrics().WidgetDestroyed("text")
	cx.RemoveLayoutNode(el.Node)
}
