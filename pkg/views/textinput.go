package views

import (
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// TextInputShadow owns a native text field.
type TextInputShadow struct {
	input platform.TextInput
}

// Widget returns the native text field.
func (s *TextInputShadow) Widget() platform.Widget { return s.input }

// TextInput is an editable text field. Text is the value the application
// holds; edits made by the user are reported through OnChange and are not
// overwritten until Text itself changes.
type TextInput[T any] struct {
	Text        string
	Placeholder string
	Newline     platform.Newline
	AcceptTab   bool
	Style       layout.Style

	OnChange func(data *T, text string) core.Action
	OnSubmit func(data *T, text string) core.Action
}

// NewTextInput returns a text field showing text.
func NewTextInput[T any](text string) TextInput[T] {
	return TextInput[T]{Text: text, Style: layout.DefaultStyle()}
}

// WithPlaceholder sets the text shown while the field is empty.
func (t TextInput[T]) WithPlaceholder(s string) TextInput[T] {
	t.Placeholder = s
	return t
}

// WithNewline sets which key inserts a line break.
func (t TextInput[T]) WithNewline(n platform.Newline) TextInput[T] {
	t.Newline = n
	return t
}

// WithAcceptTab makes Tab insert a tab instead of moving focus.
func (t TextInput[T]) WithAcceptTab(accept bool) TextInput[T] {
	t.AcceptTab = accept
	return t
}

// WithFlex sets the grow and shrink factors.
func (t TextInput[T]) WithFlex(amount float32) TextInput[T] {
	t.Style = t.Style.Flex(amount)
	return t
}

// WithOnChange sets the callback run after every edit.
func (t TextInput[T]) WithOnChange(fn func(data *T, text string) core.Action) TextInput[T] {
	t.OnChange = fn
	return t
}

// WithOnSubmit sets the callback run when the user submits the field.
func (t TextInput[T]) WithOnSubmit(fn func(data *T, text string) core.Action) TextInput[T] {
	t.OnSubmit = fn
	return t
}

type textInputChanged struct{ text string }

type textInputSubmitted struct{ text string }

type textInputState struct {
	id core.ViewID
	// text is the last value pushed to or reported by the native field.
	text        string
	placeholder string
	newline     platform.Newline
	acceptTab   bool
}

func (t TextInput[T]) Build(cx *core.Context, _ *T) (core.AnyPod, core.State) {
	tp := platform.Require[platform.TextInputPlatform](cx.Platform(), "views.TextInput")
	st := &textInputState{
		id:          cx.NewViewID(),
		text:        t.Text,
		placeholder: t.Placeholder,
		newline:     t.Newline,
		acceptTab:   t.AcceptTab,
	}

	input, measurer := tp.NewTextInput(t.Text)
	cx.Metrics().WidgetCreated("text input")
	input.SetPlaceholder(t.Placeholder)
	input.SetNewline(t.Newline)
	input.SetAcceptTab(t.AcceptTab)

	proxy, id := cx.Proxy(), st.id
	input.SetOnChange(func(s string) {
		_ = proxy.Post(core.NewMessage(textInputChanged{text: s}, id))
	})
	input.SetOnSubmit(func(s string) {
		_ = proxy.Post(core.NewMessage(textInputSubmitted{text: s}, id))
	})

	node := cx.NewLayoutLeaf(t.Style, measurer)
	pod := core.Pod[*TextInputShadow]{Node: node, Shadow: &TextInputShadow{input: input}}
	return core.Upcast(pod), st
}

func (t TextInput[T]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, _ *T) {
	el := core.MustDowncastMut[*TextInputShadow](m)
	st := state.(*textInputState)
	input := el.Shadow.input

	cx.SetLayoutStyle(el.Node, t.Style)
	if t.Text != st.text {
		cx.SetLayoutLeaf(el.Node, input.SetText(t.Text))
		st.text = t.Text
	}
	if t.Placeholder != st.placeholder {
		input.SetPlaceholder(t.Placeholder)
		st.placeholder = t.Placeholder
	}
	if t.Newline != st.newline {
		input.SetNewline(t.Newline)
		st.newline = t.Newline
	}
	if t.AcceptTab != st.acceptTab {
		input.SetAcceptTab(t.AcceptTab)
		st.acceptTab = t.AcceptTab
	}
}

func (t TextInput[T]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	el := core.MustDowncastMut[*TextInputShadow](m)
	st := state.(*textInputState)

	if ev, ok := core.TakeTargeted[textInputChanged](msg, st.id); ok {
		st.text = ev.text
		if t.OnChange != nil {
			return t.OnChange(data, ev.text)
		}
		return core.Action{}
	}
	if ev, ok := core.TakeTargeted[textInputSubmitted](msg, st.id); ok {
		if t.OnSubmit != nil {
			return t.OnSubmit(data, ev.text)
		}
		return core.Action{}
	}
	if _, ok := core.Get[core.LayoutPass](msg); ok {
		if l, ok := cx.ComputedLayout(el.Node); ok {
			el.Shadow.input.SetSize(l.Size.Width, l.Size.Height)
		}
	}
	return core.Action{}
}

func (t TextInput[T]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	el := core.MustDowncast[*TextInputShadow](p)
	st := state.(*textInputState)

	el.Shadow.input.Destroy()
	cx.Metrics().WidgetDestroyed("text input")
	cx.ReleaseViewID(st.id)
	cx.RemoveLayoutNode(el.Node)
}
