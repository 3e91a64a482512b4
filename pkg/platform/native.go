package platform

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/text"
)

// Widget is a live native widget.
type Widget interface {
	// Handle returns the toolkit's handle for the widget.
	Handle() any
}

// Platform is a native toolkit binding. Views require the capabilities
// they build on by asserting the kind-specific interfaces below.
type Platform interface {
	// Quit asks the toolkit to leave its main loop.
	Quit()
}

// Require asserts that p implements the capability C. A missing capability
// is a programming error and panics.
func Require[C any](p Platform, op string) C {
	c, ok := p.(C)
	if !ok {
		errors.Invariant(op, "platform %T lacks capability %v", p, reflect.TypeFor[C]())
	}
	return c
}

// Group is a container that positions its children absolutely.
type Group interface {
	Widget
	InsertChild(index int, child Widget)
	RemoveChild(index int)
	SwapChildren(a, b int)
	ReplaceChild(index int, child Widget)
	SetSize(width, height float32)
	SetChildPosition(index int, x, y float32)
	SetBorderColor(color Color)
	Destroy()
}

// GroupPlatform builds groups.
type GroupPlatform interface {
	Platform
	NewGroup() Group
}

// Text is a native label.
type Text interface {
	Widget
	// SetText replaces the content and returns a measurer for it.
	SetText(spans []text.Span, s string) layout.Measurer
	SetSize(width, height float32)
	Destroy()
}

// TextPlatform builds labels.
type TextPlatform interface {
	Platform
	NewText(spans []text.Span, s string) (Text, layout.Measurer)
}

// Image is a native image view.
type Image interface {
	Widget
	// LoadData decodes data and returns a measurer reporting the image's
	// intrinsic size. Malformed data returns an error wrapping
	// errors.ErrNativeResource.
	LoadData(data []byte) (layout.Measurer, error)
	// SetTint sets the tint color; nil clears it.
	SetTint(tint *Color)
	SetSize(width, height float32)
	Destroy()
}

// ImagePlatform builds image views.
type ImagePlatform interface {
	Platform
	NewImage() Image
}

// Press is a change of a pressable's pressed state.
type Press uint8

const (
	Pressed Press = iota
	Released
	Cancelled
)

func (p Press) String() string {
	switch p {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Press(%d)", uint8(p))
}

// Pressable wraps a content widget and reports pointer and focus changes.
// Callbacks may run on any goroutine.
type Pressable interface {
	Widget
	SetContents(contents Widget)
	SetSize(width, height float32)
	SetOnPress(fn func(Press))
	SetOnHover(fn func(hovered bool))
	SetOnFocus(fn func(focused bool))
	Destroy()
}

// PressablePlatform builds pressables.
type PressablePlatform interface {
	Platform
	NewPressable(contents Widget) Pressable
}

// Axis is the scrolling direction of a scroll view.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// Scroll is a scrollable viewport around a single content widget.
type Scroll interface {
	Widget
	SetContents(contents Widget)
	SetSize(width, height float32)
	SetContentSize(width, height float32)
	Destroy()
}

// ScrollPlatform builds scroll views.
type ScrollPlatform interface {
	Platform
	NewScroll(axis Axis, contents Widget) Scroll
}

// Newline controls which key inserts a line break in a text input.
type Newline uint8

const (
	// NewlineNone makes Enter submit and never insert a line break.
	NewlineNone Newline = iota
	// NewlineEnter inserts a line break on Enter.
	NewlineEnter
	// NewlineShiftEnter inserts a line break on Shift+Enter; Enter submits.
	NewlineShiftEnter
)

// TextInput is an editable text field. Callbacks may run on any goroutine.
type TextInput interface {
	Widget
	// SetText replaces the content and returns a measurer for it.
	SetText(s string) layout.Measurer
	SetPlaceholder(s string)
	SetNewline(n Newline)
	SetAcceptTab(accept bool)
	SetSize(width, height float32)
	SetOnChange(fn func(string))
	SetOnSubmit(fn func(string))
	Destroy()
}

// TextInputPlatform builds text inputs.
type TextInputPlatform interface {
	Platform
	NewTextInput(s string) (TextInput, layout.Measurer)
}

// Window is a top-level native window. Callbacks may run on any goroutine.
type Window interface {
	Widget
	Size() (width, height uint32)
	SetMinSize(width, height uint32)
	SetTitle(title string)
	SetContents(contents Widget)
	SetOnResize(fn func())
	SetOnCloseRequested(fn func())
	// SetOnAnimationFrame registers the per-frame callback, called with the
	// time since the previous frame while frame delivery is on.
	SetOnAnimationFrame(fn func(delta time.Duration))
	StartAnimating()
	StopAnimating()
	Destroy()
}

// WindowPlatform builds windows.
type WindowPlatform interface {
	Platform
	NewWindow(contents Widget) Window
}
