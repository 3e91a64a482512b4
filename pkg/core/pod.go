package core

import (
	"fmt"
	"reflect"

	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
)

// Shadow is the retained counterpart of a view: it owns one live native
// widget.
type Shadow interface {
	Widget() platform.Widget
}

// Pod pairs a shadow with its layout node. Every element is a Pod.
type Pod[S Shadow] struct {
	Node   layout.NodeID
	Shadow S
}

// AnyPod is a type-erased element.
type AnyPod = Pod[Shadow]

// Host is the native slot a child widget lives in, such as a group
// position or a window's content. Replace uses it to swap native widgets.
type Host interface {
	ReplaceWidget(cx *Context, old, new platform.Widget)
}

// HostFunc adapts a function to Host.
type HostFunc func(cx *Context, old, new platform.Widget)

// ReplaceWidget calls f.
func (f HostFunc) ReplaceWidget(cx *Context, old, new platform.Widget) {
	f(cx, old, new)
}

// AnyMut is mutable access to a type-erased element in place. Node and
// Shadow point into the parent's storage so replacements are seen by it.
type AnyMut struct {
	// Parent is the layout node the element is attached to, or NoNode.
	Parent layout.NodeID
	Node   *layout.NodeID
	Shadow *Shadow
	Host   Host
}

// Pod returns the element as currently stored.
func (m AnyMut) Pod() AnyPod {
	return AnyPod{Node: *m.Node, Shadow: *m.Shadow}
}

// Mut is mutable access to an element whose shadow type is known.
type Mut[S Shadow] struct {
	Parent layout.NodeID
	Node   layout.NodeID
	Shadow S
}

// MismatchError is returned by Downcast when the element holds a
// different shadow type. Original is the input, unchanged.
type MismatchError[P any] struct {
	Original P
	Want     reflect.Type
	Got      reflect.Type
}

func (e *MismatchError[P]) Error() string {
	return fmt.Sprintf("shadow is %v, not %v", e.Got, e.Want)
}

// Unwrap returns errors.ErrTypeMismatch.
func (e *MismatchError[P]) Unwrap() error {
	return errors.ErrTypeMismatch
}

// Upcast erases the shadow type of p.
func Upcast[S Shadow](p Pod[S]) AnyPod {
	return AnyPod{Node: p.Node, Shadow: p.Shadow}
}

// Downcast recovers the concrete shadow type of p. On mismatch the
// returned *MismatchError holds p unchanged.
func Downcast[S Shadow](p AnyPod) (Pod[S], error) {
	s, ok := p.Shadow.(S)
	if !ok {
		return Pod[S]{}, &MismatchError[AnyPod]{
			Original: p,
			Want:     reflect.TypeFor[S](),
			Got:      reflect.TypeOf(p.Shadow),
		}
	}
	return Pod[S]{Node: p.Node, Shadow: s}, nil
}

// DowncastMut recovers the concrete shadow type of an element in place.
// On mismatch the returned *MismatchError holds m unchanged.
func DowncastMut[S Shadow](m AnyMut) (Mut[S], error) {
	s, ok := (*m.Shadow).(S)
	if !ok {
		return Mut[S]{}, &MismatchError[AnyMut]{
			Original: m,
			Want:     reflect.TypeFor[S](),
			Got:      reflect.TypeOf(*m.Shadow),
		}
	}
	return Mut[S]{Parent: m.Parent, Node: *m.Node, Shadow: s}, nil
}

// MustDowncast is Downcast for elements a view built itself. A mismatch
// means the element tree was corrupted, which panics.
func MustDowncast[S Shadow](p AnyPod) Pod[S] {
	pod, err := Downcast[S](p)
	if err != nil {
		errors.Invariant("core.Downcast", "%v", err)
	}
	return pod
}

// MustDowncastMut is DowncastMut for elements a view built itself.
func MustDowncastMut[S Shadow](m AnyMut) Mut[S] {
	mut, err := DowncastMut[S](m)
	if err != nil {
		errors.Invariant("core.DowncastMut", "%v", err)
	}
	return mut
}

// Replace puts p where the element behind m is: at the same child index of
// the parent layout node and in the same native host. The new element keeps
// its own layout node. The displaced element is detached but still alive;
// the caller tears it down.
func Replace[S Shadow](cx *Context, m AnyMut, p Pod[S]) AnyPod {
	old := m.Pod()
	next := Upcast(p)

	if m.Parent != layout.NoNode && old.Node != next.Node {
		if i := cx.LayoutIndex(m.Parent, old.Node); i >= 0 {
			cx.ReplaceLayoutChild(m.Parent, i, next.Node)
		} else {
			errors.Invariant("core.Replace", "%v is not a child of %v", old.Node, m.Parent)
		}
	}
	if m.Host != nil {
		m.Host.ReplaceWidget(cx, old.Shadow.Widget(), next.Shadow.Widget())
	}

	*m.Node = next.Node
	*m.Shadow = next.Shadow
	return old
}
