package core

import (
	"reflect"

	"github.com/go-drift/native/pkg/metrics"
)

// State is the private, view-specific data retained between rebuilds. Views
// that mutate their state across calls use a pointer.
type State = any

// View describes what should exist now. Views are produced fresh every
// cycle from application data of type T and reconciled against the element
// built for them.
//
// Rebuild is only ever called on the view that replaces the one the
// element was built or last rebuilt from, and only when both have the same
// dynamic type and key (see CanRebuild).
type View[T any] interface {
	// Build creates the element for the view.
	Build(cx *Context, data *T) (AnyPod, State)
	// Rebuild updates an existing element in place.
	Rebuild(m AnyMut, state State, cx *Context, data *T)
	// Message handles msg if it is addressed to this view and otherwise
	// forwards it to the view's children.
	Message(m AnyMut, state State, cx *Context, data *T, msg *Message) Action
	// Teardown releases the element: children first, then the native
	// widget, then the layout node.
	Teardown(p AnyPod, state State, cx *Context)
}

// Keyer is implemented by views carrying an identity for diffing.
type Keyer interface {
	Key() any
}

// KeyedView attaches a key to a view.
type KeyedView[T any] struct {
	key  any
	view View[T]
}

// Keyed gives v an identity. Two views only match when their keys are
// equal, so a keyed element follows its key through reorders.
func Keyed[T any](key any, v View[T]) KeyedView[T] {
	return KeyedView[T]{key: key, view: v}
}

// Key returns the key.
func (k KeyedView[T]) Key() any { return k.key }

// Unwrap returns the wrapped view.
func (k KeyedView[T]) Unwrap() View[T] { return k.view }

func (k KeyedView[T]) Build(cx *Context, data *T) (AnyPod, State) {
	return k.view.Build(cx, data)
}

func (k KeyedView[T]) Rebuild(m AnyMut, state State, cx *Context, data *T) {
	k.view.Rebuild(m, state, cx, data)
}

func (k KeyedView[T]) Message(m AnyMut, state State, cx *Context, data *T, msg *Message) Action {
	return k.view.Message(m, state, cx, data, msg)
}

func (k KeyedView[T]) Teardown(p AnyPod, state State, cx *Context) {
	k.view.Teardown(p, state, cx)
}

func identity[T any](v View[T]) (reflect.Type, any) {
	var key any
	for {
		k, ok := v.(KeyedView[T])
		if !ok {
			break
		}
		if key == nil {
			key = k.key
		}
		v = k.view
	}
	if k, ok := v.(Keyer); ok && key == nil {
		key = k.Key()
	}
	return reflect.TypeOf(v), key
}

// CanRebuild reports whether an element built from existing can be updated
// in place to next: both must have the same dynamic type and equal keys.
func CanRebuild[T any](existing, next View[T]) bool {
	if existing == nil || next == nil {
		return false
	}
	et, ek := identity(existing)
	nt, nk := identity(next)
	if et != nt {
		return false
	}
	return reflect.DeepEqual(ek, nk)
}

// Child retains a single child view and its state for views that hold
// exactly one child. The element itself lives with the parent.
type Child[T any] struct {
	view  View[T]
	state State
}

// Build builds v and retains it.
func (c *Child[T]) Build(cx *Context, data *T, v View[T]) AnyPod {
	pod, state := v.Build(cx, data)
	c.view, c.state = v, state
	return pod
}

// Rebuild updates the element behind m to v. When v cannot rebuild the
// current element, a new element is built, put in its place and the old
// one is torn down.
func (c *Child[T]) Rebuild(m AnyMut, cx *Context, data *T, v View[T]) {
	if CanRebuild(c.view, v) {
		v.Rebuild(m, c.state, cx, data)
		c.view = v
		return
	}

	pod, state := v.Build(cx, data)
	old := Replace(cx, m, pod)
	c.view.Teardown(old, c.state, cx)
	c.view, c.state = v, state
	cx.metrics.Edit(metrics.EditReplace)
}

// Message dispatches msg to the child.
func (c *Child[T]) Message(m AnyMut, cx *Context, data *T, msg *Message) Action {
	return c.view.Message(m, c.state, cx, data, msg)
}

// Teardown tears the child down.
func (c *Child[T]) Teardown(p AnyPod, cx *Context) {
	c.view.Teardown(p, c.state, cx)
}

// View returns the view the child was last built or rebuilt from.
func (c *Child[T]) View() View[T] { return c.view }

// State returns the child's state.
func (c *Child[T]) State() State { return c.state }
