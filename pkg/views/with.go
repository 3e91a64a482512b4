package views

import "github.com/go-drift/native/pkg/core"

// Local is the data seen by the content of a With view: the view's own
// state next to the application data.
type Local[T, L any] struct {
	State *L
	Data  *T
}

// With keeps state of type L for as long as it stays in the tree. Its
// content reads and writes both that state and the application data.
type With[T, L any] struct {
	Init    func(data *T) L
	Content func(state *L, data *T) core.View[Local[T, L]]
}

// WithState returns a view holding local state created by init.
func WithState[T, L any](init func(data *T) L, content func(state *L, data *T) core.View[Local[T, L]]) With[T, L] {
	return With[T, L]{Init: init, Content: content}
}

type withState[T, L any] struct {
	local L
	child core.Child[Local[T, L]]
}

func (st *withState[T, L]) data(data *T) *Local[T, L] {
	return &Local[T, L]{State: &st.local, Data: data}
}

func (w With[T, L]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	st := &withState[T, L]{local: w.Init(data)}
	pod := st.child.Build(cx, st.data(data), w.Content(&st.local, data))
	return pod, st
}

func (w With[T, L]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	st := state.(*withState[T, L])
	st.child.Rebuild(m, cx, st.data(data), w.Content(&st.local, data))
}

func (w With[T, L]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	st := state.(*withState[T, L])
	return st.child.Message(m, cx, st.data(data), msg)
}

func (w With[T, L]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	st := state.(*withState[T, L])
	st.child.Teardown(p, cx)
}

// Provide makes Value visible to its content as a resource of type R.
type Provide[T, R any] struct {
	Value   R
	Content core.View[T]
}

// ProvideResource returns a view exposing value to content.
func ProvideResource[T, R any](value R, content core.View[T]) Provide[T, R] {
	return Provide[T, R]{Value: value, Content: content}
}

type provideState[T any] struct {
	child core.Child[T]
}

func (p Provide[T, R]) scope(cx *core.Context, fn func()) {
	core.PushResource(cx, p.Value)
	defer core.PopResource[R](cx)
	fn()
}

func (p Provide[T, R]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	st := &provideState[T]{}
	var pod core.AnyPod
	p.scope(cx, func() {
		pod = st.child.Build(cx, data, p.Content)
	})
	return pod, st
}

func (p Provide[T, R]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	st := state.(*provideState[T])
	p.scope(cx, func() {
		st.child.Rebuild(m, cx, data, p.Content)
	})
}

func (p Provide[T, R]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	st := state.(*provideState[T])
	var action core.Action
	p.scope(cx, func() {
		action = st.child.Message(m, cx, data, msg)
	})
	return action
}

func (p Provide[T, R]) Teardown(pod core.AnyPod, state core.State, cx *core.Context) {
	st := state.(*provideState[T])
	p.scope(cx, func() {
		st.child.Teardown(pod, cx)
	})
}
