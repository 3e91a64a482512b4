package views

import (
	"time"

	"github.com/go-drift/native/pkg/animation"
	"github.com/go-drift/native/pkg/core"
)

// Animate keeps per-instance animation state S and rebuilds its content on
// every frame while Animating reports true. Frames are requested from the
// enclosing window only while the animation runs.
type Animate[T, S any] struct {
	Init      func() S
	Update    func(s *S, data *T)
	Animating func(s *S) bool
	Tick      func(s *S, delta time.Duration)
	Content   func(s *S, data *T) core.View[T]
}

type animateState[T, S any] struct {
	anim    S
	running bool
	child   core.Child[T]
}

// sync asks for frames when the animation starts and releases them when
// it settles.
func (a Animate[T, S]) sync(cx *core.Context, st *animateState[T, S]) {
	want := a.Animating(&st.anim)
	switch {
	case want && !st.running:
		cx.StartAnimating()
	case !want && st.running:
		cx.StopAnimating()
	}
	st.running = want
}

func (a Animate[T, S]) Build(cx *core.Context, data *T) (core.AnyPod, core.State) {
	st := &animateState[T, S]{anim: a.Init()}
	if a.Update != nil {
		a.Update(&st.anim, data)
	}
	pod := st.child.Build(cx, data, a.Content(&st.anim, data))
	a.sync(cx, st)
	return pod, st
}

func (a Animate[T, S]) Rebuild(m core.AnyMut, state core.State, cx *core.Context, data *T) {
	st := state.(*animateState[T, S])
	if a.Update != nil {
		a.Update(&st.anim, data)
	}
	st.child.Rebuild(m, cx, data, a.Content(&st.anim, data))
	a.sync(cx, st)
}

func (a Animate[T, S]) Message(m core.AnyMut, state core.State, cx *core.Context, data *T, msg *core.Message) core.Action {
	st := state.(*animateState[T, S])
	if tick, ok := core.Get[core.AnimationTick](msg); ok && st.running {
		a.Tick(&st.anim, tick.Delta)
		st.child.Rebuild(m, cx, data, a.Content(&st.anim, data))
		a.sync(cx, st)
	}
	return st.child.Message(m, cx, data, msg)
}

func (a Animate[T, S]) Teardown(p core.AnyPod, state core.State, cx *core.Context) {
	st := state.(*animateState[T, S])
	st.child.Teardown(p, cx)
	if st.running {
		cx.StopAnimating()
		st.running = false
	}
}

// Transition animates towards value whenever it changes, showing the
// interpolated value through content.
func Transition[T any, V comparable](
	value V,
	tr animation.Transition,
	lerp func(a, b V, t float64) V,
	content func(v V, data *T) core.View[T],
) Animate[T, *animation.Tracker[V]] {
	return Animate[T, *animation.Tracker[V]]{
		Init: func() *animation.Tracker[V] {
			return animation.NewTracker(value, tr, lerp)
		},
		Update: func(s **animation.Tracker[V], _ *T) {
			(*s).Retarget(value, tr)
		},
		Animating: func(s **animation.Tracker[V]) bool {
			return (*s).Animating()
		},
		Tick: func(s **animation.Tracker[V], delta time.Duration) {
			(*s).Advance(delta)
		},
		Content: func(s **animation.Tracker[V], data *T) core.View[T] {
			return content((*s).Value(), data)
		},
	}
}
