package core

import (
	"slices"

	"github.com/go-drift/native/pkg/metrics"
)

// Elements is a cursor over the child elements of a container. Each edit
// changes the container's layout children and native children together, so
// both always follow element order.
//
// A cursor starts at the first element. Insert and Skip advance it; the
// other operations leave it in place.
type Elements interface {
	// Len returns the number of elements.
	Len() int
	// Next returns mutable access to the element at the cursor.
	Next() (AnyMut, bool)
	// Skip moves the cursor past the current element.
	Skip()
	// Insert adds p at the cursor and moves past it.
	Insert(cx *Context, p AnyPod)
	// Remove detaches the element at the cursor and returns it. The layout
	// node stays alive for the caller to tear down.
	Remove(cx *Context) (AnyPod, bool)
	// Swap exchanges the element at the cursor with the one offset
	// positions after it.
	Swap(cx *Context, offset int)
}

// Seq is an ordered list of child views.
type Seq[T any] []View[T]

// SeqState retains the children built from a Seq, in element order.
type SeqState[T any] struct {
	children []Child[T]
}

// Len returns the number of children.
func (s *SeqState[T]) Len() int { return len(s.children) }

// Build builds every view in order and inserts the elements into els.
func (seq Seq[T]) Build(cx *Context, data *T, els Elements) *SeqState[T] {
	state := &SeqState[T]{children: make([]Child[T], len(seq))}
	for i, v := range seq {
		els.Insert(cx, state.children[i].Build(cx, data, v))
	}
	return state
}

// Rebuild reconciles the elements in els, built from the previous Seq, with
// seq. Each view is matched by position against the old children still
// pending at the cursor:
//
//   - the pending head can rebuild to it: rebuild in place;
//   - a later pending child can: swap it to the cursor, then rebuild;
//   - the pending head is not wanted by any later view: replace it;
//   - otherwise: insert a new element.
//
// Old children left over are removed from the tail.
func (seq Seq[T]) Rebuild(els Elements, state *SeqState[T], cx *Context, data *T) {
	pending := state.children
	next := make([]Child[T], 0, len(seq))

	for i, v := range seq {
		if len(pending) > 0 && !CanRebuild(pending[0].view, v) {
			if j := matchAfterHead(pending, v); j > 0 {
				els.Swap(cx, j)
				pending[0], pending[j] = pending[j], pending[0]
				cx.metrics.Edit(metrics.EditSwap)
			} else if !wanted(pending[0], seq[i+1:]) {
				var child Child[T]
				pod := child.Build(cx, data, v)
				m, _ := els.Next()
				old := Replace(cx, m, pod)
				pending[0].Teardown(old, cx)
				els.Skip()
				next = append(next, child)
				pending = pending[1:]
				cx.metrics.Edit(metrics.EditReplace)
				continue
			}
		}

		if len(pending) > 0 && CanRebuild(pending[0].view, v) {
			m, _ := els.Next()
			pending[0].Rebuild(m, cx, data, v)
			els.Skip()
			next = append(next, pending[0])
			pending = pending[1:]
			continue
		}

		var child Child[T]
		els.Insert(cx, child.Build(cx, data, v))
		next = append(next, child)
		cx.metrics.Edit(metrics.EditInsert)
	}

	for _, child := range pending {
		old, ok := els.Remove(cx)
		if !ok {
			break
		}
		child.Teardown(old, cx)
		cx.metrics.Edit(metrics.EditRemove)
	}
	state.children = next
}

// matchAfterHead returns the index of the first pending child after the
// head that v can rebuild, or -1.
func matchAfterHead[T any](pending []Child[T], v View[T]) int {
	for j := 1; j < len(pending); j++ {
		if CanRebuild(pending[j].view, v) {
			return j
		}
	}
	return -1
}

func wanted[T any](c Child[T], later Seq[T]) bool {
	return slices.ContainsFunc(later, func(v View[T]) bool {
		return CanRebuild(c.view, v)
	})
}

// Message dispatches msg to each child in order. A targeted message stops
// once a child has taken it.
func (s *SeqState[T]) Message(els Elements, cx *Context, data *T, msg *Message) Action {
	var action Action
	for i := range s.children {
		m, ok := els.Next()
		if !ok {
			break
		}
		action = action.Merge(s.children[i].Message(m, cx, data, msg))
		if msg.Taken() {
			break
		}
		els.Skip()
	}
	return action
}

// Teardown removes and tears down every child, first to last.
func (s *SeqState[T]) Teardown(els Elements, cx *Context) {
	for _, child := range s.children {
		old, ok := els.Remove(cx)
		if !ok {
			break
		}
		child.Teardown(old, cx)
	}
	s.children = nil
}
