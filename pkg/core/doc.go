// Package core provides the view protocol, the element tree and the
// reconciler that keeps native widgets in sync with application data.
//
// # Views and elements
//
// A [View] is a short-lived description of what should exist now. Building
// a view produces an element: an [AnyPod] pairing one native widget (held by
// a [Shadow]) with one layout node. Later cycles hand a fresh view to
// Rebuild, which updates the existing element in place. Teardown releases
// the children first, then the native widget, then the layout node.
//
//	type Label struct{ Text string }
//
//	func (l Label) Build(cx *core.Context, data *App) (core.AnyPod, core.State) { ... }
//	func (l Label) Rebuild(el core.AnyMut, state core.State, cx *core.Context, data *App) { ... }
//
// Elements are stored type-erased. [Downcast] recovers the concrete shadow
// and hands the original back inside a [MismatchError] when the kind does
// not match.
//
// # Sequences
//
// [Seq] diffs an ordered list of child views against the existing child
// elements through an [Elements] cursor, producing insert, remove, swap and
// replace edits. Containers implement the cursor so that every edit changes
// the element list, the layout tree and the native container together.
//
// # Messages
//
// Native callbacks run on toolkit goroutines and reach the reconciler only
// through a [Proxy], a FIFO queue drained on the reconciliation goroutine.
// A [Message] may be addressed to a [ViewID]; views consume messages with
// [TakeTargeted] before forwarding the rest to their children.
//
// # Context
//
// [Context] is threaded through every operation. It owns the layout tree,
// a stack of typed resources and the routing state that sends relayout and
// animation requests to the nearest enclosing window.
package core
