// Package layout implements the retained flexbox layout tree used by the
// reconciler.
//
// Nodes live in a [Tree] and are addressed by [NodeID]. A node is either a
// container (it has children) or a leaf; a leaf may carry a [Measurer] that
// reports its intrinsic size on demand, which is how native text and image
// widgets take part in layout without owning any layout logic.
//
// Every mutation marks the node and its ancestors dirty. [Tree.ComputeLayout]
// recomputes a subtree only when its root is dirty or the available space
// changed since the last call, and returns the cached result otherwise.
//
// Operations on a removed node return [ErrNodeNotFound]. Teardown of nested
// subtrees routinely races with such references, so callers treat the error
// as a no-op.
package layout
