package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned for operations on a removed or unknown node.
	ErrNodeNotFound = errors.New("layout: node not found")
	// ErrChildIndex is returned when a child index is out of range.
	ErrChildIndex = errors.New("layout: child index out of range")
	// ErrIsLeaf is returned when adding children to a measured leaf.
	ErrIsLeaf = errors.New("layout: node is a measured leaf")
	// ErrHasChildren is returned when attaching a measurer to a container.
	ErrHasChildren = errors.New("layout: node has children")
)

// NodeError records the operation and node an error occurred on.
type NodeError struct {
	Op   string
	Node NodeID
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// IsStale reports whether err means the node no longer exists.
func IsStale(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
