package core

import (
	"strconv"

	"github.com/go-drift/native/pkg/errors"
)

// ViewID addresses a stateful view instance. The zero ViewID names nothing.
type ViewID uint64

func (id ViewID) String() string {
	return "view#" + strconv.FormatUint(uint64(id), 10)
}

// IDAllocator mints view ids. Ids are never reused, so a message addressed
// to a torn-down view can never reach a newer one.
type IDAllocator struct {
	next ViewID
	live map[ViewID]struct{}
}

// NewIDAllocator creates an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{live: make(map[ViewID]struct{})}
}

// Next mints and registers a new id.
func (a *IDAllocator) Next() ViewID {
	a.next++
	a.live[a.next] = struct{}{}
	return a.next
}

// Register marks id live. Registering an id that is already live means two
// elements were built for the same view instance, which panics.
func (a *IDAllocator) Register(id ViewID) {
	if _, ok := a.live[id]; ok {
		errors.Invariant("core.IDAllocator.Register", "%v is already live", id)
	}
	if id > a.next {
		a.next = id
	}
	a.live[id] = struct{}{}
}

// Release marks id dead. Releasing a dead id is a no-op.
func (a *IDAllocator) Release(id ViewID) {
	delete(a.live, id)
}

// Live reports whether id belongs to an element that has not been torn down.
func (a *IDAllocator) Live(id ViewID) bool {
	_, ok := a.live[id]
	return ok
}

// Len returns the number of live ids.
func (a *IDAllocator) Len() int {
	return len(a.live)
}
