package core

import (
	"fmt"
	"time"
)

// Message is an envelope dispatched top-down through the element tree.
// A message with a target is meant for exactly one view; an untargeted
// message is a broadcast every view may inspect.
type Message struct {
	payload any
	target  ViewID
	taken   bool
}

// NewMessage creates a message addressed to target.
func NewMessage(payload any, target ViewID) *Message {
	return &Message{payload: payload, target: target}
}

// Broadcast creates an untargeted message.
func Broadcast(payload any) *Message {
	return &Message{payload: payload}
}

// Target returns the addressed view, or zero for a broadcast.
func (m *Message) Target() ViewID { return m.target }

// Payload returns the message contents.
func (m *Message) Payload() any { return m.payload }

// Taken reports whether a view has consumed the message.
func (m *Message) Taken() bool { return m.taken }

func (m *Message) String() string {
	return fmt.Sprintf("message(%T -> %v)", m.payload, m.target)
}

// TakeTargeted consumes msg if it is addressed to id and carries an M.
// A consumed message is never handed out again.
func TakeTargeted[M any](msg *Message, id ViewID) (M, bool) {
	var zero M
	if msg == nil || msg.taken || msg.target == 0 || msg.target != id {
		return zero, false
	}
	payload, ok := msg.payload.(M)
	if !ok {
		return zero, false
	}
	msg.taken = true
	return payload, true
}

// Get returns the payload of an untargeted message if it is an M, without
// consuming it.
func Get[M any](msg *Message) (M, bool) {
	var zero M
	if msg == nil || msg.taken || msg.target != 0 {
		return zero, false
	}
	payload, ok := msg.payload.(M)
	return payload, ok
}

// LayoutPass is broadcast through a window's content after its layout has
// been recomputed, so views can sync native geometry.
type LayoutPass struct{}

// AnimationTick is addressed to a window on every frame while it animates,
// and broadcast from there through its content.
type AnimationTick struct {
	Delta time.Duration
}

// RelayoutRequested asks a window to recompute its layout.
type RelayoutRequested struct{}

// StartAnimating asks a window to start frame delivery.
type StartAnimating struct{}

// StopAnimating releases one StartAnimating request.
type StopAnimating struct{}
