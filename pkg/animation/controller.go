package animation

import (
	"fmt"
	"time"
)

// Status represents the current state of an animation.
//
// The status follows this state machine:
//
//	                Forward()
//	Dismissed ──────────────────► Completed
//	    ▲                              │
//	    │         Reverse()            │
//	    └──────────────────────────────┘
//
// While animating, status is Forward or Reverse. When stopped, status is
// Dismissed (at the lower bound) or Completed (at the upper bound).
type Status int

const (
	// Dismissed means the animation is stopped at the lower bound (0.0).
	Dismissed Status = iota
	// Forward means the animation is playing toward the upper bound (1.0).
	Forward
	// Reverse means the animation is playing toward the lower bound (0.0).
	Reverse
	// Completed means the animation is stopped at the upper bound (1.0).
	Completed
)

// String returns a human-readable representation of the animation status.
func (s Status) String() string {
	switch s {
	case Dismissed:
		return "dismissed"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller produces a value over time. It has no clock of its own: the
// owner advances it with the frame deltas a window delivers.
//
// Value moves from the start value to the target over Duration. Curve maps
// the linear progress before interpolation.
type Controller struct {
	// Value is the current animation value, ranging from 0.0 to 1.0.
	Value float64

	// Duration is the length of a full run.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	status     Status
	elapsed    time.Duration
	target     float64
	startValue float64
}

// NewController creates a controller with the given duration.
func NewController(duration time.Duration) *Controller {
	return &Controller{
		Duration: duration,
		Curve:    LinearCurve,
		status:   Dismissed,
	}
}

// Forward animates from the current value to 1.
func (c *Controller) Forward() {
	c.animateTo(1, Forward)
}

// Reverse animates from the current value to 0.
func (c *Controller) Reverse() {
	c.animateTo(0, Reverse)
}

// AnimateTo animates to a specific target value.
func (c *Controller) AnimateTo(target float64) {
	if target > c.Value {
		c.animateTo(target, Forward)
	} else {
		c.animateTo(target, Reverse)
	}
}

func (c *Controller) animateTo(target float64, direction Status) {
	c.target = target
	c.startValue = c.Value
	c.elapsed = 0
	c.status = direction
}

// Progress returns the linear progress of the current run in [0, 1].
func (c *Controller) Progress() float64 {
	if !c.IsAnimating() || c.Duration <= 0 {
		return 1
	}
	return min(float64(c.elapsed)/float64(c.Duration), 1)
}

// Tick advances the animation by delta and reports whether it is still
// running.
func (c *Controller) Tick(delta time.Duration) bool {
	if !c.IsAnimating() {
		return false
	}
	c.elapsed += delta
	progress := c.Progress()

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased

	if progress >= 1 {
		c.Value = c.target
		c.stop()
		return false
	}
	return true
}

func (c *Controller) stop() {
	if c.Value <= 0 {
		c.status = Dismissed
	} else {
		c.status = Completed
	}
}

// Reset immediately sets the value to 0.
func (c *Controller) Reset() {
	c.Value = 0
	c.elapsed = 0
	c.status = Dismissed
}

// Stop stops the animation at the current value.
func (c *Controller) Stop() {
	if c.IsAnimating() {
		c.stop()
	}
}

// Status returns the current animation status.
func (c *Controller) Status() Status {
	return c.status
}

// IsAnimating returns true if the animation is currently running.
func (c *Controller) IsAnimating() bool {
	return c.status == Forward || c.status == Reverse
}

// IsCompleted returns true if the animation finished at the upper bound.
func (c *Controller) IsCompleted() bool {
	return c.status == Completed
}

// IsDismissed returns true if the animation is at the lower bound.
func (c *Controller) IsDismissed() bool {
	return c.status == Dismissed
}
