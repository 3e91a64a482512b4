package animation

import "time"

// Transition is how a value moves to a new target: over Duration, eased by
// Curve.
type Transition struct {
	Duration time.Duration
	Curve    func(float64) float64
}

// Over returns a transition lasting d along curve.
func Over(d time.Duration, curve func(float64) float64) Transition {
	return Transition{Duration: d, Curve: curve}
}

// Tracker follows a target value, animating from wherever it currently is
// whenever the target changes. The first value is shown without animating.
type Tracker[V comparable] struct {
	tween      Tween[V]
	controller *Controller
	curve      func(float64) float64
}

// NewTracker creates a tracker resting at value.
func NewTracker[V comparable](value V, tr Transition, lerp func(a, b V, t float64) V) *Tracker[V] {
	t := &Tracker[V]{
		tween:      Tween[V]{Begin: value, End: value, Lerp: lerp},
		controller: NewController(tr.Duration),
	}
	t.controller.Value = 1
	t.controller.status = Completed
	t.curve = tr.Curve
	return t
}

// Retarget points the tracker at target with transition tr and reports
// whether it is animating. A new target starts a run from the current
// value; an unchanged one keeps the run going.
func (t *Tracker[V]) Retarget(target V, tr Transition) bool {
	t.controller.Duration = tr.Duration
	t.curve = tr.Curve
	if target != t.tween.End {
		t.tween.Begin = t.Value()
		t.tween.End = target
		t.controller.Reset()
		t.controller.Forward()
	}
	return t.controller.IsAnimating()
}

// Advance moves the run forward by delta and reports whether it is still
// animating.
func (t *Tracker[V]) Advance(delta time.Duration) bool {
	return t.controller.Tick(delta)
}

// Animating reports whether a run is in progress.
func (t *Tracker[V]) Animating() bool {
	return t.controller.IsAnimating()
}

// Target returns the value the tracker settles at.
func (t *Tracker[V]) Target() V {
	return t.tween.End
}

// Value returns the current value.
func (t *Tracker[V]) Value() V {
	if !t.controller.IsAnimating() {
		return t.tween.End
	}
	progress := t.controller.Value
	if t.curve != nil {
		progress = t.curve(progress)
	}
	return t.tween.Evaluate(progress)
}
