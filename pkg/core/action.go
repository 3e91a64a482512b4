package core

import "context"

// Task is background work started through a Proxy. It reports results by
// posting messages back through p.
type Task func(ctx context.Context, p *Proxy) error

// Action describes the effects of handling a message. The zero Action has
// no effect and is the identity for Merge.
type Action struct {
	rebuild bool
	tasks   []Task
}

// Rebuild returns an Action asking for the view tree to be rebuilt from the
// current data.
func Rebuild() Action {
	return Action{rebuild: true}
}

// Spawn returns an Action that starts task in the background.
func Spawn(task Task) Action {
	return Action{tasks: []Task{task}}
}

// Merge combines two actions.
func (a Action) Merge(b Action) Action {
	a.rebuild = a.rebuild || b.rebuild
	if len(b.tasks) > 0 {
		a.tasks = append(a.tasks[:len(a.tasks):len(a.tasks)], b.tasks...)
	}
	return a
}

// ShouldRebuild reports whether a rebuild was requested.
func (a Action) ShouldRebuild() bool {
	return a.rebuild
}

// Tasks returns the background tasks to start.
func (a Action) Tasks() []Task {
	return a.tasks
}

// IsEmpty reports whether the action has no effect.
func (a Action) IsEmpty() bool {
	return !a.rebuild && len(a.tasks) == 0
}
