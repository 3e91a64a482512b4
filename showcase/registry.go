// Package showcase holds the demo applications run by nativedemo and the
// scripted sessions that exercise them on the headless platform.
package showcase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-drift/native/pkg/engine"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/platform/headless"
)

// Demo is a runnable demo application.
type Demo struct {
	Name     string
	Title    string
	Subtitle string

	// Run drives the application on p until it quits or ctx is done.
	Run func(ctx context.Context, p platform.Platform, title string, opts ...engine.Option) error

	// Script simulates a user session against a running demo and closes
	// its window when done.
	Script func(ctx context.Context, p *headless.Platform) error
}

// demos is the registry of all demo applications.
var demos = []Demo{
	{"counter", "Counter", "A pressable that counts its clicks", runCounter, scriptCounter},
	{"todo", "Todo", "Text input, scrolling list and local state", runTodo, scriptTodo},
}

// Demos returns every registered demo.
func Demos() []Demo {
	return slices.Clone(demos)
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, error) {
	for _, d := range demos {
		if d.Name == name {
			return d, nil
		}
	}
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.Name
	}
	return Demo{}, fmt.Errorf("unknown demo %q (have %v)", name, names)
}

// pollInterval is how often scripts check for native widgets the loop has
// not built yet.
const pollInterval = 5 * time.Millisecond

// waitFor polls cond until it holds or ctx is done.
func waitFor(ctx context.Context, what string, cond func() bool) error {
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for !cond() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", what, ctx.Err())
		case <-tick.C:
		}
	}
	return nil
}

func firstWindow(ctx context.Context, p *headless.Platform) (*headless.Window, error) {
	if err := waitFor(ctx, "window", func() bool { return len(p.Windows()) > 0 }); err != nil {
		return nil, err
	}
	return p.Windows()[0], nil
}

// settle delivers frames until the window stops asking for them.
func settle(ctx context.Context, w *headless.Window, frame time.Duration) error {
	// The loop starts animating asynchronously after the triggering event.
	deadline := time.Now().Add(50 * pollInterval)
	for !w.Animating() && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
	}
	for w.Frame(frame) {
		if err := ctx.Err(); err != nil {
			return err
		}
		time.Sleep(pollInterval)
	}
	return nil
}
