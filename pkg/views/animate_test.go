package views

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/native/pkg/animation"
	"github.com/go-drift/native/pkg/core"
)

func fadeUI(target float64) core.View[app] {
	tr := animation.Over(100*time.Millisecond, animation.LinearCurve)
	return NewWindow[app](Transition(target, tr, animation.LerpFloat64, func(v float64, _ *app) core.View[app] {
		return Label[app](fmt.Sprintf("%.0f", v))
	}))
}

func TestTransitionDrivesFrames(t *testing.T) {
	h := newHarness(t, &app{}, fadeUI(0))
	st := windowStateOf(t, h.state)
	win := h.window()
	assert.Equal(t, "0", textOf(t, st.content.Shadow))

	h.rebuild(fadeUI(10))
	h.drain()
	assert.True(t, win.Animating(), "a running transition asks for frames")
	assert.Equal(t, "0", textOf(t, st.content.Shadow))

	win.Frame(50 * time.Millisecond)
	h.drain()
	assert.Equal(t, "5", textOf(t, st.content.Shadow))

	win.Frame(60 * time.Millisecond)
	h.drain()
	assert.Equal(t, "10", textOf(t, st.content.Shadow))
	assert.False(t, win.Animating(), "a settled transition releases frames")

	starts, stops := win.AnimationCalls()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops)
	assert.False(t, win.Frame(time.Millisecond))
}

func TestTwoAnimationsShareFrameDelivery(t *testing.T) {
	tr := animation.Over(100*time.Millisecond, animation.LinearCurve)
	ui := func(a, b float64) core.View[app] {
		show := func(v float64, _ *app) core.View[app] { return Label[app](fmt.Sprintf("%.0f", v)) }
		return NewWindow[app](Column[app](
			Transition(a, tr, animation.LerpFloat64, show),
			Transition(b, animation.Over(2*tr.Duration, tr.Curve), animation.LerpFloat64, show),
		))
	}
	h := newHarness(t, &app{}, ui(0, 0))
	win := h.window()

	h.rebuild(ui(10, 10))
	h.drain()
	win.Frame(100 * time.Millisecond)
	h.drain()
	win.Frame(100 * time.Millisecond)
	h.drain()

	starts, stops := win.AnimationCalls()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops)
	assert.False(t, win.Animating())
}

func TestAnimateTeardownReleasesFrames(t *testing.T) {
	ui := func(show bool, target float64) core.View[app] {
		var items []core.View[app]
		if show {
			items = append(items, Transition(target, animation.Over(time.Second, nil), animation.LerpFloat64,
				func(v float64, _ *app) core.View[app] { return Label[app]("moving") }))
		}
		return NewWindow[app](Column(items...))
	}
	h := newHarness(t, &app{}, ui(true, 0))
	win := h.window()

	h.rebuild(ui(true, 1))
	h.drain()
	assert.True(t, win.Animating())

	h.rebuild(ui(false, 1))
	h.drain()
	assert.False(t, win.Animating())
}
