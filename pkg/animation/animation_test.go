package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/native/pkg/platform"
)

func TestCurveEndpoints(t *testing.T) {
	curves := map[string]func(float64) float64{
		"linear":      LinearCurve,
		"smooth":      SmoothStep,
		"ease":        Ease,
		"elastic":     ElasticOut,
		"elastic in":  ElasticIn,
		"back":        BackOut,
		"back in":     BackIn,
		"back in out": BackInOut,
	}
	for name, curve := range curves {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, curve(0), 1e-3)
			assert.InDelta(t, 1, curve(1), 1e-3)
		})
	}
}

func TestOvershootingCurves(t *testing.T) {
	assert.Greater(t, BackOut(0.7), 1.0)
	assert.Less(t, BackIn(0.3), 0.0)
	assert.InDelta(t, 0.5, BackInOut(0.5), 1e-9)
	assert.InDelta(t, 0.5, SmoothStep(0.5), 1e-9)
}

func TestControllerReverse(t *testing.T) {
	c := NewController(100 * time.Millisecond)
	c.Forward()
	c.Tick(100 * time.Millisecond)
	assert.True(t, c.IsCompleted())

	c.Reverse()
	assert.Equal(t, Reverse, c.Status())
	c.Tick(25 * time.Millisecond)
	assert.InDelta(t, 0.75, c.Value, 1e-9)
	c.Tick(time.Second)
	assert.True(t, c.IsDismissed())
	assert.Zero(t, c.Value)

	assert.False(t, c.Tick(time.Millisecond), "idle controllers do not tick")
}

func TestControllerZeroDuration(t *testing.T) {
	c := NewController(0)
	c.AnimateTo(0.5)
	assert.False(t, c.Tick(0))
	assert.Equal(t, 0.5, c.Value)
	assert.True(t, c.IsCompleted())
}

func TestTrackerRetargetMidRun(t *testing.T) {
	tr := Over(100*time.Millisecond, LinearCurve)
	tracker := NewTracker(0.0, tr, LerpFloat64)

	tracker.Retarget(10, tr)
	tracker.Advance(50 * time.Millisecond)
	assert.InDelta(t, 5, tracker.Value(), 1e-9)

	assert.True(t, tracker.Retarget(10, tr), "same target keeps running")
	assert.InDelta(t, 5, tracker.Value(), 1e-9)

	tracker.Retarget(0, tr)
	tracker.Advance(50 * time.Millisecond)
	assert.InDelta(t, 2.5, tracker.Value(), 1e-9, "new run starts from the current value")
	assert.Equal(t, 0.0, tracker.Target())
}

func TestTrackerColor(t *testing.T) {
	tr := Over(time.Second, LinearCurve)
	lerp := func(a, b platform.Color, t float64) platform.Color { return a.Lerp(b, float32(t)) }
	tracker := NewTracker(platform.RGBA8(0, 0, 0, 255), tr, lerp)

	tracker.Retarget(platform.RGBA8(200, 100, 0, 255), tr)
	tracker.Advance(500 * time.Millisecond)

	assert.Equal(t, platform.RGBA8(100, 50, 0, 255), tracker.Value())
	assert.True(t, tracker.Animating())
}
