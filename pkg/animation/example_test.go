package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/native/pkg/animation"
)

// This example shows how to drive a controller with frame deltas.
func ExampleController() {
	controller := animation.NewController(300 * time.Millisecond)
	controller.Forward()

	running := controller.Tick(150 * time.Millisecond)
	fmt.Printf("%.2f %v\n", controller.Value, running)

	running = controller.Tick(150 * time.Millisecond)
	fmt.Printf("%.2f %v %v\n", controller.Value, running, controller.Status())

	// Output:
	// 0.50 true
	// 1.00 false completed
}

// This example shows how a tween maps progress to a value range.
func ExampleTween() {
	size := animation.Tween[float64]{Begin: 100, End: 200, Lerp: animation.LerpFloat64}
	fmt.Println(size.Evaluate(0.25))

	// Output:
	// 125
}

// This example shows a tracker following a changing target.
func ExampleTracker() {
	tr := animation.Over(100*time.Millisecond, animation.LinearCurve)
	opacity := animation.NewTracker(0.0, tr, animation.LerpFloat64)
	fmt.Printf("%.1f\n", opacity.Value())

	fmt.Println(opacity.Retarget(10, tr))
	opacity.Advance(50 * time.Millisecond)
	fmt.Printf("%.1f\n", opacity.Value())

	running := opacity.Advance(50 * time.Millisecond)
	fmt.Printf("%.1f %v\n", opacity.Value(), running)

	// Output:
	// 0.0
	// true
	// 5.0
	// 10.0 false
}

// This example shows how to create a custom easing curve.
func ExampleCubicBezier() {
	// Create a custom curve matching CSS cubic-bezier(0.4, 0.0, 0.2, 1.0)
	customEase := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)

	// The curve transforms linear progress to eased progress
	fmt.Printf("Progress 0.0 -> %.2f\n", customEase(0.0))
	fmt.Printf("Progress 0.5 -> %.2f\n", customEase(0.5))
	fmt.Printf("Progress 1.0 -> %.2f\n", customEase(1.0))

	// Output:
	// Progress 0.0 -> 0.00
	// Progress 0.5 -> 0.78
	// Progress 1.0 -> 1.00
}
