package animation

import "math"

// Easing curves map linear progress t in [0, 1] to eased progress.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to create custom curves matching CSS cubic-bezier().
// The elastic and back curves overshoot: their output leaves [0, 1] before
// settling at 1.

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Use for elements exiting the screen.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Use for elements entering the screen.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Use for elements that stay on screen but change state.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
)

// SmoothStep eases in and out with the polynomial 3t² - 2t³.
func SmoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// ElasticOut overshoots and oscillates before settling at 1.
func ElasticOut(t float64) float64 {
	return 1 + math.Pow(2, -10*t)*math.Sin((10*t-0.75)*math.Pi*2/3)
}

// ElasticIn winds up with growing oscillations before reaching 1.
func ElasticIn(t float64) float64 {
	return -math.Pow(2, 10*t-10) * math.Sin((10*t-10.75)*math.Pi*2/3)
}

// BackOut overshoots 1 slightly and comes back.
func BackOut(t float64) float64 {
	return 1 + (backC1+1)*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}

// BackIn pulls back below 0 before moving forward.
func BackIn(t float64) float64 {
	return (backC1+1)*t*t*t - backC1*t*t
}

// BackInOut pulls back at the start and overshoots at the end.
func BackInOut(t float64) float64 {
	if t < 0.5 {
		return math.Pow(2*t, 2) * ((backC2+1)*2*t - backC2) / 2
	}
	return (math.Pow(2*t-2, 2)*((backC2+1)*(2*t-2)+backC2) + 2) / 2
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fallback to bisection to guarantee a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
