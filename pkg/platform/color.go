package platform

import (
	"fmt"
	"math"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return RGBA8(r, g, b, unitToByte(a))
}

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// Channels returns the red, green, blue and alpha bytes.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / 255
}

// WithAlpha returns a copy of the color with the given alpha (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(unitToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Lerp interpolates each channel from c towards to. t is not clamped, so
// overshooting curves extrapolate until a channel saturates.
func (c Color) Lerp(to Color, t float32) Color {
	r0, g0, b0, a0 := c.Channels()
	r1, g1, b1, a1 := to.Channels()
	mix := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*float64(t)
		return uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return RGBA8(mix(r0, r1), mix(g0, g1), mix(b0, b1), mix(a0, a1))
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

func unitToByte(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
