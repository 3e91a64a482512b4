package layout

import "fmt"

type spaceKind uint8

const (
	spaceDefinite spaceKind = iota
	spaceMinContent
	spaceMaxContent
)

// AvailableSpace is the space a node may use along one axis: a definite
// number of pixels, or a request for its min-content or max-content size.
type AvailableSpace struct {
	kind  spaceKind
	value float32
}

var (
	// MinContent asks for the smallest size that fits the content.
	MinContent = AvailableSpace{kind: spaceMinContent}
	// MaxContent asks for the size the content takes without wrapping.
	MaxContent = AvailableSpace{kind: spaceMaxContent}
)

// Definite returns an AvailableSpace of px pixels.
func Definite(px float32) AvailableSpace {
	return AvailableSpace{kind: spaceDefinite, value: max(px, 0)}
}

// IsDefinite reports whether the space is a pixel amount.
func (a AvailableSpace) IsDefinite() bool { return a.kind == spaceDefinite }

// IsMinContent reports whether the space is a min-content request.
func (a AvailableSpace) IsMinContent() bool { return a.kind == spaceMinContent }

// IsMaxContent reports whether the space is a max-content request.
func (a AvailableSpace) IsMaxContent() bool { return a.kind == spaceMaxContent }

// Value returns the pixel amount of a definite space, or 0.
func (a AvailableSpace) Value() float32 {
	if a.kind != spaceDefinite {
		return 0
	}
	return a.value
}

// shrink subtracts px from a definite space.
func (a AvailableSpace) shrink(px float32) AvailableSpace {
	if a.kind != spaceDefinite {
		return a
	}
	return Definite(a.value - px)
}

func (a AvailableSpace) String() string {
	switch a.kind {
	case spaceMinContent:
		return "min-content"
	case spaceMaxContent:
		return "max-content"
	}
	return fmt.Sprintf("%gpx", a.value)
}

// AvailableSize is the available space along both axes.
type AvailableSize struct {
	Width, Height AvailableSpace
}

// DefiniteSize returns an AvailableSize of the given pixel amounts.
func DefiniteSize(width, height float32) AvailableSize {
	return AvailableSize{Width: Definite(width), Height: Definite(height)}
}

// Size represents a width/height pair in logical pixels.
type Size struct {
	Width, Height float32
}

// Point represents an (X, Y) coordinate.
type Point struct {
	X, Y float32
}

// KnownSize carries the dimensions of a node that are already decided by
// its style or by its parent. Measurers only compute the unknown ones.
type KnownSize struct {
	Width, Height       float32
	HasWidth, HasHeight bool
}

// Layout holds the computed position and size of a node.
type Layout struct {
	// Location is relative to the parent's border box.
	Location Point
	// Size is the border box size.
	Size Size
	// ContentSize is the extent of the node's content including overflow.
	ContentSize Size
}

// Measurer computes the intrinsic size of a leaf node.
type Measurer interface {
	Measure(known KnownSize, available AvailableSize) Size
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(known KnownSize, available AvailableSize) Size

// Measure calls f.
func (f MeasureFunc) Measure(known KnownSize, available AvailableSize) Size {
	return f(known, available)
}

// FixedSize returns a Measurer that always reports size.
func FixedSize(size Size) Measurer {
	return MeasureFunc(func(KnownSize, AvailableSize) Size { return size })
}
