package layout

import "math"

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content/flex
	UnitLength              // Absolute length in logical pixels
	UnitPercent             // Percentage of the parent's inner size
)

// Value represents a dimension that can be a length, a percentage, or auto.
type Value struct {
	Amount float32
	Unit   Unit
}

// Auto returns a Value that should be computed from content/flex.
func Auto() Value {
	return Value{Unit: UnitAuto}
}

// Length returns a Value of px logical pixels.
func Length(px float32) Value {
	return Value{Amount: px, Unit: UnitLength}
}

// Percent returns a Value representing a percentage of the parent's inner size.
// The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float32) Value {
	return Value{Amount: p, Unit: UnitPercent}
}

// IsAuto returns true if this value should be computed from content/flex.
func (v Value) IsAuto() bool {
	return v.Unit == UnitAuto
}

// resolve returns the value in pixels against the parent space.
// Auto, and percentages of an indefinite parent, do not resolve.
func (v Value) resolve(parent AvailableSpace) (float32, bool) {
	switch v.Unit {
	case UnitLength:
		return v.Amount, true
	case UnitPercent:
		if parent.IsDefinite() {
			return parent.Value() * v.Amount / 100, true
		}
	}
	return 0, false
}

func (v Value) resolveOr(parent AvailableSpace, fallback float32) float32 {
	if px, ok := v.resolve(parent); ok {
		return px
	}
	return fallback
}

// Edges represents values for four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left float32
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float32) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h float32) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() float32 {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() float32 {
	return e.Top + e.Bottom
}

func (e Edges) add(o Edges) Edges {
	return Edges{Top: e.Top + o.Top, Right: e.Right + o.Right, Bottom: e.Bottom + o.Bottom, Left: e.Left + o.Left}
}

// Display controls whether a node takes part in layout.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row    Direction = iota // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStretch Align = iota // Stretch to fill cross axis
	AlignStart                // Align to start of cross axis
	AlignEnd                  // Align to end of cross axis
	AlignCenter               // Center on cross axis
)

// Overflow controls how a node treats content larger than itself.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	// OverflowScroll lets the node shrink below its content; its content
	// no longer contributes to the node's automatic minimum size.
	OverflowScroll
)

// Style contains all layout properties for a node.
type Style struct {
	Display Display

	// Sizing (border box)
	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value

	// Flex container properties
	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            float32 // Space between children (main axis only)

	// Flex item properties
	FlexGrow   float32
	FlexShrink float32
	FlexBasis  Value
	AlignSelf  *Align // Override parent's AlignItems (nil = inherit)

	// Spacing
	Padding Edges
	Border  Edges
	Margin  Edges

	Overflow Overflow
}

// DefaultStyle returns a Style with the flexbox defaults: row direction,
// stretch alignment and a shrink factor of 1.
func DefaultStyle() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		MinWidth:   Auto(),
		MinHeight:  Auto(),
		MaxWidth:   Auto(),
		MaxHeight:  Auto(),
		FlexBasis:  Auto(),
		Direction:  Row,
		AlignItems: AlignStretch,
		FlexShrink: 1,
	}
}

// Equal reports whether two styles describe the same layout.
func (s Style) Equal(o Style) bool {
	if (s.AlignSelf == nil) != (o.AlignSelf == nil) {
		return false
	}
	if s.AlignSelf != nil && *s.AlignSelf != *o.AlignSelf {
		return false
	}
	a, b := s, o
	a.AlignSelf, b.AlignSelf = nil, nil
	return a == b
}

// Flex sets grow and shrink to the same amount.
func (s Style) Flex(amount float32) Style {
	s.FlexGrow = amount
	s.FlexShrink = amount
	return s
}

// Size sets both width and height.
func (s Style) Size(width, height Value) Style {
	s.Width, s.Height = width, height
	return s
}

// MinSize sets both minimum width and height.
func (s Style) MinSize(width, height Value) Style {
	s.MinWidth, s.MinHeight = width, height
	return s
}

// MaxSize sets both maximum width and height.
func (s Style) MaxSize(width, height Value) Style {
	s.MaxWidth, s.MaxHeight = width, height
	return s
}

func (s Style) insets() Edges {
	return s.Padding.add(s.Border)
}

var inf = float32(math.Inf(1))
