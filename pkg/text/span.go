package text

import "slices"

// FontWeight is the numeric weight of a font, from 100 (thin) to 900 (heavy).
type FontWeight uint16

const (
	Thin       FontWeight = 100
	ExtraLight FontWeight = 200
	Light      FontWeight = 300
	Normal     FontWeight = 400
	Medium     FontWeight = 500
	SemiBold   FontWeight = 600
	Bold       FontWeight = 700
	ExtraBold  FontWeight = 800
	Heavy      FontWeight = 900
)

// FontStretch is the width variant of a font.
type FontStretch uint8

const (
	UltraCondensed FontStretch = iota
	ExtraCondensed
	Condensed
	SemiCondensed
	StretchNormal
	SemiExpanded
	Expanded
	ExtraExpanded
	UltraExpanded
)

func (s FontStretch) String() string {
	switch s {
	case UltraCondensed:
		return "ultra-condensed"
	case ExtraCondensed:
		return "extra-condensed"
	case Condensed:
		return "condensed"
	case SemiCondensed:
		return "semi-condensed"
	case StretchNormal:
		return "normal"
	case SemiExpanded:
		return "semi-expanded"
	case Expanded:
		return "expanded"
	case ExtraExpanded:
		return "extra-expanded"
	case UltraExpanded:
		return "ultra-expanded"
	}
	return "unknown"
}

// FontAttributes describes how a run of text is drawn.
type FontAttributes struct {
	Size          float32
	Family        string
	Weight        FontWeight
	Stretch       FontStretch
	Italic        bool
	Strikethrough bool
}

// DefaultAttributes returns 16px regular text in the platform's default family.
func DefaultAttributes() FontAttributes {
	return FontAttributes{
		Size:    16,
		Family:  "sans-serif",
		Weight:  Normal,
		Stretch: StretchNormal,
	}
}

// Span applies attributes to the byte range [Start, End) of a string.
type Span struct {
	Attributes FontAttributes
	Start, End int
}

// Whole returns a single span covering all of s.
func Whole(attrs FontAttributes, s string) []Span {
	return []Span{{Attributes: attrs, Start: 0, End: len(s)}}
}

// Equal reports whether two span lists are identical.
func Equal(a, b []Span) bool {
	return slices.Equal(a, b)
}
