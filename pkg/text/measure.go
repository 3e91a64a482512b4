package text

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/native/pkg/layout"
)

// face is the reference face; its metrics are scaled by the span size.
var face font.Face = basicfont.Face7x13

// faceSize is the pixel size face is drawn at.
const faceSize = 13

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Layout is a measured paragraph list. It implements layout.Measurer.
type Layout struct {
	// paragraphs holds the width of each word, per newline-separated paragraph.
	paragraphs [][]float32
	space      float32
	lineHeight float32
}

// NewLayout prepares s for measurement. Bytes not covered by any span use
// the default attributes.
func NewLayout(s string, spans []Span) *Layout {
	scaleAt := func(i int) float32 {
		for _, sp := range spans {
			if i >= sp.Start && i < sp.End {
				return sp.Attributes.Size / faceSize
			}
		}
		return DefaultAttributes().Size / faceSize
	}
	var maxScale float32
	for _, sp := range spans {
		maxScale = max(maxScale, sp.Attributes.Size/faceSize)
	}
	if maxScale == 0 {
		maxScale = scaleAt(-1)
	}

	l := &Layout{
		space:      toFloat(font.MeasureString(face, " ")) * scaleAt(0),
		lineHeight: toFloat(face.Metrics().Height) * maxScale,
	}
	offset := 0
	for _, para := range strings.Split(s, "\n") {
		var words []float32
		var width float32
		inWord := false
		for i, r := range para {
			if r == ' ' || r == '\t' {
				if inWord {
					words = append(words, width)
					width, inWord = 0, false
				}
				continue
			}
			adv, _ := face.GlyphAdvance(r)
			width += toFloat(adv) * scaleAt(offset+i)
			inWord = true
		}
		if inWord {
			words = append(words, width)
		}
		l.paragraphs = append(l.paragraphs, words)
		offset += len(para) + 1
	}
	return l
}

// Measure wraps the text greedily at the known or available width. A
// min-content request puts every word on its own line; a max-content
// request never wraps.
func (l *Layout) Measure(known layout.KnownSize, available layout.AvailableSize) layout.Size {
	limit := float32(math.Inf(1))
	switch {
	case known.HasWidth:
		limit = known.Width
	case available.Width.IsMinContent():
		limit = 0
	case available.Width.IsDefinite():
		limit = available.Width.Value()
	}

	width, lines := l.wrap(limit)
	size := layout.Size{Width: width, Height: float32(lines) * l.lineHeight}
	if known.HasWidth {
		size.Width = known.Width
	}
	if known.HasHeight {
		size.Height = known.Height
	}
	return size
}

// wrap returns the widest line and the line count when breaking at limit.
func (l *Layout) wrap(limit float32) (widest float32, lines int) {
	for _, words := range l.paragraphs {
		lines++
		var cur float32
		for i, w := range words {
			switch {
			case i == 0:
				cur = w
			case cur+l.space+w <= limit:
				cur += l.space + w
			default:
				widest = max(widest, cur)
				lines++
				cur = w
			}
		}
		widest = max(widest, cur)
	}
	return widest, lines
}
