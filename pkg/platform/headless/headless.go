// Package headless implements every platform capability without a display.
// Widgets record what was done to them, and the simulation methods on
// windows, pressables and text inputs fire native callbacks the way a real
// toolkit would. It backs the tests and the demo.
package headless

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/text"
)

// Widget kinds, as counted by Created and Destroyed.
const (
	KindGroup     = "group"
	KindText      = "text"
	KindImage     = "image"
	KindPressable = "pressable"
	KindScroll    = "scroll"
	KindTextInput = "text input"
	KindWindow    = "window"
)

// Default window size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Platform is an in-memory toolkit. It is safe for concurrent use.
type Platform struct {
	mu        sync.Mutex
	created   map[string]int
	destroyed map[string]int
	quits     int
	logger    *slog.Logger

	windowWidth, windowHeight uint32

	windows    []*Window
	pressables []*Pressable
	inputs     []*TextInput
}

// Option configures a Platform.
type Option func(*Platform)

// WithLogger logs widget lifecycle events at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Platform) {
		p.logger = logger
	}
}

// WithWindowSize sets the size new windows open at.
func WithWindowSize(width, height uint32) Option {
	return func(p *Platform) {
		if width > 0 && height > 0 {
			p.windowWidth, p.windowHeight = width, height
		}
	}
}

// New creates a headless platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		created:   make(map[string]int),
		destroyed: make(map[string]int),
		logger:    slog.New(slog.DiscardHandler),

		windowWidth:  DefaultWidth,
		windowHeight: DefaultHeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Quit records a quit request.
func (p *Platform) Quit() {
	p.mu.Lock()
	p.quits++
	p.mu.Unlock()
	p.logger.Debug("quit requested")
}

// Quits returns the number of quit requests.
func (p *Platform) Quits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quits
}

// Created returns how many widgets of kind were created.
func (p *Platform) Created(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created[kind]
}

// Destroyed returns how many widgets of kind were destroyed.
func (p *Platform) Destroyed(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed[kind]
}

// Live returns the number of widgets of any kind not yet destroyed.
func (p *Platform) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for kind, c := range p.created {
		n += c - p.destroyed[kind]
	}
	return n
}

// Windows returns the windows created so far, oldest first.
func (p *Platform) Windows() []*Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.windows)
}

// Pressables returns the pressables created so far, oldest first.
func (p *Platform) Pressables() []*Pressable {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.pressables)
}

// TextInputs returns the text inputs created so far, oldest first.
func (p *Platform) TextInputs() []*TextInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.inputs)
}

func (p *Platform) newWidget(kind string) widget {
	id := uuid.New()
	p.mu.Lock()
	p.created[kind]++
	p.mu.Unlock()
	p.logger.Debug("widget created", "kind", kind, "handle", id)
	return widget{platform: p, kind: kind, id: id}
}

// widget is the part every headless widget shares.
type widget struct {
	platform  *Platform
	kind      string
	id        uuid.UUID
	destroyed bool
}

// Handle returns the widget's unique id.
func (w *widget) Handle() any { return w.id }

// Destroyed reports whether Destroy was called.
func (w *widget) Destroyed() bool { return w.destroyed }

func (w *widget) destroy() {
	if w.destroyed {
		errors.Invariant("headless.Destroy", "%s %v destroyed twice", w.kind, w.id)
	}
	w.destroyed = true
	p := w.platform
	p.mu.Lock()
	p.destroyed[w.kind]++
	p.mu.Unlock()
	p.logger.Debug("widget destroyed", "kind", w.kind, "handle", w.id)
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height float32
}

// Group

// Group is a headless container.
type Group struct {
	widget
	children    []platform.Widget
	positions   []layout.Point
	size        Size
	borderColor platform.Color
}

// NewGroup creates a group.
func (p *Platform) NewGroup() platform.Group {
	return &Group{widget: p.newWidget(KindGroup)}
}

func (g *Group) InsertChild(index int, child platform.Widget) {
	g.children = slices.Insert(g.children, index, child)
	g.positions = slices.Insert(g.positions, index, layout.Point{})
}

func (g *Group) RemoveChild(index int) {
	g.children = slices.Delete(g.children, index, index+1)
	g.positions = slices.Delete(g.positions, index, index+1)
}

func (g *Group) SwapChildren(i, j int) {
	g.children[i], g.children[j] = g.children[j], g.children[i]
	g.positions[i], g.positions[j] = g.positions[j], g.positions[i]
}

func (g *Group) ReplaceChild(index int, child platform.Widget) {
	g.children[index] = child
}

func (g *Group) SetSize(width, height float32) { g.size = Size{width, height} }

func (g *Group) SetChildPosition(index int, x, y float32) {
	g.positions[index] = layout.Point{X: x, Y: y}
}

func (g *Group) SetBorderColor(c platform.Color) { g.borderColor = c }

func (g *Group) Destroy() { g.destroy() }

// Children returns the child widgets in order.
func (g *Group) Children() []platform.Widget { return slices.Clone(g.children) }

// Position returns the position of the child at index.
func (g *Group) Position(index int) layout.Point { return g.positions[index] }

// Size returns the last size set.
func (g *Group) Size() Size { return g.size }

// BorderColor returns the border color.
func (g *Group) BorderColor() platform.Color { return g.borderColor }

// Text

// Text is a headless label measured with the built-in font metrics.
type Text struct {
	widget
	spans []text.Span
	text  string
	size  Size
}

// NewText creates a label.
func (p *Platform) NewText(spans []text.Span, s string) (platform.Text, layout.Measurer) {
	t := &Text{widget: p.newWidget(KindText)}
	return t, t.SetText(spans, s)
}

func (t *Text) SetText(spans []text.Span, s string) layout.Measurer {
	t.spans, t.text = spans, s
	return text.NewLayout(s, spans)
}

func (t *Text) SetSize(width, height float32) { t.size = Size{width, height} }

func (t *Text) Destroy() { t.destroy() }

// Text returns the label's text.
func (t *Text) Text() string { return t.text }

// Spans returns the label's spans.
func (t *Text) Spans() []text.Span { return t.spans }

// Size returns the last size set.
func (t *Text) Size() Size { return t.size }

// Image

// Image is a headless image view. It decodes only the image header.
type Image struct {
	widget
	width, height int
	format        string
	tint          *platform.Color
	size          Size
}

// NewImage creates an empty image view.
func (p *Platform) NewImage() platform.Image {
	return &Image{widget: p.newWidget(KindImage)}
}

func (i *Image) LoadData(data []byte) (layout.Measurer, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", errors.ErrNativeResource, err)
	}
	i.width, i.height, i.format = cfg.Width, cfg.Height, format
	return layout.FixedSize(layout.Size{Width: float32(cfg.Width), Height: float32(cfg.Height)}), nil
}

func (i *Image) SetTint(tint *platform.Color) { i.tint = tint }

func (i *Image) SetSize(width, height float32) { i.size = Size{width, height} }

func (i *Image) Destroy() { i.destroy() }

// Format returns the format of the last loaded image, such as "png".
func (i *Image) Format() string { return i.format }

// Tint returns the tint, or nil.
func (i *Image) Tint() *platform.Color { return i.tint }

// Size returns the last size set.
func (i *Image) Size() Size { return i.size }

// Scroll

// Scroll is a headless scroll view.
type Scroll struct {
	widget
	axis        platform.Axis
	contents    platform.Widget
	size        Size
	contentSize Size
}

// NewScroll creates a scroll view around contents.
func (p *Platform) NewScroll(axis platform.Axis, contents platform.Widget) platform.Scroll {
	return &Scroll{widget: p.newWidget(KindScroll), axis: axis, contents: contents}
}

func (s *Scroll) SetContents(contents platform.Widget) { s.contents = contents }

func (s *Scroll) SetSize(width, height float32) { s.size = Size{width, height} }

func (s *Scroll) SetContentSize(width, height float32) { s.contentSize = Size{width, height} }

func (s *Scroll) Destroy() { s.destroy() }

// Contents returns the scrolled widget.
func (s *Scroll) Contents() platform.Widget { return s.contents }

// Axis returns the scroll axis.
func (s *Scroll) Axis() platform.Axis { return s.axis }

// Size returns the viewport size.
func (s *Scroll) Size() Size { return s.size }

// ContentSize returns the scrollable extent.
func (s *Scroll) ContentSize() Size { return s.contentSize }

var (
	_ platform.GroupPlatform     = (*Platform)(nil)
	_ platform.TextPlatform      = (*Platform)(nil)
	_ platform.ImagePlatform     = (*Platform)(nil)
	_ platform.ScrollPlatform    = (*Platform)(nil)
	_ platform.PressablePlatform = (*Platform)(nil)
	_ platform.TextInputPlatform = (*Platform)(nil)
	_ platform.WindowPlatform    = (*Platform)(nil)
)
