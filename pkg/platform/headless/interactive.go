package headless

import (
	"sync"
	"time"

	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/text"
)

// Widgets with callbacks guard their state with a mutex: the simulation
// methods are called from test goroutines while the reconciliation loop
// mutates the widget.

// Pressable

// Pressable is a headless pressable.
type Pressable struct {
	widget
	mu       sync.Mutex
	contents platform.Widget
	size     Size
	onPress  func(platform.Press)
	onHover  func(bool)
	onFocus  func(bool)
}

// NewPressable creates a pressable around contents.
func (p *Platform) NewPressable(contents platform.Widget) platform.Pressable {
	pr := &Pressable{widget: p.newWidget(KindPressable), contents: contents}
	p.mu.Lock()
	p.pressables = append(p.pressables, pr)
	p.mu.Unlock()
	return pr
}

func (p *Pressable) SetContents(contents platform.Widget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contents = contents
}

func (p *Pressable) SetSize(width, height float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.size = Size{width, height}
}

func (p *Pressable) SetOnPress(fn func(platform.Press)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPress = fn
}

func (p *Pressable) SetOnHover(fn func(bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onHover = fn
}

func (p *Pressable) SetOnFocus(fn func(bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFocus = fn
}

func (p *Pressable) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroy()
}

// Contents returns the wrapped widget.
func (p *Pressable) Contents() platform.Widget {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contents
}

// Size returns the last size set.
func (p *Pressable) Size() Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Press simulates a pointer press change.
func (p *Pressable) Press(press platform.Press) {
	p.mu.Lock()
	fn := p.onPress
	p.mu.Unlock()
	if fn != nil {
		fn(press)
	}
}

// Click simulates a press followed by a release.
func (p *Pressable) Click() {
	p.Press(platform.Pressed)
	p.Press(platform.Released)
}

// Hover simulates the pointer entering or leaving.
func (p *Pressable) Hover(hovered bool) {
	p.mu.Lock()
	fn := p.onHover
	p.mu.Unlock()
	if fn != nil {
		fn(hovered)
	}
}

// Focus simulates focus being gained or lost.
func (p *Pressable) Focus(focused bool) {
	p.mu.Lock()
	fn := p.onFocus
	p.mu.Unlock()
	if fn != nil {
		fn(focused)
	}
}

// TextInput

// TextInput is a headless text field.
type TextInput struct {
	widget
	mu          sync.Mutex
	text        string
	placeholder string
	newline     platform.Newline
	acceptTab   bool
	size        Size
	onChange    func(string)
	onSubmit    func(string)
}

// NewTextInput creates a text field holding s.
func (p *Platform) NewTextInput(s string) (platform.TextInput, layout.Measurer) {
	in := &TextInput{widget: p.newWidget(KindTextInput)}
	p.mu.Lock()
	p.inputs = append(p.inputs, in)
	p.mu.Unlock()
	return in, in.SetText(s)
}

func measureInput(s string) layout.Measurer {
	return text.NewLayout(s, text.Whole(text.DefaultAttributes(), s))
}

func (t *TextInput) SetText(s string) layout.Measurer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = s
	return measureInput(s)
}

func (t *TextInput) SetPlaceholder(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.placeholder = s
}

func (t *TextInput) SetNewline(n platform.Newline) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.newline = n
}

func (t *TextInput) SetAcceptTab(accept bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acceptTab = accept
}

func (t *TextInput) SetSize(width, height float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.size = Size{width, height}
}

func (t *TextInput) SetOnChange(fn func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

func (t *TextInput) SetOnSubmit(fn func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSubmit = fn
}

func (t *TextInput) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destroy()
}

// Text returns the current content.
func (t *TextInput) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Placeholder returns the placeholder.
func (t *TextInput) Placeholder() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.placeholder
}

// Type simulates the user replacing the content with s.
func (t *TextInput) Type(s string) {
	t.mu.Lock()
	t.text = s
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// Submit simulates the user submitting the field.
func (t *TextInput) Submit() {
	t.mu.Lock()
	s, fn := t.text, t.onSubmit
	t.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// Window

// Window is a headless window. Its size never drops below the minimum
// size set by the content.
type Window struct {
	widget
	mu                  sync.Mutex
	width, height       uint32
	minWidth, minHeight uint32
	minSizeCalls        int
	title               string
	contents            platform.Widget
	animating           bool
	starts, stops       int
	onResize            func()
	onClose             func()
	onFrame             func(time.Duration)
}

// NewWindow creates a window around contents, DefaultWidth by
// DefaultHeight unless WithWindowSize says otherwise.
func (p *Platform) NewWindow(contents platform.Widget) platform.Window {
	w := &Window{
		widget:   p.newWidget(KindWindow),
		width:    p.windowWidth,
		height:   p.windowHeight,
		contents: contents,
	}
	p.mu.Lock()
	p.windows = append(p.windows, w)
	p.mu.Unlock()
	return w
}

func (w *Window) Size() (width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return max(w.width, w.minWidth), max(w.height, w.minHeight)
}

func (w *Window) SetMinSize(width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.minWidth, w.minHeight = width, height
	w.minSizeCalls++
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
}

func (w *Window) SetContents(contents platform.Widget) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contents = contents
}

func (w *Window) SetOnResize(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = fn
}

func (w *Window) SetOnCloseRequested(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = fn
}

func (w *Window) SetOnAnimationFrame(fn func(time.Duration)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onFrame = fn
}

func (w *Window) StartAnimating() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.animating = true
	w.starts++
}

func (w *Window) StopAnimating() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.animating = false
	w.stops++
}

func (w *Window) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroy()
}

// MinSize returns the minimum size last set.
func (w *Window) MinSize() (width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minWidth, w.minHeight
}

// MinSizeCalls returns how many times SetMinSize was called.
func (w *Window) MinSizeCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minSizeCalls
}

// Title returns the title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Contents returns the content widget.
func (w *Window) Contents() platform.Widget {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contents
}

// Animating reports whether frame delivery is on.
func (w *Window) Animating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.animating
}

// AnimationCalls returns how many times frame delivery was started and
// stopped.
func (w *Window) AnimationCalls() (starts, stops int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.starts, w.stops
}

// Resize simulates the user resizing the window.
func (w *Window) Resize(width, height uint32) {
	w.mu.Lock()
	w.width, w.height = width, height
	fn := w.onResize
	w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Close simulates the user closing the window.
func (w *Window) Close() {
	w.mu.Lock()
	fn := w.onClose
	w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Frame delivers one animation frame if frame delivery is on, and reports
// whether it did.
func (w *Window) Frame(delta time.Duration) bool {
	w.mu.Lock()
	fn, on := w.onFrame, w.animating
	w.mu.Unlock()
	if !on || fn == nil {
		return false
	}
	fn(delta)
	return true
}
