package headless

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/native/pkg/platform"
)

// Dump writes the widget tree of every open window to w, one widget per
// line. It reads widget state without locking the widgets the views
// mutate, so call it from the goroutine driving the views.
func (p *Platform) Dump(w io.Writer) error {
	for _, win := range p.Windows() {
		if win.Destroyed() {
			continue
		}
		if err := dump(w, win, 0); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, widget platform.Widget, depth int) error {
	if widget == nil {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	var children []platform.Widget
	var line string

	switch x := widget.(type) {
	case *Window:
		width, height := x.Size()
		line = fmt.Sprintf("window %q %dx%d", x.Title(), width, height)
		if x.Animating() {
			line += " animating"
		}
		children = []platform.Widget{x.Contents()}
	case *Group:
		line = fmt.Sprintf("group %s", x.size)
		children = x.children
	case *Text:
		line = fmt.Sprintf("text %q %s", x.text, x.size)
		if len(x.spans) > 0 && x.spans[0].Attributes.Strikethrough {
			line += " struck"
		}
	case *Image:
		line = fmt.Sprintf("image %s %s", x.format, x.size)
	case *Scroll:
		axis := "vertical"
		if x.axis == platform.Horizontal {
			axis = "horizontal"
		}
		line = fmt.Sprintf("scroll %s %s content %s", axis, x.size, x.contentSize)
		children = []platform.Widget{x.contents}
	case *Pressable:
		line = fmt.Sprintf("pressable %s", x.Size())
		children = []platform.Widget{x.Contents()}
	case *TextInput:
		line = fmt.Sprintf("input %q", x.Text())
		if placeholder := x.Placeholder(); placeholder != "" {
			line += fmt.Sprintf(" placeholder %q", placeholder)
		}
	default:
		line = fmt.Sprintf("%T", widget)
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, line); err != nil {
		return err
	}
	for _, c := range children {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
