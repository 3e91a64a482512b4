package showcase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/native/pkg/animation"
	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/engine"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/platform/headless"
	"github.com/go-drift/native/pkg/views"
)

// Counter is the data of the counter demo.
type Counter struct {
	Count int
}

// counterGrow is how the label size follows the count.
var counterGrow = animation.Over(200*time.Millisecond, animation.EaseOut)

// CounterUI returns the counter view function.
func CounterUI(title string) func(*Counter) core.View[Counter] {
	return func(c *Counter) core.View[Counter] {
		size := 16 + float64(min(c.Count, 8))*2
		button := views.Press(func(c *Counter, s views.PressState) core.View[Counter] {
			return views.Transition(size, counterGrow, animation.LerpFloat64,
				func(v float64, c *Counter) core.View[Counter] {
					return views.Label[Counter](fmt.Sprintf("clicked %d", c.Count)).
						WithFontSize(float32(v)).
						WithItalic(s.Pressed)
				})
		}).WithOnPress(func(c *Counter) core.Action {
			c.Count++
			return core.Rebuild()
		})

		return views.NewWindow[Counter](
			views.Row[Counter](views.Label[Counter]("hello"), button).
				WithFlex(1).
				WithJustify(layout.JustifySpaceAround).
				WithAlign(layout.AlignCenter),
		).WithTitle(title)
	}
}

func runCounter(ctx context.Context, p platform.Platform, title string, opts ...engine.Option) error {
	return engine.Run(ctx, p, &Counter{}, CounterUI(title), opts...)
}

func scriptCounter(ctx context.Context, p *headless.Platform) error {
	win, err := firstWindow(ctx, p)
	if err != nil {
		return err
	}
	if err := waitFor(ctx, "button", func() bool { return len(p.Pressables()) > 0 }); err != nil {
		return err
	}
	button := p.Pressables()[0]
	for range 3 {
		button.Click()
	}
	if err := settle(ctx, win, 16*time.Millisecond); err != nil {
		return err
	}
	win.Resize(400, 120)
	win.Close()
	return nil
}
