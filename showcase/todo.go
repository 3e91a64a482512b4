package showcase

import (
	"context"
	"strings"

	"github.com/go-drift/native/pkg/core"
	"github.com/go-drift/native/pkg/engine"
	"github.com/go-drift/native/pkg/layout"
	"github.com/go-drift/native/pkg/platform"
	"github.com/go-drift/native/pkg/platform/headless"
	"github.com/go-drift/native/pkg/views"
)

// Todos is the data of the todo demo.
type Todos struct {
	Items  []Todo
	nextID int
}

// Todo is one entry. ID stays fixed so reordering keeps native widgets.
type Todo struct {
	ID   int
	Name string
	Done bool
}

// Add appends a todo named name. Blank names are ignored.
func (t *Todos) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	t.nextID++
	t.Items = append(t.Items, Todo{ID: t.nextID, Name: name})
	return true
}

// Toggle flips the done state of the todo with id.
func (t *Todos) Toggle(id int) {
	for i := range t.Items {
		if t.Items[i].ID == id {
			t.Items[i].Done = !t.Items[i].Done
			return
		}
	}
}

// draft is the text being typed, local to the input.
type draft = views.Local[Todos, string]

// TodoUI returns the todo view function.
func TodoUI(title string) func(*Todos) core.View[Todos] {
	return func(t *Todos) core.View[Todos] {
		panel := views.Column[Todos](todoInput(), todoList(t)).
			WithWidth(300).
			WithAlign(layout.AlignStretch).
			WithBorder(1).
			WithBorderColor(platform.ColorBlack)

		return views.NewWindow[Todos](
			views.Column[Todos](panel).
				WithFlex(1).
				WithJustify(layout.JustifyCenter).
				WithAlign(layout.AlignCenter),
		).WithTitle(title)
	}
}

func todoInput() core.View[Todos] {
	return views.WithState(
		func(*Todos) string { return "" },
		func(name *string, _ *Todos) core.View[draft] {
			input := views.NewTextInput[draft](*name).
				WithPlaceholder("What do you want to do?").
				WithNewline(platform.NewlineNone).
				WithAcceptTab(false).
				WithFlex(1).
				WithOnChange(func(d *draft, text string) core.Action {
					*d.State = text
					return core.Rebuild()
				}).
				WithOnSubmit(func(d *draft, text string) core.Action {
					d.Data.Add(text)
					*d.State = ""
					return core.Rebuild()
				})
			return views.Row[draft](input).WithPadding(8).WithBorder(1)
		},
	)
}

func todoList(t *Todos) core.View[Todos] {
	rows := make([]core.View[Todos], 0, len(t.Items))
	for i := len(t.Items) - 1; i >= 0; i-- {
		rows = append(rows, core.Keyed(t.Items[i].ID, todoRow(t.Items[i])))
	}
	return views.VScroll[Todos](views.Column(rows...)).WithMaxHeight(400).WithFlex(1)
}

func todoRow(item Todo) core.View[Todos] {
	id := item.ID
	return views.Press(func(_ *Todos, _ views.PressState) core.View[Todos] {
		return views.Row[Todos](
			views.Label[Todos](item.Name).WithFamily("Fira Code").WithStrikethrough(item.Done),
		).WithPadding(8).WithBorderTop(1).WithBorderColor(platform.ColorBlack)
	}).WithOnPress(func(t *Todos) core.Action {
		t.Toggle(id)
		return core.Rebuild()
	})
}

func runTodo(ctx context.Context, p platform.Platform, title string, opts ...engine.Option) error {
	return engine.Run(ctx, p, &Todos{}, TodoUI(title), opts...)
}

func scriptTodo(ctx context.Context, p *headless.Platform) error {
	win, err := firstWindow(ctx, p)
	if err != nil {
		return err
	}
	if err := waitFor(ctx, "input", func() bool { return len(p.TextInputs()) > 0 }); err != nil {
		return err
	}
	input := p.TextInputs()[0]
	for i, item := range []string{"milk", "eggs", "bread"} {
		input.Type(item)
		input.Submit()
		// Submitting clears the field; wait so the next Type is not lost.
		if err := waitFor(ctx, item, func() bool { return len(p.Pressables()) == i+1 }); err != nil {
			return err
		}
	}
	// Pressables are listed in build order, so the first is "milk".
	p.Pressables()[0].Click()
	win.Resize(640, 480)
	win.Close()
	return nil
}
