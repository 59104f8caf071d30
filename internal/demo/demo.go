// Package demo holds the sample applications served by `axon serve` and
// printed by `axon render`.
package demo

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/reactive"
)

// apps maps demo names to view factories.
var apps = map[string]func() bind.NodeProducer{
	"todo":    func() bind.NodeProducer { return NewTodo().View() },
	"counter": func() bind.NodeProducer { return NewCounter().View() },
}

// Lookup returns the view factory for a demo.
func Lookup(name string) (func() bind.NodeProducer, bool) {
	app, ok := apps[name]
	return app, ok
}

// Names returns the demo names in sorted order.
func Names() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Todo is a todo list with a draft input.
type Todo struct {
	Draft *reactive.Reactive[string]
	Items *reactive.ReactiveList[string]
	Count *reactive.Reactive[int]
}

// NewTodo creates a todo list holding items.
func NewTodo(items ...string) *Todo {
	t := &Todo{
		Draft: reactive.New(""),
		Items: reactive.NewList(items...),
		Count: reactive.New(len(items)),
	}
	t.Items.AddObserver(reactive.NewListObserver(func(int, int, int) {
		t.Count.Set(t.Items.Len())
	}))
	return t
}

// Add appends the trimmed draft and clears it. Blank drafts are ignored.
func (t *Todo) Add() {
	item := strings.TrimSpace(t.Draft.Get())
	if item == "" {
		return
	}
	t.Items.Push(item)
	t.Draft.Set("")
}

// RemoveLast drops the newest item.
func (t *Todo) RemoveLast() {
	t.Items.Pop()
}

// Clear removes every item.
func (t *Todo) Clear() {
	t.Items.Splice(0, t.Items.Len())
}

// View renders the list.
func (t *Todo) View() bind.NodeProducer {
	return bind.Div(
		bind.H1(bind.Text("Todo")),
		bind.Input(bind.BindValue(t.Draft), bind.OnEnter(t.Add)),
		bind.P(bind.Text("Adding: ", t.Draft)),
		bind.Ul(bind.Each[string](t.Items, func(item string) bind.NodeProducer {
			return bind.Li(bind.Text(item))
		})),
		bind.P(bind.Text(reactive.Map[int, string](t.Count, itemsLabel))),
		bind.Button(bind.Text("Remove last"), bind.OnClick(t.RemoveLast)),
		bind.Button(bind.Text("Clear"), bind.OnClick(t.Clear)),
	)
}

func itemsLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

// Counter is a number with increment and decrement buttons.
type Counter struct {
	Value *reactive.Reactive[int]
}

// NewCounter creates a counter at zero.
func NewCounter() *Counter {
	return &Counter{Value: reactive.New(0)}
}

// View renders the counter.
func (c *Counter) View() bind.NodeProducer {
	step := func(d int) func() {
		return func() { c.Value.Update(func(n int) int { return n + d }) }
	}
	return bind.Div(
		bind.Button(bind.Text("-"), bind.OnClick(step(-1))),
		bind.Span(bind.Text(reactive.Map[int, string](c.Value, strconv.Itoa))),
		bind.Button(bind.Text("+"), bind.OnClick(step(1))),
	)
}
