package axontest

import (
	"strconv"
	"testing"

	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/dom"
	"github.com/vango-dev/axon/pkg/reactive"
)

func TestRenderToString(t *testing.T) {
	got := RenderToString(bind.Div(bind.P(bind.Text("a < b"))))
	if want := "<div><p>a &lt; b</p></div>"; got != want {
		t.Errorf("RenderToString = %q, want %q", got, want)
	}
}

func TestViewInteractions(t *testing.T) {
	name := reactive.New("")
	items := reactive.NewList[string]()
	clicks := reactive.New(0)

	v := Mount(t, bind.Div(
		bind.Input(bind.BindValue(name), bind.OnEnter(func() { items.Push(name.Get()) })),
		bind.Ul(bind.Each[string](items, func(s string) bind.NodeProducer { return bind.Li(bind.Text(s)) })),
		bind.Button(bind.Text("x"), bind.OnClick(func() { clicks.Set(clicks.Get() + 1) })),
		bind.Span(bind.Text(reactive.Map[int, string](clicks, strconv.Itoa))),
	))

	input := v.Find("input")
	v.Type(input, "one")
	v.Press(input, dom.KeyEnter)
	v.Type(input, "two")
	v.Press(input, dom.KeyEnter)

	v.ExpectCount("li", 2)
	v.ExpectContains("<li>one</li><li>two</li>")

	v.Click(v.Find("button"))
	v.ExpectContains("<span>1</span>")
	v.ExpectNotContains("<span>0</span>")

	if got := v.Text(); got != "onetwox1" {
		t.Errorf("Text() = %q", got)
	}
}

func TestMountUnmountsOnCleanup(t *testing.T) {
	s := reactive.New("x")
	t.Run("inner", func(t *testing.T) {
		Mount(t, bind.P(bind.Text(s)))
		if s.ObserverCount() != 1 {
			t.Fatalf("expected a subscription while mounted, got %d", s.ObserverCount())
		}
	})
	if s.ObserverCount() != 0 {
		t.Errorf("cleanup should unmount, %d observers left", s.ObserverCount())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
