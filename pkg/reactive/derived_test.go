package reactive

import (
	"strings"
	"testing"
)

func TestMapSingleSource(t *testing.T) {
	name := New("go")
	upper := Map(name, strings.ToUpper)

	if upper.Get() != "GO" {
		t.Errorf("expected GO, got %q", upper.Get())
	}

	name.Set("axon")
	if upper.Get() != "AXON" {
		t.Errorf("expected AXON, got %q", upper.Get())
	}
}

func TestMapTransparentRegistration(t *testing.T) {
	s1 := New(1)
	s2 := New(2)
	sum := Map2(s1, s2, func(a, b int) int { return a + b })

	obs := newTestObserver()
	sum.AddObserver(obs)

	if !s1.HasObserver(obs) || !s2.HasObserver(obs) {
		t.Fatal("observer should be registered directly on every source")
	}

	s1.Set(10)
	if obs.updates != 1 {
		t.Errorf("expected 1 notification, got %d", obs.updates)
	}
	if sum.Get() != 12 {
		t.Errorf("expected 12, got %d", sum.Get())
	}

	// Two separate writes notify twice; there is no debouncing.
	s1.Set(20)
	s2.Set(30)
	if obs.updates != 3 {
		t.Errorf("expected 3 notifications, got %d", obs.updates)
	}

	sum.DeleteObserver(obs)
	if s1.ObserverCount() != 0 || s2.ObserverCount() != 0 {
		t.Errorf("DeleteObserver should remove from every source, got %d and %d",
			s1.ObserverCount(), s2.ObserverCount())
	}
}

func TestMapRecomputesEveryGet(t *testing.T) {
	src := New(1)
	calls := 0
	d := Map(src, func(v int) int {
		calls++
		return v
	})

	d.Get()
	d.Get()
	d.Get()
	if calls != 3 {
		t.Errorf("expected 3 computations, got %d", calls)
	}
}

func TestMapSourceOrder(t *testing.T) {
	var reads []string
	a := &recordingObservable{name: "a", reads: &reads}
	b := &recordingObservable{name: "b", reads: &reads}
	c := &recordingObservable{name: "c", reads: &reads}

	joined := Map3[string, string, string](a, b, c, func(x, y, z string) string { return x + y + z })
	if joined.Get() != "abc" {
		t.Errorf("expected abc, got %q", joined.Get())
	}
	if strings.Join(reads, "") != "abc" {
		t.Errorf("expected sources read in order, got %v", reads)
	}
}

type recordingObservable struct {
	name  string
	reads *[]string
}

func (r *recordingObservable) Get() string {
	*r.reads = append(*r.reads, r.name)
	return r.name
}

func (r *recordingObservable) AddObserver(Observer)    {}
func (r *recordingObservable) DeleteObserver(Observer) {}

func TestMapN(t *testing.T) {
	parts := []Observable[string]{New("a"), NewConstant("-"), New("b")}
	joined := MapN(parts, func(values ...string) string { return strings.Join(values, "") })

	if joined.Get() != "a-b" {
		t.Errorf("expected a-b, got %q", joined.Get())
	}

	obs := newTestObserver()
	joined.AddObserver(obs)
	parts[2].(*Reactive[string]).Set("c")

	if obs.updates != 1 {
		t.Errorf("expected 1 notification, got %d", obs.updates)
	}
	if joined.Get() != "a-c" {
		t.Errorf("expected a-c, got %q", joined.Get())
	}
	if len(joined.Sources()) != 3 {
		t.Errorf("expected 3 sources, got %d", len(joined.Sources()))
	}
}

func TestMapOfMap(t *testing.T) {
	n := New(2)
	doubled := Map[int, int](n, func(v int) int { return v * 2 })
	label := Map[int, string](doubled, func(v int) string { return strings.Repeat("x", v) })

	obs := newTestObserver()
	label.AddObserver(obs)

	n.Set(3)
	if obs.updates != 1 {
		t.Errorf("expected 1 notification through nested derivation, got %d", obs.updates)
	}
	if label.Get() != "xxxxxx" {
		t.Errorf("expected 6 x, got %q", label.Get())
	}
}

func TestFormat(t *testing.T) {
	n := New(1)
	text := Format(n)
	if text.Get() != "1" {
		t.Errorf("expected 1, got %q", text.Get())
	}

	o := newTestObserver()
	text.AddObserver(o)
	if n.ObserverCount() != 1 {
		t.Fatalf("Format should register on its source, got %d observers", n.ObserverCount())
	}

	n.Set(2)
	if o.updates != 1 || text.Get() != "2" {
		t.Errorf("after Set: updates=%d text=%q", o.updates, text.Get())
	}

	text.DeleteObserver(o)
	if n.ObserverCount() != 0 {
		t.Errorf("DeleteObserver should deregister, got %d observers", n.ObserverCount())
	}
}

func TestFormatDerivedAndConstant(t *testing.T) {
	n := New(2)
	sq := Map(n, func(v int) int { return v * v })
	if got := Format(sq).Get(); got != "4" {
		t.Errorf("expected 4, got %q", got)
	}

	c := Format(NewConstant(true))
	if !IsConstant(c) {
		t.Error("formatted constant should stay constant")
	}
	if c.Get() != "true" {
		t.Errorf("expected true, got %q", c.Get())
	}
}
