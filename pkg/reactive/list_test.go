package reactive

import (
	"reflect"
	"testing"
)

type patch struct {
	start, deleteCount, insertedCount int
}

// testListObserver records every patch it receives.
type testListObserver struct {
	patches []patch
}

func (o *testListObserver) UpdateRange(start, deleteCount, insertedCount int) {
	o.patches = append(o.patches, patch{start, deleteCount, insertedCount})
}

func TestListSplice(t *testing.T) {
	l := NewList("a", "b", "c", "d")
	obs := &testListObserver{}
	l.AddObserver(obs)

	removed := l.Splice(1, 2, "x", "y", "z")

	if want := []string{"a", "x", "y", "z", "d"}; !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("expected %v, got %v", want, l.Items())
	}
	if l.Len() != 5 {
		t.Errorf("expected length 5, got %d", l.Len())
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(removed, want) {
		t.Errorf("expected removed %v, got %v", want, removed)
	}
	if want := []patch{{1, 2, 3}}; !reflect.DeepEqual(obs.patches, want) {
		t.Errorf("expected patches %v, got %v", want, obs.patches)
	}
}

func TestListSpliceClamping(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		deleteCount int
		items       []int
		want        []int
		patch       patch
	}{
		{"delete past end", 2, 10, nil, []int{1, 2}, patch{2, 2, 0}},
		{"start past end", 9, 1, []int{9}, []int{1, 2, 3, 4, 9}, patch{4, 0, 1}},
		{"negative start", -1, 1, nil, []int{1, 2, 3}, patch{3, 1, 0}},
		{"very negative start", -10, 1, nil, []int{2, 3, 4}, patch{0, 1, 0}},
		{"negative delete count", 1, -3, []int{7}, []int{1, 7, 2, 3, 4}, patch{1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(1, 2, 3, 4)
			obs := &testListObserver{}
			l.AddObserver(obs)

			l.Splice(tt.start, tt.deleteCount, tt.items...)

			if !reflect.DeepEqual(l.Items(), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, l.Items())
			}
			if len(obs.patches) != 1 || obs.patches[0] != tt.patch {
				t.Errorf("expected patch %v, got %v", tt.patch, obs.patches)
			}
		})
	}
}

func TestListPushEquivalentToSplice(t *testing.T) {
	pushed := NewList(1, 2, 3)
	spliced := NewList(1, 2, 3)
	po := &testListObserver{}
	so := &testListObserver{}
	pushed.AddObserver(po)
	spliced.AddObserver(so)

	pushed.Push(4)
	spliced.Splice(3, 0, 4)

	if !reflect.DeepEqual(pushed.Items(), spliced.Items()) {
		t.Errorf("push %v != splice %v", pushed.Items(), spliced.Items())
	}
	if !reflect.DeepEqual(po.patches, so.patches) {
		t.Errorf("push patches %v != splice patches %v", po.patches, so.patches)
	}
	if po.patches[0] != (patch{3, 0, 1}) {
		t.Errorf("expected (3,0,1), got %v", po.patches[0])
	}
}

func TestListShortcuts(t *testing.T) {
	l := NewList(2, 3)
	obs := &testListObserver{}
	l.AddObserver(obs)

	l.Unshift(0, 1)
	l.Push(4, 5)

	v, ok := l.Pop()
	if !ok || v != 5 {
		t.Errorf("expected Pop to return 5, got %d %v", v, ok)
	}
	v, ok = l.Shift()
	if !ok || v != 0 {
		t.Errorf("expected Shift to return 0, got %d %v", v, ok)
	}

	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("expected %v, got %v", want, l.Items())
	}

	want := []patch{{0, 0, 2}, {4, 0, 2}, {5, 1, 0}, {0, 1, 0}}
	if !reflect.DeepEqual(obs.patches, want) {
		t.Errorf("expected patches %v, got %v", want, obs.patches)
	}
}

func TestListPopShiftEmpty(t *testing.T) {
	l := NewList[string]()
	obs := &testListObserver{}
	l.AddObserver(obs)

	if _, ok := l.Pop(); ok {
		t.Error("Pop on empty list should report false")
	}
	if _, ok := l.Shift(); ok {
		t.Error("Shift on empty list should report false")
	}
	for _, p := range obs.patches {
		if p != (patch{0, 0, 0}) {
			t.Errorf("expected empty patch, got %v", p)
		}
	}
}

func TestListDeleteObserver(t *testing.T) {
	l := NewList(1)
	obs := &testListObserver{}
	l.AddObserver(obs)
	l.AddObserver(obs)
	if l.ObserverCount() != 1 {
		t.Errorf("expected 1 observer, got %d", l.ObserverCount())
	}

	l.DeleteObserver(obs)
	l.DeleteObserver(obs)
	l.Push(2)
	if len(obs.patches) != 0 {
		t.Errorf("deleted observer should not be notified, got %v", obs.patches)
	}
}

func TestListNewCopiesItems(t *testing.T) {
	src := []int{1, 2}
	l := NewList(src...)
	src[0] = 9
	if l.Get(0) != 1 {
		t.Errorf("list should own its backing slice, got %d", l.Get(0))
	}
}

func TestConstantListInert(t *testing.T) {
	l := NewConstantList("a", "b")
	obs := &testListObserver{}
	l.AddObserver(obs)
	l.DeleteObserver(obs)
	l.DeleteObserver(obs)

	if l.Len() != 2 || l.Get(1) != "b" {
		t.Errorf("unexpected constant list contents")
	}
	if len(obs.patches) != 0 {
		t.Errorf("constant list should never notify")
	}
}

func TestRegistryCompaction(t *testing.T) {
	var r registry[Observer]
	obs := make([]*testObserver, 10)
	for i := range obs {
		obs[i] = newTestObserver()
		r.add(obs[i])
	}
	for i := 0; i < 8; i++ {
		r.remove(obs[i])
	}

	if r.len() != 2 {
		t.Fatalf("expected 2 observers, got %d", r.len())
	}
	snap := r.snapshot()
	if len(snap) != 2 || snap[0] != Observer(obs[8]) || snap[1] != Observer(obs[9]) {
		t.Errorf("unexpected snapshot after compaction: %v", snap)
	}
	if !r.contains(obs[9]) || r.contains(obs[0]) {
		t.Error("index out of sync after compaction")
	}

	r.remove(obs[9])
	r.add(obs[0])
	snap = r.snapshot()
	if len(snap) != 2 || snap[0] != Observer(obs[8]) || snap[1] != Observer(obs[0]) {
		t.Errorf("expected insertion order after re-add, got %v", snap)
	}
}
