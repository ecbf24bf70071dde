package heap

import "testing"

func TestBasics(t *testing.T) {
	h := New(func(a, b int) bool {
		return a < b
	})
	h.Push(10)
	h.Push(4)
	h.Push(100)
	h.Push(8)
	h.Push(20)
	for _, i := range []int{4, 8, 10, 20, 100} {
		if top, found := h.Peek(); !found || top != i {
			t.Errorf("got %v, %v, want %v, true", top, found, i)
		}
		if top, found := h.Pop(); !found || top != i {
			t.Errorf("got %v, %v, want %v, true", top, found, i)
		}
	}
	if _, found := h.Peek(); found {
		t.Errorf("got %v, want false", found)
	}
	if _, found := h.Pop(); found {
		t.Errorf("got %v, want false", found)
	}
}

// index mirrors the auxiliary map ttlqueue keeps: value -> current heap slot.
func indexedHeap(values ...int) (*Heap[int], map[int]int) {
	h := New(func(a, b int) bool { return a < b })
	index := map[int]int{}
	h.SetOnSwap(func(i, j int) {
		index[h.At(i)] = i
		index[h.At(j)] = j
	})
	for _, v := range values {
		h.Push(v)
		// OnSwap already recorded v's slot if Push moved it; only a value
		// that stayed at the tail needs its slot filled in here.
		if _, ok := index[v]; !ok {
			index[v] = h.Size() - 1
		}
	}
	return h, index
}

func checkIndex(t *testing.T, h *Heap[int], index map[int]int) {
	t.Helper()
	for v, i := range index {
		if h.At(i) != v {
			t.Errorf("index[%d] = %d, but At(%d) = %d", v, i, i, h.At(i))
		}
	}
}

func TestOnSwapKeepsIndexCurrent(t *testing.T) {
	h, index := indexedHeap(10, 4, 100, 8, 20, 1)
	checkIndex(t, h, index)

	top, _ := h.Pop()
	if top != 1 {
		t.Fatalf("Pop() = %d, want 1", top)
	}
	delete(index, 1)
	checkIndex(t, h, index)
}

func TestRemoveAtArbitraryIndex(t *testing.T) {
	h, index := indexedHeap(10, 4, 100, 8, 20, 1)
	idx := index[100]
	removed, ok := h.RemoveAt(idx)
	if !ok || removed != 100 {
		t.Fatalf("RemoveAt(%d) = %v, %v, want 100, true", idx, removed, ok)
	}
	delete(index, 100)
	checkIndex(t, h, index)

	// heap property: every remaining parent <= its children.
	want := []int{1, 4, 8, 10, 20}
	got := []int{}
	for {
		v, ok := h.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFixAfterInPlaceChange(t *testing.T) {
	type entry struct {
		key      string
		priority int
	}
	entries := []*entry{{"a", 5}, {"b", 1}, {"c", 10}}
	h := New(func(a, b *entry) bool { return a.priority < b.priority })
	index := map[string]int{}
	h.SetOnSwap(func(i, j int) {
		index[h.At(i).key] = i
		index[h.At(j).key] = j
	})
	for _, e := range entries {
		h.Push(e)
		index[e.key] = h.Size() - 1
	}

	entries[0].priority = -1 // "a" becomes the new minimum
	h.Fix(index["a"])

	top, _ := h.Peek()
	if top.key != "a" {
		t.Fatalf("Peek().key = %q, want a", top.key)
	}
}
