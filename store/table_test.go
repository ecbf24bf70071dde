package store

import (
	"strconv"
	"testing"

	"github.com/zond/kvd/value"
)

func TestAddGetDel(t *testing.T) {
	tbl := New()
	tbl.Add("a", value.NewString("1"))
	v, ok := tbl.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if s, _ := v.AsString(); s != "1" {
		t.Fatalf("Get(a) = %q, want 1", s)
	}
	if !tbl.Del("a") {
		t.Fatal("Del(a) = false, want true")
	}
	if tbl.Exists("a") {
		t.Fatal("Exists(a) after Del = true, want false")
	}
	if tbl.Del("a") {
		t.Fatal("Del(a) twice = true, want false")
	}
}

func TestAddReplacesExisting(t *testing.T) {
	tbl := New()
	tbl.Add("a", value.NewString("1"))
	tbl.Add("a", value.NewString("2"))
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	v, _ := tbl.Get("a")
	if s, _ := v.AsString(); s != "2" {
		t.Fatalf("Get(a) = %q, want 2", s)
	}
}

func TestRenameToExistingKeepsCountAccurate(t *testing.T) {
	tbl := New()
	tbl.Add("old", value.NewString("x"))
	tbl.Add("new", value.NewString("y"))
	if !tbl.Rename("old", "new") {
		t.Fatal("Rename(old, new) = false, want true")
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() after Rename to existing key = %d, want 1", tbl.Len())
	}
	v, ok := tbl.Get("new")
	if !ok {
		t.Fatal("Get(new) not found after Rename")
	}
	if s, _ := v.AsString(); s != "x" {
		t.Fatalf("Get(new) = %q, want x (the renamed value should win)", s)
	}
	if tbl.Exists("old") {
		t.Fatal("Exists(old) after Rename = true, want false")
	}
}

func TestRenameMissingSource(t *testing.T) {
	tbl := New()
	if tbl.Rename("nope", "dest") {
		t.Fatal("Rename(nope, dest) = true, want false")
	}
}

func TestCopyIsDeep(t *testing.T) {
	tbl := New()
	tbl.Add("src", value.NewString("v"))
	if !tbl.Copy("src", "dst") {
		t.Fatal("Copy(src, dst) = false, want true")
	}
	src, _ := tbl.Get("src")
	dst, _ := tbl.Get("dst")
	if !src.Equal(dst) {
		t.Fatal("copy should be value-equal to source")
	}
}

func TestUpdateAtomicReadModifyWrite(t *testing.T) {
	tbl := New()
	tbl.Add("counter", value.NewInt(1))
	tbl.Update("counter", func(current value.Value, found bool) value.Value {
		n, _ := current.AsInt()
		return value.NewInt(n + 1)
	})
	v, _ := tbl.Get("counter")
	n, _ := v.AsInt()
	if n != 2 {
		t.Fatalf("counter = %d, want 2", n)
	}
}

func TestUpdateOnAbsentKey(t *testing.T) {
	tbl := New()
	tbl.Update("fresh", func(current value.Value, found bool) value.Value {
		if found {
			t.Fatal("found = true for an absent key")
		}
		return value.NewInt(0)
	})
	v, ok := tbl.Get("fresh")
	if !ok {
		t.Fatal("Get(fresh) not found after Update")
	}
	if n, _ := v.AsInt(); n != 0 {
		t.Fatalf("Get(fresh) = %d, want 0", n)
	}
}

func TestResizeKeepsAllEntriesReachable(t *testing.T) {
	tbl := New()
	const n = 200
	for i := 0; i < n; i++ {
		tbl.Add("key"+strconv.Itoa(i), value.NewInt(int64(i)))
	}
	if tbl.Len() != n {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := tbl.Get("key" + strconv.Itoa(i))
		if !ok {
			t.Fatalf("Get(key%d) not found after resize", i)
		}
		if got, _ := v.AsInt(); got != int64(i) {
			t.Fatalf("Get(key%d) = %d, want %d", i, got, i)
		}
	}
}

func TestStats(t *testing.T) {
	tbl := New()
	tbl.Add("a", value.NewInt(1))
	tbl.Add("b", value.NewInt(2))
	stats := tbl.Stats()
	if stats.Keys != 2 {
		t.Errorf("Stats().Keys = %d, want 2", stats.Keys)
	}
	if stats.Buckets == 0 {
		t.Error("Stats().Buckets = 0, want > 0")
	}
}

func TestNewWithOptionsHonorsCapacityAndThreshold(t *testing.T) {
	tbl := NewWithOptions(4, 0.5)
	if len(tbl.buckets) != 4 {
		t.Fatalf("initial buckets = %d, want 4", len(tbl.buckets))
	}
	tbl.Add("a", value.NewInt(1))
	tbl.Add("b", value.NewInt(2))
	tbl.Add("c", value.NewInt(3))
	if len(tbl.buckets) <= 4 {
		t.Fatalf("expected resize past a 0.5 load factor with 3 keys in 4 buckets, buckets = %d", len(tbl.buckets))
	}
}

func TestUpdateIfExistsSkipsAbsentKey(t *testing.T) {
	tbl := New()
	called := false
	existed := tbl.UpdateIfExists("missing", func(current value.Value) value.Value {
		called = true
		return current
	})
	if existed {
		t.Fatal("UpdateIfExists() on an absent key reported existed = true")
	}
	if called {
		t.Fatal("UpdateIfExists() invoked f for an absent key")
	}
	if tbl.Exists("missing") {
		t.Fatal("UpdateIfExists() on an absent key must not insert it")
	}
}

func TestUpdateIfExistsMutatesPresentKey(t *testing.T) {
	tbl := New()
	tbl.Add("k", value.NewInt(1))
	existed := tbl.UpdateIfExists("k", func(current value.Value) value.Value {
		n, _ := current.AsInt()
		return value.NewInt(n + 1)
	})
	if !existed {
		t.Fatal("UpdateIfExists() on a present key reported existed = false")
	}
	v, _ := tbl.Get("k")
	if n, _ := v.AsInt(); n != 2 {
		t.Fatalf("Get(k) = %d, want 2", n)
	}
}

func TestViewSeesCurrentValueUnderReadLock(t *testing.T) {
	tbl := New()
	tbl.Add("k", value.NewString("v"))
	var seen string
	var found bool
	tbl.View("k", func(current value.Value, ok bool) {
		found = ok
		seen, _ = current.AsString()
	})
	if !found || seen != "v" {
		t.Fatalf("View() saw (%q, %v), want (\"v\", true)", seen, found)
	}

	var absentFound bool
	tbl.View("missing", func(current value.Value, ok bool) {
		absentFound = ok
	})
	if absentFound {
		t.Fatal("View() on an absent key reported found = true")
	}
}

func TestNewWithOptionsDefaultsInvalidValues(t *testing.T) {
	tbl := NewWithOptions(0, 0)
	if len(tbl.buckets) != 16 {
		t.Fatalf("buckets = %d, want default 16", len(tbl.buckets))
	}
	if tbl.loadFactor != defaultLoadFactor {
		t.Fatalf("loadFactor = %v, want default %v", tbl.loadFactor, defaultLoadFactor)
	}
}
