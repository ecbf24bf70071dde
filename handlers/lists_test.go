package handlers

import (
	"testing"

	"github.com/zond/kvd/store"
)

func TestLPushOrderingAndLPop(t *testing.T) {
	tbl := store.New()
	LPush(tbl, []string{"L", "a"})
	LPush(tbl, []string{"L", "b"})
	if got := LPop(tbl, []string{"L"}); got != "b" {
		t.Fatalf("LPop() = %q, want b", got)
	}
	if got := LPop(tbl, []string{"L"}); got != "a" {
		t.Fatalf("LPop() = %q, want a", got)
	}
	if got := LPop(tbl, []string{"L"}); got != Nil {
		t.Fatalf("LPop() on empty list = %q, want %q", got, Nil)
	}
}

func TestRPushLPrintLPopLLen(t *testing.T) {
	tbl := store.New()
	if got := RPush(tbl, []string{"L", "x"}); got != Int(1) {
		t.Fatalf("RPush(x) = %q, want :1", got)
	}
	if got := RPush(tbl, []string{"L", "y"}); got != Int(2) {
		t.Fatalf("RPush(y) = %q, want :2", got)
	}
	if got := LPrint(tbl, []string{"L"}); got != "[x, y]" {
		t.Fatalf("LPrint() = %q, want [x, y]", got)
	}
	if got := LPop(tbl, []string{"L"}); got != "x" {
		t.Fatalf("LPop() = %q, want x", got)
	}
	if got := LLen(tbl, []string{"L"}); got != Int(1) {
		t.Fatalf("LLen() = %q, want :1", got)
	}
}

func TestPushAgainstWrongTypeErrors(t *testing.T) {
	tbl := store.New()
	Set(tbl, []string{"k", "v"})
	got := LPush(tbl, []string{"k", "x"})
	if got != WrongType {
		t.Fatalf("LPush() against a STRING key = %q, want %q", got, WrongType)
	}
	if v := Get(tbl, []string{"k"}); v != "v" {
		t.Fatalf("existing key mutated by failed LPush: Get(k) = %q, want v", v)
	}
}

func TestLIndexAndLSet(t *testing.T) {
	tbl := store.New()
	RPush(tbl, []string{"L", "a"})
	RPush(tbl, []string{"L", "b"})
	RPush(tbl, []string{"L", "c"})
	if got := LIndex(tbl, []string{"L", "-1"}); got != "c" {
		t.Fatalf("LIndex(-1) = %q, want c", got)
	}
	if got := LSet(tbl, []string{"L", "1", "z"}); got != OK {
		t.Fatalf("LSet() = %q, want %q", got, OK)
	}
	if got := LIndex(tbl, []string{"L", "1"}); got != "z" {
		t.Fatalf("LIndex(1) after LSet = %q, want z", got)
	}
	if got := LSet(tbl, []string{"L", "99", "z"}); got == OK {
		t.Fatal("LSet() out of range should error")
	}
}

func TestLSortAscendingDescendingAndInvalidOrder(t *testing.T) {
	tbl := store.New()
	for _, v := range []string{"5", "1", "3"} {
		RPush(tbl, []string{"L", v})
	}
	if got := LSort(tbl, []string{"L", "1"}); got != OK {
		t.Fatalf("LSort(1) = %q, want %q", got, OK)
	}
	if got := LPrint(tbl, []string{"L"}); got != "[1, 3, 5]" {
		t.Fatalf("LPrint() after ascending sort = %q, want [1, 3, 5]", got)
	}
	if got := LSort(tbl, []string{"L", "2"}); got != OK {
		t.Fatalf("LSort(2) = %q, want %q", got, OK)
	}
	if got := LPrint(tbl, []string{"L"}); got != "[5, 3, 1]" {
		t.Fatalf("LPrint() after descending sort = %q, want [5, 3, 1]", got)
	}
	if got := LSort(tbl, []string{"L", "9"}); got == OK {
		t.Fatal("LSort() with an invalid order flag should error")
	}
}
