package handlers

import (
	"testing"

	"github.com/zond/kvd/store"
)

func TestHSetNewVsUpdate(t *testing.T) {
	tbl := store.New()
	if got := HSet(tbl, []string{"h", "f1", "v1"}); got != Int(1) {
		t.Fatalf("HSet() new field = %q, want :1", got)
	}
	if got := HSet(tbl, []string{"h", "f1", "v2"}); got != Int(0) {
		t.Fatalf("HSet() update field = %q, want :0", got)
	}
	if got := HGet(tbl, []string{"h", "f1"}); got != "v2" {
		t.Fatalf("HGet() = %q, want v2", got)
	}
}

func TestHDelCountsOnlyExisting(t *testing.T) {
	tbl := store.New()
	HSet(tbl, []string{"h", "f1", "v1"})
	HSet(tbl, []string{"h", "f2", "v2"})
	if got := HDel(tbl, []string{"h", "f1", "f3"}); got != Int(1) {
		t.Fatalf("HDel(f1, f3) = %q, want :1", got)
	}
	if got := HExists(tbl, []string{"h", "f1"}); got != Int(0) {
		t.Fatalf("HExists(f1) after delete = %q, want :0", got)
	}
	if got := HLen(tbl, []string{"h"}); got != Int(1) {
		t.Fatalf("HLen() = %q, want :1", got)
	}
}

func TestHGetAllRendering(t *testing.T) {
	tbl := store.New()
	HSet(tbl, []string{"h", "f1", "v1"})
	HSet(tbl, []string{"h", "f2", "v2"})
	got := HGetAll(tbl, []string{"h"})
	want := "{f1: v1, f2: v2}"
	if got != want {
		t.Fatalf("HGetAll() = %q, want %q", got, want)
	}
}

func TestHGetMissingFieldAndKey(t *testing.T) {
	tbl := store.New()
	if got := HGet(tbl, []string{"missing", "f"}); got != Nil {
		t.Fatalf("HGet() on absent key = %q, want %q", got, Nil)
	}
	HSet(tbl, []string{"h", "f1", "v1"})
	if got := HGet(tbl, []string{"h", "nofield"}); got != Nil {
		t.Fatalf("HGet() on absent field = %q, want %q", got, Nil)
	}
}
