package handlers

import (
	"sort"

	"github.com/zond/kvd/store"
	"github.com/zond/kvd/value"
)

func getOrCreateHash(current value.Value, found bool) (map[string]value.Value, bool) {
	if !found {
		return map[string]value.Value{}, true
	}
	h, ok := current.AsHash()
	return h, ok
}

// HSet implements HSET k f v.
func HSet(t *store.Table, args []string) string {
	key, field, val := args[0], args[1], args[2]
	var isNew bool
	var wrongType bool
	t.Update(key, func(current value.Value, found bool) value.Value {
		h, ok := getOrCreateHash(current, found)
		if !ok {
			wrongType = true
			return current
		}
		_, existed := h[field]
		isNew = !existed
		h[field] = value.NewString(val)
		return value.NewHash(h)
	})
	if wrongType {
		return WrongType
	}
	if isNew {
		return Int(1)
	}
	return Int(0)
}

// HGet implements HGET k f.
func HGet(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Nil
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		field, ok := h[args[1]]
		if !ok {
			reply = Nil
			return
		}
		s, _ := field.AsString()
		reply = Bulk(s)
	})
	return reply
}

// HDel implements HDEL k f1 f2 ...
func HDel(t *store.Table, args []string) string {
	fields := args[1:]
	var deleted int
	var wrongType bool
	t.UpdateIfExists(args[0], func(current value.Value) value.Value {
		h, ok := current.AsHash()
		if !ok {
			wrongType = true
			return current
		}
		for _, f := range fields {
			if _, ok := h[f]; ok {
				delete(h, f)
				deleted++
			}
		}
		return value.NewHash(h)
	})
	if wrongType {
		return WrongType
	}
	return Int(deleted)
}

// HExists implements HEXISTS k f.
func HExists(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Int(0)
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		if _, ok := h[args[1]]; ok {
			reply = Int(1)
			return
		}
		reply = Int(0)
	})
	return reply
}

// HLen implements HLEN k.
func HLen(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Int(0)
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		reply = Int(len(h))
	})
	return reply
}

// HKeys implements HKEYS k.
func HKeys(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = List(nil)
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		keys := make([]string, 0, len(h))
		for k := range h {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		reply = List(keys)
	})
	return reply
}

// HVals implements HVALS k.
func HVals(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = List(nil)
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		keys := make([]string, 0, len(h))
		for k := range h {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]string, len(keys))
		for i, k := range keys {
			s, _ := h[k].AsString()
			vals[i] = s
		}
		reply = List(vals)
	})
	return reply
}

// HGetAll implements HGETALL k, rendering `{f1: v1, f2: v2}` with fields in
// sorted order for deterministic output (the original's
// unordered_map<string, RedisObject> has no defined iteration order).
func HGetAll(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Hash(nil)
			return
		}
		h, ok := current.AsHash()
		if !ok {
			reply = WrongType
			return
		}
		keys := make([]string, 0, len(h))
		for k := range h {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([][2]string, len(keys))
		for i, k := range keys {
			s, _ := h[k].AsString()
			pairs[i] = [2]string{k, s}
		}
		reply = Hash(pairs)
	})
	return reply
}
