package handlers

import (
	"strconv"

	"github.com/zond/kvd/store"
	"github.com/zond/kvd/ttlqueue"
	"github.com/zond/kvd/value"
)

// Set implements SET k v.
func Set(t *store.Table, args []string) string {
	t.Add(args[0], value.NewString(args[1]))
	return OK
}

// SetNX implements SETNX k v: insert only if absent.
func SetNX(t *store.Table, args []string) string {
	if t.Exists(args[0]) {
		return Int(0)
	}
	t.Add(args[0], value.NewString(args[1]))
	return Int(1)
}

// Get implements GET k.
func Get(t *store.Table, args []string) string {
	v, ok := t.Get(args[0])
	if !ok {
		return Nil
	}
	s, ok := v.AsString()
	if !ok {
		return WrongType
	}
	return Bulk(s)
}

// MSet implements MSET k1 v1 k2 v2 ...
func MSet(t *store.Table, args []string) string {
	if len(args)%2 != 0 {
		return Err("wrong number of arguments for MSET")
	}
	for i := 0; i < len(args); i += 2 {
		t.Add(args[i], value.NewString(args[i+1]))
	}
	return OK
}

// MGet implements MGET k1 k2 ...
func MGet(t *store.Table, args []string) string {
	out := make([]string, len(args))
	for i, k := range args {
		v, ok := t.Get(k)
		if !ok {
			out[i] = Nil
			continue
		}
		s, ok := v.AsString()
		if !ok {
			out[i] = WrongType
			continue
		}
		out[i] = s
	}
	return SpaceJoined(out)
}

// Append implements APPEND k v: create-or-extend.
func Append(t *store.Table, args []string) string {
	key, suffix := args[0], args[1]
	var result string
	var wrongType bool
	t.Update(key, func(current value.Value, found bool) value.Value {
		if !found {
			result = suffix
			return value.NewString(suffix)
		}
		s, ok := current.AsString()
		if !ok {
			wrongType = true
			return current
		}
		result = s + suffix
		return value.NewString(result)
	})
	if wrongType {
		return WrongType
	}
	return Int(len(result))
}

// StrLen implements STRLEN k.
func StrLen(t *store.Table, args []string) string {
	v, ok := t.Get(args[0])
	if !ok {
		return Int(0)
	}
	s, ok := v.AsString()
	if !ok {
		return WrongType
	}
	return Int(len(s))
}

// incrBy applies delta to the integer interpretation of key's STRING value,
// auto-creating it at 0 if absent, and stores the result back as a STRING.
func incrBy(t *store.Table, key string, delta int64) string {
	var result int64
	var parseErr error
	var wrongType bool
	t.Update(key, func(current value.Value, found bool) value.Value {
		var n int64
		if found {
			s, ok := current.AsIntString()
			if !ok {
				wrongType = true
				return current
			}
			parsed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				parseErr = err
				return current
			}
			n = parsed
		}
		result = n + delta
		return value.NewString(strconv.FormatInt(result, 10))
	})
	if wrongType {
		return WrongType
	}
	if parseErr != nil {
		return Err("value is not an integer or out of range")
	}
	return Int64(result)
}

// Incr implements INCR k.
func Incr(t *store.Table, args []string) string { return incrBy(t, args[0], 1) }

// Decr implements DECR k.
func Decr(t *store.Table, args []string) string { return incrBy(t, args[0], -1) }

// IncrBy implements INCRBY k delta.
func IncrBy(t *store.Table, args []string) string {
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return Err("value is not an integer or out of range")
	}
	return incrBy(t, args[0], delta)
}

// DecrBy implements DECRBY k delta.
func DecrBy(t *store.Table, args []string) string {
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return Err("value is not an integer or out of range")
	}
	return incrBy(t, args[0], -delta)
}

// Del implements DEL k. It also drops key's pending TTL entry, if any, so a
// later key of the same name doesn't inherit a stale expiry from the
// TTLQueue.
func Del(t *store.Table, q *ttlqueue.Queue, args []string) string {
	existed := t.Del(args[0])
	q.Remove(args[0])
	if existed {
		return Int(1)
	}
	return Int(0)
}

// Exists implements EXISTS k.
func Exists(t *store.Table, args []string) string {
	if t.Exists(args[0]) {
		return Int(1)
	}
	return Int(0)
}

// Rename implements RENAME old new.
func Rename(t *store.Table, args []string) string {
	if !t.Rename(args[0], args[1]) {
		return Err("no such key")
	}
	return OK
}

// Copy implements COPY src dst.
func Copy(t *store.Table, args []string) string {
	if !t.Copy(args[0], args[1]) {
		return Err("no such key")
	}
	return OK
}
