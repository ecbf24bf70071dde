package handlers

import (
	"errors"

	"github.com/zond/kvd/list"
	"github.com/zond/kvd/store"
	"github.com/zond/kvd/value"
)

var errNotAnInteger = errors.New("not an integer")

// getOrCreateList returns the list stored at key, or a fresh one if key is
// absent. Returns (nil, false) if key exists but is not a LIST.
func getOrCreateList(current value.Value, found bool) (*list.List, bool) {
	if !found {
		return list.New(), true
	}
	l, ok := current.AsList()
	return l, ok
}

func pushHandler(front bool) func(*store.Table, []string) string {
	return func(t *store.Table, args []string) string {
		key, elem := args[0], args[1]
		var newLen int
		var wrongType bool
		t.Update(key, func(current value.Value, found bool) value.Value {
			l, ok := getOrCreateList(current, found)
			if !ok {
				wrongType = true
				return current
			}
			if front {
				l.PushFront(elem)
			} else {
				l.PushBack(elem)
			}
			newLen = l.Len()
			return value.NewList(l)
		})
		if wrongType {
			return WrongType
		}
		return Int(newLen)
	}
}

// LPush implements LPUSH k v.
var LPush = pushHandler(true)

// RPush implements RPUSH k v.
var RPush = pushHandler(false)

func popHandler(front bool) func(*store.Table, []string) string {
	return func(t *store.Table, args []string) string {
		key := args[0]
		var popped string
		var poppedOK bool
		var wrongType bool
		existed := t.UpdateIfExists(key, func(current value.Value) value.Value {
			l, ok := current.AsList()
			if !ok {
				wrongType = true
				return current
			}
			var err error
			if front {
				popped, err = l.PopFront()
			} else {
				popped, err = l.PopBack()
			}
			if err != nil {
				return current
			}
			poppedOK = true
			return value.NewList(l)
		})
		if !existed {
			return Nil
		}
		if wrongType {
			return WrongType
		}
		if !poppedOK {
			return Nil
		}
		return Bulk(popped)
	}
}

// LPop implements LPOP k.
var LPop = popHandler(true)

// RPop implements RPOP k.
var RPop = popHandler(false)

// LLen implements LLEN k.
func LLen(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Int(0)
			return
		}
		l, ok := current.AsList()
		if !ok {
			reply = WrongType
			return
		}
		reply = Int(l.Len())
	})
	return reply
}

// LIndex implements LINDEX k i.
func LIndex(t *store.Table, args []string) string {
	idx, err := parseIndex(args[1])
	if err != nil {
		return Err("index is not an integer")
	}
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Nil
			return
		}
		l, ok := current.AsList()
		if !ok {
			reply = WrongType
			return
		}
		elem, err := l.Get(idx)
		if err != nil {
			reply = Nil
			return
		}
		reply = Bulk(elem)
	})
	return reply
}

// LSet implements LSET k i v.
func LSet(t *store.Table, args []string) string {
	idx, err := parseIndex(args[1])
	if err != nil {
		return Err("index is not an integer")
	}
	var wrongType, outOfRange bool
	existed := t.UpdateIfExists(args[0], func(current value.Value) value.Value {
		l, ok := current.AsList()
		if !ok {
			wrongType = true
			return current
		}
		if err := l.Set(idx, args[2]); err != nil {
			outOfRange = true
			return current
		}
		return value.NewList(l)
	})
	if !existed {
		return Err("no such key")
	}
	if wrongType {
		return WrongType
	}
	if outOfRange {
		return Err("index out of range")
	}
	return OK
}

// LSort implements LSORT k order, where order is 1 (ascending) or 2
// (descending); any other value is an error.
func LSort(t *store.Table, args []string) string {
	var asc bool
	switch args[1] {
	case "1":
		asc = true
	case "2":
		asc = false
	default:
		return Err("order must be 1 (ascending) or 2 (descending)")
	}
	var wrongType bool
	var sortErr error
	existed := t.UpdateIfExists(args[0], func(current value.Value) value.Value {
		l, ok := current.AsList()
		if !ok {
			wrongType = true
			return current
		}
		if err := l.Sort(asc); err != nil {
			sortErr = err
			return current
		}
		return value.NewList(l)
	})
	if !existed {
		return Err("no such key")
	}
	if wrongType {
		return WrongType
	}
	if sortErr != nil {
		return Err("%v", sortErr)
	}
	return OK
}

// LPrint implements LPRINT k: a bracketed rendering of every element.
func LPrint(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = List(nil)
			return
		}
		l, ok := current.AsList()
		if !ok {
			reply = WrongType
			return
		}
		reply = List(l.Values())
	})
	return reply
}

func parseIndex(s string) (int, error) {
	n := 0
	neg := false
	if len(s) == 0 {
		return 0, errNotAnInteger
	}
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
		if len(s) == 1 {
			return 0, errNotAnInteger
		}
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errNotAnInteger
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
