package handlers

import (
	"sort"

	"github.com/zond/kvd/store"
	"github.com/zond/kvd/value"
)

func getOrCreateSet(current value.Value, found bool) (*value.ScalarSet, bool) {
	if !found {
		return value.NewScalarSet(), true
	}
	s, ok := current.AsSet()
	return s, ok
}

// getSetMembers reads the set at key while holding the table's read lock
// for the whole call (via Table.View) and returns a snapshot of its
// members. Returns (nil, true, false) when key is absent (caller decides
// the absent-key reply), or (nil, false, true) when key holds a different
// variant. The snapshot is safe to read after the call returns: its
// elements are scalar Values, never the live container itself.
func getSetMembers(t *store.Table, key string) (members []value.Value, absent bool, wrongType bool) {
	t.View(key, func(current value.Value, found bool) {
		if !found {
			absent = true
			return
		}
		s, ok := current.AsSet()
		if !ok {
			wrongType = true
			return
		}
		members = s.Members()
	})
	return
}

// SAdd implements SADD k m.
func SAdd(t *store.Table, args []string) string {
	key, member := args[0], args[1]
	var added bool
	var wrongType bool
	t.Update(key, func(current value.Value, found bool) value.Value {
		s, ok := getOrCreateSet(current, found)
		if !ok {
			wrongType = true
			return current
		}
		added, _ = s.Add(value.NewString(member))
		return value.NewSet(s)
	})
	if wrongType {
		return WrongType
	}
	if added {
		return Int(1)
	}
	return Int(0)
}

// SRem implements SREM k m.
func SRem(t *store.Table, args []string) string {
	member := args[1]
	var removed bool
	var wrongType bool
	t.UpdateIfExists(args[0], func(current value.Value) value.Value {
		s, ok := current.AsSet()
		if !ok {
			wrongType = true
			return current
		}
		removed = s.Remove(value.NewString(member))
		return value.NewSet(s)
	})
	if wrongType {
		return WrongType
	}
	if removed {
		return Int(1)
	}
	return Int(0)
}

func sortedMemberStrings(members []value.Value) []string {
	strs := make([]string, 0, len(members))
	for _, v := range members {
		if str, ok := v.AsString(); ok {
			strs = append(strs, str)
		}
	}
	sort.Strings(strs)
	return strs
}

// SMembers implements SMEMBERS k. Output is sorted for deterministic
// replies; see SPEC_FULL.md §5.7 on why this differs from the original's
// unordered_set iteration without changing its semantics.
func SMembers(t *store.Table, args []string) string {
	members, absent, wrongType := getSetMembers(t, args[0])
	if absent || wrongType {
		return Err("no such set")
	}
	return SpaceJoined(sortedMemberStrings(members))
}

// SCard implements SCARD k.
func SCard(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Int(0)
			return
		}
		s, ok := current.AsSet()
		if !ok {
			reply = Int(0)
			return
		}
		reply = Int(s.Len())
	})
	return reply
}

// SPop implements SPOP k: uniformly-random element removal.
func SPop(t *store.Table, args []string) string {
	var popped string
	var poppedOK bool
	var wrongType bool
	existed := t.UpdateIfExists(args[0], func(current value.Value) value.Value {
		s, ok := current.AsSet()
		if !ok {
			wrongType = true
			return current
		}
		v, ok := s.Pop()
		if !ok {
			return current
		}
		poppedOK = true
		popped, _ = v.AsString()
		return value.NewSet(s)
	})
	if !existed || wrongType {
		return Err("no such set")
	}
	if !poppedOK {
		return Err("set empty")
	}
	return Bulk(popped)
}

// SIsMember implements SISMEMBER k m.
func SIsMember(t *store.Table, args []string) string {
	var reply string
	t.View(args[0], func(current value.Value, found bool) {
		if !found {
			reply = Int(0)
			return
		}
		s, ok := current.AsSet()
		if !ok {
			reply = Int(0)
			return
		}
		if s.Contains(value.NewString(args[1])) {
			reply = Int(1)
			return
		}
		reply = Int(0)
	})
	return reply
}

func membersOrEmpty(t *store.Table, key string) []value.Value {
	members, absent, wrongType := getSetMembers(t, key)
	if absent || wrongType {
		return nil
	}
	return members
}

// setFromMembers builds a throwaway ScalarSet from a members snapshot, for
// the multi-key set operations below to reuse ScalarSet's Union/Inter/Diff
// instead of reimplementing them over plain slices.
func setFromMembers(members []value.Value) *value.ScalarSet {
	s := value.NewScalarSet()
	for _, v := range members {
		s.Add(v)
	}
	return s
}

// SUnion implements SUNION k1 k2. Missing or wrong-type operands contribute
// no members rather than erroring, per spec.md §4.6's multi-key policy.
func SUnion(t *store.Table, args []string) string {
	left := setFromMembers(membersOrEmpty(t, args[0]))
	right := setFromMembers(membersOrEmpty(t, args[1]))
	return SpaceJoined(sortedMemberStrings(left.Union(right).Members()))
}

// SInter implements SINTER k1 k2.
func SInter(t *store.Table, args []string) string {
	left := setFromMembers(membersOrEmpty(t, args[0]))
	right := setFromMembers(membersOrEmpty(t, args[1]))
	return SpaceJoined(sortedMemberStrings(left.Inter(right).Members()))
}

// SDiff implements SDIFF k1 k2.
func SDiff(t *store.Table, args []string) string {
	left := setFromMembers(membersOrEmpty(t, args[0]))
	right := setFromMembers(membersOrEmpty(t, args[1]))
	return SpaceJoined(sortedMemberStrings(left.Diff(right).Members()))
}
