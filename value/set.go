package value

import (
	"math/rand/v2"

	"github.com/zond/kvd/murmur"
)

// setSeed is the murmur seed used to bucket ScalarSet members. Distinct from
// store's key-table seed so the two hash tables don't correlate.
const setSeed uint32 = 0x53455453 // "SETS"

// ScalarSet is a set of scalar Values (Int, Str or Bool members only;
// RedisSets.cpp's unordered_set<RedisObject> is exercised exclusively with
// string members in practice, and the resolved container-equality question
// bars List/Hash/Set from membership entirely since they have no defined
// hash). It is implemented as a chained hash table over a small number of
// buckets, the same shape as store.Table, scaled for typical set sizes.
type ScalarSet struct {
	buckets [][]Value
	count   int
}

// NewScalarSet returns an empty set.
func NewScalarSet() *ScalarSet {
	return &ScalarSet{buckets: make([][]Value, 16)}
}

func (s *ScalarSet) bucketFor(v Value) int {
	return int(murmur.Sum32(hashBytes(v), setSeed)) % len(s.buckets)
}

// hashBytes returns a byte encoding of v's scalar value suitable for
// hashing. Only called for Int/Str/Bool; callers must reject other variants
// before reaching here.
func hashBytes(v Value) []byte {
	switch v.typ {
	case Int:
		b := make([]byte, 8)
		u := uint64(v.i)
		for i := 0; i < 8; i++ {
			b[i] = byte(u >> (8 * i))
		}
		return b
	case Str:
		return []byte(v.s)
	case Bool:
		if v.b {
			return []byte{1}
		}
		return []byte{0}
	default:
		return nil
	}
}

// isScalar reports whether v is a legal set member.
func isScalar(v Value) bool {
	switch v.typ {
	case Int, Str, Bool:
		return true
	default:
		return false
	}
}

func (s *ScalarSet) maybeGrow() {
	if s.count <= len(s.buckets)*3/4 {
		return
	}
	old := s.buckets
	s.buckets = make([][]Value, len(old)*2)
	s.count = 0
	for _, bucket := range old {
		for _, v := range bucket {
			idx := s.bucketFor(v)
			s.buckets[idx] = append(s.buckets[idx], v)
			s.count++
		}
	}
}

// Add inserts v, returning true if it was not already present. Returns
// (false, ErrWrongType) if v is a container variant.
func (s *ScalarSet) Add(v Value) (bool, error) {
	if !isScalar(v) {
		return false, ErrWrongType
	}
	idx := s.bucketFor(v)
	for _, existing := range s.buckets[idx] {
		if existing.Equal(v) {
			return false, nil
		}
	}
	s.buckets[idx] = append(s.buckets[idx], v)
	s.count++
	s.maybeGrow()
	return true, nil
}

// Remove deletes v, returning true if it was present.
func (s *ScalarSet) Remove(v Value) bool {
	idx := s.bucketFor(v)
	bucket := s.buckets[idx]
	for i, existing := range bucket {
		if existing.Equal(v) {
			s.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			s.count--
			return true
		}
	}
	return false
}

// Contains reports whether v is a member.
func (s *ScalarSet) Contains(v Value) bool {
	if !isScalar(v) {
		return false
	}
	idx := s.bucketFor(v)
	for _, existing := range s.buckets[idx] {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *ScalarSet) Len() int {
	return s.count
}

// Members returns all members in unspecified order, mirroring
// unordered_set iteration in setstore::smembers.
func (s *ScalarSet) Members() []Value {
	result := make([]Value, 0, s.count)
	for _, bucket := range s.buckets {
		result = append(result, bucket...)
	}
	return result
}

// Pop removes and returns a pseudo-random member, mirroring setstore::spop's
// rand()-driven eviction.
func (s *ScalarSet) Pop() (Value, bool) {
	if s.count == 0 {
		return Value{}, false
	}
	members := s.Members()
	chosen := members[rand.IntN(len(members))]
	s.Remove(chosen)
	return chosen, true
}

// Union returns a new set containing every member of s and other.
func (s *ScalarSet) Union(other *ScalarSet) *ScalarSet {
	result := NewScalarSet()
	for _, v := range s.Members() {
		result.Add(v)
	}
	for _, v := range other.Members() {
		result.Add(v)
	}
	return result
}

// Inter returns a new set containing members present in both s and other.
func (s *ScalarSet) Inter(other *ScalarSet) *ScalarSet {
	result := NewScalarSet()
	for _, v := range s.Members() {
		if other.Contains(v) {
			result.Add(v)
		}
	}
	return result
}

// Diff returns a new set containing members of s not present in other.
func (s *ScalarSet) Diff(other *ScalarSet) *ScalarSet {
	result := NewScalarSet()
	for _, v := range s.Members() {
		if !other.Contains(v) {
			result.Add(v)
		}
	}
	return result
}

// Clone returns a deep copy sharing no state with s.
func (s *ScalarSet) Clone() *ScalarSet {
	clone := NewScalarSet()
	for _, v := range s.Members() {
		clone.Add(v.Clone())
	}
	return clone
}
