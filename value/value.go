// Package value implements Value: the tagged union stored against every key
// in the store. It mirrors RedisObject's variant set (INT, STRING, BOOL,
// LIST, HASH, SET) but replaces RedisObject's void*-and-switch storage with
// a Go tagged struct. Scalar variants compare and hash by value; container
// variants (LIST, HASH, SET) compare by identity only, have no defined hash,
// and are never legal members of a SET.
package value

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/zond/kvd/list"
)

// Type tags the variant held by a Value.
type Type int

const (
	Int Type = iota
	Str
	Bool
	List
	Hash
	Set
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Str:
		return "string"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Hash:
		return "hash"
	case Set:
		return "set"
	default:
		return "unknown"
	}
}

// ErrWrongType is returned by ScalarSet.Add when asked to add a container
// variant. The typed accessors (AsInt, AsString, ...) report a variant
// mismatch through their bool result instead.
var ErrWrongType = errors.New("value holds a different type")

// Value is the tagged union stored against a key. The zero Value is not
// valid; construct one with NewInt, NewString, NewBool, NewList, NewHash or
// NewSet.
type Value struct {
	typ  Type
	i    int64
	s    string
	b    bool
	list *list.List
	hash map[string]Value
	set  *ScalarSet
}

func NewInt(i int64) Value           { return Value{typ: Int, i: i} }
func NewString(s string) Value       { return Value{typ: Str, s: s} }
func NewBool(b bool) Value           { return Value{typ: Bool, b: b} }
func NewList(l *list.List) Value     { return Value{typ: List, list: l} }
func NewHash(h map[string]Value) Value {
	return Value{typ: Hash, hash: h}
}
func NewSet(s *ScalarSet) Value { return Value{typ: Set, set: s} }

// Type returns the variant tag.
func (v Value) Type() Type {
	return v.typ
}

// AsInt returns the held int64 and true, or (0, false) if v is not Int.
func (v Value) AsInt() (int64, bool) {
	if v.typ != Int {
		return 0, false
	}
	return v.i, true
}

// AsString returns the held string and true, or ("", false) if v is not Str.
func (v Value) AsString() (string, bool) {
	if v.typ != Str {
		return "", false
	}
	return v.s, true
}

// AsBool returns the held bool and true, or (false, false) if v is not Bool.
func (v Value) AsBool() (bool, bool) {
	if v.typ != Bool {
		return false, false
	}
	return v.b, true
}

// AsList returns the held *list.List and true, or (nil, false) if v is not List.
func (v Value) AsList() (*list.List, bool) {
	if v.typ != List {
		return nil, false
	}
	return v.list, true
}

// AsHash returns the held map and true, or (nil, false) if v is not Hash.
func (v Value) AsHash() (map[string]Value, bool) {
	if v.typ != Hash {
		return nil, false
	}
	return v.hash, true
}

// AsSet returns the held *ScalarSet and true, or (nil, false) if v is not Set.
func (v Value) AsSet() (*ScalarSet, bool) {
	if v.typ != Set {
		return nil, false
	}
	return v.set, true
}

// Clone deep copies v. Scalar variants are copied by value already; List,
// Hash and Set are copied recursively so the clone shares no mutable state
// with v (mirrors RedisObject::clonePtr, minus the container-as-set-member
// case which never arises since ScalarSet only ever holds scalars).
func (v Value) Clone() Value {
	switch v.typ {
	case List:
		return NewList(v.list.Clone())
	case Hash:
		clone := make(map[string]Value, len(v.hash))
		for k, elem := range v.hash {
			clone[k] = elem.Clone()
		}
		return NewHash(clone)
	case Set:
		return NewSet(v.set.Clone())
	default:
		return v
	}
}

// Equal reports whether v and other hold the same variant and value. Scalar
// variants compare by value. Container variants (List, Hash, Set) are never
// equal to anything but themselves by identity, since RESP has no defined
// deep-equality or hashing for them and they are not legal SET members.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case Int:
		return v.i == other.i
	case Str:
		return v.s == other.s
	case Bool:
		return v.b == other.b
	case List:
		return v.list == other.list
	case Hash:
		return sameHash(v.hash, other.hash)
	case Set:
		return v.set == other.set
	default:
		return false
	}
}

// sameHash reports whether a and b are backed by the same map instance.
// Go has no pointer-equality operator for maps, so this reflects the
// underlying data pointer the way == already does for *list.List/*ScalarSet,
// keeping Hash's Equal identity-based like its sibling containers.
func sameHash(a, b map[string]Value) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// AsIntString renders v the way it would appear over the wire when an
// integer is expected: the decimal form of AsInt, or the raw string when v
// is Str (handlers like INCR parse this to validate numeric strings).
func (v Value) AsIntString() (string, bool) {
	switch v.typ {
	case Int:
		return strconv.FormatInt(v.i, 10), true
	case Str:
		return v.s, true
	default:
		return "", false
	}
}
