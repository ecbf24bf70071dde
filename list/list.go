// Package list implements ListContainer: a doubly-linked, ordered sequence
// of strings with O(1) end operations and O(n) indexed access. It backs the
// LIST variant of value.Value.
package list

import (
	"strconv"

	"github.com/zond/kvd"
)

// node is one element of the list.
type node struct {
	value      string
	prev, next *node
}

// List is a doubly-linked list of strings. The zero value is an empty,
// ready-to-use list.
type List struct {
	head, tail *node
	size       int
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Len returns the number of elements.
func (l *List) Len() int {
	return l.size
}

// PushFront inserts s at the head of the list.
func (l *List) PushFront(s string) {
	n := &node{value: s}
	if l.head == nil {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.size++
}

// PushBack inserts s at the tail of the list.
func (l *List) PushBack(s string) {
	n := &node{value: s}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// PopFront removes and returns the head element.
func (l *List) PopFront() (string, error) {
	if l.head == nil {
		return "", kvd.WithStack(ErrEmpty)
	}
	n := l.head
	l.head = n.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	l.size--
	return n.value, nil
}

// PopBack removes and returns the tail element.
func (l *List) PopBack() (string, error) {
	if l.tail == nil {
		return "", kvd.WithStack(ErrEmpty)
	}
	n := l.tail
	l.tail = n.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}
	l.size--
	return n.value, nil
}

// resolveIndex wraps a negative index (i += size) and checks bounds.
func (l *List) resolveIndex(i int) (int, error) {
	if i < 0 {
		i += l.size
	}
	if i < 0 || i >= l.size {
		return 0, kvd.WithStack(ErrOutOfRange)
	}
	return i, nil
}

// nodeAt walks to the node at the (already resolved) index i.
func (l *List) nodeAt(i int) *node {
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// Get returns the element at index i. Negative i wraps (i += Len()).
func (l *List) Get(i int) (string, error) {
	idx, err := l.resolveIndex(i)
	if err != nil {
		return "", err
	}
	return l.nodeAt(idx).value, nil
}

// Set replaces the element at index i. Negative i wraps (i += Len()).
func (l *List) Set(i int, s string) error {
	idx, err := l.resolveIndex(i)
	if err != nil {
		return err
	}
	l.nodeAt(idx).value = s
	return nil
}

// Values returns the elements in order, head to tail.
func (l *List) Values() []string {
	result := make([]string, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		result = append(result, n.value)
	}
	return result
}

// Sort reorders the list by the signed 64-bit integer interpretation of each
// element, ascending when asc is true, descending otherwise. It returns a
// *NonNumericError (wrapping the strconv error) if any element fails to parse,
// and leaves the list untouched in that case.
func (l *List) Sort(asc bool) error {
	values := l.Values()
	parsed := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return kvd.WithStack(&NonNumericError{Value: v, err: err})
		}
		parsed[i] = n
	}
	mergeSort(values, parsed, asc)
	l.fromValues(values)
	return nil
}

// fromValues rebuilds the linked list from a slice, replacing all nodes.
func (l *List) fromValues(values []string) {
	l.head, l.tail, l.size = nil, nil, 0
	for _, v := range values {
		l.PushBack(v)
	}
}

// mergeSort sorts values (and parsed in lockstep) by the parsed key.
func mergeSort(values []string, parsed []int64, asc bool) {
	n := len(values)
	if n < 2 {
		return
	}
	mid := n / 2
	leftV, rightV := append([]string{}, values[:mid]...), append([]string{}, values[mid:]...)
	leftP, rightP := append([]int64{}, parsed[:mid]...), append([]int64{}, parsed[mid:]...)
	mergeSort(leftV, leftP, asc)
	mergeSort(rightV, rightP, asc)
	merge(leftV, leftP, rightV, rightP, values, parsed, asc)
}

func merge(leftV []string, leftP []int64, rightV []string, rightP []int64, outV []string, outP []int64, asc bool) {
	i, j, k := 0, 0, 0
	less := func(a, b int64) bool {
		if asc {
			return a <= b
		}
		return a >= b
	}
	for i < len(leftV) && j < len(rightV) {
		if less(leftP[i], rightP[j]) {
			outV[k], outP[k] = leftV[i], leftP[i]
			i++
		} else {
			outV[k], outP[k] = rightV[j], rightP[j]
			j++
		}
		k++
	}
	for ; i < len(leftV); i++ {
		outV[k], outP[k] = leftV[i], leftP[i]
		k++
	}
	for ; j < len(rightV); j++ {
		outV[k], outP[k] = rightV[j], rightP[j]
		k++
	}
}

// Clone returns a deep copy that shares no state with l.
func (l *List) Clone() *List {
	clone := New()
	for n := l.head; n != nil; n = n.next {
		clone.PushBack(n.value)
	}
	return clone
}
