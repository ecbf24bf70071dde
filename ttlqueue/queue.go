// Package ttlqueue implements the TTL priority queue: a min-heap of
// (key, expireAt) ordered by soonest-to-expire, plus a background worker
// that periodically deletes keys whose TTL has elapsed. It is adapted from
// TTLPriorityQueue.cpp, generalized onto heap.Heap[T]'s OnSwap hook instead
// of hand-rolling heapifyUp/heapifyDown/swapNodes, and stripped of the
// original's process-wide singleton in favor of explicit construction and
// injection (spec.md's re-architecture note).
package ttlqueue

import (
	"log"
	"sync"
	"time"

	"github.com/zond/kvd/heap"
)

// deleter is the subset of store.Table the queue needs. Declaring it here
// instead of importing store keeps the dependency one-directional: store
// never needs to know ttlqueue exists, and ttlqueue never imports store.
type deleter interface {
	Exists(key string) bool
	Del(key string) bool
}

// DefaultWorkerInterval matches the original's workerInterval default.
const DefaultWorkerInterval = 10 * time.Second

type entry struct {
	key      string
	expireAt time.Time
}

// Queue is a TTL priority queue bound to a deleter. The zero Queue is not
// usable; construct one with New.
type Queue struct {
	mu       sync.Mutex
	heap     *heap.Heap[entry]
	index    map[string]int
	db       deleter
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
	logger *log.Logger
}

// New returns a Queue that expires keys against db. interval controls how
// often the background worker sweeps for expired keys; pass <= 0 to use
// DefaultWorkerInterval.
func New(db deleter, interval time.Duration, logger *log.Logger) *Queue {
	if interval <= 0 {
		interval = DefaultWorkerInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	q := &Queue{
		heap:     heap.New(func(a, b entry) bool { return a.expireAt.Before(b.expireAt) }),
		index:    map[string]int{},
		db:       db,
		interval: interval,
		logger:   logger,
	}
	q.heap.SetOnSwap(func(i, j int) {
		q.index[q.heap.At(i).key] = i
		q.index[q.heap.At(j).key] = j
	})
	return q
}

// InsertOrUpdate sets or refreshes the TTL of key to seconds from now,
// returning false if key does not exist in db (mirrors the original:
// "no ttl setup for existing key just like redis" — EXPIRE against an
// absent key is a no-op). seconds <= 0 is accepted and expires on the next
// worker tick rather than being special-cased into an immediate delete.
func (q *Queue) InsertOrUpdate(key string, seconds int64) bool {
	if !q.db.Exists(key) {
		return false
	}
	expireAt := time.Now().Add(time.Duration(seconds) * time.Second)

	q.mu.Lock()
	defer q.mu.Unlock()
	if idx, ok := q.index[key]; ok {
		q.setExpiry(idx, expireAt)
		return true
	}
	q.heap.Push(entry{key: key, expireAt: expireAt})
	q.settleIndex(key)
	return true
}

// settleIndex records key's position after a Push that may or may not have
// triggered bubbleUp swaps. SetOnSwap already recorded the correct index if
// any swap moved key away from the tail; this only fills in the case where
// key settled at the tail without moving (onSwap is never fired for the
// initial append itself).
func (q *Queue) settleIndex(key string) {
	if _, ok := q.index[key]; !ok {
		q.index[key] = q.heap.Size() - 1
	}
}

// setExpiry changes the expiry of the entry currently at idx and restores
// the heap property, mirroring the original's "update in place then
// heapifyUp+heapifyDown" shape. heap.Heap has no direct element-mutation
// method, so this removes the stale entry and re-pushes it with the new
// expiry under the same lock instead.
func (q *Queue) setExpiry(idx int, expireAt time.Time) {
	old, _ := q.heap.RemoveAt(idx)
	delete(q.index, old.key)
	old.expireAt = expireAt
	q.heap.Push(old)
	q.settleIndex(old.key)
}

// Remove deletes key's TTL entry, returning true if one existed. It does
// not touch db; handlers.Del calls both Table.Del and Remove so a key's TTL
// entry never outlives the key itself.
func (q *Queue) Remove(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx, ok := q.index[key]
	if !ok {
		return false
	}
	q.heap.RemoveAt(idx)
	delete(q.index, key)
	return true
}

// TTLSeconds returns the remaining TTL in seconds, -1 if key exists but has
// no TTL, or -2 if key does not exist in db, matching
// TTLPriorityQueue::getTTLSeconds.
func (q *Queue) TTLSeconds(key string) int64 {
	if !q.db.Exists(key) {
		return -2
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	idx, ok := q.index[key]
	if !ok {
		return -1
	}
	remaining := time.Until(q.heap.At(idx).expireAt)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

// Size returns the number of keys with a live TTL entry.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Size()
}

// sweep pops every expired entry and deletes it from db, releasing the
// queue mutex before each db.Del call per the required lock order
// (queue -> release -> table), so a handler blocked on the table lock never
// blocks the worker's ability to keep draining the heap.
func (q *Queue) sweep() {
	for {
		q.mu.Lock()
		top, ok := q.heap.Peek()
		if !ok || top.expireAt.After(time.Now()) {
			q.mu.Unlock()
			return
		}
		key, _ := q.heap.Pop()
		delete(q.index, key.key)
		q.mu.Unlock()

		q.db.Del(key.key)
		q.logger.Printf("ttl expired: %s", key.key)
	}
}

// Start launches the background worker goroutine. It is not safe to call
// Start twice without an intervening Stop.
func (q *Queue) Start() {
	q.stopCh = make(chan struct{})
	q.doneCh = make(chan struct{})
	go q.workerLoop()
}

func (q *Queue) workerLoop() {
	defer close(q.doneCh)
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()
	for {
		select {
		case <-q.stopCh:
			return
		case <-ticker.C:
			q.sweep()
		}
	}
}

// Stop signals the worker to exit and waits for it to finish.
func (q *Queue) Stop() {
	if q.stopCh == nil {
		return
	}
	close(q.stopCh)
	<-q.doneCh
}
