package handlers

import (
	"strconv"

	"github.com/zond/kvd/store"
	"github.com/zond/kvd/ttlqueue"
)

// Expire implements EXPIRE k seconds. Like TTL (and DEL and STATS), it
// needs the TTLQueue, hence the extra parameter beyond *store.Table.
func Expire(t *store.Table, q *ttlqueue.Queue, args []string) string {
	seconds, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return Err("value is not an integer or out of range")
	}
	if !q.InsertOrUpdate(args[0], seconds) {
		return Int(0)
	}
	return Int(1)
}

// TTL implements TTL k.
func TTL(t *store.Table, q *ttlqueue.Queue, args []string) string {
	return Int64(q.TTLSeconds(args[0]))
}
