package handlers

import (
	"github.com/goccy/go-json"

	"github.com/zond/kvd/store"
	"github.com/zond/kvd/ttlqueue"
)

// statsPayload is what STATS renders as JSON, consumed both by the STATS
// wire command and bin/admin's one-shot introspection CLI.
type statsPayload struct {
	store.Stats
	TTLEntries int `json:"ttl_entries"`
}

// Stats implements the supplemented STATS command: a JSON snapshot of
// key-table and TTL-queue size. Not in spec.md's command table, but
// RedisHashMap.cpp's verbose per-operation stdout logging shows the
// original author cared about visibility into table state; STATS is the
// structured, on-demand equivalent of that logging.
func Stats(t *store.Table, q *ttlqueue.Queue, args []string) string {
	payload := statsPayload{
		Stats:      t.Stats(),
		TTLEntries: q.Size(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Err("failed to encode stats: %v", err)
	}
	return string(b)
}
