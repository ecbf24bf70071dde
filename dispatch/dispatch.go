// Package dispatch implements the command table and request router: strip
// CR/LF, tokenize, uppercase the command name, look it up, enforce arity,
// and invoke the handler inside a panic-recovering guard so a single bad
// command can never take down a connection, per spec.md §4.7.
package dispatch

import (
	"sort"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/zond/kvd/handlers"
	"github.com/zond/kvd/store"
	"github.com/zond/kvd/ttlqueue"
)

// Handler is the signature every non-TTL command handler satisfies.
type Handler func(*store.Table, []string) string

// TTLHandler is the signature EXPIRE/TTL/DEL/STATS satisfy: they
// additionally need the TTLQueue.
type TTLHandler func(*store.Table, *ttlqueue.Queue, []string) string

// Entry describes one registered command.
type Entry struct {
	Handler    Handler
	TTLHandler TTLHandler
	MinArgs    int
	MaxArgs    int // -1 means unbounded
	Help       string
}

// Table routes command lines to their handlers against a fixed Table and
// Queue, the two resources every command may touch.
type Table struct {
	store   *store.Table
	queue   *ttlqueue.Queue
	entries map[string]Entry
}

// New returns a dispatch Table wired to tbl and queue and populated with
// the full command set from spec.md §4.6 plus the supplemented STATS
// command (SPEC_FULL.md §7).
func New(tbl *store.Table, queue *ttlqueue.Queue) *Table {
	t := &Table{store: tbl, queue: queue, entries: map[string]Entry{}}
	t.register()
	return t
}

func (t *Table) add(name string, minArgs, maxArgs int, help string, h Handler) {
	t.entries[name] = Entry{Handler: h, MinArgs: minArgs, MaxArgs: maxArgs, Help: help}
}

func (t *Table) addTTL(name string, minArgs, maxArgs int, help string, h TTLHandler) {
	t.entries[name] = Entry{TTLHandler: h, MinArgs: minArgs, MaxArgs: maxArgs, Help: help}
}

func (t *Table) register() {
	t.add("SET", 2, 2, "SET key value", handlers.Set)
	t.add("SETNX", 2, 2, "SETNX key value", handlers.SetNX)
	t.add("GET", 1, 1, "GET key", handlers.Get)
	t.add("MSET", 2, -1, "MSET key value [key value ...]", handlers.MSet)
	t.add("MGET", 1, -1, "MGET key [key ...]", handlers.MGet)
	t.add("APPEND", 2, 2, "APPEND key value", handlers.Append)
	t.add("STRLEN", 1, 1, "STRLEN key", handlers.StrLen)
	t.add("INCR", 1, 1, "INCR key", handlers.Incr)
	t.add("DECR", 1, 1, "DECR key", handlers.Decr)
	t.add("INCRBY", 2, 2, "INCRBY key delta", handlers.IncrBy)
	t.add("DECRBY", 2, 2, "DECRBY key delta", handlers.DecrBy)
	t.addTTL("DEL", 1, 1, "DEL key", handlers.Del)
	t.add("EXISTS", 1, 1, "EXISTS key", handlers.Exists)
	t.add("RENAME", 2, 2, "RENAME old new", handlers.Rename)
	t.add("COPY", 2, 2, "COPY src dst", handlers.Copy)

	t.add("LPUSH", 2, 2, "LPUSH key value", handlers.LPush)
	t.add("RPUSH", 2, 2, "RPUSH key value", handlers.RPush)
	t.add("LPOP", 1, 1, "LPOP key", handlers.LPop)
	t.add("RPOP", 1, 1, "RPOP key", handlers.RPop)
	t.add("LLEN", 1, 1, "LLEN key", handlers.LLen)
	t.add("LINDEX", 2, 2, "LINDEX key index", handlers.LIndex)
	t.add("LSET", 3, 3, "LSET key index value", handlers.LSet)
	t.add("LSORT", 2, 2, "LSORT key order(1|2)", handlers.LSort)
	t.add("LPRINT", 1, 1, "LPRINT key", handlers.LPrint)

	t.add("HSET", 3, 3, "HSET key field value", handlers.HSet)
	t.add("HGET", 2, 2, "HGET key field", handlers.HGet)
	t.add("HDEL", 2, -1, "HDEL key field [field ...]", handlers.HDel)
	t.add("HEXISTS", 2, 2, "HEXISTS key field", handlers.HExists)
	t.add("HLEN", 1, 1, "HLEN key", handlers.HLen)
	t.add("HKEYS", 1, 1, "HKEYS key", handlers.HKeys)
	t.add("HVALS", 1, 1, "HVALS key", handlers.HVals)
	t.add("HGETALL", 1, 1, "HGETALL key", handlers.HGetAll)

	t.add("SADD", 2, 2, "SADD key member", handlers.SAdd)
	t.add("SREM", 2, 2, "SREM key member", handlers.SRem)
	t.add("SMEMBERS", 1, 1, "SMEMBERS key", handlers.SMembers)
	t.add("SCARD", 1, 1, "SCARD key", handlers.SCard)
	t.add("SPOP", 1, 1, "SPOP key", handlers.SPop)
	t.add("SISMEMBER", 2, 2, "SISMEMBER key member", handlers.SIsMember)
	t.add("SUNION", 2, 2, "SUNION key1 key2", handlers.SUnion)
	t.add("SINTER", 2, 2, "SINTER key1 key2", handlers.SInter)
	t.add("SDIFF", 2, 2, "SDIFF key1 key2", handlers.SDiff)

	t.addTTL("EXPIRE", 2, 2, "EXPIRE key seconds", handlers.Expire)
	t.addTTL("TTL", 1, 1, "TTL key", handlers.TTL)
	t.addTTL("STATS", 0, 0, "STATS", handlers.Stats)
}

// Route parses and executes one request line, returning the wire reply.
// Tokenization is shellwords-aware (SPEC_FULL.md §7): double-quoted tokens
// may contain embedded spaces, so `SET greeting "hello world"` stores a
// single two-word value instead of failing arity.
func (t *Table) Route(line string) (reply string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return handlers.Err("empty command")
	}

	tokens, err := shellwords.Split(line)
	if err != nil || len(tokens) == 0 {
		return handlers.Err("unbalanced quotes")
	}

	name := strings.ToUpper(tokens[0])
	args := tokens[1:]

	entry, ok := t.entries[name]
	if !ok {
		return handlers.Err("unknown command")
	}
	if len(args) < entry.MinArgs || (entry.MaxArgs >= 0 && len(args) > entry.MaxArgs) {
		return handlers.Err("wrong number of arguments for %s", name)
	}

	defer func() {
		if r := recover(); r != nil {
			reply = handlers.Err("handler exception: %v", r)
		}
	}()

	if entry.TTLHandler != nil {
		return entry.TTLHandler(t.store, t.queue, args)
	}
	return entry.Handler(t.store, args)
}

// Help returns the registered help strings, sorted by command name, for a
// HELP-style listing.
func (t *Table) Help() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, t.entries[name].Help)
	}
	return out
}
