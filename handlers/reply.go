// Package handlers implements one handler function per command named in
// spec.md §4.6, grouped by the data-type family they operate on. Every
// handler has the signature func(*store.Table, []string) string (or, for
// EXPIRE, TTL, DEL and STATS, func(*store.Table, *ttlqueue.Queue, []string)
// string) and returns a fully-formed wire reply — the dispatcher never
// inspects or rewrites what a handler returns.
package handlers

import (
	"fmt"
	"strings"
)

// OK is the shared success marker for commands with no return value.
const OK = "+OK"

// Err formats an error reply. Its argument is the message only; callers
// must not include the leading "-ERR" themselves.
func Err(format string, args ...any) string {
	return "-ERR " + fmt.Sprintf(format, args...)
}

// Int formats an integer reply.
func Int(n int) string {
	return fmt.Sprintf(":%d", n)
}

// Int64 formats an integer reply from an int64.
func Int64(n int64) string {
	return fmt.Sprintf(":%d", n)
}

// Bulk formats a present string value.
func Bulk(s string) string {
	return s
}

// Nil is the absent-value marker for GET/HGET/LPOP/RPOP/LINDEX and friends.
const Nil = "$-1"

// WrongType is the shared reply for an operation against a key holding the
// wrong Value variant.
var WrongType = Err("wrong type")

// List formats a bracketed, comma-space-joined list reply for LPRINT.
func List(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}

// SpaceJoined formats the space-joined reply MGET/SMEMBERS/SUNION/SINTER/
// SDIFF use, per spec.md §6's naive wire format (no framing for embedded
// spaces — see SPEC_FULL.md §7 for the quoted-token supplement on the
// input side; output remains space-joined as spec.md specifies).
func SpaceJoined(values []string) string {
	return strings.Join(values, " ")
}

// Hash formats the `{f1: v1, f2: v2}` representation HGETALL returns.
func Hash(pairs [][2]string) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p[0] + ": " + p[1]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
