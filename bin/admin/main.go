// Command admin is a one-shot introspection CLI: it sends STATS to a kvd
// server and renders the JSON reply either as a table (interactive
// terminal) or as plain text (piped output), per SPEC_FULL.md §4's wiring
// of rodaine/table, go-pluralize, go-humanize and go-isatty.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/rodaine/table"
)

type statsPayload struct {
	Keys       int     `json:"keys"`
	Buckets    int     `json:"buckets"`
	LoadFactor float64 `json:"load_factor"`
	TTLEntries int     `json:"ttl_entries"`
}

func main() {
	addr := flag.String("addr", "127.0.0.1:6390", "Server address to query.")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("STATS\n")); err != nil {
		log.Fatalf("failed to send STATS: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read STATS reply: %v", err)
	}
	line = line[:len(line)-1]

	var stats statsPayload
	if err := json.Unmarshal([]byte(line), &stats); err != nil {
		log.Fatalf("failed to decode STATS reply %q: %v", line, err)
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		printTable(stats)
	} else {
		printPlain(stats)
	}
}

func printTable(stats statsPayload) {
	pl := pluralize.NewClient()
	tbl := table.New("Metric", "Value")
	tbl.AddRow("Keys", pl.Pluralize("key", stats.Keys, true))
	tbl.AddRow("Buckets", pl.Pluralize("bucket", stats.Buckets, true))
	tbl.AddRow("Load factor", fmt.Sprintf("%.2f", stats.LoadFactor))
	tbl.AddRow("TTL entries", pl.Pluralize("entry", stats.TTLEntries, true))
	tbl.Print()
}

func printPlain(stats statsPayload) {
	fmt.Printf("keys=%s buckets=%s load_factor=%.2f ttl_entries=%s\n",
		humanize.Comma(int64(stats.Keys)),
		humanize.Comma(int64(stats.Buckets)),
		stats.LoadFactor,
		humanize.Comma(int64(stats.TTLEntries)),
	)
}
