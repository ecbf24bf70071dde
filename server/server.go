// Package server implements the TCP accept loop: one goroutine per
// connection, each reading whitespace/CRLF-terminated lines and routing
// them through a dispatch.Table, plus the TTLQueue worker lifecycle.
// Structure mirrors the teacher's server/server.go and bin/server/main.go
// (Config + DefaultConfig, log.Printf/log.Fatal logging, flag-bound
// configuration) generalized away from SSH/game-world concerns to a plain
// line protocol.
package server

import (
	"bufio"
	"context"
	"log"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zond/kvd/dispatch"
	"github.com/zond/kvd/store"
	"github.com/zond/kvd/ttlqueue"
)

// Config controls server construction. Zero value is not meaningful; use
// DefaultConfig.
type Config struct {
	Addr                string
	InitialBuckets      int
	LoadFactorThreshold float64
	TTLWorkerInterval   time.Duration
	LogFile             string
}

// DefaultConfig returns sane defaults, mirroring the teacher's
// server.DefaultConfig pattern.
func DefaultConfig() Config {
	return Config{
		Addr:                ":6390",
		InitialBuckets:      1024,
		LoadFactorThreshold: 0.75,
		TTLWorkerInterval:   ttlqueue.DefaultWorkerInterval,
	}
}

// Server owns the KeyTable, the TTLQueue and the listener. Construct with
// New; it is not usable before that.
type Server struct {
	config   Config
	store    *store.Table
	queue    *ttlqueue.Queue
	dispatch *dispatch.Table
	logger   *log.Logger
}

// New constructs a Server with its own KeyTable and TTLQueue — no
// process-wide singleton (spec.md §9's re-architecture note) — wiring
// queue.Size() into dispatch's STATS handler and EXPIRE/TTL.
func New(config Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	tbl := store.NewWithOptions(config.InitialBuckets, config.LoadFactorThreshold)
	queue := ttlqueue.New(tbl, config.TTLWorkerInterval, logger)
	return &Server{
		config:   config,
		store:    tbl,
		queue:    queue,
		dispatch: dispatch.New(tbl, queue),
		logger:   logger,
	}
}

// Serve listens on config.Addr and serves connections until ctx is
// cancelled. It starts the TTLQueue worker before accepting and stops it,
// after in-flight connections drain, before returning — the "stop and join
// the TTL worker before dropping the KeyTable" ordering spec.md §9 requires.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}

	s.queue.Start()
	defer s.queue.Stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})

	group.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					return err
				}
			}
			group.Go(func() error {
				s.handleConn(ctx, conn)
				return nil
			})
		}
	})

	s.logger.Printf("listening on %s", s.config.Addr)
	return group.Wait()
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	id := uuid.NewString()
	defer conn.Close()
	s.logger.Printf("[%s] connection from %s", id, conn.RemoteAddr())

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		start := time.Now()
		reply := s.dispatch.Route(line)
		s.logger.Printf("[%s] %q -> %q (%s)", id, line, reply, time.Since(start))
		if _, err := conn.Write([]byte(reply + "\n")); err != nil {
			s.logger.Printf("[%s] write error: %v", id, err)
			return
		}
	}
	s.logger.Printf("[%s] connection closed", id)
}

// Store returns the server's KeyTable, for in-process access to an
// embedded server instance.
func (s *Server) Store() *store.Table {
	return s.store
}
