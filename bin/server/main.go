package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zond/kvd/server"
)

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.Addr, "addr", config.Addr, "Address to listen on.")
	flag.IntVar(&config.InitialBuckets, "buckets", config.InitialBuckets, "Initial key-table bucket count.")
	flag.Float64Var(&config.LoadFactorThreshold, "load-factor", config.LoadFactorThreshold, "Key-table load factor above which a resize doubles bucket count.")
	flag.DurationVar(&config.TTLWorkerInterval, "ttl-interval", config.TTLWorkerInterval, "TTL worker sweep interval.")
	flag.StringVar(&config.LogFile, "logfile", "", "Path to log file (default: stderr).")

	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if config.LogFile != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}

	srv := server.New(config, logger)
	if err := srv.Serve(context.Background()); err != nil {
		logger.Fatal(err)
	}
}
