package main

import (
	"context"
	"crypto/tls"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/justnitesh531/orderflow/scheduler"
	"github.com/justnitesh531/orderflow/storage"
)

func main() {
	log.Println("Reminder Scheduler Service starting")
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	draftTableName := os.Getenv("DRAFT_TABLE")
	notifyQueueName := os.Getenv("NOTIFY_QUEUE")
	if connStr == "" || draftTableName == "" || notifyQueueName == "" {
		log.Fatal("missing storage config")
	}
	store, err := storage.New(connStr, draftTableName, notifyQueueName)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	redisConn := os.Getenv("REDIS_CONNECTION_STRING")
	if redisConn == "" {
		log.Fatal("missing redis config")
	}
	rc := redis.NewClient(parseRedisOptions(redisConn))

	sched, err := scheduler.ParseSchedule(envString("REMINDER_TIME", "18:00"))
	if err != nil {
		log.Fatalf("reminder time: %v", err)
	}

	interval := time.Minute
	if v := os.Getenv("REMINDER_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("invalid REMINDER_POLL_INTERVAL: %v", err)
		}
		interval = d
	}

	guardTTL := 48 * time.Hour
	if v := os.Getenv("GUARD_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("invalid GUARD_TTL: %v", err)
		}
		guardTTL = d
	}
	guard := scheduler.NewRedisGuard(rc, guardTTL)

	logger := log.StandardLogger()
	var sink scheduler.Sink
	switch envString("REMINDER_SINK", "queue") {
	case "queue":
		sink = scheduler.NewQueueSink(store)
	case "log":
		sink = scheduler.NewLogSink(logger)
	default:
		log.Fatal("invalid REMINDER_SINK: expected queue or log")
	}

	s := scheduler.New(sched, interval, store, guard, sink, logger, os.Getenv("REMINDER_MESSAGE"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("scheduler: %v", err)
	}
	log.Println("Reminder Scheduler Service stopped")
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseRedisOptions(connStr string) *redis.Options {
	opts, err := redis.ParseURL(connStr)
	if err == nil {
		return opts
	}
	parts := strings.Split(connStr, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}
