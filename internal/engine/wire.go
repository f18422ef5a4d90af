package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"curator/internal/kv"
	"curator/internal/platform/config"
	"curator/internal/platform/logger"
	"curator/internal/platform/metrics"
	platformredis "curator/internal/platform/redis"
	"curator/internal/submit"
)

// FromConfig assembles an Engine from environment-driven configuration.
// The session store is always in-memory; the persistent store prefers
// Redis, then Postgres, then memory. Delivery prefers Kafka, then the
// HTTP endpoint, then none. cleanup releases whatever backends were opened.
func FromConfig(ctx context.Context, cfg config.Engine, log *slog.Logger, m *metrics.Metrics, clipboard submit.Clipboard) (eng *Engine, cleanup func(), err error) {
	if log == nil {
		log = logger.New()
	}

	closers := []func(){}
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	defer func() {
		if err != nil {
			release()
		}
	}()

	var persistent kv.Backend
	switch {
	case cfg.RedisURL != "":
		client, rerr := platformredis.New(cfg.RedisURL)
		if rerr != nil {
			return nil, nil, fmt.Errorf("redis: %w", rerr)
		}
		closers = append(closers, func() { _ = client.Close() })
		persistent = kv.NewRedis(client.Client)
	case cfg.PostgresDSN != "":
		db, derr := sql.Open("pgx", cfg.PostgresDSN)
		if derr != nil {
			return nil, nil, fmt.Errorf("postgres: %w", derr)
		}
		closers = append(closers, func() { _ = db.Close() })
		pg := kv.NewPostgres(db)
		if ierr := pg.Init(ctx); ierr != nil {
			return nil, nil, fmt.Errorf("postgres schema: %w", ierr)
		}
		persistent = pg
	default:
		persistent = kv.NewMemory()
	}

	var submitter submit.Submitter
	switch {
	case len(cfg.KafkaBrokers) > 0:
		kafka, kerr := submit.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if kerr != nil {
			return nil, nil, fmt.Errorf("kafka: %w", kerr)
		}
		closers = append(closers, kafka.Close)
		submitter = kafka
	case cfg.SubmitEndpoint != "":
		submitter = submit.NewHTTP(cfg.SubmitEndpoint)
	}

	eng = New(Options{
		Logger:        log,
		Metrics:       m,
		Session:       kv.NewMemory(),
		Persistent:    persistent,
		Submitter:     submitter,
		Clipboard:     clipboard,
		RequestPrefix: cfg.RequestPrefix,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	})
	return eng, release, nil
}
