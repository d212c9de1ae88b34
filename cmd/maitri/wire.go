package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/easeaico/maitri/internal/agent"
	"github.com/easeaico/maitri/internal/config"
	"github.com/easeaico/maitri/internal/metrics"
	"github.com/easeaico/maitri/internal/models"
	"github.com/easeaico/maitri/internal/oversight"
	"github.com/easeaico/maitri/internal/report"
	"github.com/easeaico/maitri/internal/storage"
)

// deps holds the wired services shared by the commands.
type deps struct {
	cfg          config.Config
	store        agent.SessionStore
	redis        *redis.Client
	registry     *prometheus.Registry
	metrics      *metrics.Metrics
	orchestrator *agent.Orchestrator
	reporter     *report.Reporter
	closers      []func() error
}

// openStore connects the configured session store.
func openStore(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{cfg: cfg}

	switch cfg.SessionStore {
	case config.StoreRedis:
		store, err := storage.OpenRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		d.store = store
		d.redis = store.Client()
		d.closers = append(d.closers, store.Close)
	case config.StorePostgres:
		store, err := storage.OpenPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		d.store = store
		d.closers = append(d.closers, store.Close)
	default:
		slog.Warn("using in-memory session store, history is lost on restart")
		d.store = storage.NewMemoryStore()
	}

	d.reporter = report.NewReporter(d.store, cfg.ReportWindow)
	return d, nil
}

// wireEngine opens the store and builds the conversation engine around the configured backend.
func wireEngine(ctx context.Context, cfg config.Config) (*deps, error) {
	d, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d.registry = prometheus.NewRegistry()
	d.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	d.metrics = metrics.New(d.registry)

	completer, err := models.NewCompleter(ctx, cfg)
	if err != nil {
		d.close()
		return nil, err
	}

	d.orchestrator, err = agent.NewOrchestrator(d.store, completer, agent.Options{
		HistoryLimit:   cfg.HistoryLimit,
		BackendTimeout: cfg.BackendTimeout,
		Metrics:        d.metrics,
	})
	if err != nil {
		d.close()
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	slog.Info("conversation engine ready", "model", completer.Name())
	return d, nil
}

// publisher picks the ground control channel: Redis pub/sub when Redis is reachable, the log otherwise.
func (d *deps) publisher(ctx context.Context) oversight.Publisher {
	client := d.redis
	if client == nil && d.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(d.cfg.RedisURL)
		if err != nil {
			slog.Warn("invalid REDIS_URL, publishing alerts to log", "error", err.Error())
			return oversight.LogPublisher{}
		}
		client = redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			slog.Warn("redis unreachable, publishing alerts to log", "error", err.Error())
			return oversight.LogPublisher{}
		}
		d.closers = append(d.closers, client.Close)
	}
	if client == nil {
		return oversight.LogPublisher{}
	}
	return oversight.NewRedisPublisher(client, d.cfg.OversightChannel)
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err.Error())
		}
	}
	d.closers = nil
}
