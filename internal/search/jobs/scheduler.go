// Package jobs runs periodic maintenance for the search context on asynq.
package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"leadscout_backend/internal/search/searchlog"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
)

// TypeSearchLogPrune is the task type for search-log retention cleanup.
const TypeSearchLogPrune = "searchlog:prune"

// Worker hosts the asynq server plus the periodic schedule. It is only
// started when both Redis and Postgres are configured.
type Worker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// NewWorker wires the prune task against the search log repository.
func NewWorker(cfg config.SchedulerConfig, repo *searchlog.Repository, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	retention := cfg.GetSearchLogRetention()
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{queue: 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSearchLogPrune, func(ctx context.Context, _ *asynq.Task) error {
		cutoff := time.Now().UTC().Add(-retention)
		removed, err := repo.PruneBefore(ctx, cutoff)
		if err != nil {
			log.DatabaseError("searchlog prune", err)
			return err
		}
		log.Info("search log pruned", "removed", removed, "cutoff", cutoff)
		return nil
	})

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 24h", asynq.NewTask(TypeSearchLogPrune, nil), asynq.Queue(queue)); err != nil {
		return nil, err
	}

	return &Worker{srv: srv, scheduler: scheduler, mux: mux}, nil
}

// Start launches the worker and the schedule without blocking.
func (w *Worker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return err
	}
	return w.scheduler.Start()
}

// Shutdown stops the schedule and drains the worker.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
