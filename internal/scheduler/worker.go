package scheduler

import (
	"context"
	"fmt"

	"salesdash_backend/internal/ingest"
	"salesdash_backend/platform/config"
	"salesdash_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SyncRunner runs one full-refresh synchronization pass.
type SyncRunner interface {
	Run(ctx context.Context) (ingest.SyncResult, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	runner SyncRunner
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, runner SyncRunner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		// Passes against the same table coalesce anyway, so high
		// concurrency buys nothing here.
		concurrency = 2
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		runner: runner,
		log:    log,
	}

	mux.HandleFunc(TaskSyncRun, w.handleSyncRun)

	return w, nil
}

func (w *Worker) handleSyncRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSyncRunPayload(task)
	if err != nil {
		return err
	}

	result, err := w.runner.Run(ctx)
	if err != nil {
		w.log.Error("scheduled sync failed", "trigger", payload.Trigger, "error", err)
		return err
	}

	w.log.Info("scheduled sync finished",
		"trigger", payload.Trigger,
		"run_id", result.RunID,
		"inserted", result.Inserted,
		"rejected", result.Rejected,
		"coalesced", result.Coalesced,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
