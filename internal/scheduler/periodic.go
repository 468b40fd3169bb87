package scheduler

import (
	"fmt"
	"time"

	"salesdash_backend/platform/config"
	"salesdash_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic registers the recurring sync task with asynq's scheduler. It
// only enqueues; the worker executes.
type Periodic struct {
	scheduler *asynq.Scheduler
	interval  time.Duration
	queue     string
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	interval := cfg.GetSyncInterval()
	if interval < time.Minute {
		interval = 15 * time.Minute
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Periodic{
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{}),
		interval:  interval,
		queue:     queue,
		log:       log,
	}, nil
}

// Run registers the interval task and blocks until the scheduler stops.
func (p *Periodic) Run() error {
	task, err := NewSyncRunTask(SyncRunPayload{Trigger: "interval"})
	if err != nil {
		return err
	}

	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.scheduler.Register(spec, task, asynq.Queue(p.queue)); err != nil {
		return err
	}

	p.log.Info("periodic sync registered", "interval", p.interval.String())
	return p.scheduler.Run()
}

// Shutdown stops the scheduler gracefully.
func (p *Periodic) Shutdown() {
	if p == nil || p.scheduler == nil {
		return
	}
	p.scheduler.Shutdown()
}
