package cron

import (
	"context"
	"fmt"
	"time"

	"lunchbox/config"
	"lunchbox/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeReminderTick       = "reminder:tick"
	TypeNotificationsPurge = "notifications:purge"

	// Every minute on weekdays; the gate handles the exact window.
	reminderTickSpec = "* * * * 1-5"
	purgeSpec        = "0 3 * * *"
)

// Ticker runs one scheduler tick.
type Ticker interface {
	Tick(ctx context.Context) models.TickResult
}

// Purger removes expired notifications.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Worker owns the asynq scheduler that enqueues ticks and the server that
// runs them.
type Worker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewWorker registers the periodic reminder tick and retention purge.
func NewWorker(ticker Ticker, purger Purger, loc *time.Location, logger *zap.Logger) (*Worker, error) {
	opts := redisOpts()

	scheduler := asynq.NewScheduler(opts, &asynq.SchedulerOpts{Location: loc})
	// Unique keeps a slow worker from stacking up identical ticks.
	if _, err := scheduler.Register(reminderTickSpec, asynq.NewTask(TypeReminderTick, nil),
		asynq.Unique(50*time.Second), asynq.MaxRetry(0)); err != nil {
		return nil, fmt.Errorf("register reminder tick: %w", err)
	}
	if _, err := scheduler.Register(purgeSpec, asynq.NewTask(TypeNotificationsPurge, nil),
		asynq.Unique(time.Hour)); err != nil {
		return nil, fmt.Errorf("register purge: %w", err)
	}

	server := asynq.NewServer(opts, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderTick, handleReminderTick(ticker, logger))
	mux.HandleFunc(TypeNotificationsPurge, handlePurge(purger, logger))

	return &Worker{scheduler: scheduler, server: server, mux: mux, logger: logger}, nil
}

// Start runs the scheduler and the task server in the background.
func (w *Worker) Start() {
	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.logger.Error("[ReminderScheduler] stopped", zap.Error(err))
		}
	}()

	go func() {
		w.logger.Info("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := w.server.Start(w.mux); err != nil {
				w.logger.Warn("[ReminderWorker] failed to start worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					w.logger.Error("[ReminderWorker] max retry attempts reached, reminders disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			return
		}
	}()
}

// Shutdown stops both the scheduler and the server.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleReminderTick(ticker Ticker, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		res := ticker.Tick(ctx)
		logger.Debug("[ReminderHandler] tick",
			zap.String("menuUpdateReminder", res.MenuUpdateReminder.Status),
			zap.String("orderReminder", res.OrderReminder.Status))
		return nil
	}
}

func handlePurge(purger Purger, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if _, err := purger.PurgeExpired(ctx); err != nil {
			logger.Error("[PurgeHandler] purge failed", zap.Error(err))
			return err
		}
		return nil
	}
}
