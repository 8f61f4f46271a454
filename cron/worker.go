package cron

import (
	"context"
	"sync/atomic"
	"time"

	"medibook/config"
	"medibook/services/tasks"
	"medibook/services/upload"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client used to enqueue upload tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpt())
}

// UploadWorker consumes upload tasks. Running is false until the asynq
// server has started and again after Shutdown or a failed start.
type UploadWorker struct {
	srv     *asynq.Server
	running atomic.Bool
}

func (w *UploadWorker) Running() bool { return w.running.Load() }

func (w *UploadWorker) Shutdown() {
	w.running.Store(false)
	w.srv.Shutdown()
}

// InitUploadWorker runs the upload worker in the background. The returned
// worker must be shut down by the caller.
func InitUploadWorker(ctx context.Context, svc *upload.Service) *UploadWorker {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeUploadProcess, handleUploadTask(svc))
	w := &UploadWorker{srv: srv}

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("starting upload worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				w.running.Store(true)
				logger.Info("upload worker running")
				return
			}
			logger.Error("failed to start upload worker", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("upload worker gave up, uploads will be processed in process")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return w
}

func handleUploadTask(svc *upload.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseUploadPayload(task)
		if err != nil {
			utils.GetLogger().Error("dropping upload task", zap.Error(err))
			return err
		}
		return svc.Process(ctx, p.UploadID)
	}
}

// monitorRedisConnection pings the queue database until ctx ends.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("upload queue redis unreachable", zap.Error(err))
			}
		}
	}
}
