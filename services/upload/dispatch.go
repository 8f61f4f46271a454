package upload

import (
	"context"
	"errors"
	"fmt"

	"medibook/services/tasks"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var ErrWorkerUnavailable = errors.New("upload worker is not running")

// Dispatcher schedules the processing of an accepted upload.
type Dispatcher interface {
	Dispatch(ctx context.Context, uploadID string) error
}

// ProcessFunc runs one upload attempt to completion.
type ProcessFunc func(ctx context.Context, uploadID string) error

// InlineDispatcher processes uploads on a goroutine in this process. Base
// bounds the lifetime of those goroutines, not the request that started them.
type InlineDispatcher struct {
	Base    context.Context
	Process ProcessFunc
}

func (d InlineDispatcher) Dispatch(_ context.Context, uploadID string) error {
	base := d.Base
	if base == nil {
		base = context.Background()
	}
	go func() {
		if err := d.Process(base, uploadID); err != nil {
			utils.GetLogger().Error("inline upload processing failed", zap.String("uploadID", uploadID), zap.Error(err))
		}
	}()
	return nil
}

// QueueDispatcher enqueues an asynq task that the upload worker consumes.
// While Ready reports false nothing is enqueued: uploads go to Fallback, or
// fail with ErrWorkerUnavailable when there is none.
type QueueDispatcher struct {
	Client   *asynq.Client
	Ready    func() bool
	Fallback Dispatcher
}

func (d QueueDispatcher) Dispatch(ctx context.Context, uploadID string) error {
	if d.Ready != nil && !d.Ready() {
		if d.Fallback == nil {
			return ErrWorkerUnavailable
		}
		utils.GetLogger().Warn("upload worker not running, processing in process", zap.String("uploadID", uploadID))
		return d.Fallback.Dispatch(ctx, uploadID)
	}
	task, opts, err := tasks.NewUploadTask(uploadID)
	if err != nil {
		return err
	}
	info, err := d.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue upload %s: %w", uploadID, err)
	}
	utils.GetLogger().Debug("upload task enqueued", zap.String("uploadID", uploadID), zap.String("taskID", info.ID))
	return nil
}
