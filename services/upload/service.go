package upload

import (
	"context"
	"errors"
	"os"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotRetryable = errors.New("only failed uploads can be retried")

const (
	// interruptedMessage is recorded when an attempt is cut short.
	interruptedMessage = "Upload interrupted. Please try again."

	DefaultStallAfter = 5 * time.Minute
	DefaultRetention  = 24 * time.Hour
)

// Remover is implemented by transports that can delete what they stored.
type Remover interface {
	Remove(ctx context.Context, upload models.Upload) error
}

// Service accepts documents and runs them through the simulator and transport.
type Service struct {
	Tracker    *Tracker
	Simulator  Simulator
	Transport  Transport
	Dispatcher Dispatcher
	Clock      utils.Clock
	MaxBytes   int64

	// StallAfter fails uploads that report no progress for this long.
	StallAfter time.Duration
	// Retention is how long finished uploads stay listed.
	Retention time.Duration
}

// NewService wires a service that processes uploads inline. Callers may
// replace Dispatcher afterwards.
func NewService(sim Simulator, transport Transport, maxBytes int64) *Service {
	if sim.Clock == nil {
		sim.Clock = utils.SystemClock()
	}
	s := &Service{
		Tracker:    NewTracker(),
		Simulator:  sim,
		Transport:  transport,
		Clock:      sim.Clock,
		MaxBytes:   maxBytes,
		StallAfter: DefaultStallAfter,
		Retention:  DefaultRetention,
	}
	s.Dispatcher = InlineDispatcher{Process: s.Process}
	return s
}

// Start validates the file and, if accepted, registers it and dispatches
// processing. Rejected files leave no state behind.
func (s *Service) Start(ctx context.Context, owner string, meta FileMeta) (models.Upload, error) {
	if err := Validate(meta, s.MaxBytes); err != nil {
		return models.Upload{}, err
	}

	now := s.Clock.Now()
	u := models.Upload{
		ID:          uuid.New().String(),
		OwnerID:     owner,
		FileName:    meta.Name,
		Size:        meta.Size,
		ContentType: meta.ContentType,
		Status:      models.UploadUploading,
		Attempts:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Tracker.add(u, meta.Path)
	utils.GetLogger().Info("upload accepted",
		zap.String("uploadID", u.ID),
		zap.String("owner", owner),
		zap.String("file", meta.Name),
		zap.Int64("size", meta.Size),
	)
	return s.dispatch(ctx, u)
}

func (s *Service) dispatch(ctx context.Context, u models.Upload) (models.Upload, error) {
	if err := s.Dispatcher.Dispatch(ctx, u.ID); err != nil {
		utils.GetLogger().Error("failed to dispatch upload", zap.String("uploadID", u.ID), zap.Error(err))
		return s.fail(u.ID, interruptedMessage)
	}
	return u, nil
}

// Process runs one attempt: progress until 100, then the transport decides.
// The upload always ends in success or error.
func (s *Service) Process(ctx context.Context, id string) error {
	u, path, _, err := s.Tracker.get(id)
	if err != nil {
		return err
	}
	if u.Terminal() {
		return nil
	}

	err = s.Simulator.Run(ctx, func(progress int) {
		s.Tracker.update(id, func(u *models.Upload) {
			u.Progress = progress
			u.UpdatedAt = s.Clock.Now()
		})
	})
	if err != nil {
		s.fail(id, interruptedMessage)
		return err
	}

	url, err := s.Transport.Transfer(ctx, u, path)
	if err != nil {
		utils.GetLogger().Warn("upload transfer failed", zap.String("uploadID", id), zap.Error(err))
		msg := ErrTransferFailed.Error()
		if !errors.Is(err, ErrTransferFailed) {
			msg = interruptedMessage
		}
		s.fail(id, msg)
		return nil
	}

	s.Tracker.update(id, func(u *models.Upload) {
		u.Progress = 100
		u.Status = models.UploadSuccess
		u.Error = ""
		u.URL = url
		u.UpdatedAt = s.Clock.Now()
	})
	removeStaged(path)
	utils.GetLogger().Info("upload finished", zap.String("uploadID", id))
	return nil
}

func removeStaged(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.GetLogger().Warn("failed to remove staged upload", zap.String("path", path), zap.Error(err))
	}
}

func (s *Service) fail(id, msg string) (models.Upload, error) {
	return s.Tracker.update(id, func(u *models.Upload) {
		u.Progress = 100
		u.Status = models.UploadError
		u.Error = msg
		u.UpdatedAt = s.Clock.Now()
	})
}

func (s *Service) owned(owner, id string) (models.Upload, <-chan struct{}, error) {
	u, _, done, err := s.Tracker.get(id)
	if err != nil {
		return models.Upload{}, nil, err
	}
	if u.OwnerID != owner {
		return models.Upload{}, nil, ErrUploadNotFound
	}
	return u, done, nil
}

func (s *Service) Get(owner, id string) (models.Upload, error) {
	u, _, err := s.owned(owner, id)
	return u, err
}

func (s *Service) List(owner string) []models.Upload {
	return s.Tracker.list(owner)
}

// Retry restarts a failed upload from zero progress.
func (s *Service) Retry(ctx context.Context, owner, id string) (models.Upload, error) {
	if _, _, err := s.owned(owner, id); err != nil {
		return models.Upload{}, err
	}
	u, err := s.Tracker.restart(id, func(u *models.Upload) {
		u.Status = models.UploadUploading
		u.Progress = 0
		u.Error = ""
		u.Attempts++
		u.UpdatedAt = s.Clock.Now()
	})
	if err != nil {
		return u, err
	}
	utils.GetLogger().Info("upload retry", zap.String("uploadID", id), zap.Int("attempt", u.Attempts))
	return s.dispatch(ctx, u)
}

// Await blocks until the upload's current attempt is terminal or ctx ends.
func (s *Service) Await(ctx context.Context, owner, id string) (models.Upload, error) {
	_, done, err := s.owned(owner, id)
	if err != nil {
		return models.Upload{}, err
	}
	select {
	case <-done:
	case <-ctx.Done():
		return models.Upload{}, ctx.Err()
	}
	return s.Get(owner, id)
}

// Remove deletes a finished upload, its staged copy and, when the transport
// supports it, the stored document.
func (s *Service) Remove(ctx context.Context, owner, id string) error {
	if _, _, err := s.owned(owner, id); err != nil {
		return err
	}
	u, path, err := s.Tracker.remove(id)
	if err != nil {
		return err
	}
	removeStaged(path)
	if r, ok := s.Transport.(Remover); ok && u.Status == models.UploadSuccess {
		if err := r.Remove(ctx, u); err != nil {
			utils.GetLogger().Warn("failed to delete stored document", zap.String("uploadID", id), zap.Error(err))
		}
	}
	utils.GetLogger().Info("upload removed", zap.String("uploadID", id), zap.String("owner", owner))
	return nil
}

// Sweep fails uploads that stopped reporting progress, such as queued tasks
// no worker picked up, and forgets finished uploads past their retention.
func (s *Service) Sweep() (stalled, evicted int) {
	stallAfter, retention := s.StallAfter, s.Retention
	if stallAfter <= 0 {
		stallAfter = DefaultStallAfter
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	now := s.Clock.Now()
	ids, evictedPaths := s.Tracker.sweep(now.Add(-stallAfter), now.Add(-retention), func(u *models.Upload) {
		u.Progress = 100
		u.Status = models.UploadError
		u.Error = interruptedMessage
		u.UpdatedAt = now
	})
	for _, id := range ids {
		utils.GetLogger().Warn("upload stalled", zap.String("uploadID", id))
	}
	for _, path := range evictedPaths {
		removeStaged(path)
	}
	return len(ids), len(evictedPaths)
}

// RunJanitor sweeps every interval until ctx ends.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stalled, evicted := s.Sweep(); stalled+evicted > 0 {
				utils.GetLogger().Info("upload sweep", zap.Int("stalled", stalled), zap.Int("evicted", evicted))
			}
		}
	}
}
