package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medibook/database/repository"
	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// DefaultHistoryService reads bookings from the repository. Cancel and
// Reschedule are validated and logged but not saved; the returned booking
// shows what the change would look like.
type DefaultHistoryService struct {
	Repo bookingRepo.BookingRepository
}

func NewHistoryService(repo bookingRepo.BookingRepository) *DefaultHistoryService {
	return &DefaultHistoryService{Repo: repo}
}

// ParseStatus validates a status filter from a request.
func ParseStatus(raw string) (models.BookingStatus, error) {
	if raw == "" {
		return models.BookingUpcoming, nil
	}
	s, err := models.ParseBookingStatus(strings.ToLower(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func (s *DefaultHistoryService) History(ctx context.Context, status models.BookingStatus) (*HistoryView, error) {
	all, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	parts := Partition(all)
	counts := make(map[models.BookingStatus]int, len(parts))
	for st, list := range parts {
		counts[st] = len(list)
	}
	view := &HistoryView{
		Status:   status,
		Bookings: Filter(all, status),
		Counts:   counts,
	}
	if len(view.Bookings) == 0 {
		view.EmptyMessage = EmptyMessage(status)
	}
	return view, nil
}

func (s *DefaultHistoryService) load(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultHistoryService) Get(ctx context.Context, id string) (*Detail, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Booking: *b, Actions: Actions(b.Status)}, nil
}

func (s *DefaultHistoryService) Cancel(ctx context.Context, id, reason string) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Allows(b.Status, models.ActionCancel) {
		return nil, &ActionError{BookingID: id, Action: models.ActionCancel, Status: b.Status}
	}
	utils.GetLogger().Info("booking cancel requested",
		zap.String("bookingID", id),
		zap.String("doctorID", b.Doctor.ID),
		zap.String("reason", reason),
	)
	b.Status = models.BookingCancelled
	if reason != "" {
		b.Notes = reason
	}
	return b, nil
}

func (s *DefaultHistoryService) Reschedule(ctx context.Context, id, date, at string) (*models.Booking, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(at) == "" {
		return nil, ErrScheduleRequired
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Allows(b.Status, models.ActionReschedule) {
		return nil, &ActionError{BookingID: id, Action: models.ActionReschedule, Status: b.Status}
	}
	utils.GetLogger().Info("booking reschedule requested",
		zap.String("bookingID", id),
		zap.String("from", b.Date+" "+b.Time),
		zap.String("to", date+" "+at),
	)
	b.Date = date
	b.Time = at
	return b, nil
}
