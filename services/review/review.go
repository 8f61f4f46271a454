package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medibook/database/repository"
	bookingRepo "medibook/database/repository/booking"
	reviewRepo "medibook/database/repository/review"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRatingRequired   = errors.New("Please select a rating")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotReviewable    = errors.New("only completed or cancelled bookings can be reviewed")
)

const (
	MinRating = 1
	MaxRating = 5
)

// Input is the review form.
type Input struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"-"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Validate checks the rating and normalizes the comment in place.
func Validate(in *Input) error {
	if in.Rating == 0 {
		return ErrRatingRequired
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrRatingOutOfRange, in.Rating)
	}
	in.Comment = strings.TrimSpace(in.Comment)
	return nil
}

// Service accepts reviews, waits for the confirmation delay and then
// hands them to the sink.
type Service struct {
	Bookings     bookingRepo.BookingRepository
	Sink         reviewRepo.ReviewRepository
	Clock        utils.Clock
	ConfirmDelay time.Duration
}

func NewService(bookings bookingRepo.BookingRepository, sink reviewRepo.ReviewRepository, clock utils.Clock, delay time.Duration) *Service {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &Service{Bookings: bookings, Sink: sink, Clock: clock, ConfirmDelay: delay}
}

// Submit validates the input and stores the review once the confirmation
// delay has elapsed. If ctx ends first nothing is stored.
func (s *Service) Submit(ctx context.Context, in Input) (*models.Review, error) {
	if err := Validate(&in); err != nil {
		return nil, err
	}

	b, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status != models.BookingCompleted && b.Status != models.BookingCancelled {
		return nil, ErrNotReviewable
	}

	select {
	case <-ctx.Done():
		utils.GetLogger().Debug("review submission abandoned", zap.String("bookingID", in.BookingID))
		return nil, ctx.Err()
	case <-s.Clock.After(s.ConfirmDelay):
	}

	rv := &models.Review{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		UserID:    in.UserID,
		DoctorID:  b.Doctor.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Sink.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	utils.GetLogger().Info("review submitted",
		zap.String("reviewID", rv.ID),
		zap.String("bookingID", rv.BookingID),
		zap.Int("rating", rv.Rating),
	)
	return rv, nil
}
