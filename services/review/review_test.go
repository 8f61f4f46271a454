package review

import (
	"context"
	"testing"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/database/seed"
	"medibook/models"
	"medibook/utils"

	"github.com/stretchr/testify/require"
)

// countingSink records every Create call.
type countingSink struct {
	calls []models.Review
}

func (s *countingSink) Create(_ context.Context, r *models.Review) error {
	s.calls = append(s.calls, *r)
	return nil
}

func (s *countingSink) GetByBooking(context.Context, string) ([]models.Review, error) {
	return s.calls, nil
}

// blockedClock never fires.
type blockedClock struct{}

func (blockedClock) Now() time.Time                       { return time.Time{} }
func (blockedClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

func newService(sink *countingSink, clock utils.Clock) *Service {
	return NewService(bookingRepo.NewStaticBookingRepo(seed.Bookings()), sink, clock, time.Second)
}

func TestZeroRatingNeverReachesSink(t *testing.T) {
	sink := &countingSink{}
	_, err := newService(sink, utils.InstantClock{}).Submit(context.Background(), Input{BookingID: "b3"})
	require.ErrorIs(t, err, ErrRatingRequired)
	require.Equal(t, "Please select a rating", err.Error())
	require.Empty(t, sink.calls)
}

func TestValidRatingSubmitsExactlyOnce(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		for _, comment := range []string{"", "  Great doctor  "} {
			sink := &countingSink{}
			rv, err := newService(sink, utils.InstantClock{}).Submit(context.Background(), Input{
				BookingID: "b3", Rating: rating, Comment: comment,
			})
			require.NoError(t, err)
			require.Len(t, sink.calls, 1)
			require.Equal(t, rating, rv.Rating)
			require.Equal(t, "b3", rv.BookingID)
		}
	}
}

func TestCommentTrimmed(t *testing.T) {
	in := Input{Rating: 4, Comment: "  thanks \n"}
	require.NoError(t, Validate(&in))
	require.Equal(t, "thanks", in.Comment)
}

func TestRatingOutOfRange(t *testing.T) {
	for _, r := range []int{-1, 6} {
		in := Input{Rating: r}
		require.ErrorIs(t, Validate(&in), ErrRatingOutOfRange)
	}
}

func TestUpcomingBookingNotReviewable(t *testing.T) {
	sink := &countingSink{}
	_, err := newService(sink, utils.InstantClock{}).Submit(context.Background(), Input{BookingID: "b1", Rating: 5})
	require.ErrorIs(t, err, ErrNotReviewable)

	_, err = newService(sink, utils.InstantClock{}).Submit(context.Background(), Input{BookingID: "missing", Rating: 5})
	require.ErrorIs(t, err, ErrBookingNotFound)
	require.Empty(t, sink.calls)
}

func TestCancelledContextAbandonsSubmission(t *testing.T) {
	sink := &countingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(sink, blockedClock{}).Submit(ctx, Input{BookingID: "b5", Rating: 3})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, sink.calls)
}
