package handlers

import (
	"errors"
	"net/http"

	"medibook/middleware"
	"medibook/services/booking"
	"medibook/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	History booking.HistoryService
	Reviews *review.Service
}

func NewBookingHandler(history booking.HistoryService, reviews *review.Service) *BookingHandler {
	return &BookingHandler{History: history, Reviews: reviews}
}

func writeBookingError(c *gin.Context, err error) {
	var actionErr *booking.ActionError
	switch {
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, review.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, booking.ErrInvalidStatus), errors.Is(err, booking.ErrScheduleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, review.ErrRatingRequired), errors.Is(err, review.ErrRatingOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "rating"})
	case errors.As(err, &actionErr), errors.Is(err, review.ErrNotReviewable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
	}
}

// BookingHistoryHandler handles GET /api/bookings?status=.
func (h *BookingHandler) BookingHistoryHandler(c *gin.Context) {
	status, err := booking.ParseStatus(c.Query("status"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	view, err := h.History.History(c.Request.Context(), status)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	detail, err := h.History.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// The body is optional.
	_ = c.ShouldBindJSON(&input)

	b, err := h.History.Cancel(c.Request.Context(), c.Param("id"), input.Reason)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "saved": false})
}

// RescheduleHandler handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) RescheduleHandler(c *gin.Context) {
	var input struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.History.Reschedule(c.Request.Context(), c.Param("id"), input.Date, input.Time)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "saved": false})
}

// ReviewBookingHandler handles POST /api/bookings/:id/review. The response
// is sent after the confirmation delay; a client that disconnects first
// abandons the review.
func (h *BookingHandler) ReviewBookingHandler(c *gin.Context) {
	var input review.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.BookingID = c.Param("id")
	input.UserID = middleware.CurrentUserID(c)

	rv, err := h.Reviews.Submit(c.Request.Context(), input)
	if err != nil {
		if clientGone(err) {
			c.Abort()
			return
		}
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rv, "message": "Thank you for your review!"})
}
