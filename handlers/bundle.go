package handlers

import (
	"medibook/middleware"
	"medibook/services/auth"
	"medibook/services/booking"
	"medibook/services/chat"
	"medibook/services/navigation"
	"medibook/services/onboarding"
	"medibook/services/review"
	"medibook/services/upload"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Authn middleware.Authenticator

	Health gin.HandlerFunc

	// Auth endpoints
	LoginSelectionHandler gin.HandlerFunc
	SignUpHandler         gin.HandlerFunc
	SignInHandler         gin.HandlerFunc
	SignInPhoneHandler    gin.HandlerFunc
	GoogleStartHandler    gin.HandlerFunc
	GoogleCallbackHandler gin.HandlerFunc
	SignOutHandler        gin.HandlerFunc
	MeHandler             gin.HandlerFunc

	// Onboarding endpoints
	StartOnboardingHandler  gin.HandlerFunc
	GetOnboardingHandler    gin.HandlerFunc
	OnboardingActionHandler gin.HandlerFunc

	// Navigation endpoints
	GetNavigationHandler gin.HandlerFunc
	SelectTabHandler     gin.HandlerFunc
	SyncLocationHandler  gin.HandlerFunc

	// Booking endpoints
	BookingHistoryHandler gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc
	RescheduleHandler     gin.HandlerFunc
	ReviewBookingHandler  gin.HandlerFunc

	// Chat endpoints
	ListChatsHandler   gin.HandlerFunc
	OnlineUsersHandler gin.HandlerFunc
	GetThreadHandler   gin.HandlerFunc
	SendMessageHandler gin.HandlerFunc

	// Upload endpoints
	UploadFilesHandler  gin.HandlerFunc
	ListUploadsHandler  gin.HandlerFunc
	GetUploadHandler    gin.HandlerFunc
	RetryUploadHandler  gin.HandlerFunc
	RemoveUploadHandler gin.HandlerFunc

	// Settings endpoints
	GetSettingsHandler    gin.HandlerFunc
	UpdateSettingsHandler gin.HandlerFunc
}

// Services are the dependencies the handlers are built from.
type Services struct {
	Auth       *auth.Service
	Onboarding *onboarding.Service
	Navigation *navigation.Service
	Bookings   booking.HistoryService
	Reviews    *review.Service
	Chats      *chat.Service
	Uploads    *upload.Service
	// StageUploads keeps a copy of uploaded files for transports that read them.
	StageUploads bool
}

// NewHandlerBundle builds every handler and assembles the bundle.
func NewHandlerBundle(s Services) *HandlerBundle {
	authHandler := NewAuthHandler(s.Auth)
	onboardingHandler := NewOnboardingHandler(s.Onboarding)
	navigationHandler := NewNavigationHandler(s.Navigation)
	bookingHandler := NewBookingHandler(s.Bookings, s.Reviews)
	chatHandler := NewChatHandler(s.Chats)
	uploadHandler := NewUploadHandler(s.Uploads, s.StageUploads)
	settingsHandler := NewSettingsHandler()

	return &HandlerBundle{
		Authn:  s.Auth,
		Health: HealthHandler,

		LoginSelectionHandler: authHandler.LoginSelectionHandler,
		SignUpHandler:         authHandler.SignUpHandler,
		SignInHandler:         authHandler.SignInHandler,
		SignInPhoneHandler:    authHandler.SignInPhoneHandler,
		GoogleStartHandler:    authHandler.GoogleStartHandler,
		GoogleCallbackHandler: authHandler.GoogleCallbackHandler,
		SignOutHandler:        authHandler.SignOutHandler,
		MeHandler:             authHandler.MeHandler,

		StartOnboardingHandler:  onboardingHandler.StartOnboardingHandler,
		GetOnboardingHandler:    onboardingHandler.GetOnboardingHandler,
		OnboardingActionHandler: onboardingHandler.OnboardingActionHandler,

		GetNavigationHandler: navigationHandler.GetNavigationHandler,
		SelectTabHandler:     navigationHandler.SelectTabHandler,
		SyncLocationHandler:  navigationHandler.SyncLocationHandler,

		BookingHistoryHandler: bookingHandler.BookingHistoryHandler,
		GetBookingHandler:     bookingHandler.GetBookingHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,
		RescheduleHandler:     bookingHandler.RescheduleHandler,
		ReviewBookingHandler:  bookingHandler.ReviewBookingHandler,

		ListChatsHandler:   chatHandler.ListChatsHandler,
		OnlineUsersHandler: chatHandler.OnlineUsersHandler,
		GetThreadHandler:   chatHandler.GetThreadHandler,
		SendMessageHandler: chatHandler.SendMessageHandler,

		UploadFilesHandler:  uploadHandler.UploadFilesHandler,
		ListUploadsHandler:  uploadHandler.ListUploadsHandler,
		GetUploadHandler:    uploadHandler.GetUploadHandler,
		RetryUploadHandler:  uploadHandler.RetryUploadHandler,
		RemoveUploadHandler: uploadHandler.RemoveUploadHandler,

		GetSettingsHandler:    settingsHandler.GetSettingsHandler,
		UpdateSettingsHandler: settingsHandler.UpdateSettingsHandler,
	}
}
