package routes

import (
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, sign-in and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.GET("/login-selection", hb.LoginSelectionHandler)
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signin", hb.SignInHandler)
		api.POST("/signin/phone", hb.SignInPhoneHandler)
		api.GET("/google", hb.GoogleStartHandler)
		api.GET("/google/callback", hb.GoogleCallbackHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Authn))
		protected.POST("/signout", hb.SignOutHandler)
		protected.GET("/me", hb.MeHandler)
	}
}

// RegisterOnboardingRoutes registers the onboarding wizard endpoints.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.POST("", hb.StartOnboardingHandler)
		api.GET("/:sessionID", hb.GetOnboardingHandler)
		api.POST("/:sessionID/:action", hb.OnboardingActionHandler)
	}
}

// RegisterNavigationRoutes registers the tab bar endpoints. Anonymous
// callers are allowed; the guard decides where they may go.
func RegisterNavigationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/navigation")
	{
		api.Use(middleware.OptionalJWTAuthMiddleware(hb.Authn))
		api.GET("", hb.GetNavigationHandler)
		api.POST("/select", hb.SelectTabHandler)
		api.POST("/sync", hb.SyncLocationHandler)
	}
}

// RegisterBookingRoutes registers booking history endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Authn))
		api.GET("", hb.BookingHistoryHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.POST("/:id/reschedule", hb.RescheduleHandler)
		api.POST("/:id/review", hb.ReviewBookingHandler)
	}
}

// RegisterChatRoutes registers messaging endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chats")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Authn))
		api.GET("", hb.ListChatsHandler)
		api.GET("/online", hb.OnlineUsersHandler)
		api.GET("/:id", hb.GetThreadHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
	}
}

// RegisterUploadRoutes registers document upload endpoints.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Authn))
		api.POST("", hb.UploadFilesHandler)
		api.GET("", hb.ListUploadsHandler)
		api.GET("/:id", hb.GetUploadHandler)
		api.POST("/:id/retry", hb.RetryUploadHandler)
		api.DELETE("/:id", hb.RemoveUploadHandler)
	}
}

// RegisterSettingsRoutes registers account settings endpoints.
func RegisterSettingsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/settings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Authn))
		api.GET("", hb.GetSettingsHandler)
		api.PUT("", hb.UpdateSettingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes installs CORS and every route group on r.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", utils.SessionHeader},
		ExposeHeaders:   []string{"Content-Length", utils.SessionHeader},
		MaxAge:          12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterNavigationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
}
