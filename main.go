package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	bookingRepo "medibook/database/repository/booking"
	chatRepo "medibook/database/repository/chat"
	reviewRepo "medibook/database/repository/review"
	sessionRepo "medibook/database/repository/session"
	userRepo "medibook/database/repository/user"
	"medibook/database/seed"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/auth"
	"medibook/services/booking"
	"medibook/services/chat"
	"medibook/services/navigation"
	"medibook/services/onboarding"
	"medibook/services/review"
	"medibook/services/storage"
	"medibook/services/upload"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	bookings bookingRepo.BookingRepository
	chats    chatRepo.ChatRepository
	users    userRepo.UserRepository
	reviews  reviewRepo.ReviewRepository
}

// loadRepositories serves the static collections or MongoDB, seeding an
// empty database from the same collections.
func loadRepositories(ctx context.Context, logger *zap.Logger) (*repositories, *mongo.Client) {
	if config.AppConfig.DataSource != "mongo" {
		logger.Info("using static data source")
		return &repositories{
			bookings: bookingRepo.NewStaticBookingRepo(seed.Bookings()),
			chats:    chatRepo.NewStaticChatRepo(seed.Chats(), seed.Messages(), seed.OnlineUsers()),
			users:    userRepo.NewMemoryUserRepo(),
			reviews:  reviewRepo.NewMemoryReviewRepo(),
		}, nil
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := database.DB()

	bookings, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		logger.Fatal("main: booking repository", zap.Error(err))
	}
	if err := bookings.SeedIfEmpty(ctx, seed.Bookings()); err != nil {
		logger.Warn("main: failed to seed bookings", zap.Error(err))
	}
	chats, err := chatRepo.NewMongoChatRepo(db)
	if err != nil {
		logger.Fatal("main: chat repository", zap.Error(err))
	}
	if err := chats.SeedIfEmpty(ctx, seed.Chats(), seed.Messages(), seed.OnlineUsers()); err != nil {
		logger.Warn("main: failed to seed chats", zap.Error(err))
	}
	users, err := userRepo.NewMongoUserRepo(db)
	if err != nil {
		logger.Fatal("main: user repository", zap.Error(err))
	}
	reviews, err := reviewRepo.NewMongoReviewRepo(db)
	if err != nil {
		logger.Fatal("main: review repository", zap.Error(err))
	}
	return &repositories{bookings: bookings, chats: chats, users: users, reviews: reviews}, database.MongoClient
}

func loadSessionStore(logger *zap.Logger) (sessionRepo.Store, *redis.Client) {
	if config.AppConfig.SessionStore != "redis" {
		logger.Info("using in-memory session store")
		return sessionRepo.NewMemoryStore(nil), nil
	}
	client, err := utils.GetSessionCacheClient()
	if err != nil {
		logger.Fatal("main: failed to connect session store", zap.Error(err))
	}
	return sessionRepo.NewRedisStore(client), client
}

func loadUploadService(logger *zap.Logger, rnd utils.RandomSource) (*upload.Service, bool) {
	cfg := config.AppConfig
	var transport upload.Transport = upload.SimulatedTransport{Rand: rnd, SuccessRate: cfg.UploadSuccessRate}
	stage := false
	if cfg.UploadBackend == "cloudinary" {
		cld, err := storage.NewCloudinaryTransport(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary transport", zap.Error(err))
		}
		transport, stage = cld, true
	}
	sim := upload.Simulator{Clock: utils.SystemClock(), Rand: rnd, Tick: cfg.UploadTick}
	return upload.NewService(sim, transport, cfg.UploadMaxBytes), stage
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.AppConfig.JWTSecret != "" {
		utils.SetSigningSecret(config.AppConfig.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set; using the development secret")
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	repos, mongoClient := loadRepositories(rootCtx, logger)
	sessions, redisClient := loadSessionStore(logger)
	cfg := config.AppConfig

	// services.
	rnd := utils.NewRandomSource(time.Now().UnixNano())
	authService := auth.NewService(repos.users, sessions, auth.NewGoogleJWKSVerifier(), auth.Options{
		TokenTTL:          cfg.TokenTTL,
		StateTTL:          cfg.OAuthStateTTL,
		GoogleClientID:    cfg.GoogleClientID,
		GoogleAuthURL:     cfg.GoogleAuthURL,
		GoogleRedirectURL: cfg.GoogleRedirectURL,
	})
	uploadService, stageUploads := loadUploadService(logger, rnd)

	var queueClient *asynq.Client
	var worker *cron.UploadWorker
	inline := upload.InlineDispatcher{Base: rootCtx, Process: uploadService.Process}
	if cfg.UploadDispatch == "queue" {
		queueClient = cron.NewQueueClient()
		worker = cron.InitUploadWorker(rootCtx, uploadService)
		uploadService.Dispatcher = upload.QueueDispatcher{Client: queueClient, Ready: worker.Running, Fallback: inline}
	} else {
		uploadService.Dispatcher = inline
	}
	uploadService.StallAfter = cfg.UploadStallAfter
	uploadService.Retention = cfg.UploadRetention
	go uploadService.RunJanitor(rootCtx, time.Minute)

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Auth:         authService,
		Onboarding:   onboarding.NewService(sessions, seed.Steps, cfg.SessionTTL),
		Navigation:   navigation.NewService(sessions, cfg.SessionTTL),
		Bookings:     booking.NewHistoryService(repos.bookings),
		Reviews:      review.NewService(repos.bookings, repos.reviews, utils.SystemClock(), cfg.ReviewConfirmDelay),
		Chats:        chat.NewService(repos.chats, utils.SystemClock()),
		Uploads:      uploadService,
		StageUploads: stageUploads,
	})

	utils.StartHealthMonitor(rootCtx, redisClient, mongoClient, time.Minute)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(utils.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	// Inline uploads still running observe this and end in error.
	stop()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		queueClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
	logger.Sync()
}
