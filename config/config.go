package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Data source: "static" serves the seeded collections, "mongo" reads DATABASE_URL.
	DataSource   string `mapstructure:"DATA_SOURCE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session store: "memory" or "redis".
	SessionStore   string        `mapstructure:"SESSION_STORE"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int           `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`

	// Uploads.
	UploadBackend     string        `mapstructure:"UPLOAD_BACKEND"`
	UploadDispatch    string        `mapstructure:"UPLOAD_DISPATCH"`
	UploadMaxBytes    int64         `mapstructure:"UPLOAD_MAX_BYTES"`
	UploadSuccessRate float64       `mapstructure:"UPLOAD_SUCCESS_RATE"`
	UploadTick        time.Duration `mapstructure:"UPLOAD_TICK"`
	UploadStallAfter  time.Duration `mapstructure:"UPLOAD_STALL_AFTER"`
	UploadRetention   time.Duration `mapstructure:"UPLOAD_RETENTION"`

	ReviewConfirmDelay time.Duration `mapstructure:"REVIEW_CONFIRM_DELAY"`

	// Cloudinary credentials, only read when UPLOAD_BACKEND=cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Google sign-in.
	GoogleClientID    string        `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleAuthURL     string        `mapstructure:"GOOGLE_AUTH_URL"`
	GoogleRedirectURL string        `mapstructure:"GOOGLE_REDIRECT_URL"`
	OAuthStateTTL     time.Duration `mapstructure:"OAUTH_STATE_TTL"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATA_SOURCE", "static")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "medibook")
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("UPLOAD_BACKEND", "simulated")
	viper.SetDefault("UPLOAD_DISPATCH", "inline")
	viper.SetDefault("UPLOAD_MAX_BYTES", 25*1024*1024)
	viper.SetDefault("UPLOAD_SUCCESS_RATE", 0.7)
	viper.SetDefault("UPLOAD_TICK", "200ms")
	viper.SetDefault("UPLOAD_STALL_AFTER", "5m")
	viper.SetDefault("UPLOAD_RETENTION", "24h")
	viper.SetDefault("REVIEW_CONFIRM_DELAY", "1s")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback")
	viper.SetDefault("OAUTH_STATE_TTL", "10m")
}

func LoadConfig() {
	// A local .env file is optional; real deployments use the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
