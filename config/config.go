package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	BaseDomain  string `mapstructure:"BASE_DOMAIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Authentication provider: "local", "auth0" or "sso".
	AuthProvider     string `mapstructure:"AUTH_PROVIDER"`
	AuthIssuerURL    string `mapstructure:"AUTH_ISSUER_URL"`
	AuthClientID     string `mapstructure:"AUTH_CLIENT_ID"`
	AuthClientSecret string `mapstructure:"AUTH_CLIENT_SECRET"`

	// Billing.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripePriceID       string `mapstructure:"STRIPE_PRICE_ID"`

	// Licensing server.
	LicensingServerURL string `mapstructure:"LICENSING_SERVER_URL"`
	LicensingAPIKey    string `mapstructure:"LICENSING_API_KEY"`

	// Agent assignment scoring policy (see services/scheduling).
	AssignAvailabilityHourBonus  float64 `mapstructure:"ASSIGN_AVAILABILITY_HOUR_BONUS"`
	AssignMeetingTypeBonus       float64 `mapstructure:"ASSIGN_MEETING_TYPE_BONUS"`
	AssignPreferredLoadThreshold int     `mapstructure:"ASSIGN_PREFERRED_LOAD_THRESHOLD"`

	// Cloudinary (branding asset uploads).
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Firebase service account file for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BASE_DOMAIN", "bcal.io")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("AUTH_PROVIDER", "local")
	viper.SetDefault("ASSIGN_AVAILABILITY_HOUR_BONUS", 0.1)
	viper.SetDefault("ASSIGN_MEETING_TYPE_BONUS", 0.5)
	viper.SetDefault("ASSIGN_PREFERRED_LOAD_THRESHOLD", 5)

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
