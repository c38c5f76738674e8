package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Durable device storage: "memory", "redis" or "mongo".
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisStoreDB  int    `mapstructure:"REDIS_STORE_DB"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Health advice.
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string        `mapstructure:"GEMINI_MODEL"`
	AdviceCacheTTL time.Duration `mapstructure:"ADVICE_CACHE_TTL"`

	// Payments: "simulated" or "stripe".
	PaymentGateway      string `mapstructure:"PAYMENT_GATEWAY"`
	PaymentDelayMS      int    `mapstructure:"PAYMENT_DELAY_MS"`
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripePaymentMethod string `mapstructure:"STRIPE_PAYMENT_METHOD"`
	Currency            string `mapstructure:"CURRENCY"`

	// Booking ids: "uuid" or "legacy" (SV + 5 digits).
	BookingIDScheme string `mapstructure:"BOOKING_ID_SCHEME"`

	// Notifications: "log" or "fcm".
	Notifier            string `mapstructure:"NOTIFIER"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_STORE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "sv_diagnostic")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ADVICE_CACHE_TTL", "1h")
	viper.SetDefault("PAYMENT_GATEWAY", "simulated")
	viper.SetDefault("PAYMENT_DELAY_MS", 2500)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_PAYMENT_METHOD", "pm_card_visa")
	viper.SetDefault("CURRENCY", "inr")
	viper.SetDefault("BOOKING_ID_SCHEME", "uuid")
	viper.SetDefault("NOTIFIER", "log")
	viper.SetDefault("FIREBASE_CREDENTIALS", "")
}

// Load reads config.yaml (if present) and the environment into a Config.
func Load() (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// A local .env fills in variables the environment does not already set.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}
	// Automatically use environment variables where available.
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits the process if it cannot.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
