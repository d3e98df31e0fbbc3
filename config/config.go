package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development)
	// In production, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		// .env file not found is not an error - it might be on production
		// Environment variables are already available in os.Getenv()
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - file uploads will fail")
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("WARNING: GOOGLE_APPLICATION_CREDENTIALS not set - Firebase features may not work")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set")
	}
	if os.Getenv("WHATSAPP_NUMBER") == "" {
		log.Println("WARNING: WHATSAPP_NUMBER not set - whatsapp banner actions will open an empty chat")
	}
	if feed := GetEnv("CHANGE_FEED", FeedMemory); feed == FeedRedis && os.Getenv("REDIS_URL") == "" {
		log.Println("WARNING: CHANGE_FEED=redis but REDIS_URL not set - falling back to localhost")
	}
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("WARNING: SMTP_HOST not set - email notifications will not work")
	}
	if os.Getenv("SMTP_PORT") == "" {
		log.Println("WARNING: SMTP_PORT not set - email notifications will not work")
	}
	if os.Getenv("SMTP_FROM") == "" {
		log.Println("WARNING: SMTP_FROM not set - email notifications will not work")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Change feed drivers accepted in CHANGE_FEED.
const (
	FeedMemory   = "memory"
	FeedPostgres = "postgres"
	FeedRedis    = "redis"
)

// GetDuration parses key as a Go duration ("30s", "2m"). Unset or invalid
// values yield defaultValue.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("WARNING: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// Promotions groups the settings of the visibility pipeline.
type Promotions struct {
	Timezone           string
	ChangeFeed         string
	RedisURL           string
	BannerPollInterval time.Duration
	OfferPollInterval  time.Duration
	WhatsAppNumber     string
	WhatsAppMessage    string
	PopupSessionTTL    time.Duration
}

func LoadPromotions() Promotions {
	return Promotions{
		Timezone:           GetEnv("STORE_TIMEZONE", "Asia/Kolkata"),
		ChangeFeed:         GetEnv("CHANGE_FEED", FeedMemory),
		RedisURL:           GetEnv("REDIS_URL", "redis://localhost:6379/0"),
		BannerPollInterval: GetDuration("BANNER_POLL_INTERVAL", 30*time.Second),
		OfferPollInterval:  GetDuration("OFFER_POLL_INTERVAL", 60*time.Second),
		WhatsAppNumber:     os.Getenv("WHATSAPP_NUMBER"),
		WhatsAppMessage:    os.Getenv("WHATSAPP_MESSAGE"),
		PopupSessionTTL:    GetDuration("POPUP_SESSION_TTL", 12*time.Hour),
	}
}
