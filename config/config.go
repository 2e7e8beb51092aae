package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ProviderEmailJS forwards submissions to the EmailJS REST API
	ProviderEmailJS = "emailjs"
	// ProviderResend sends the intake email through Resend
	ProviderResend = "resend"

	defaultEmailJSURL   = "https://api.emailjs.com/api/v1.0/email/send"
	defaultContactInbox = "info@momentumlegalpc.com"
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Contact endpoint
	AllowedOrigins    []string // Empty means every origin is accepted
	ContactInbox      string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	// Email delivery
	EmailProvider   string
	EmailTestMode   bool // When true, intake emails are logged instead of sent
	ProviderTimeout time.Duration
	// EmailJS
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSUserID     string
	EmailJSPrivateKey string
	EmailJSURL        string
	// Resend
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	// Logging
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		AppURL:            strings.TrimRight(getEnv("APP_URL", "https://momentumlegalpc.com"), "/"),
		AllowedOrigins:    ParseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		ContactInbox:      getEnv("CONTACT_INBOX", defaultContactInbox),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 5),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderEmailJS)),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", false),
		ProviderTimeout:   getEnvDuration("PROVIDER_TIMEOUT", 15*time.Second),
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSUserID:     os.Getenv("EMAILJS_USER_ID"),
		EmailJSPrivateKey: os.Getenv("EMAILJS_PRIVATE_KEY"),
		EmailJSURL:        getEnv("EMAILJS_API_URL", defaultEmailJSURL),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		EmailFrom:         getEnv("EMAIL_FROM", "website@momentumlegalpc.com"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Momentum Legal Website"),
		LogFile:           os.Getenv("LOG_FILE"),
		LogMaxSizeMB:      getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:     getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays:     getEnvInt("LOG_MAX_AGE_DAYS", 30),
	}
}

// ParseOrigins splits a comma-separated allow-list, dropping blank entries.
func ParseOrigins(raw string) []string {
	origins := []string{}
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// MissingEmailJSKeys returns the names of the unset EmailJS identifiers
func (c *Config) MissingEmailJSKeys() []string {
	var missing []string
	if c.EmailJSServiceID == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.EmailJSTemplateID == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.EmailJSUserID == "" {
		missing = append(missing, "EMAILJS_USER_ID")
	}
	return missing
}

// MissingDeliveryKeys returns the unset settings required by the configured provider
func (c *Config) MissingDeliveryKeys() []string {
	if c.EmailProvider == ProviderResend {
		if c.ResendAPIKey == "" {
			return []string{"RESEND_API_KEY"}
		}
		return nil
	}
	return c.MissingEmailJSKeys()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
