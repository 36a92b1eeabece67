package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	defaultPort           = "8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTExpiryHours = 24
	defaultBackendTimeout = "15s"
	defaultReminderCron   = "0 9 * * *"
	defaultCleanupCron    = "@hourly"
)

// AppConfig holds everything the dashboard reads from the environment.
type AppConfig struct {
	AppEnv string
	Port   string

	DBDriver string
	DBURL    string

	BackendURL       string
	LoginUpstreamURL string
	BackendTimeout   time.Duration

	JWTSecret      string
	JWTExpiryHours int
	SessionSealKey string
	CookieSecure   bool
	AllowedOrigins []string

	LogMode string
	LogFile string

	ReminderCron string
	CleanupCron  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string

	OTelEndpoint string
	OTelInsecure bool

	// Location is the salon's wall clock for date filters, wizard slots,
	// analytics periods and reminders.
	Location *time.Location
}

// Load reads the configuration from environment variables. Call godotenv
// before Load if a .env file should be honoured.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppEnv:               strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:                 getEnv("PORT", defaultPort),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:                os.Getenv("DB_URL"),
		BackendURL:           strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		LoginUpstreamURL:     os.Getenv("LOGIN_UPSTREAM_URL"),
		JWTSecret:            getEnv("JWT_SECRET", defaultJWTSecret),
		SessionSealKey:       os.Getenv("SESSION_SEAL_KEY"),
		CookieSecure:         parseBool(os.Getenv("COOKIE_SECURE")),
		LogMode:              getEnv("LOG_MODE", "development"),
		LogFile:              os.Getenv("LOG_FILE"),
		ReminderCron:         getEnv("REMINDER_CRON", defaultReminderCron),
		CleanupCron:          getEnv("CLEANUP_CRON", defaultCleanupCron),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		OTelEndpoint:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelInsecure:         parseBool(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")),
		Location:             time.Local,
	}

	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_TIMEZONE value %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	cfg.JWTExpiryHours = defaultJWTExpiryHours
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		h, err := strconv.Atoi(env)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS value %q: %w", env, err)
		}
		cfg.JWTExpiryHours = h
	}

	timeout := getEnv("BACKEND_TIMEOUT", defaultBackendTimeout)
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT value %q: %w", timeout, err)
	}
	cfg.BackendTimeout = d

	if cfg.LoginUpstreamURL == "" && cfg.BackendURL != "" {
		cfg.LoginUpstreamURL = cfg.BackendURL + "/api/auth/login"
	}
	if cfg.SessionSealKey == "" {
		cfg.SessionSealKey = cfg.JWTSecret
	}

	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL must be set")
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
	}
	if c.JWTExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be > 0")
	}
	if !c.IsDev() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set and not default when APP_ENV is %q", c.AppEnv)
	}
	if c.IsProduction() && !c.CookieSecure {
		return fmt.Errorf("in production COOKIE_SECURE must be true")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.AppEnv == "dev"
}

func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

// SessionTTL is how long a dashboard session and its cookie live.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *AppConfig) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
