package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server config
	Server ServerConfig

	// Scoring service config
	Scoring ScoringConfig

	// CSRF and CORS config
	Security SecurityConfig

	// Logging config
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `env:"SERVER_ADDRESS" validate:"required"`
	Environment  string        `env:"APP_ENV" validate:"oneof=development staging production"`
	BaseURL      string        `env:"BASE_URL" validate:"required,url"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" validate:"gt=0"`
}

// ScoringConfig holds the external scoring service settings.
// A zero Timeout keeps the HTTP transport default.
type ScoringConfig struct {
	URL     string        `env:"SCORING_SERVICE_URL" validate:"required,url"`
	Timeout time.Duration `env:"SCORING_TIMEOUT" validate:"gte=0"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	CSRFSecret         string   `env:"CSRF_SECRET" validate:"required,min=32"`
	CSRFTrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" validate:"min=1"`
	SecureCookies      bool     // true in production
}

// LoggingConfig selects the zap logger level and encoding.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" validate:"oneof=console json"`
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func Load() (*Config, error) {
	// .env is optional; deployed environments set real variables
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []error

	cfg.Server = ServerConfig{
		Address:     getEnvOrDefault("SERVER_ADDRESS", ":8080"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
		BaseURL:     getEnvOrDefault("BASE_URL", "http://localhost:8080"),
	}
	cfg.Server.ReadTimeout = getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second, &errs)
	cfg.Server.WriteTimeout = getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second, &errs)
	cfg.Server.IdleTimeout = getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second, &errs)

	cfg.Scoring = ScoringConfig{
		URL:     getEnvOrDefault("SCORING_SERVICE_URL", "https://phisher-ai.onrender.com"),
		Timeout: getDurationOrDefault("SCORING_TIMEOUT", 0, &errs),
	}

	cfg.Security = SecurityConfig{
		CSRFSecret:         os.Getenv("CSRF_SECRET"),
		CSRFTrustedOrigins: strings.Fields(os.Getenv("CSRF_TRUSTED_ORIGINS")),
		CORSAllowedOrigins: strings.Fields(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		SecureCookies:      cfg.IsProduction(),
	}

	cfg.Logging = LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the struct tags and reports every failure by its
// environment variable name.
func (c *Config) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fieldError(fe))
	}
	return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Errorf("%s must not be empty", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s (got: %v)", fe.Field(), fe.Param(), fe.Value())
	case "url":
		return fmt.Errorf("%s must be a valid URL (got: %v)", fe.Field(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// getEnvOrDefault returns the .env value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return defaultValue
	}
	return duration
}

// MustLoad is like Load but panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
