package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"

	"frizo/margin_sdk/internal/margin"
)

var currencyCode = regexp.MustCompile("^[A-Z]{3}$")

// Config holds the application configuration.
type Config struct {
	// Logging configuration
	LogLevel string

	// Application configuration
	Environment string

	// Request defaults
	ReportingCurrency     string
	CalculationCurrency   string // empty means inferred by the service
	RequestType           string
	ApplyClientMultiplier bool
	ValuationDate         string // YYYY-MM-DD, empty means today
}

// Load loads the configuration from environment variables.
// Files are read with godotenv first; without files a missing .env is ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	config := &Config{
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		ReportingCurrency:     strings.ToUpper(getEnv("MARGIN_REPORTING_CURRENCY", "USD")),
		CalculationCurrency:   strings.ToUpper(getEnv("MARGIN_CALCULATION_CURRENCY", "")),
		RequestType:           getEnv("MARGIN_REQUEST_TYPE", margin.DefaultRequestType.String()),
		ApplyClientMultiplier: getEnvAsBool("MARGIN_APPLY_CLIENT_MULTIPLIER", false),
		ValuationDate:         getEnv("MARGIN_VALUATION_DATE", ""),
	}

	return config, nil
}

// Validate checks the request defaults.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ReportingCurrency, validation.Required, validation.Match(currencyCode)),
		validation.Field(&c.CalculationCurrency, validation.Match(currencyCode)),
		validation.Field(&c.RequestType, validation.Required, validation.By(func(value interface{}) error {
			_, err := margin.ParseRequestType(value.(string))
			return err
		})),
		validation.Field(&c.ValuationDate, validation.By(func(value interface{}) error {
			s := value.(string)
			if s == "" {
				return nil
			}
			if _, err := civil.ParseDate(s); err != nil {
				return errors.New("must be a date in YYYY-MM-DD format")
			}
			return nil
		})),
	)
}

// Type returns the configured request type.
func (c *Config) Type() (margin.RequestType, error) {
	return margin.ParseRequestType(c.RequestType)
}

// Date returns the configured valuation date, or today when none is set.
func (c *Config) Date(now time.Time) (civil.Date, error) {
	if c.ValuationDate == "" {
		return civil.DateOf(now), nil
	}
	return civil.ParseDate(c.ValuationDate)
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvAsBool gets an environment variable as bool with a default value.
func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
