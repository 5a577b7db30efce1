package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/reviewcarousel/pkg/config"
	"github.com/utafrali/reviewcarousel/pkg/tracing"
)

// Config holds configuration for both the review API server and the
// carousel runner.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"REVIEWS_HTTP_PORT" envDefault:"5000"`

	// Base URL for uploaded image access (used by memory storage).
	BaseURL string `env:"REVIEWS_BASE_URL" envDefault:""`

	// SeedDemo pre-fills the in-memory store with sample reviews.
	SeedDemo bool `env:"REVIEWS_SEED_DEMO" envDefault:"true"`

	// CORS
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Carousel
	ReviewsEndpoint  string        `env:"REVIEWS_ENDPOINT" envDefault:"http://localhost:5000/reviews"`
	VisibleCount     int           `env:"CAROUSEL_VISIBLE_COUNT" envDefault:"3"`
	AllowRepeat      bool          `env:"CAROUSEL_ALLOW_REPEAT" envDefault:"false"`
	RotationInterval time.Duration `env:"CAROUSEL_ROTATION_INTERVAL" envDefault:"4s"`

	// Review API client
	ClientTimeout    time.Duration `env:"REVIEWS_CLIENT_TIMEOUT" envDefault:"10s"`
	ClientMaxRetries int           `env:"REVIEWS_CLIENT_MAX_RETRIES" envDefault:"2"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load reviews config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port %d", c.HTTPPort))
	}
	if u, err := url.Parse(c.ReviewsEndpoint); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("REVIEWS_ENDPOINT %q must be an absolute URL", c.ReviewsEndpoint))
	}
	if c.VisibleCount < 1 {
		errs = append(errs, fmt.Errorf("CAROUSEL_VISIBLE_COUNT must be at least 1, got %d", c.VisibleCount))
	}
	if c.RotationInterval <= 0 {
		errs = append(errs, fmt.Errorf("CAROUSEL_ROTATION_INTERVAL must be positive, got %s", c.RotationInterval))
	}
	if c.ClientTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REVIEWS_CLIENT_TIMEOUT must be positive, got %s", c.ClientTimeout))
	}
	if c.ClientMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("REVIEWS_CLIENT_MAX_RETRIES must not be negative, got %d", c.ClientMaxRetries))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be within [0,1], got %g", c.OTELSampleRate))
	}

	return errors.Join(errs...)
}

// PublicBaseURL returns BaseURL, defaulting to the local server address.
func (c *Config) PublicBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://localhost:%d", c.HTTPPort)
}

// Tracing returns the tracer configuration for service.
func (c *Config) Tracing(service string) tracing.Config {
	tc := tracing.DefaultConfig(service)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	tc.Enabled = c.OTELEnabled
	return tc
}
