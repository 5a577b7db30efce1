package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs sets multiple env vars for the duration of the test.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:5000/reviews", cfg.ReviewsEndpoint)
	assert.Equal(t, 3, cfg.VisibleCount)
	assert.False(t, cfg.AllowRepeat)
	assert.Equal(t, 4*time.Second, cfg.RotationInterval)
	assert.Equal(t, 10*time.Second, cfg.ClientTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.OTELEnabled)
	assert.True(t, cfg.SeedDemo)
}

func TestLoad_Overrides(t *testing.T) {
	setEnvs(t, map[string]string{
		"REVIEWS_HTTP_PORT":          "8080",
		"REVIEWS_ENDPOINT":           "https://api.example.com/v1/reviews",
		"CAROUSEL_VISIBLE_COUNT":     "1",
		"CAROUSEL_ALLOW_REPEAT":      "true",
		"CAROUSEL_ROTATION_INTERVAL": "1500ms",
		"CORS_ALLOWED_ORIGINS":       "https://a.example,https://b.example",
		"OTEL_SAMPLE_RATE":           "0.25",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://api.example.com/v1/reviews", cfg.ReviewsEndpoint)
	assert.Equal(t, 1, cfg.VisibleCount)
	assert.True(t, cfg.AllowRepeat)
	assert.Equal(t, 1500*time.Millisecond, cfg.RotationInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.InDelta(t, 0.25, cfg.OTELSampleRate, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr string
	}{
		{name: "port zero", envs: map[string]string{"REVIEWS_HTTP_PORT": "0"}, wantErr: "invalid HTTP port"},
		{name: "port too large", envs: map[string]string{"REVIEWS_HTTP_PORT": "70000"}, wantErr: "invalid HTTP port"},
		{name: "relative endpoint", envs: map[string]string{"REVIEWS_ENDPOINT": "/reviews"}, wantErr: "must be an absolute URL"},
		{name: "zero visible", envs: map[string]string{"CAROUSEL_VISIBLE_COUNT": "0"}, wantErr: "CAROUSEL_VISIBLE_COUNT"},
		{name: "negative interval", envs: map[string]string{"CAROUSEL_ROTATION_INTERVAL": "-1s"}, wantErr: "CAROUSEL_ROTATION_INTERVAL"},
		{name: "negative retries", envs: map[string]string{"REVIEWS_CLIENT_MAX_RETRIES": "-1"}, wantErr: "REVIEWS_CLIENT_MAX_RETRIES"},
		{name: "sample rate", envs: map[string]string{"OTEL_SAMPLE_RATE": "1.5"}, wantErr: "OTEL_SAMPLE_RATE"},
		{name: "unparsable duration", envs: map[string]string{"CAROUSEL_ROTATION_INTERVAL": "soon"}, wantErr: "load reviews config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, tt.envs)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{HTTPPort: 0, ReviewsEndpoint: "", VisibleCount: 0, RotationInterval: 0, ClientTimeout: time.Second}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
	assert.Contains(t, err.Error(), "REVIEWS_ENDPOINT")
	assert.Contains(t, err.Error(), "CAROUSEL_VISIBLE_COUNT")
	assert.Contains(t, err.Error(), "CAROUSEL_ROTATION_INTERVAL")
}

func TestPublicBaseURL(t *testing.T) {
	cfg := &Config{HTTPPort: 5000}
	assert.Equal(t, "http://localhost:5000", cfg.PublicBaseURL())

	cfg.BaseURL = "https://cdn.example"
	assert.Equal(t, "https://cdn.example", cfg.PublicBaseURL())
}

func TestTracing(t *testing.T) {
	cfg := &Config{Environment: "staging", OTELEnabled: true, OTELEndpoint: "otel:4318", OTELSampleRate: 0.5}

	tc := cfg.Tracing("review-api")

	assert.Equal(t, "review-api", tc.ServiceName)
	assert.Equal(t, "staging", tc.Environment)
	assert.Equal(t, "otel:4318", tc.OTLPEndpoint)
	assert.True(t, tc.Enabled)
	assert.InDelta(t, 0.5, tc.SampleRate, 1e-9)
}
