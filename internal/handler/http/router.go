package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/reviewcarousel/internal/service"
	"github.com/utafrali/reviewcarousel/pkg/health"
	"github.com/utafrali/reviewcarousel/pkg/middleware"
)

// ServiceName labels metrics and spans of the review API.
const ServiceName = "reviews"

// NewRouter creates a chi router with all review endpoint routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	cors middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cors))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(ServiceName, "/health/live", "/health/ready", "/metrics"))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/reviews", func(r chi.Router) {
		r.Use(RequireMultipart)

		r.Get("/", reviewHandler.ListReviews)
		r.Post("/", reviewHandler.CreateReview)
	})
	r.Get("/media/*", reviewHandler.GetImage)

	return r
}
