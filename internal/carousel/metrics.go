package carousel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rotationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carousel_rotations_total",
			Help: "Total number of carousel rotations by trigger",
		},
		[]string{"carousel", "event"},
	)

	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carousel_loads_total",
			Help: "Total number of review loads by result",
		},
		[]string{"carousel", "result"},
	)

	renderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carousel_render_errors_total",
			Help: "Total number of render target failures",
		},
		[]string{"carousel"},
	)

	reviewsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "carousel_reviews",
			Help: "Number of reviews currently loaded",
		},
		[]string{"carousel"},
	)
)
