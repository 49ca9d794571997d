package fraud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_analyses_total",
			Help: "Total number of campaign fraud analyses by resulting risk level",
		},
		[]string{"risk_level"},
	)

	analyzerFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_analyzer_fallbacks_total",
			Help: "Analyzer failures degraded to fallback sub-scores",
		},
		[]string{"analyzer"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fraud_analysis_duration_seconds",
			Help:    "Campaign fraud analysis duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
