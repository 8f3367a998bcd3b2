package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// retryAttemptsMetric counts individual retry sleeps per operation.
	retryAttemptsMetric = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migralog_storage_retry_attempts_total",
			Help: "Total number of storage operation retries",
		},
		[]string{"operation"},
	)

	// retryExhaustedMetric counts operations that failed after the full
	// retry budget.
	retryExhaustedMetric = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migralog_storage_retry_exhausted_total",
			Help: "Total number of storage operations that exhausted their retry budget",
		},
		[]string{"operation"},
	)

	// storageFaultsMetric counts classified storage faults.
	storageFaultsMetric = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migralog_storage_faults_total",
			Help: "Total number of storage faults by classification",
		},
		[]string{"class"},
	)
)
