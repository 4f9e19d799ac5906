// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls counts MCP tool invocations by tool name
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claims_fraud_tool_calls_total",
		Help: "Total MCP tool calls by tool",
	}, []string{"tool"})

	// AnalysisDuration tracks analysis latency, source round trips included
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "claims_fraud_analysis_duration_seconds",
		Help:    "Analysis duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"analysis"})

	// SourceErrors counts failed graph source operations
	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claims_fraud_source_errors_total",
		Help: "Total graph source errors by operation",
	}, []string{"operation"})
)

// ObserveAnalysis records the time elapsed since start for the named analysis.
//
//	defer metrics.ObserveAnalysis("communities", time.Now())
func ObserveAnalysis(analysis string, start time.Time) {
	AnalysisDuration.WithLabelValues(analysis).Observe(time.Since(start).Seconds())
}
