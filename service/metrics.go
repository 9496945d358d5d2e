package service

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/ted"
)

// Pair outcomes used as the "outcome" label
const (
	outcomeOK        = "ok"
	outcomeExhausted = "budget_exceeded"
	outcomeInvalid   = "invalid_input"
	outcomeError     = "error"
)

var (
	// pairsTotal counts compared sentence pairs by outcome
	pairsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "udted_pairs_total",
		Help: "Total sentence pairs compared by outcome",
	}, []string{"outcome", "cost_model"})

	// pairDuration tracks engine wall time per pair
	pairDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "udted_pair_duration_seconds",
		Help:    "Distance computation time per sentence pair in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // 10µs to ~40s
	}, []string{"algorithm"})

	// expandedStates tracks how many search states A* expanded per pair
	expandedStates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "udted_search_expanded_states",
		Help:    "Search states expanded per sentence pair",
		Buckets: prometheus.ExponentialBuckets(1, 4, 14),
	})

	// treeNodes tracks the larger tree size of each pair
	treeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "udted_tree_nodes",
		Help:    "Node count of the larger tree in each sentence pair",
		Buckets: []float64{5, 10, 15, 20, 27, 35, 50, 75, 100},
	})
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ted.ErrBudgetExceeded):
		return outcomeExhausted
	case domain.HasCode(err, domain.ErrCodeInvalidInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func observePair(model string, nodes int, result *ted.Result, elapsed time.Duration, err error) {
	pairsTotal.WithLabelValues(outcomeOf(err), model).Inc()
	treeNodes.Observe(float64(nodes))
	if result == nil {
		return
	}
	pairDuration.WithLabelValues(string(result.Algorithm)).Observe(elapsed.Seconds())
	if result.Algorithm == ted.AlgorithmAStar {
		expandedStates.Observe(float64(result.Expanded))
	}
}

// PrometheusExporter implements the MetricsExporter interface
type PrometheusExporter struct {
	gatherer prometheus.Gatherer
}

// NewPrometheusExporter creates an exporter for the default registry
func NewPrometheusExporter() *PrometheusExporter {
	return &PrometheusExporter{gatherer: prometheus.DefaultGatherer}
}

// WriteTextfile writes all collected metrics to path in the text
// exposition format, suitable for the node exporter textfile collector.
func (e *PrometheusExporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.gatherer); err != nil {
		return domain.NewOutputError("failed to write metrics file", err)
	}
	return nil
}
