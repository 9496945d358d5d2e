package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breaklikeafish/UD-TED/domain"
)

func TestMetrics_PairOutcomes(t *testing.T) {
	ok := pairsTotal.WithLabelValues(outcomeOK, "deprel")
	exhausted := pairsTotal.WithLabelValues(outcomeExhausted, "none")
	okBefore, exhaustedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(exhausted)

	req := inlineCompareRequest(domain.SentenceSelector{ID: "s1"}, domain.SentenceSelector{ID: "s1"})
	req.Engine.CompareDeprel = true
	_, err := NewDistanceService(nil).ComparePair(context.Background(), req)
	require.NoError(t, err)

	req = inlineCompareRequest(domain.SentenceSelector{ID: "s2"}, domain.SentenceSelector{ID: "s2"})
	req.Engine.Algorithm = "astar"
	req.Engine.MaxExpanded = 1
	_, err = NewDistanceService(nil).ComparePair(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, exhaustedBefore+1, testutil.ToFloat64(exhausted))
}

func TestPrometheusExporter_WriteTextfile(t *testing.T) {
	pairsTotal.WithLabelValues(outcomeOK, "none").Inc()
	path := filepath.Join(t.TempDir(), "udted.prom")

	require.NoError(t, NewPrometheusExporter().WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "udted_pairs_total")
	assert.Contains(t, string(data), "udted_tree_nodes")
}

func TestPrometheusExporter_BadPath(t *testing.T) {
	err := NewPrometheusExporter().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))
}
