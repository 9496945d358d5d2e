package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/breaklikeafish/UD-TED/domain"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func endedSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range recorder.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not recorded", "no ended span named %q", name)
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_BatchEvaluatorSpan(t *testing.T) {
	recorder := recordSpans(t)

	req := batchRequest()
	req.Workers = 2
	_, err := NewBatchEvaluator(nil).Evaluate(context.Background(), readInline(t, leftCorpus), readInline(t, rightCorpus), req)
	require.NoError(t, err)

	span := endedSpan(t, recorder, "service.BatchEvaluator.Evaluate")
	assert.Equal(t, codes.Ok, span.Status().Code)

	for key, want := range map[string]int64{"pairs": 3, "workers": 2, "compared": 3, "failed": 0} {
		value, ok := spanAttr(span, key)
		require.True(t, ok, "attribute %q", key)
		assert.Equal(t, want, value.AsInt64(), "attribute %q", key)
	}
}

func TestTracing_ComparePairSpan(t *testing.T) {
	recorder := recordSpans(t)

	_, err := NewDistanceService(nil).ComparePair(context.Background(),
		inlineCompareRequest(domain.SentenceSelector{ID: "s2"}, domain.SentenceSelector{ID: "s2"}))
	require.NoError(t, err)

	span := endedSpan(t, recorder, "service.DistanceService.ComparePair")
	assert.Equal(t, codes.Ok, span.Status().Code)

	distance, ok := spanAttr(span, "distance")
	require.True(t, ok)
	assert.Equal(t, 1.0, distance.AsFloat64())

	source, ok := spanAttr(span, "source_sentence")
	require.True(t, ok)
	assert.Contains(t, source.AsString(), "s2")
}

func TestTracing_ComparePairErrorSpan(t *testing.T) {
	recorder := recordSpans(t)

	_, err := NewDistanceService(nil).ComparePair(context.Background(),
		inlineCompareRequest(domain.SentenceSelector{ID: "missing"}, domain.SentenceSelector{ID: "s1"}))
	require.Error(t, err)

	span := endedSpan(t, recorder, "service.DistanceService.ComparePair")
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.NotEmpty(t, span.Events(), "the error is recorded as a span event")
}

func TestStartFileTracing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")

	shutdown, err := StartFileTracing(path)
	require.NoError(t, err)

	_, err = NewBatchEvaluator(nil).Evaluate(context.Background(), readInline(t, leftCorpus), readInline(t, rightCorpus), batchRequest())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "service.BatchEvaluator.Evaluate")
	assert.Contains(t, string(data), `"Key":"pairs"`)
}

func TestStartFileTracing_BadPath(t *testing.T) {
	_, err := StartFileTracing(filepath.Join(t.TempDir(), "missing", "spans.json"))
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))
}
