package service

import (
	"context"
	"log"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
	"github.com/breaklikeafish/UD-TED/internal/ted"
	"github.com/breaklikeafish/UD-TED/internal/version"
)

// BatchEvaluatorImpl implements the BatchService interface with a bounded
// pool of workers writing into indexed result slots.
type BatchEvaluatorImpl struct {
	progress domain.ProgressManager
}

// NewBatchEvaluator creates a new batch evaluator. progress may be nil.
func NewBatchEvaluator(progress domain.ProgressManager) *BatchEvaluatorImpl {
	return &BatchEvaluatorImpl{progress: progress}
}

// Evaluate compares left[i] with right[i] for every position present in
// both corpora. Pairs that fail are recorded with their error and left out
// of the mean. Cancelling ctx stops dispatching further pairs.
func (e *BatchEvaluatorImpl) Evaluate(ctx context.Context, left, right []*conllu.Sentence, req domain.BatchRequest) (*domain.BatchResponse, error) {
	if _, err := engineOptions(req.Engine, false); err != nil {
		return nil, err
	}

	n := min(len(left), len(right))
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, n))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.BatchEvaluator.Evaluate",
		trace.WithAttributes(
			attribute.Int("pairs", n),
			attribute.Int("workers", workers),
		),
	)
	defer span.End()

	if req.Verbose && len(left) != len(right) {
		log.Printf("WARNING: corpora differ in length (%d vs %d), comparing the first %d sentences", len(left), len(right), n)
	}

	start := time.Now()
	results := make([]domain.PairResult, n)

	tracker := e.startProgress(req.ShowProgress, n)
	defer tracker.finish()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = evaluatePair(ctx, idx, left[idx], right[idx], req)
				tracker.increment()
			}
		}()
	}

dispatch:
	for idx := 0; idx < n; idx++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return nil, domain.NewResourceExhaustedError("corpus evaluation cancelled", err)
	}

	summary := Summarize(results)
	summary.Unpaired = max(len(left), len(right)) - n
	summary.TotalElapsed = time.Since(start)

	span.SetAttributes(
		attribute.Int("compared", summary.Compared),
		attribute.Int("failed", summary.Failed),
	)
	span.SetStatus(codes.Ok, "evaluated")

	return &domain.BatchResponse{
		Pairs:       results,
		Summary:     summary,
		CostModel:   ted.CostModelFor(req.Engine.CompareDeprel, req.Engine.CompareUPOS).Name(),
		Algorithm:   req.Engine.Algorithm,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

func evaluatePair(ctx context.Context, idx int, left, right *conllu.Sentence, req domain.BatchRequest) domain.PairResult {
	result := domain.PairResult{Index: idx, ID: left.ID}
	if result.ID == "" {
		result.ID = right.ID
	}

	run, err := runPair(ctx, left, right, req.Engine, false)
	if run != nil {
		result.MaxNodes = run.maxNodes
		result.Elapsed = run.elapsed
		result.Warning = run.warning
	}
	if err != nil {
		result.Error = err.Error()
		if req.Verbose {
			log.Printf("WARNING: pair %d (%s) skipped: %v", idx, left.Name(), err)
		}
		return result
	}

	result.Distance = run.result.Distance
	result.Expanded = run.result.Expanded
	if req.Verbose {
		if run.warning != "" {
			log.Printf("WARNING: pair %d (%s): %s", idx, left.Name(), run.warning)
		}
		log.Printf("pair %d (%s): distance %g, %d nodes, %s", idx, left.Name(), result.Distance, result.MaxNodes, result.Elapsed)
	}
	return result
}

// Summarize aggregates pair results. Failed pairs are counted but excluded
// from the mean; Mean stays nil when no pair succeeded.
func Summarize(results []domain.PairResult) domain.BatchSummary {
	var (
		summary domain.BatchSummary
		total   float64
	)
	for _, r := range results {
		if r.Failed() {
			summary.Failed++
			continue
		}
		summary.Compared++
		total += r.Distance
	}
	if summary.Compared > 0 {
		mean := total / float64(summary.Compared)
		summary.Mean = &mean
	}
	return summary
}

// progressTracker serialises progress updates from the workers
type progressTracker struct {
	mu       sync.Mutex
	progress domain.ProgressManager
	done     int
	total    int
}

func (e *BatchEvaluatorImpl) startProgress(enabled bool, total int) *progressTracker {
	t := &progressTracker{total: total}
	if !enabled || e.progress == nil || total == 0 {
		return t
	}
	t.progress = e.progress
	t.progress.Initialize(total)
	t.progress.Start()
	return t
}

func (t *progressTracker) increment() {
	if t.progress == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	t.progress.Update(t.done, t.total)
}

func (t *progressTracker) finish() {
	if t.progress == nil {
		return
	}
	t.progress.Complete(t.done == t.total)
	t.progress.Close()
}
