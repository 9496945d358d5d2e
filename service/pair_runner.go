package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
	"github.com/breaklikeafish/UD-TED/internal/ted"
)

// pairRun is the outcome of one engine call on a sentence pair
type pairRun struct {
	source   *ted.Forest
	target   *ted.Forest
	model    ted.CostModel
	result   *ted.Result
	elapsed  time.Duration
	maxNodes int
	warning  string
}

// engineOptions translates settings into engine options
func engineOptions(settings domain.EngineSettings, needMapping bool) ([]ted.Option, error) {
	algorithm, err := ted.ParseAlgorithm(settings.Algorithm)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid engine settings", err)
	}

	opts := []ted.Option{
		ted.WithAlgorithm(algorithm),
		ted.WithMaxExpanded(settings.MaxExpanded),
	}
	if !needMapping {
		opts = append(opts, ted.WithoutMapping())
	}
	return opts, nil
}

// largeTreeWarning returns the advisory for pairs above the node threshold
func largeTreeWarning(nodes, threshold int) string {
	if threshold <= 0 || nodes <= threshold {
		return ""
	}
	return fmt.Sprintf("tree with %d nodes exceeds %d nodes, the search may be slow", nodes, threshold)
}

// runPair builds both forests and computes their distance under settings.
// The returned run is non-nil whenever the forests could be built, so that
// callers can report node counts for failed searches.
func runPair(ctx context.Context, left, right *conllu.Sentence, settings domain.EngineSettings, needMapping bool) (*pairRun, error) {
	opts, err := engineOptions(settings, needMapping)
	if err != nil {
		return nil, err
	}

	source, err := left.Forest()
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot build source tree", err)
	}
	target, err := right.Forest()
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot build target tree", err)
	}

	run := &pairRun{
		source:   source,
		target:   target,
		model:    ted.CostModelFor(settings.CompareDeprel, settings.CompareUPOS),
		maxNodes: max(source.Size(), target.Size()),
	}
	run.warning = largeTreeWarning(run.maxNodes, settings.WarnNodes)

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := ted.Distance(ctx, source, target, run.model, opts...)
	run.elapsed = time.Since(start)

	if err != nil {
		err = wrapEngineError(left, err)
	}
	observePair(run.model.Name(), run.maxNodes, result, run.elapsed, err)
	if err != nil {
		return run, err
	}

	run.result = result
	return run, nil
}

// wrapEngineError maps engine sentinels onto domain errors
func wrapEngineError(s *conllu.Sentence, err error) error {
	switch {
	case errors.Is(err, ted.ErrBudgetExceeded):
		return domain.NewResourceExhaustedError(fmt.Sprintf("search budget exceeded for sentence %s", s.Name()), err)
	case errors.Is(err, ted.ErrEmptyForest), errors.Is(err, ted.ErrInvalidForest), errors.Is(err, ted.ErrUnsupportedAlgorithm):
		return domain.NewInvalidInputError(fmt.Sprintf("cannot compare sentence %s", s.Name()), err)
	default:
		return fmt.Errorf("distance computation failed for sentence %s: %w", s.Name(), err)
	}
}

// alignmentSteps converts an engine mapping into reportable steps
func alignmentSteps(run *pairRun) []domain.AlignmentStep {
	if run.result == nil || run.result.Mapping == nil {
		return nil
	}

	steps := make([]domain.AlignmentStep, 0, len(run.result.Mapping))
	for _, p := range run.result.Mapping {
		step := domain.AlignmentStep{SourceIndex: p.Source, TargetIndex: p.Target}
		switch {
		case p.IsSubstitution():
			a, b := run.source.Label(p.Source), run.target.Label(p.Target)
			step.SourceLabel, step.TargetLabel = a.String(), b.String()
			step.Cost = run.model.Substitute(a, b)
			step.Op = domain.AlignmentSubstitute
			if step.Cost == 0 {
				step.Op = domain.AlignmentMatch
			}
		case p.Source != ted.Gap:
			a := run.source.Label(p.Source)
			step.SourceLabel = a.String()
			step.Cost = run.model.Delete(a)
			step.Op = domain.AlignmentDelete
		default:
			b := run.target.Label(p.Target)
			step.TargetLabel = b.String()
			step.Cost = run.model.Insert(b)
			step.Op = domain.AlignmentInsert
		}
		steps = append(steps, step)
	}
	return steps
}
