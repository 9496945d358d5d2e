package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/conllu"
	"github.com/breaklikeafish/UD-TED/internal/version"
)

const tracerName = "github.com/breaklikeafish/UD-TED/service"

// DistanceServiceImpl implements the DistanceService interface
type DistanceServiceImpl struct {
	reader domain.SentenceReader
}

// NewDistanceService creates a new distance service
func NewDistanceService(reader domain.SentenceReader) *DistanceServiceImpl {
	if reader == nil {
		reader = NewSentenceReader()
	}
	return &DistanceServiceImpl{reader: reader}
}

// ComparePair loads the selected sentence from each side and computes their
// tree edit distance.
func (s *DistanceServiceImpl) ComparePair(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.DistanceService.ComparePair",
		trace.WithAttributes(
			attribute.String("source", req.Source.String()),
			attribute.String("target", req.Target.String()),
			attribute.String("source_sentence", req.SourceSentence.String()),
			attribute.String("target_sentence", req.TargetSentence.String()),
		),
	)
	defer span.End()

	left, leftIndex, err := s.load(req.Source, req.SourceSentence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source sentence")
		return nil, err
	}
	right, rightIndex, err := s.load(req.Target, req.TargetSentence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "target sentence")
		return nil, err
	}

	run, err := runPair(ctx, left, right, req.Engine, req.ShowAlignment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "distance computation")
		return nil, err
	}

	if run.warning != "" {
		log.Printf("WARNING: %s", run.warning)
	}

	span.SetAttributes(
		attribute.Float64("distance", run.result.Distance),
		attribute.Int("expanded", run.result.Expanded),
		attribute.String("algorithm", string(run.result.Algorithm)),
	)
	span.SetStatus(codes.Ok, "compared")

	return &domain.CompareResponse{
		Source:      sentenceInfo(left, leftIndex),
		Target:      sentenceInfo(right, rightIndex),
		CostModel:   run.model.Name(),
		Algorithm:   string(run.result.Algorithm),
		Distance:    run.result.Distance,
		Expanded:    run.result.Expanded,
		Alignment:   alignmentSteps(run),
		Warning:     run.warning,
		Elapsed:     run.elapsed,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

func (s *DistanceServiceImpl) load(source domain.SentenceSource, selector domain.SentenceSelector) (*conllu.Sentence, int, error) {
	sentences, err := s.reader.ReadSentences(source)
	if err != nil {
		return nil, 0, err
	}
	return SelectSentence(sentences, selector, source)
}

// SelectSentence picks the sentence matching selector: the first with an
// exact sent_id match, or the one at the zero-based index when no id is given.
func SelectSentence(sentences []*conllu.Sentence, selector domain.SentenceSelector, source domain.SentenceSource) (*conllu.Sentence, int, error) {
	if selector.ID != "" {
		for i, sentence := range sentences {
			if sentence.ID == selector.ID {
				return sentence, i, nil
			}
		}
		return nil, 0, domain.NewNotFoundError(fmt.Sprintf("no sentence with sent_id %q in %s", selector.ID, source))
	}

	if selector.Index < 0 || selector.Index >= len(sentences) {
		return nil, 0, domain.NewNotFoundError(fmt.Sprintf("sentence index %d out of range in %s (%d sentences)", selector.Index, source, len(sentences)))
	}
	return sentences[selector.Index], selector.Index, nil
}

func sentenceInfo(s *conllu.Sentence, index int) domain.SentenceInfo {
	return domain.SentenceInfo{
		ID:    s.ID,
		Index: index,
		Text:  s.Text,
		Nodes: s.Len(),
	}
}
