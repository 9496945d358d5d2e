package domain

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/breaklikeafish/UD-TED/internal/conllu"
)

// SentenceSource names one side of a comparison: a file (or glob pattern)
// or inline CoNLL-U content.
type SentenceSource struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Content string `json:"-" yaml:"-"`
}

// IsInline reports whether the source carries its content directly.
func (s SentenceSource) IsInline() bool {
	return s.Content != ""
}

// String returns the path, or "<inline>" for inline content
func (s SentenceSource) String() string {
	if s.IsInline() {
		return "<inline>"
	}
	return s.Path
}

// SentenceSelector picks a sentence by sent_id or, when ID is empty, by
// zero-based position.
type SentenceSelector struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Index int    `json:"index" yaml:"index"`
}

// String describes the selector for messages
func (s SentenceSelector) String() string {
	if s.ID != "" {
		return fmt.Sprintf("sent_id %q", s.ID)
	}
	return fmt.Sprintf("index %d", s.Index)
}

// EngineSettings groups the label comparison and budget options shared by
// single and batch mode.
type EngineSettings struct {
	CompareDeprel bool          `json:"compare_deprel" yaml:"compare_deprel"`
	CompareUPOS   bool          `json:"compare_upos" yaml:"compare_upos"`
	Algorithm     string        `json:"algorithm" yaml:"algorithm"`
	MaxExpanded   int           `json:"max_expanded" yaml:"max_expanded"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	WarnNodes     int           `json:"warn_nodes" yaml:"warn_nodes"`
}

// DefaultEngineSettings returns the engine settings used when nothing is configured
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		CompareDeprel: DefaultCompareDeprel,
		CompareUPOS:   DefaultCompareUPOS,
		Algorithm:     DefaultAlgorithm,
		MaxExpanded:   DefaultMaxExpanded,
		Timeout:       DefaultPairTimeout,
		WarnNodes:     DefaultWarnNodes,
	}
}

// Validate checks the engine settings
func (s EngineSettings) Validate() error {
	switch s.Algorithm {
	case "", "auto", "astar", "dp":
	default:
		return NewValidationError(fmt.Sprintf("unknown algorithm %q (supported: auto, astar, dp)", s.Algorithm))
	}
	if s.MaxExpanded < 0 {
		return NewValidationError("max_expanded must be >= 0")
	}
	if s.Timeout < 0 {
		return NewValidationError("timeout must be >= 0")
	}
	if s.WarnNodes < 0 {
		return NewValidationError("warn_nodes must be >= 0")
	}
	return nil
}

// CompareRequest represents a request to compare one pair of sentences
type CompareRequest struct {
	Source         SentenceSource
	Target         SentenceSource
	SourceSentence SentenceSelector
	TargetSentence SentenceSelector

	Engine EngineSettings

	// Output configuration
	OutputFormat  OutputFormat
	OutputWriter  io.Writer
	OutputPath    string
	ShowAlignment bool
	MetricsFile   string

	// Configuration file
	ConfigPath string
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.Source.Path == "" && !req.Source.IsInline() {
		return NewValidationError("source file is required")
	}
	if req.Target.Path == "" && !req.Target.IsInline() {
		return NewValidationError("target file is required")
	}
	if req.SourceSentence.ID == "" && req.SourceSentence.Index < 0 {
		return NewValidationError("source sentence index must be >= 0")
	}
	if req.TargetSentence.ID == "" && req.TargetSentence.Index < 0 {
		return NewValidationError("target sentence index must be >= 0")
	}
	if _, err := ParseOutputFormat(string(req.OutputFormat)); err != nil {
		return err
	}
	return req.Engine.Validate()
}

// AlignmentOp is the kind of an edit operation in an alignment
type AlignmentOp string

const (
	AlignmentMatch      AlignmentOp = "match"
	AlignmentSubstitute AlignmentOp = "substitute"
	AlignmentDelete     AlignmentOp = "delete"
	AlignmentInsert     AlignmentOp = "insert"
)

// AlignmentStep is one edit operation of the optimal alignment. Node indices
// are pre-order positions; -1 marks the empty side.
type AlignmentStep struct {
	Op          AlignmentOp `json:"op" yaml:"op" csv:"op"`
	SourceIndex int         `json:"source_index" yaml:"source_index" csv:"source_index"`
	TargetIndex int         `json:"target_index" yaml:"target_index" csv:"target_index"`
	SourceLabel string      `json:"source_label,omitempty" yaml:"source_label,omitempty" csv:"source_label"`
	TargetLabel string      `json:"target_label,omitempty" yaml:"target_label,omitempty" csv:"target_label"`
	Cost        float64     `json:"cost" yaml:"cost" csv:"cost"`
}

// SentenceInfo describes a compared sentence
type SentenceInfo struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Nodes int    `json:"nodes" yaml:"nodes"`
}

// CompareResponse represents the result of a single comparison
type CompareResponse struct {
	Source    SentenceInfo    `json:"source" yaml:"source"`
	Target    SentenceInfo    `json:"target" yaml:"target"`
	CostModel string          `json:"cost_model" yaml:"cost_model"`
	Algorithm string          `json:"algorithm" yaml:"algorithm"`
	Distance  float64         `json:"distance" yaml:"distance"`
	Expanded  int             `json:"expanded" yaml:"expanded"`
	Alignment []AlignmentStep `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Warning   string          `json:"warning,omitempty" yaml:"warning,omitempty"`

	// Metadata
	Elapsed     time.Duration `json:"elapsed_ns" yaml:"elapsed"`
	GeneratedAt string        `json:"generated_at" yaml:"generated_at"`
	Version     string        `json:"version" yaml:"version"`
}

// BatchRequest represents a request to compare two parallel corpora
type BatchRequest struct {
	Source SentenceSource
	Target SentenceSource

	Engine EngineSettings

	// Execution
	Workers      int
	ShowProgress bool
	Verbose      bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	MetricsFile  string

	// Configuration file
	ConfigPath string
}

// Validate validates a batch request
func (req *BatchRequest) Validate() error {
	if req.Source.Path == "" && !req.Source.IsInline() {
		return NewValidationError("source corpus is required")
	}
	if req.Target.Path == "" && !req.Target.IsInline() {
		return NewValidationError("target corpus is required")
	}
	if req.Workers < 0 {
		return NewValidationError("workers must be >= 0")
	}
	if _, err := ParseOutputFormat(string(req.OutputFormat)); err != nil {
		return err
	}
	return req.Engine.Validate()
}

// PairResult is the outcome of one aligned sentence pair in batch mode
type PairResult struct {
	Index    int           `json:"index" yaml:"index" csv:"index"`
	ID       string        `json:"id,omitempty" yaml:"id,omitempty" csv:"id"`
	Distance float64       `json:"distance" yaml:"distance" csv:"distance"`
	Elapsed  time.Duration `json:"elapsed_ns" yaml:"elapsed" csv:"elapsed_ns"`
	MaxNodes int           `json:"max_nodes" yaml:"max_nodes" csv:"max_nodes"`
	Expanded int           `json:"expanded" yaml:"expanded" csv:"expanded"`
	Warning  string        `json:"warning,omitempty" yaml:"warning,omitempty" csv:"warning"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty" csv:"error"`
}

// Failed reports whether the pair could not be compared
func (r PairResult) Failed() bool {
	return r.Error != ""
}

// BatchSummary aggregates a batch run. Mean is nil when no pair succeeded.
type BatchSummary struct {
	Compared     int           `json:"compared" yaml:"compared"`
	Failed       int           `json:"failed" yaml:"failed"`
	Unpaired     int           `json:"unpaired" yaml:"unpaired"`
	Mean         *float64      `json:"mean" yaml:"mean"`
	TotalElapsed time.Duration `json:"total_elapsed_ns" yaml:"total_elapsed"`
}

// BatchResponse represents the result of a corpus comparison
type BatchResponse struct {
	Pairs     []PairResult `json:"pairs" yaml:"pairs"`
	Summary   BatchSummary `json:"summary" yaml:"summary"`
	CostModel string       `json:"cost_model" yaml:"cost_model"`
	Algorithm string       `json:"algorithm" yaml:"algorithm"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// SentenceReader loads CoNLL-U sentences
type SentenceReader interface {
	// ReadSentences loads every sentence of a source. Path sources may be
	// glob patterns; matches are read in lexical order and concatenated.
	ReadSentences(source SentenceSource) ([]*conllu.Sentence, error)
}

// DistanceService compares single sentence pairs
type DistanceService interface {
	// ComparePair loads the selected sentences and computes their distance
	ComparePair(ctx context.Context, req CompareRequest) (*CompareResponse, error)
}

// BatchService evaluates parallel corpora
type BatchService interface {
	// Evaluate compares left[i] with right[i] for every position present in both
	Evaluate(ctx context.Context, left, right []*conllu.Sentence, req BatchRequest) (*BatchResponse, error)
}

// DistanceOutputFormatter formats comparison results
type DistanceOutputFormatter interface {
	// WriteCompare writes a single comparison
	WriteCompare(response *CompareResponse, format OutputFormat, writer io.Writer) error

	// WriteBatch writes a corpus comparison
	WriteBatch(response *BatchResponse, format OutputFormat, writer io.Writer) error
}

// MetricsExporter writes collected engine metrics
type MetricsExporter interface {
	// WriteTextfile writes the metrics in the Prometheus text format
	WriteTextfile(path string) error
}
