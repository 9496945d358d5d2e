package app

import (
	"context"
	"fmt"
	"io"

	"github.com/breaklikeafish/UD-TED/domain"
)

// BatchUseCase orchestrates the parallel corpus workflow
type BatchUseCase struct {
	reader       domain.SentenceReader
	service      domain.BatchService
	formatter    domain.DistanceOutputFormatter
	output       domain.ReportWriter
	configLoader domain.ConfigurationLoader
	metrics      domain.MetricsExporter
}

// Execute reads both corpora, compares them pairwise and writes the report
func (uc *BatchUseCase) Execute(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, err
	}

	if err := uc.validateRequest(finalReq); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	left, err := uc.reader.ReadSentences(finalReq.Source)
	if err != nil {
		return nil, err
	}
	right, err := uc.reader.ReadSentences(finalReq.Target)
	if err != nil {
		return nil, err
	}

	response, err := uc.service.Evaluate(ctx, left, right, finalReq)
	if err != nil {
		return nil, err
	}

	err = uc.output.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, func(w io.Writer) error {
		return uc.formatter.WriteBatch(response, finalReq.OutputFormat, w)
	})
	if err != nil {
		return nil, err
	}

	if err := exportMetrics(uc.metrics, finalReq.MetricsFile); err != nil {
		return nil, err
	}

	return response, nil
}

// validateRequest validates the batch request
func (uc *BatchUseCase) validateRequest(req domain.BatchRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer is required")
	}
	return req.Validate()
}

func (uc *BatchUseCase) loadAndMergeConfig(req domain.BatchRequest) (domain.BatchRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	settings, err := uc.configLoader.LoadSettings(req.ConfigPath)
	if err != nil {
		return req, err
	}

	req.Engine = settings.Engine
	req.Workers = settings.Workers
	req.ShowProgress = settings.ShowProgress
	req.OutputFormat = settings.OutputFormat
	req.MetricsFile = settings.MetricsFile
	return req, nil
}

// BatchUseCaseBuilder provides a builder pattern for creating BatchUseCase
type BatchUseCaseBuilder struct {
	uc BatchUseCase
}

// NewBatchUseCaseBuilder creates a new builder
func NewBatchUseCaseBuilder() *BatchUseCaseBuilder {
	return &BatchUseCaseBuilder{}
}

// WithReader sets the sentence reader
func (b *BatchUseCaseBuilder) WithReader(reader domain.SentenceReader) *BatchUseCaseBuilder {
	b.uc.reader = reader
	return b
}

// WithService sets the batch service
func (b *BatchUseCaseBuilder) WithService(service domain.BatchService) *BatchUseCaseBuilder {
	b.uc.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *BatchUseCaseBuilder) WithFormatter(formatter domain.DistanceOutputFormatter) *BatchUseCaseBuilder {
	b.uc.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *BatchUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *BatchUseCaseBuilder {
	b.uc.output = output
	return b
}

// WithConfigLoader sets the configuration loader
func (b *BatchUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *BatchUseCaseBuilder {
	b.uc.configLoader = configLoader
	return b
}

// WithMetrics sets the metrics exporter
func (b *BatchUseCaseBuilder) WithMetrics(metrics domain.MetricsExporter) *BatchUseCaseBuilder {
	b.uc.metrics = metrics
	return b
}

// Build creates the BatchUseCase with the configured dependencies
func (b *BatchUseCaseBuilder) Build() (*BatchUseCase, error) {
	if b.uc.reader == nil {
		return nil, fmt.Errorf("sentence reader is required")
	}
	if b.uc.service == nil {
		return nil, fmt.Errorf("batch service is required")
	}
	if b.uc.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.uc.output == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	uc := b.uc
	return &uc, nil
}
