package app

import (
	"context"
	"fmt"
	"io"

	"github.com/breaklikeafish/UD-TED/domain"
)

// CompareUseCase orchestrates the single sentence pair workflow
type CompareUseCase struct {
	service      domain.DistanceService
	formatter    domain.DistanceOutputFormatter
	output       domain.ReportWriter
	configLoader domain.ConfigurationLoader
	metrics      domain.MetricsExporter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.DistanceService,
	formatter domain.DistanceOutputFormatter,
	output domain.ReportWriter,
	configLoader domain.ConfigurationLoader,
	metrics domain.MetricsExporter,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		formatter:    formatter,
		output:       output,
		configLoader: configLoader,
		metrics:      metrics,
	}
}

// Execute compares the selected sentences and writes the report
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, err
	}

	if err := uc.validateRequest(finalReq); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.ComparePair(ctx, finalReq)
	if err != nil {
		return nil, err
	}

	err = uc.output.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, func(w io.Writer) error {
		return uc.formatter.WriteCompare(response, finalReq.OutputFormat, w)
	})
	if err != nil {
		return nil, err
	}

	if err := exportMetrics(uc.metrics, finalReq.MetricsFile); err != nil {
		return nil, err
	}

	return response, nil
}

// validateRequest validates the compare request
func (uc *CompareUseCase) validateRequest(req domain.CompareRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer is required")
	}
	return req.Validate()
}

// loadAndMergeConfig replaces the configurable fields of req with the
// effective settings. Without a loader the request is used as given.
func (uc *CompareUseCase) loadAndMergeConfig(req domain.CompareRequest) (domain.CompareRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	settings, err := uc.configLoader.LoadSettings(req.ConfigPath)
	if err != nil {
		return req, err
	}

	req.Engine = settings.Engine
	req.OutputFormat = settings.OutputFormat
	req.ShowAlignment = settings.ShowAlignment
	req.MetricsFile = settings.MetricsFile
	return req, nil
}

func exportMetrics(metrics domain.MetricsExporter, path string) error {
	if metrics == nil || path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service      domain.DistanceService
	formatter    domain.DistanceOutputFormatter
	output       domain.ReportWriter
	configLoader domain.ConfigurationLoader
	metrics      domain.MetricsExporter
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the distance service
func (b *CompareUseCaseBuilder) WithService(service domain.DistanceService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.DistanceOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *CompareUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = output
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CompareUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithMetrics sets the metrics exporter
func (b *CompareUseCaseBuilder) WithMetrics(metrics domain.MetricsExporter) *CompareUseCaseBuilder {
	b.metrics = metrics
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("distance service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.output == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	return NewCompareUseCase(
		b.service,
		b.formatter,
		b.output,
		b.configLoader,
		b.metrics,
	), nil
}
