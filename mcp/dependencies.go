package mcp

import (
	"io"

	"github.com/breaklikeafish/UD-TED/app"
	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/config"
	"github.com/breaklikeafish/UD-TED/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	reader     domain.SentenceReader
	configPath string
	startDir   string
}

// NewDependencies constructs the dependency set. An empty configPath
// triggers discovery of .udted.toml from the working directory.
func NewDependencies(configPath string) *Dependencies {
	return &Dependencies{
		reader:     service.NewSentenceReader(),
		configPath: configPath,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

func (d *Dependencies) configLoader(overrides config.FlagOverrides, explicit config.ExplicitFlags) *service.ConfigurationLoaderImpl {
	loader := service.NewConfigurationLoaderWithFlags(overrides, explicit)
	if d.startDir != "" {
		loader.WithStartDir(d.startDir)
	}
	return loader
}

// BuildCompareUseCase assembles a CompareUseCase whose report is discarded;
// handlers serialise the returned response themselves.
func (d *Dependencies) BuildCompareUseCase(overrides config.FlagOverrides, explicit config.ExplicitFlags) (*app.CompareUseCase, error) {
	return app.NewCompareUseCaseBuilder().
		WithService(service.NewDistanceService(d.reader)).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(io.Discard)).
		WithConfigLoader(d.configLoader(overrides, explicit)).
		WithMetrics(service.NewPrometheusExporter()).
		Build()
}

// BuildBatchUseCase assembles a BatchUseCase without a progress bar.
func (d *Dependencies) BuildBatchUseCase(overrides config.FlagOverrides, explicit config.ExplicitFlags) (*app.BatchUseCase, error) {
	return app.NewBatchUseCaseBuilder().
		WithReader(d.reader).
		WithService(service.NewBatchEvaluator(nil)).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(io.Discard)).
		WithConfigLoader(d.configLoader(overrides, explicit)).
		WithMetrics(service.NewPrometheusExporter()).
		Build()
}
