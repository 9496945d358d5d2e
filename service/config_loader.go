package service

import (
	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface.
// Flag overrides are applied only for flags recorded as explicitly set.
type ConfigurationLoaderImpl struct {
	startDir  string
	overrides config.FlagOverrides
	explicit  config.ExplicitFlags
}

// NewConfigurationLoader creates a loader that discovers .udted.toml from
// the working directory and applies no overrides.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{startDir: "."}
}

// NewConfigurationLoaderWithFlags creates a loader that applies the
// explicitly set command line flags on top of the loaded configuration.
func NewConfigurationLoaderWithFlags(overrides config.FlagOverrides, explicit config.ExplicitFlags) *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{
		startDir:  ".",
		overrides: overrides,
		explicit:  explicit,
	}
}

// WithStartDir changes the directory configuration discovery starts from
func (c *ConfigurationLoaderImpl) WithStartDir(dir string) *ConfigurationLoaderImpl {
	c.startDir = dir
	return c
}

// LoadSettings loads and merges the configuration
func (c *ConfigurationLoaderImpl) LoadSettings(configPath string) (*domain.Settings, error) {
	cfg, err := config.LoadConfig(configPath, c.startDir)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	config.ApplyFlags(cfg, c.overrides, c.explicit)
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid option", err)
	}

	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, domain.NewConfigError("invalid output format", err)
	}

	return &domain.Settings{
		Engine:        cfg.EngineSettings(),
		Workers:       cfg.Batch.Workers,
		ShowProgress:  cfg.Batch.ShowProgress,
		OutputFormat:  format,
		ShowAlignment: cfg.Output.ShowAlignment,
		MetricsFile:   cfg.Output.MetricsFile,
	}, nil
}
