package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/breaklikeafish/UD-TED/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Compare holds label comparison and engine settings
	Compare CompareConfig `toml:"compare" mapstructure:"compare" yaml:"compare"`

	// Batch holds corpus evaluation settings
	Batch BatchConfig `toml:"batch" mapstructure:"batch" yaml:"batch"`

	// Output holds output formatting configuration
	Output OutputConfig `toml:"output" mapstructure:"output" yaml:"output"`
}

// CompareConfig holds configuration for a single distance computation
type CompareConfig struct {
	// Deprel makes dependency relations part of label equality
	Deprel bool `toml:"deprel" mapstructure:"deprel" yaml:"deprel"`

	// UPOS makes part-of-speech tags part of label equality
	UPOS bool `toml:"upos" mapstructure:"upos" yaml:"upos"`

	// Algorithm is one of auto, astar, dp
	Algorithm string `toml:"algorithm" mapstructure:"algorithm" yaml:"algorithm"`

	// MaxExpanded bounds the search per pair; 0 means unbounded
	MaxExpanded int `toml:"max_expanded" mapstructure:"max_expanded" yaml:"max_expanded"`

	// TimeoutSeconds bounds the wall time per pair; 0 means no deadline
	TimeoutSeconds float64 `toml:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// WarnNodes is the tree size above which a pair gets a warning
	WarnNodes int `toml:"warn_nodes" mapstructure:"warn_nodes" yaml:"warn_nodes"`
}

// BatchConfig holds configuration for corpus mode
type BatchConfig struct {
	// Workers is the number of concurrent pairs; 0 means one per CPU
	Workers int `toml:"workers" mapstructure:"workers" yaml:"workers"`

	// ShowProgress enables the progress bar on interactive terminals
	ShowProgress bool `toml:"show_progress" mapstructure:"show_progress" yaml:"show_progress"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `toml:"format" mapstructure:"format" yaml:"format"`

	// ShowAlignment prints the edit operations in single mode
	ShowAlignment bool `toml:"show_alignment" mapstructure:"show_alignment" yaml:"show_alignment"`

	// MetricsFile receives engine metrics in the Prometheus text format
	MetricsFile string `toml:"metrics_file" mapstructure:"metrics_file" yaml:"metrics_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Deprel:         domain.DefaultCompareDeprel,
			UPOS:           domain.DefaultCompareUPOS,
			Algorithm:      domain.DefaultAlgorithm,
			MaxExpanded:    domain.DefaultMaxExpanded,
			TimeoutSeconds: domain.DefaultPairTimeout.Seconds(),
			WarnNodes:      domain.DefaultWarnNodes,
		},
		Batch: BatchConfig{
			Workers:      domain.DefaultWorkers,
			ShowProgress: domain.DefaultShowProgress,
		},
		Output: OutputConfig{
			Format:        string(domain.DefaultOutputFormat),
			ShowAlignment: domain.DefaultShowAlignment,
		},
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch c.Compare.Algorithm {
	case "auto", "astar", "dp":
	default:
		return fmt.Errorf("invalid compare.algorithm '%s', must be one of: auto, astar, dp", c.Compare.Algorithm)
	}
	if c.Compare.MaxExpanded < 0 {
		return fmt.Errorf("compare.max_expanded must be >= 0, got %d", c.Compare.MaxExpanded)
	}
	if c.Compare.TimeoutSeconds < 0 {
		return fmt.Errorf("compare.timeout_seconds must be >= 0, got %g", c.Compare.TimeoutSeconds)
	}
	if c.Compare.WarnNodes < 0 {
		return fmt.Errorf("compare.warn_nodes must be >= 0, got %d", c.Compare.WarnNodes)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}
	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}
	return nil
}

// Timeout returns the per-pair timeout as a duration
func (c *CompareConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// EngineSettings converts the compare section into domain engine settings
func (c *Config) EngineSettings() domain.EngineSettings {
	return domain.EngineSettings{
		CompareDeprel: c.Compare.Deprel,
		CompareUPOS:   c.Compare.UPOS,
		Algorithm:     c.Compare.Algorithm,
		MaxExpanded:   c.Compare.MaxExpanded,
		Timeout:       c.Compare.Timeout(),
		WarnNodes:     c.Compare.WarnNodes,
	}
}

// LoadConfig loads configuration from an explicit file, or discovers
// .udted.toml upward from startDir, or falls back to defaults. UDTED_*
// environment variables are applied last in every case.
func LoadConfig(configPath, startDir string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if configPath != "" {
		cfg, err = LoadConfigFile(configPath)
	} else {
		cfg, err = NewTomlConfigLoader().LoadConfig(startDir)
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a configuration file of any format viper understands
// (toml, yaml, json) over the defaults.
func LoadConfigFile(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(configPath)
	setDefaults(v, config)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides config values from UDTED_<SECTION>_<KEY> variables,
// e.g. UDTED_COMPARE_DEPREL=true.
func ApplyEnv(config *Config) error {
	v := viper.New()
	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, config)

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// setDefaults registers every key so that environment lookups reach them.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("compare.deprel", c.Compare.Deprel)
	v.SetDefault("compare.upos", c.Compare.UPOS)
	v.SetDefault("compare.algorithm", c.Compare.Algorithm)
	v.SetDefault("compare.max_expanded", c.Compare.MaxExpanded)
	v.SetDefault("compare.timeout_seconds", c.Compare.TimeoutSeconds)
	v.SetDefault("compare.warn_nodes", c.Compare.WarnNodes)
	v.SetDefault("batch.workers", c.Batch.Workers)
	v.SetDefault("batch.show_progress", c.Batch.ShowProgress)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.show_alignment", c.Output.ShowAlignment)
	v.SetDefault("output.metrics_file", c.Output.MetricsFile)
}
