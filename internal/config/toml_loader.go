package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/breaklikeafish/UD-TED/domain"
)

// udtedTomlConfig mirrors Config with pointer fields so that keys absent
// from the file keep their defaults.
type udtedTomlConfig struct {
	Compare struct {
		Deprel         *bool    `toml:"deprel"`
		UPOS           *bool    `toml:"upos"`
		Algorithm      *string  `toml:"algorithm"`
		MaxExpanded    *int     `toml:"max_expanded"`
		TimeoutSeconds *float64 `toml:"timeout_seconds"`
		WarnNodes      *int     `toml:"warn_nodes"`
	} `toml:"compare"`
	Batch struct {
		Workers      *int  `toml:"workers"`
		ShowProgress *bool `toml:"show_progress"`
	} `toml:"batch"`
	Output struct {
		Format        *string `toml:"format"`
		ShowAlignment *bool   `toml:"show_alignment"`
		MetricsFile   *string `toml:"metrics_file"`
	} `toml:"output"`
}

// TomlConfigLoader discovers and loads .udted.toml files
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads the nearest .udted.toml at or above startDir, or returns
// defaults when there is none.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.FindConfig(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile parses a TOML file over the defaults.
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var parsed udtedTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config := DefaultConfig()
	l.merge(config, &parsed)
	return config, nil
}

// FindConfig walks up the directory tree to find .udted.toml
func (l *TomlConfigLoader) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) merge(config *Config, parsed *udtedTomlConfig) {
	c := &parsed.Compare
	setIfPresent(&config.Compare.Deprel, c.Deprel)
	setIfPresent(&config.Compare.UPOS, c.UPOS)
	setIfPresent(&config.Compare.Algorithm, c.Algorithm)
	setIfPresent(&config.Compare.MaxExpanded, c.MaxExpanded)
	setIfPresent(&config.Compare.TimeoutSeconds, c.TimeoutSeconds)
	setIfPresent(&config.Compare.WarnNodes, c.WarnNodes)

	setIfPresent(&config.Batch.Workers, parsed.Batch.Workers)
	setIfPresent(&config.Batch.ShowProgress, parsed.Batch.ShowProgress)

	o := &parsed.Output
	setIfPresent(&config.Output.Format, o.Format)
	setIfPresent(&config.Output.ShowAlignment, o.ShowAlignment)
	setIfPresent(&config.Output.MetricsFile, o.MetricsFile)
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
