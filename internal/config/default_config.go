package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/breaklikeafish/UD-TED/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	// Compare
	CompareDeprel  bool
	CompareUPOS    bool
	Algorithm      string
	MaxExpanded    int
	TimeoutSeconds float64
	WarnNodes      int

	// Batch
	Workers      int
	ShowProgress bool

	// Output
	OutputFormat  string
	ShowAlignment bool
}

// newDefaultConfigValues creates a DefaultConfigValues populated from domain constants.
func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		CompareDeprel:  domain.DefaultCompareDeprel,
		CompareUPOS:    domain.DefaultCompareUPOS,
		Algorithm:      domain.DefaultAlgorithm,
		MaxExpanded:    domain.DefaultMaxExpanded,
		TimeoutSeconds: domain.DefaultPairTimeout.Seconds(),
		WarnNodes:      domain.DefaultWarnNodes,

		Workers:      domain.DefaultWorkers,
		ShowProgress: domain.DefaultShowProgress,

		OutputFormat:  string(domain.DefaultOutputFormat),
		ShowAlignment: domain.DefaultShowAlignment,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}
