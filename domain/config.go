package domain

// Settings is the effective configuration of a run after merging defaults,
// the configuration file, environment variables and explicit flags.
type Settings struct {
	Engine        EngineSettings
	Workers       int
	ShowProgress  bool
	OutputFormat  OutputFormat
	ShowAlignment bool
	MetricsFile   string
}

// ConfigurationLoader resolves the effective settings of a run
type ConfigurationLoader interface {
	// LoadSettings loads configPath, or the discovered project configuration
	// when configPath is empty, and applies any overrides the loader carries.
	LoadSettings(configPath string) (*Settings, error)
}
