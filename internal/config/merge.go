package config

import (
	"github.com/spf13/pflag"
)

// ExplicitFlags records which command line flags the user set
type ExplicitFlags map[string]bool

// ExplicitFlagsOf collects the flags changed on fs
func ExplicitFlagsOf(fs *pflag.FlagSet) ExplicitFlags {
	flags := make(ExplicitFlags)
	if fs == nil {
		return flags
	}
	fs.Visit(func(f *pflag.Flag) {
		flags[f.Name] = true
	})
	return flags
}

// WasExplicitlySet checks if a flag was explicitly set by the user
func (f ExplicitFlags) WasExplicitlySet(flagName string) bool {
	if f == nil {
		return false
	}
	return f[flagName]
}

// Merge returns override if flagName was explicitly set, base otherwise
func Merge[T any](base, override T, flagName string, flags ExplicitFlags) T {
	if flags.WasExplicitlySet(flagName) {
		return override
	}
	return base
}

// FlagOverrides carries command line values that may override a Config
type FlagOverrides struct {
	Deprel        bool
	UPOS          bool
	Algorithm     string
	MaxExpanded   int
	Timeout       float64
	WarnNodes     int
	Workers       int
	NoProgress    bool
	Format        string
	ShowAlignment bool
	MetricsFile   string
}

// Flag names understood by ApplyFlags
const (
	FlagDeprel      = "deprel"
	FlagUPOS        = "upos"
	FlagAlgorithm   = "algorithm"
	FlagMaxExpanded = "max-expanded"
	FlagTimeout     = "timeout"
	FlagWarnNodes   = "warn-nodes"
	FlagWorkers     = "workers"
	FlagNoProgress  = "no-progress"
	FlagFormat      = "format"
	FlagAlignment   = "alignment"
	FlagMetricsFile = "metrics-file"
)

// ApplyFlags overlays explicitly set flags on config
func ApplyFlags(config *Config, o FlagOverrides, flags ExplicitFlags) {
	config.Compare.Deprel = Merge(config.Compare.Deprel, o.Deprel, FlagDeprel, flags)
	config.Compare.UPOS = Merge(config.Compare.UPOS, o.UPOS, FlagUPOS, flags)
	config.Compare.Algorithm = Merge(config.Compare.Algorithm, o.Algorithm, FlagAlgorithm, flags)
	config.Compare.MaxExpanded = Merge(config.Compare.MaxExpanded, o.MaxExpanded, FlagMaxExpanded, flags)
	config.Compare.TimeoutSeconds = Merge(config.Compare.TimeoutSeconds, o.Timeout, FlagTimeout, flags)
	config.Compare.WarnNodes = Merge(config.Compare.WarnNodes, o.WarnNodes, FlagWarnNodes, flags)
	config.Batch.Workers = Merge(config.Batch.Workers, o.Workers, FlagWorkers, flags)
	config.Batch.ShowProgress = Merge(config.Batch.ShowProgress, !o.NoProgress, FlagNoProgress, flags)
	config.Output.Format = Merge(config.Output.Format, o.Format, FlagFormat, flags)
	config.Output.ShowAlignment = Merge(config.Output.ShowAlignment, o.ShowAlignment, FlagAlignment, flags)
	config.Output.MetricsFile = Merge(config.Output.MetricsFile, o.MetricsFile, FlagMetricsFile, flags)
}
