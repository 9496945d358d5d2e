package domain

import "time"

// ============================================================================
// Comparison Defaults
// ============================================================================

const (
	// DefaultCompareDeprel controls whether dependency relations take part in
	// label equality. The default compares tree shape only.
	DefaultCompareDeprel = false

	// DefaultCompareUPOS controls whether universal part-of-speech tags take
	// part in label equality.
	DefaultCompareUPOS = false

	// DefaultAlgorithm lets the engine choose between the search and the
	// dynamic program depending on whether an alignment is needed.
	DefaultAlgorithm = "auto"

	// DefaultSentenceIndex selects the first sentence of each file when no
	// sentence identifier is given.
	DefaultSentenceIndex = 0
)

// ============================================================================
// Engine Budget Defaults
// ============================================================================

const (
	// DefaultMaxExpanded bounds the number of search states expanded per pair.
	// Zero means unbounded.
	DefaultMaxExpanded = 0

	// DefaultPairTimeout bounds the wall time of a single pair. Zero means no deadline.
	DefaultPairTimeout = 0 * time.Second

	// DefaultWarnNodes is the tree size above which a pair is reported as
	// potentially slow.
	DefaultWarnNodes = 27
)

// ============================================================================
// Batch Defaults
// ============================================================================

const (
	// DefaultWorkers means one worker per CPU.
	DefaultWorkers = 0

	// DefaultShowProgress enables the progress bar on interactive terminals.
	DefaultShowProgress = true
)

// ============================================================================
// Output Defaults
// ============================================================================

const (
	// DefaultOutputFormat is the human-readable report.
	DefaultOutputFormat = OutputFormatText

	// DefaultShowAlignment prints the edit operations in single mode.
	DefaultShowAlignment = false
)

// ConfigFileName is the project configuration file searched upward from the
// working directory.
const ConfigFileName = ".udted.toml"

// EnvPrefix is the prefix of environment variables overriding configuration.
const EnvPrefix = "UDTED"
