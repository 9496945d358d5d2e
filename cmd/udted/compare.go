package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/breaklikeafish/UD-TED/app"
	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/config"
	"github.com/breaklikeafish/UD-TED/service"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	// Sentence selection
	ids   []string
	index []int
	batch bool

	// Cost model
	deprel bool
	upos   bool

	// Engine
	algorithm   string
	maxExpanded int
	timeout     float64
	warnNodes   int

	// Batch execution
	workers    int
	noProgress bool

	// Output
	json        bool
	yaml        bool
	csv         bool
	alignment   bool
	outputPath  string
	metricsFile string
	traceFile   string

	// Configuration
	configFile string
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		algorithm:   domain.DefaultAlgorithm,
		maxExpanded: domain.DefaultMaxExpanded,
		timeout:     domain.DefaultPairTimeout.Seconds(),
		warnNodes:   domain.DefaultWarnNodes,
	}
}

// CreateCobraCommand creates the cobra command for tree comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "Compute the tree edit distance between dependency parses",
		Long: `Compare dependency trees from two CoNLL-U files.

In single mode one sentence is taken from each file: the sentences named
by --ids, the positions given by --index, or the first sentence of each
file. In batch mode (--batch) the i-th sentence of FILE1 is compared with
the i-th sentence of FILE2 and the mean distance is reported.

By default every node relabeling costs 1. --deprel makes relabeling free
when dependency relations agree (subtypes ignored), --upos does the same
for universal POS tags, and both flags together require both to agree.

Examples:
  # Compare the first sentence of each file
  udted compare gold.conllu system.conllu

  # Compare two sentences by sent_id, taking relations into account
  udted compare --ids s12,s12 --deprel gold.conllu system.conllu

  # Show the optimal node alignment
  udted compare --index 3,3 --alignment gold.conllu system.conllu

  # Evaluate a whole corpus and write JSON
  udted compare --batch --deprel --upos --json -o report.json gold.conllu system.conllu

  # Globs are expanded and matching files concatenated in lexical order
  udted compare --batch 'gold/**/*.conllu' 'system/**/*.conllu'`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	// Sentence selection
	cmd.Flags().StringSliceVar(&c.ids, "ids", nil, "Sentence ids to compare (ID1,ID2)")
	cmd.Flags().IntSliceVar(&c.index, "index", nil, "Zero-based sentence positions to compare (I,J)")
	cmd.Flags().BoolVar(&c.batch, "batch", false, "Compare whole corpora pairwise")
	cmd.MarkFlagsMutuallyExclusive("batch", "ids")
	cmd.MarkFlagsMutuallyExclusive("batch", "index")
	cmd.MarkFlagsMutuallyExclusive("ids", "index")

	// Cost model
	cmd.Flags().BoolVar(&c.deprel, config.FlagDeprel, false, "Relabeling is free when dependency relations agree")
	cmd.Flags().BoolVar(&c.upos, config.FlagUPOS, false, "Relabeling is free when UPOS tags agree")

	// Engine
	cmd.Flags().StringVar(&c.algorithm, config.FlagAlgorithm, domain.DefaultAlgorithm, "Search algorithm (auto, astar, dp)")
	cmd.Flags().IntVar(&c.maxExpanded, config.FlagMaxExpanded, domain.DefaultMaxExpanded, "Maximum A* states expanded per pair (0 = unlimited)")
	cmd.Flags().Float64Var(&c.timeout, config.FlagTimeout, domain.DefaultPairTimeout.Seconds(), "Per-pair time limit in seconds (0 = unlimited)")
	cmd.Flags().IntVar(&c.warnNodes, config.FlagWarnNodes, domain.DefaultWarnNodes, "Warn when a tree has more nodes than this (0 = never)")

	// Batch execution
	cmd.Flags().IntVar(&c.workers, config.FlagWorkers, 0, "Parallel workers in batch mode (0 = number of CPUs)")
	cmd.Flags().BoolVar(&c.noProgress, config.FlagNoProgress, false, "Disable the batch progress bar")

	// Output
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report")
	cmd.Flags().BoolVar(&c.alignment, config.FlagAlignment, false, "Show the optimal node alignment (single mode)")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&c.metricsFile, config.FlagMetricsFile, "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().StringVar(&c.traceFile, "trace-file", "", "Write OpenTelemetry spans as JSON to this file")

	// Configuration
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	format, _, err := service.NewOutputFormatResolver().Determine(c.json, c.yaml, c.csv, "")
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoaderWithFlags(c.flagOverrides(format), c.explicitFlags(cmd))
	verbose, _ := cmd.Flags().GetBool("verbose")

	if c.traceFile != "" {
		shutdown, err := service.StartFileTracing(c.traceFile)
		if err != nil {
			reportError(cmd, err, verbose)
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("WARNING: %v", err)
			}
		}()
	}

	if c.batch {
		err = c.runBatch(cmd, args, loader, verbose)
	} else {
		err = c.runSingle(cmd, args, loader)
	}
	if err != nil {
		reportError(cmd, err, verbose)
		return fmt.Errorf("comparison failed: %w", err)
	}
	return nil
}

func (c *CompareCommand) runSingle(cmd *cobra.Command, args []string, loader domain.ConfigurationLoader) error {
	source, target, err := c.selectors()
	if err != nil {
		return err
	}

	request := domain.CompareRequest{
		Source:         domain.SentenceSource{Path: args[0]},
		Target:         domain.SentenceSource{Path: args[1]},
		SourceSentence: source,
		TargetSentence: target,
		OutputWriter:   cmd.OutOrStdout(),
		OutputPath:     c.outputPath,
		ConfigPath:     c.configFile,
	}

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewDistanceService(service.NewSentenceReader())).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithConfigLoader(loader).
		WithMetrics(service.NewPrometheusExporter()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	_, err = useCase.Execute(cmd.Context(), request)
	return err
}

func (c *CompareCommand) runBatch(cmd *cobra.Command, args []string, loader domain.ConfigurationLoader, verbose bool) error {
	request := domain.BatchRequest{
		Source:       domain.SentenceSource{Path: args[0]},
		Target:       domain.SentenceSource{Path: args[1]},
		Verbose:      verbose,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   c.outputPath,
		ConfigPath:   c.configFile,
	}

	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	useCase, err := app.NewBatchUseCaseBuilder().
		WithReader(service.NewSentenceReader()).
		WithService(service.NewBatchEvaluator(progress)).
		WithFormatter(service.NewDistanceFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithConfigLoader(loader).
		WithMetrics(service.NewPrometheusExporter()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create batch use case: %w", err)
	}

	_, err = useCase.Execute(cmd.Context(), request)
	return err
}

// selectors turns --ids or --index into sentence selectors. With neither
// flag the first sentence of each file is used.
func (c *CompareCommand) selectors() (domain.SentenceSelector, domain.SentenceSelector, error) {
	switch {
	case len(c.ids) > 0:
		if len(c.ids) != 2 || strings.TrimSpace(c.ids[0]) == "" || strings.TrimSpace(c.ids[1]) == "" {
			return domain.SentenceSelector{}, domain.SentenceSelector{},
				domain.NewInvalidInputError(fmt.Sprintf("--ids expects two sentence ids, got %q", strings.Join(c.ids, ",")), nil)
		}
		return domain.SentenceSelector{ID: strings.TrimSpace(c.ids[0])},
			domain.SentenceSelector{ID: strings.TrimSpace(c.ids[1])}, nil
	case len(c.index) > 0:
		if len(c.index) != 2 {
			return domain.SentenceSelector{}, domain.SentenceSelector{},
				domain.NewInvalidInputError(fmt.Sprintf("--index expects two positions, got %d", len(c.index)), nil)
		}
		return domain.SentenceSelector{Index: c.index[0]}, domain.SentenceSelector{Index: c.index[1]}, nil
	default:
		return domain.SentenceSelector{}, domain.SentenceSelector{}, nil
	}
}

func (c *CompareCommand) flagOverrides(format domain.OutputFormat) config.FlagOverrides {
	return config.FlagOverrides{
		Deprel:        c.deprel,
		UPOS:          c.upos,
		Algorithm:     c.algorithm,
		MaxExpanded:   c.maxExpanded,
		Timeout:       c.timeout,
		WarnNodes:     c.warnNodes,
		Workers:       c.workers,
		NoProgress:    c.noProgress,
		Format:        string(format),
		ShowAlignment: c.alignment,
		MetricsFile:   c.metricsFile,
	}
}

// explicitFlags records the flags the user set. Any of --json, --yaml or
// --csv counts as an explicit output format.
func (c *CompareCommand) explicitFlags(cmd *cobra.Command) config.ExplicitFlags {
	explicit := GetExplicitFlags(cmd)
	if c.json || c.yaml || c.csv {
		explicit[config.FlagFormat] = true
	}
	return explicit
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
