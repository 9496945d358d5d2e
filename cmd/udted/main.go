package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/breaklikeafish/UD-TED/internal/version"
)

// NewRootCmd builds the udted command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "udted",
		Short: "Tree edit distance between Universal Dependencies parses",
		Long: `udted compares dependency trees read from CoNLL-U files.

The distance between two sentences is the minimum number of node
insertions, deletions and relabelings that turns one dependency tree
into the other, where sibling order and ancestry are preserved.
Labels can include the dependency relation (subtypes ignored) and
the universal part-of-speech tag.

Features:
  • Exact A* search with the optimal node alignment
  • Polynomial dynamic program when only the distance is needed
  • Parallel corpus mode with per-pair diagnostics and mean distance`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
