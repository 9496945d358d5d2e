package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/breaklikeafish/UD-TED/service"
)

// reportError prints the error category and recovery suggestions to stderr.
// Suggestions are only shown in verbose mode.
func reportError(cmd *cobra.Command, err error, verbose bool) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %s\n", categorized.Category, categorized.Message)
	if !verbose {
		return
	}

	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n💡 Suggestions:\n")
	for _, suggestion := range suggestions {
		fmt.Fprintf(cmd.ErrOrStderr(), "  • %s\n", suggestion)
	}
}
