package main

import (
	"github.com/spf13/cobra"

	"github.com/breaklikeafish/UD-TED/internal/config"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) config.ExplicitFlags {
	if cmd == nil {
		return make(config.ExplicitFlags)
	}
	return config.ExplicitFlagsOf(cmd.Flags())
}
