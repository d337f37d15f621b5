// Package cli wires the command-line interface using Cobra.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mongotap",
		Short: "mongotap - stream MongoDB collections into JSON record files",
		Long: `mongotap extracts documents from MongoDB collections as a chunked,
JSON-safe record stream, with optional incremental extraction driven by a
watermark field. Collection, connection and cursor settings come from a
declarative source spec file.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewCollectionsCmd())

	return rootCmd
}
