package cli

import (
	"github.com/spf13/cobra"
)

type ExtractOptions struct {
	SpecFile    string
	Output      string
	Database    string
	StateDir    string
	DryRun      bool
	FullRefresh bool
}

func NewExtractCmd() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a collection into a JSONL file",
		RunE: func(c *cobra.Command, args []string) error {
			return runExtract(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SpecFile, "source", "s", "source.yaml", "Path to the source spec file")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "Output JSONL path (defaults to <collection>.jsonl)")
	cmd.Flags().StringVarP(&opts.Database, "database", "d", "", "Database name (overrides the spec)")
	cmd.Flags().StringVar(&opts.StateDir, "state-dir", "", "Directory for the watermark state database")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract without writing the destination or state")
	cmd.Flags().BoolVar(&opts.FullRefresh, "full-refresh", false, "Ignore the stored watermark and reload everything")

	return cmd
}

func NewCollectionsCmd() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collection names in the source database",
		RunE: func(c *cobra.Command, args []string) error {
			return runCollections(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SpecFile, "source", "s", "source.yaml", "Path to the source spec file")
	cmd.Flags().StringVarP(&opts.Database, "database", "d", "", "Database name (overrides the spec)")

	return cmd
}
