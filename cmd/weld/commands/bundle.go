package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/app"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle [entry]",
		Short: "Bundle an entry module and everything it imports",
		Long: "Bundle resolves the entry module, discovers its transitive imports and writes " +
			"one concatenated output. The entry defaults to the one configured in weld.yaml.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.BundleOptions{Stdout: cmd.OutOrStdout()}
			if len(args) == 1 {
				opts.Entry = args[0]
			}
			opts.Out, _ = cmd.Flags().GetString("out")
			opts.Root, _ = cmd.Flags().GetString("root")
			opts.CacheDir, _ = cmd.Flags().GetString("cache-dir")
			opts.Workers, _ = cmd.Flags().GetInt("workers")
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
			opts.Trace, _ = cmd.Flags().GetBool("trace")

			return c.app.Bundle(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the bundle to this file instead of standard output")
	cmd.Flags().String("root", "", "Directory the entry is resolved against")
	cmd.Flags().String("cache-dir", "", "Module cache directory")
	cmd.Flags().IntP("workers", "w", 0, "Number of discovery workers (default: one per CPU)")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the module cache")
	cmd.Flags().Bool("trace", false, "Log the duration of each bundling phase")

	return cmd
}
