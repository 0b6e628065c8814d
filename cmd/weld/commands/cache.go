package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/ui/style"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the module cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached module and the dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ClearCache(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show module cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.CacheStats(cmd.Context())
			if err != nil {
				return err
			}

			state := "disabled"
			if report.Stats.Enabled {
				state = style.Success("enabled")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s %s\n", style.Highlight("cache"), report.Dir)
			_, _ = fmt.Fprintf(out, "  state:          %s\n", state)
			_, _ = fmt.Fprintf(out, "  disk entries:   %d\n", report.Stats.DiskCount)
			_, _ = fmt.Fprintf(out, "  memory entries: %d\n", report.Stats.MemoryCount)
			_, _ = fmt.Fprintf(out, "  graph:          %d modules, %d edges\n", report.GraphModules, report.GraphEdgeCount)
			return nil
		},
	})

	return cmd
}
