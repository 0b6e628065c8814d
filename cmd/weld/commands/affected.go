package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAffectedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "affected <path>",
		Short: "List the cached modules that must be rebuilt when path changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := c.app.Affected(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
