package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"interactsh/internal/relay"
)

func serversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List the default public servers",
		// No configuration is needed to list the pool.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range relay.DefaultServers {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
