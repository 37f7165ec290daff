package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister",
		Short: "Deregister a saved session and delete its file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Deregister(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deregistered")
			return nil
		},
	}
}
