package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// poll: one poll against the session saved in --session-file.
func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Poll a saved session once",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := appCtx.PollOnce(commandContext(cmd))
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no new interactions")
			}
			return nil
		},
	}
}
