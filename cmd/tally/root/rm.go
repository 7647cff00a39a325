package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <session-id>",
		Short: "Delete a published session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("session id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Store().DeleteSession(ctx, owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Deleted "+args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Receipts already printed keep their snapshot of it."))
			return nil
		},
	}

	return cmd
}
