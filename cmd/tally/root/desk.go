package root

import (
	"context"

	"github.com/spf13/cobra"

	"tally/internal/commentary"
	"tally/internal/tui"
)

func newDeskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "desk",
		Short: "Open the focus desk (timer TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunDesk(ctx, svc, owner, commentary.NewStatic(), cmd.OutOrStdout())
		},
	}

	return cmd
}
